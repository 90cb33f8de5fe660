package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type GenreRepository struct {
	pool *pgxpool.Pool
}

func NewGenreRepository(pool *pgxpool.Pool) *GenreRepository {
	return &GenreRepository{pool: pool}
}

// LoadGenreMap reads the full genre table into an id-to-title map. Run once
// at startup; the result is treated as immutable afterwards.
func (r *GenreRepository) LoadGenreMap(ctx context.Context) (map[int]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, title FROM genres`)
	if err != nil {
		return nil, fmt.Errorf("load genres: %w", err)
	}
	defer rows.Close()

	out := make(map[int]string)
	for rows.Next() {
		var id int
		var title string
		if err := rows.Scan(&id, &title); err != nil {
			return nil, fmt.Errorf("scan genre: %w", err)
		}
		out[id] = title
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load genres: %w", err)
	}
	return out, nil
}

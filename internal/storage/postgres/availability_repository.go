package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/cowguru2000/scili-dvds/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AvailabilityRepository reads and refreshes the availability cache columns
// on the movies table. Every operation is a single batched round trip over
// a parameterized IN-list; there are no per-call-number statements.
type AvailabilityRepository struct {
	pool *pgxpool.Pool
}

func NewAvailabilityRepository(pool *pgxpool.Pool) *AvailabilityRepository {
	return &AvailabilityRepository{pool: pool}
}

// ReadAvailability fetches cached availability for the given call numbers in
// one query. Call numbers with no record, or records never checked, are
// absent from the result.
func (r *AvailabilityRepository) ReadAvailability(ctx context.Context, callNumbers []string) ([]domain.AvailabilityRow, error) {
	const query = `
SELECT call_number, available, EXTRACT(EPOCH FROM NOW() - last_check)
FROM movies
WHERE call_number = ANY($1) AND available IS NOT NULL AND last_check IS NOT NULL`

	rows, err := r.pool.Query(ctx, query, callNumbers)
	if err != nil {
		return nil, fmt.Errorf("read availability: %w", err)
	}
	defer rows.Close()

	var out []domain.AvailabilityRow
	for rows.Next() {
		var row domain.AvailabilityRow
		if err := rows.Scan(&row.CallNumber, &row.Available, &row.AgeSeconds); err != nil {
			return nil, fmt.Errorf("scan availability row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read availability: %w", err)
	}
	return out, nil
}

// WriteAvailability stamps all given call numbers with one availability
// value and check time in a single batched UPDATE.
func (r *AvailabilityRepository) WriteAvailability(ctx context.Context, callNumbers []string, available bool, checkedAt time.Time) error {
	const stmt = `UPDATE movies SET available = $1, last_check = $2 WHERE call_number = ANY($3)`
	if _, err := r.pool.Exec(ctx, stmt, available, checkedAt, callNumbers); err != nil {
		return fmt.Errorf("write availability: %w", err)
	}
	return nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/cowguru2000/scili-dvds/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MovieRepository struct {
	pool *pgxpool.Pool
}

func NewMovieRepository(pool *pgxpool.Pool) *MovieRepository {
	return &MovieRepository{pool: pool}
}

const movieColumns = `id, title, director, runtime, plot_short, rating, call_number, available, last_check`

// SearchMovies matches title or director against %query% and genre titles
// against the exact query, case-insensitively, capped at 10 results.
func (r *MovieRepository) SearchMovies(ctx context.Context, query string) ([]domain.Movie, error) {
	const stmt = `
SELECT ` + movieColumns + `
FROM movies
WHERE id IN (
	SELECT movies.id
	FROM movies
	LEFT JOIN movies_genres ON movies_genres.movie_id = movies.id
	LEFT JOIN genres ON movies_genres.genre_id = genres.id
	WHERE movies.title ILIKE $1 OR LOWER(genres.title) = LOWER($2) OR movies.director ILIKE $1
)
LIMIT 10`

	rows, err := r.pool.Query(ctx, stmt, "%"+query+"%", query)
	if err != nil {
		return nil, fmt.Errorf("search movies: %w", err)
	}
	return scanMovies(rows)
}

// FeaturedMovies samples 20 well-rated movies marked available, for the
// blank-query landing view.
func (r *MovieRepository) FeaturedMovies(ctx context.Context) ([]domain.Movie, error) {
	const stmt = `
SELECT ` + movieColumns + `
FROM movies
WHERE rating IS NOT NULL AND rating > 80 AND available = true
ORDER BY random()
LIMIT 20`

	rows, err := r.pool.Query(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("featured movies: %w", err)
	}
	return scanMovies(rows)
}

// GenreIDsForMovies returns the genre IDs attached to each movie in one
// batched query.
func (r *MovieRepository) GenreIDsForMovies(ctx context.Context, movieIDs []int) (map[int][]int, error) {
	const stmt = `SELECT movie_id, genre_id FROM movies_genres WHERE movie_id = ANY($1)`

	rows, err := r.pool.Query(ctx, stmt, movieIDs)
	if err != nil {
		return nil, fmt.Errorf("genres for movies: %w", err)
	}
	defer rows.Close()

	out := make(map[int][]int, len(movieIDs))
	for rows.Next() {
		var movieID, genreID int
		if err := rows.Scan(&movieID, &genreID); err != nil {
			return nil, fmt.Errorf("scan movie genre: %w", err)
		}
		out[movieID] = append(out[movieID], genreID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("genres for movies: %w", err)
	}
	return out, nil
}

func scanMovies(rows pgx.Rows) ([]domain.Movie, error) {
	defer rows.Close()
	var out []domain.Movie
	for rows.Next() {
		var m domain.Movie
		if err := rows.Scan(&m.ID, &m.Title, &m.Director, &m.Runtime, &m.PlotShort, &m.Rating, &m.CallNumber, &m.Available, &m.LastCheck); err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read movies: %w", err)
	}
	return out, nil
}

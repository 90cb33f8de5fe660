package app

import (
	"context"
	"strings"

	"github.com/cowguru2000/scili-dvds/internal/clock"
	"github.com/cowguru2000/scili-dvds/internal/domain"
)

// MovieRepository is the store-side view of the searchable catalog.
type MovieRepository interface {
	// SearchMovies matches title or director against %query% and genre
	// titles against the exact query, case-insensitively.
	SearchMovies(ctx context.Context, query string) ([]domain.Movie, error)
	// FeaturedMovies returns a random sample of well-rated movies that are
	// currently marked available, for the blank-query landing view.
	FeaturedMovies(ctx context.Context) ([]domain.Movie, error)
	// GenreIDsForMovies returns, per movie ID, the genre IDs attached to it,
	// in one batched query.
	GenreIDsForMovies(ctx context.Context, movieIDs []int) (map[int][]int, error)
}

// SearchService answers catalog searches, attaching genre names from the
// preloaded genre map and masking availability values whose cache entry has
// gone stale.
type SearchService struct {
	repo   MovieRepository
	genres map[int]string
	clock  clock.Clock
}

// NewSearchService builds a search service. genres is the id-to-title map
// preloaded at startup; it is read-only from here on.
func NewSearchService(repo MovieRepository, genres map[int]string, clk clock.Clock) *SearchService {
	return &SearchService{repo: repo, genres: genres, clock: clk}
}

// Search returns catalog matches for the query, or the featured sample when
// the query is blank.
func (s *SearchService) Search(ctx context.Context, query string) ([]domain.Movie, error) {
	var movies []domain.Movie
	var err error
	if strings.TrimSpace(query) == "" {
		movies, err = s.repo.FeaturedMovies(ctx)
	} else {
		movies, err = s.repo.SearchMovies(ctx, query)
	}
	if err != nil {
		return nil, err
	}
	if len(movies) == 0 {
		return nil, nil
	}

	ids := make([]int, len(movies))
	for i, m := range movies {
		ids[i] = m.ID
	}
	genreIDs, err := s.repo.GenreIDsForMovies(ctx, ids)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	for i := range movies {
		m := &movies[i]
		for _, gid := range genreIDs[m.ID] {
			if title, ok := s.genres[gid]; ok {
				m.Genres = append(m.Genres, title)
			}
		}
		// A stale cache entry says nothing about current availability; the
		// /avail endpoint is the way to find out.
		if m.LastCheck == nil || now.Sub(*m.LastCheck) >= freshnessWindow {
			m.Available = nil
		}
	}
	return movies, nil
}

// GenreMap exposes the preloaded id-to-title lookup table.
func (s *SearchService) GenreMap() map[int]string {
	return s.genres
}

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/cowguru2000/scili-dvds/internal/domain"
)

// MovieSearcher is the minimal service surface for catalog search.
type MovieSearcher interface {
	Search(ctx context.Context, query string) ([]domain.Movie, error)
}

// HandleSearch returns the handler for GET /search?q=...
// A blank query yields the featured sample; no matches yield {}.
func HandleSearch(svc MovieSearcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		movies, err := svc.Search(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			writeError(w, http.StatusInternalServerError, codeSearchFailed, "search failed")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if len(movies) == 0 {
			_, _ = w.Write([]byte(`{}`))
			return
		}

		results := make([]movieResult, len(movies))
		for i, m := range movies {
			results[i] = toMovieResult(m)
		}
		_ = json.NewEncoder(w).Encode(searchResponse{Results: results})
	}
}

type searchResponse struct {
	Results []movieResult `json:"results"`
}

type movieResult struct {
	ID         int        `json:"id"`
	Title      string     `json:"title"`
	Director   string     `json:"director"`
	Runtime    int        `json:"runtime"`
	PlotShort  string     `json:"plot_short"`
	Rating     *int       `json:"rating"`
	CallNumber string     `json:"call_number"`
	Genres     []string   `json:"genres"`
	Available  *bool      `json:"available,omitempty"`
	LastCheck  *time.Time `json:"last_check,omitempty"`
}

func toMovieResult(m domain.Movie) movieResult {
	return movieResult{
		ID:         m.ID,
		Title:      m.Title,
		Director:   m.Director,
		Runtime:    m.Runtime,
		PlotShort:  m.PlotShort,
		Rating:     m.Rating,
		CallNumber: m.CallNumber,
		Genres:     m.Genres,
		Available:  m.Available,
		LastCheck:  m.LastCheck,
	}
}

package http

import (
	"encoding/json"
	"net/http"
)

// GenreLister exposes the preloaded genre id-to-title map.
type GenreLister interface {
	GenreMap() map[int]string
}

// HandleGenres returns the handler for GET /genres, serving the lookup
// table loaded at startup.
func HandleGenres(svc GenreLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(svc.GenreMap())
	}
}

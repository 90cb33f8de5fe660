package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/cowguru2000/scili-dvds/internal/app"
)

// AvailabilityChecker is the minimal service surface the /avail endpoint
// needs: resolve a batch, then persist what the upstream taught us.
type AvailabilityChecker interface {
	Check(ctx context.Context, callNumbers []string) (app.CheckResult, error)
	SaveResolved(res app.CheckResult)
}

// HandleAvail returns the handler for GET /avail?callnos=...
//
// The response is a JSON object mapping each resolved call number to a
// boolean. Call numbers dropped by sanitization are simply absent. The
// response is written before SaveResolved is invoked, so cache refresh
// latency and failures are invisible to the client.
func HandleAvail(svc AvailabilityChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		callnos := r.URL.Query()["callnos"]

		res, err := svc.Check(r.Context(), callnos)
		if err != nil {
			// Only a batch that produced no map at all lands here (context
			// cancellation); every per-item failure degrades to false.
			writeError(w, http.StatusInternalServerError, codeInternalError, "availability check failed")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(res.Availability)

		svc.SaveResolved(res)
	}
}

package http

import (
	stdhttp "net/http"
)

// HealthHandler reports basic liveness. It deliberately touches neither the
// store nor the upstream catalog.
func HealthHandler(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(stdhttp.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

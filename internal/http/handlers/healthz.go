package handlers

import (
	"context"
	"net/http"
	"os"

	httpx "github.com/dropDatabas3/hellogrant/internal/http"
)

// NewHealthzHandler responde el readiness del servicio. checkDirectory es
// opcional (el backend estático no tiene nada que chequear).
func NewHealthzHandler(checkDirectory func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if v := os.Getenv("SERVICE_VERSION"); v != "" {
			w.Header().Set("X-Service-Version", v)
		}

		if checkDirectory != nil {
			if err := checkDirectory(r.Context()); err != nil {
				httpx.WriteError(w, http.StatusServiceUnavailable, "directory_unavailable", "user directory unavailable")
				return
			}
		}

		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

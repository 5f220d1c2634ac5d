package handlers

import (
	"errors"
	"net/http"

	"github.com/dropDatabas3/hellogrant/internal/hydra"
	"github.com/dropDatabas3/hellogrant/internal/http/middlewares"
	"github.com/dropDatabas3/hellogrant/internal/observability/logger"
)

// failFlow es el error boundary único de ambos flujos: loguea con detalle
// para operadores y renderiza una página genérica para el usuario.
//
// Importante: si accept/reject falló, NO se redirige al browser; el challenge
// queda sin resolver upstream hasta su propio timeout.
func failFlow(w http.ResponseWriter, r *http.Request, flowName string, err error) {
	rid := middlewares.GetRequestID(r.Context())
	log := logger.Named(flowName)

	var pe *hydra.ProviderError
	switch {
	case errors.Is(err, hydra.ErrMissingChallenge):
		log.Warn("request sin challenge",
			logger.RequestID(rid),
			logger.Flow(flowName),
		)
		render(w, http.StatusBadRequest, errorTmpl, errorPage{
			Message:   "Expected a " + flowName + " challenge to be set but received none.",
			RequestID: rid,
		})
	case errors.As(err, &pe):
		// status/body upstream solo para operadores; al usuario nada.
		log.Error("admin API call failed",
			logger.RequestID(rid),
			logger.Flow(flowName),
			logger.Op(pe.Op),
			logger.UpstreamStatus(pe.Status),
			logger.Err(err),
		)
		render(w, http.StatusBadGateway, errorTmpl, errorPage{
			Message:   "The authorization server could not be reached. Please try again later.",
			RequestID: rid,
		})
	default:
		log.Error("flow failed",
			logger.RequestID(rid),
			logger.Flow(flowName),
			logger.Err(err),
		)
		render(w, http.StatusInternalServerError, errorTmpl, errorPage{
			Message:   "An unexpected error occurred. Please try again later.",
			RequestID: rid,
		})
	}
}

// RejectCSRF renderiza la página de error para un POST con token anti-forgery
// inválido. Se engancha como OnReject del middleware; corre antes de cualquier
// side effect del flujo.
func RejectCSRF(w http.ResponseWriter, r *http.Request) {
	rid := middlewares.GetRequestID(r.Context())
	logger.Named("csrf").Warn("token anti-forgery inválido",
		logger.RequestID(rid),
		logger.Path(r.URL.Path),
	)
	render(w, http.StatusForbidden, errorTmpl, errorPage{
		Message:   "The form submission could not be verified. Please go back and try again.",
		RequestID: rid,
	})
}

// redirectTo es el redirect finalizer: manda el browser a la URL que devolvió
// el provider, sin parsearla ni validarla (el provider es el trust boundary).
func redirectTo(w http.ResponseWriter, r *http.Request, url string) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
	http.Redirect(w, r, url, http.StatusFound)
}

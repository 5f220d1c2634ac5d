package router

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/hellogrant/internal/app"
	"github.com/dropDatabas3/hellogrant/internal/flow"
	"github.com/dropDatabas3/hellogrant/internal/http/handlers"
	"github.com/dropDatabas3/hellogrant/internal/http/middlewares"
)

// Options parametriza el router. Todo viene de config; acá no se lee ENV.
type Options struct {
	BaseURL        string
	CSRFCookieName string
	CSRFTTL        time.Duration
	RememberFor    int

	// Metrics es el handler de /metrics (nil para no exponerlo).
	Metrics http.Handler
	// CheckDirectory es el ping del backend de credenciales (nil si no aplica).
	CheckDirectory func(ctx context.Context) error
}

// New arma el router completo: flujos login/consent, healthz y metrics.
// El chequeo CSRF solo envuelve los POST de formularios.
func New(c *app.Container, opts Options) http.Handler {
	flowOpts := handlers.FlowOptions{
		BaseURL: opts.BaseURL,
		CSRF: handlers.CSRFOptions{
			CookieName: opts.CSRFCookieName,
			TTL:        opts.CSRFTTL,
		},
		Policy: flow.Policy{RememberFor: opts.RememberFor},
	}

	csrf := middlewares.WithFormCSRF(c.Cache, middlewares.CSRFConfig{
		CookieName: opts.CSRFCookieName,
		OnReject:   handlers.RejectCSRF,
	})

	r := chi.NewRouter()
	r.Use(middlewares.WithRequestID())
	r.Use(middlewares.WithLogging())

	r.Get("/login", handlers.NewLoginGetHandler(c, flowOpts))
	r.With(csrf).Post("/login", handlers.NewLoginPostHandler(c, flowOpts))

	r.Get("/consent", handlers.NewConsentGetHandler(c, flowOpts))
	r.With(csrf).Post("/consent", handlers.NewConsentPostHandler(c, flowOpts))

	r.Get("/healthz", handlers.NewHealthzHandler(opts.CheckDirectory))
	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics)
	}

	return r
}

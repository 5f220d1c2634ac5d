package handlers

import (
	"net/http"
	"strings"

	"github.com/dropDatabas3/hellogrant/internal/app"
	"github.com/dropDatabas3/hellogrant/internal/flow"
	"github.com/dropDatabas3/hellogrant/internal/hydra"
	"github.com/dropDatabas3/hellogrant/internal/metrics"
	"github.com/dropDatabas3/hellogrant/internal/observability/logger"
)

// FlowOptions agrupa lo que los handlers de flujo necesitan además del
// container: de dónde armar los action de los forms y la política remember.
type FlowOptions struct {
	BaseURL string
	CSRF    CSRFOptions
	Policy  flow.Policy
}

// credentialFailedMsg es deliberadamente vago: no se revela cuál de
// email/password falló, y el password nunca vuelve al template.
const credentialFailedMsg = "The username / password combination is not correct"

// NewLoginGetHandler atiende GET /login?login_challenge=...
//
// Fetch del login request; con skip=true se acepta directo con el subject que
// el provider ya estableció y se redirige; si no, se muestra el formulario.
func NewLoginGetHandler(c *app.Container, opts FlowOptions) http.HandlerFunc {
	log := logger.Named("login")
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		challenge := strings.TrimSpace(r.URL.Query().Get("login_challenge"))
		if challenge == "" {
			failFlow(w, r, "login", hydra.ErrMissingChallenge)
			return
		}

		req, err := c.Provider.GetLoginRequest(ctx, challenge)
		if err != nil {
			failFlow(w, r, "login", err)
			return
		}

		out := flow.ResolveLoginGet(req)
		if out.State == flow.Skippable {
			res, err := c.Provider.AcceptLoginRequest(ctx, challenge, *out.Accept)
			if err != nil {
				failFlow(w, r, "login", err)
				return
			}
			metrics.ObserveFlowOutcome("login", out.State.String())
			log.Info("login skip-accepted",
				logger.Challenge(challenge),
				logger.Subject(req.Subject),
			)
			redirectTo(w, r, res.RedirectTo)
			return
		}

		metrics.ObserveFlowOutcome("login", out.State.String())
		render(w, http.StatusOK, loginTmpl, loginPage{
			CSRFToken: issueCSRF(w, c.Cache, opts.CSRF),
			Challenge: challenge,
			Action:    opts.BaseURL + "/login",
		})
	}
}

// NewLoginPostHandler atiende POST /login (el form). El middleware CSRF ya
// corrió; acá solo queda el challenge, la decisión y las credenciales.
func NewLoginPostHandler(c *app.Container, opts FlowOptions) http.HandlerFunc {
	log := logger.Named("login")
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if err := r.ParseForm(); err != nil {
			failFlow(w, r, "login", err)
			return
		}

		// el challenge ahora viene como hidden field, no como query param
		in := flow.LoginInput{
			Challenge: strings.TrimSpace(r.PostFormValue("challenge")),
			Email:     strings.TrimSpace(r.PostFormValue("email")),
			Password:  r.PostFormValue("password"),
			Deny:      r.PostFormValue("submit") == "Deny access",
			Remember:  r.PostFormValue("remember") != "",
		}
		if in.Challenge == "" {
			failFlow(w, r, "login", hydra.ErrMissingChallenge)
			return
		}

		// El deny gana antes de mirar credenciales.
		credentialOK := false
		if !in.Deny {
			ok, err := c.Directory.Validate(ctx, in.Email, in.Password)
			if err != nil {
				failFlow(w, r, "login", err)
				return
			}
			credentialOK = ok
		}

		out := opts.Policy.ResolveLoginPost(in, credentialOK)
		switch out.State {
		case flow.UserDenied:
			res, err := c.Provider.RejectLoginRequest(ctx, in.Challenge, *out.Reject)
			if err != nil {
				failFlow(w, r, "login", err)
				return
			}
			metrics.ObserveFlowOutcome("login", out.State.String())
			log.Info("login denied by user", logger.Challenge(in.Challenge))
			redirectTo(w, r, res.RedirectTo)

		case flow.UserInvalid:
			// branch normal, no error: re-render con mensaje genérico y
			// token fresco. Ninguna llamada de mutación al provider.
			metrics.ObserveFlowOutcome("login", out.State.String())
			log.Info("login credentials rejected", logger.Challenge(in.Challenge))
			render(w, http.StatusOK, loginTmpl, loginPage{
				CSRFToken: issueCSRF(w, c.Cache, opts.CSRF),
				Challenge: in.Challenge,
				Action:    opts.BaseURL + "/login",
				Error:     credentialFailedMsg,
			})

		case flow.UserAccepted:
			res, err := c.Provider.AcceptLoginRequest(ctx, in.Challenge, *out.Accept)
			if err != nil {
				failFlow(w, r, "login", err)
				return
			}
			metrics.ObserveFlowOutcome("login", out.State.String())
			log.Info("login accepted",
				logger.Challenge(in.Challenge),
				logger.Subject(out.Accept.Subject),
			)
			redirectTo(w, r, res.RedirectTo)
		}
	}
}

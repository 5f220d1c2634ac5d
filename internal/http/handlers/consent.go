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

// NewConsentGetHandler atiende GET /consent?consent_challenge=...
//
// Con skip=true el provider ya sabe que este usuario le otorgó estos scopes a
// este cliente: se hace eco del set pedido y se redirige sin mostrar UI.
func NewConsentGetHandler(c *app.Container, opts FlowOptions) http.HandlerFunc {
	log := logger.Named("consent")
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		challenge := strings.TrimSpace(r.URL.Query().Get("consent_challenge"))
		if challenge == "" {
			failFlow(w, r, "consent", hydra.ErrMissingChallenge)
			return
		}

		req, err := c.Provider.GetConsentRequest(ctx, challenge)
		if err != nil {
			failFlow(w, r, "consent", err)
			return
		}

		out := flow.ResolveConsentGet(req)
		if out.State == flow.Skippable {
			res, err := c.Provider.AcceptConsentRequest(ctx, challenge, *out.Accept)
			if err != nil {
				failFlow(w, r, "consent", err)
				return
			}
			metrics.ObserveFlowOutcome("consent", out.State.String())
			log.Info("consent skip-accepted",
				logger.Challenge(challenge),
				logger.ClientID(req.Client.ClientID),
				logger.GrantedScopes(out.Accept.GrantScope),
			)
			redirectTo(w, r, res.RedirectTo)
			return
		}

		clientName := req.Client.ClientName
		if clientName == "" {
			clientName = req.Client.ClientID
		}

		metrics.ObserveFlowOutcome("consent", out.State.String())
		render(w, http.StatusOK, consentTmpl, consentPage{
			CSRFToken:      issueCSRF(w, c.Cache, opts.CSRF),
			Challenge:      challenge,
			Action:         opts.BaseURL + "/consent",
			RequestedScope: req.RequestedScope,
			User:           req.Subject,
			ClientName:     clientName,
			LogoURI:        req.Client.LogoURI,
		})
	}
}

// NewConsentPostHandler atiende POST /consent.
//
// Deny rechaza directo, sin re-fetch. Accept RE-FETCHEA el consent request
// para recuperar la audience pedida: el form no la lleva (no es editable por
// el usuario) y confiar en un hidden field permitiría inyectarla.
func NewConsentPostHandler(c *app.Container, opts FlowOptions) http.HandlerFunc {
	log := logger.Named("consent")
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if err := r.ParseForm(); err != nil {
			failFlow(w, r, "consent", err)
			return
		}

		in := flow.ConsentInput{
			Challenge:  strings.TrimSpace(r.PostFormValue("challenge")),
			GrantScope: r.PostForm["grant_scope"],
			Deny:       r.PostFormValue("submit") == "Deny access",
			Remember:   r.PostFormValue("remember") != "",
		}
		if in.Challenge == "" {
			failFlow(w, r, "consent", hydra.ErrMissingChallenge)
			return
		}

		if in.Deny {
			out := opts.Policy.ResolveConsentPost(in, nil)
			res, err := c.Provider.RejectConsentRequest(ctx, in.Challenge, *out.Reject)
			if err != nil {
				failFlow(w, r, "consent", err)
				return
			}
			metrics.ObserveFlowOutcome("consent", out.State.String())
			log.Info("consent denied by user", logger.Challenge(in.Challenge))
			redirectTo(w, r, res.RedirectTo)
			return
		}

		req, err := c.Provider.GetConsentRequest(ctx, in.Challenge)
		if err != nil {
			failFlow(w, r, "consent", err)
			return
		}

		out := opts.Policy.ResolveConsentPost(in, req)
		res, err := c.Provider.AcceptConsentRequest(ctx, in.Challenge, *out.Accept)
		if err != nil {
			failFlow(w, r, "consent", err)
			return
		}
		metrics.ObserveFlowOutcome("consent", out.State.String())
		log.Info("consent accepted",
			logger.Challenge(in.Challenge),
			logger.GrantedScopes(out.Accept.GrantScope),
		)
		redirectTo(w, r, res.RedirectTo)
	}
}

package flow

import "github.com/dropDatabas3/hellogrant/internal/hydra"

// ConsentInput es lo que llega del formulario de consent. GrantScope viene
// crudo del form (puede ser nil si el usuario no marcó nada).
type ConsentInput struct {
	Challenge  string
	GrantScope []string
	Deny       bool
	Remember   bool
}

// ConsentOutcome es la variante etiquetada del resultado del resolver.
type ConsentOutcome struct {
	State  State
	Accept *hydra.AcceptConsent
	Reject *hydra.RejectRequest
}

// ResolveConsentGet decide la entrada GET del flujo consent.
//
// Con skip=true se hace eco verbatim del set pedido: el provider ya validó
// que el cliente puede pedir esos scopes y audiences, acá no se filtra nada.
// La session va vacía y no se manda remember (defaults del provider).
func ResolveConsentGet(req *hydra.ConsentRequest) ConsentOutcome {
	if req.Skip {
		return ConsentOutcome{
			State: Skippable,
			Accept: &hydra.AcceptConsent{
				GrantScope:               req.RequestedScope,
				GrantAccessTokenAudience: req.RequestedAccessTokenAudience,
			},
		}
	}
	return ConsentOutcome{State: InteractiveRequired}
}

// ResolveConsentPost decide la entrada POST.
//
// req es el ConsentRequest RE-FETCHEADO: el form solo trae lo que el usuario
// puede cambiar (scopes, remember); la audience sale del request autoritativo
// y nunca de un hidden field, para que un form adulterado no pueda inyectar
// audiences. Para deny, req puede ser nil (no hace falta re-fetch).
func (p Policy) ResolveConsentPost(in ConsentInput, req *hydra.ConsentRequest) ConsentOutcome {
	if in.Deny {
		reject := DenyAccess()
		return ConsentOutcome{State: UserDenied, Reject: &reject}
	}
	return ConsentOutcome{State: UserAccepted, Accept: &hydra.AcceptConsent{
		GrantScope:               NormalizeScope(in.GrantScope),
		GrantAccessTokenAudience: req.RequestedAccessTokenAudience,
		Session: hydra.Session{
			AccessToken: map[string]any{},
			IDToken:     map[string]any{},
		},
		Remember:    in.Remember,
		RememberFor: p.RememberFor,
	}}
}

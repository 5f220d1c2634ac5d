// Package hydra implementa el cliente del admin API del authorization server
// (ORY Hydra o compatible) para resolver login y consent challenges.
//
// El cliente es stateless: seguro para uso concurrente entre requests que no
// se relacionan entre sí. Ningún llamado se reintenta; un challenge ya
// resuelto falla upstream y ese fallo se propaga tal cual.
package hydra

// FlowKind discrimina los dos flujos que maneja el admin API.
type FlowKind string

const (
	FlowLogin   FlowKind = "login"
	FlowConsent FlowKind = "consent"
)

// OAuthClient es el descriptor del cliente OAuth que inició el flujo.
// Solo se usa para mostrar información en los formularios.
type OAuthClient struct {
	ClientID   string `json:"client_id"`
	ClientName string `json:"client_name"`
	LogoURI    string `json:"logo_uri"`
}

// LoginRequest es el snapshot read-only de un login challenge pendiente.
// Se crea en el fetch y nunca se muta.
type LoginRequest struct {
	Challenge string `json:"challenge"`
	// Skip indica que el provider ya autenticó al usuario (sesión recordada)
	// y no hay que volver a pedir credenciales.
	Skip                         bool        `json:"skip"`
	Subject                      string      `json:"subject"`
	RequestedScope               []string    `json:"requested_scope"`
	RequestedAccessTokenAudience []string    `json:"requested_access_token_audience"`
	Client                       OAuthClient `json:"client"`
}

// ConsentRequest es el snapshot read-only de un consent challenge pendiente.
type ConsentRequest struct {
	Challenge                    string      `json:"challenge"`
	Skip                         bool        `json:"skip"`
	Subject                      string      `json:"subject"`
	RequestedScope               []string    `json:"requested_scope"`
	RequestedAccessTokenAudience []string    `json:"requested_access_token_audience"`
	Client                       OAuthClient `json:"client"`
}

// Session transporta claims para los tokens que emitirá el provider.
// Se construye fresca por accept; la ownership pasa al provider.
type Session struct {
	// AccessToken: visible al introspectar el token. Evitar datos sensibles.
	AccessToken map[string]any `json:"access_token,omitempty"`
	// IDToken: visible en el ID token.
	IDToken map[string]any `json:"id_token,omitempty"`
}

// AcceptLogin es el payload de aceptación del flujo login.
type AcceptLogin struct {
	Subject string `json:"subject"`
	// Remember hace que el provider recuerde el browser y marque skip=true
	// en futuros requests.
	Remember bool `json:"remember,omitempty"`
	// RememberFor en segundos; 0 = nunca expira.
	RememberFor int `json:"remember_for,omitempty"`
}

// AcceptConsent es el payload de aceptación del flujo consent.
type AcceptConsent struct {
	GrantScope               []string `json:"grant_scope"`
	GrantAccessTokenAudience []string `json:"grant_access_token_audience,omitempty"`
	Session                  Session  `json:"session,omitempty"`
	Remember                 bool     `json:"remember,omitempty"`
	RememberFor              int      `json:"remember_for,omitempty"`
}

// RejectRequest es el payload de rechazo, idéntico para ambos flujos.
type RejectRequest struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// RedirectResult es lo único que este servicio lee de las respuestas de
// accept/reject: a dónde mandar el browser. Todo lo demás se descarta.
type RedirectResult struct {
	RedirectTo string `json:"redirect_to"`
}

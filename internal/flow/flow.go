// Package flow contiene los state machines de resolución de challenges.
//
// Cada flujo (login, consent) comparte la misma forma: fetch del request,
// branch skip/interactivo, armado del payload accept/deny y hand-off del
// redirect. Las transiciones son funciones puras de (estado, input) para
// poder testearlas sin levantar HTTP ni un provider real.
package flow

import "github.com/dropDatabas3/hellogrant/internal/hydra"

// State enumera los estados del resolver. Fetched es el estado de entrada
// implícito tras el fetch; los demás son terminales o de espera.
type State int

const (
	Fetched State = iota
	// Skippable: el provider ya decidió; se acepta sin interacción.
	Skippable
	// InteractiveRequired: hay que renderizar el formulario y esperar el POST.
	InteractiveRequired
	// UserDenied: el usuario rechazó explícitamente.
	UserDenied
	// UserInvalid: credenciales inválidas; re-render con mensaje genérico.
	UserInvalid
	// UserAccepted: decisión afirmativa del usuario.
	UserAccepted
)

func (s State) String() string {
	switch s {
	case Fetched:
		return "fetched"
	case Skippable:
		return "skippable"
	case InteractiveRequired:
		return "interactive_required"
	case UserDenied:
		return "user_denied"
	case UserInvalid:
		return "user_invalid"
	case UserAccepted:
		return "user_accepted"
	default:
		return "unknown"
	}
}

// Policy agrupa los valores de política de los flujos. RememberFor es
// configuración, nunca input del usuario.
type Policy struct {
	// RememberFor en segundos cuando el usuario marca remember; 0 = no expira.
	RememberFor int
}

// DenyAccess es el payload fijo de rechazo. Nunca lleva scopes, audiences ni
// session, sin importar qué venga en el form.
func DenyAccess() hydra.RejectRequest {
	return hydra.RejectRequest{
		Error:            "access_denied",
		ErrorDescription: "The resource owner denied the request",
	}
}

package flow

import "github.com/dropDatabas3/hellogrant/internal/hydra"

// LoginInput es lo que llega del formulario de login.
type LoginInput struct {
	Challenge string
	Email     string
	// Password no viaja al outcome; solo lo consume el credential validator.
	Password string
	Deny     bool
	Remember bool
}

// LoginOutcome es la variante etiquetada del resultado del resolver.
// Exactamente uno de Accept/Reject está seteado en estados terminales.
type LoginOutcome struct {
	State  State
	Accept *hydra.AcceptLogin
	Reject *hydra.RejectRequest
}

// ResolveLoginGet decide la entrada GET del flujo login.
//
// Si el provider marcó skip, la identidad ya está establecida (ej. sesión
// recordada): se acepta con el subject del request, sin chequear credenciales
// y sin campos remember (aplican los defaults del provider). Si no, hay que
// mostrar el formulario.
func ResolveLoginGet(req *hydra.LoginRequest) LoginOutcome {
	if req.Skip {
		return LoginOutcome{
			State:  Skippable,
			Accept: &hydra.AcceptLogin{Subject: req.Subject},
		}
	}
	return LoginOutcome{State: InteractiveRequired}
}

// ResolveLoginPost decide la entrada POST con el veredicto del credential
// validator ya resuelto (credentialOK). El orden importa: deny gana antes de
// mirar credenciales, y credenciales inválidas NO son un error sino un branch
// normal que re-renderiza.
func (p Policy) ResolveLoginPost(in LoginInput, credentialOK bool) LoginOutcome {
	if in.Deny {
		reject := DenyAccess()
		return LoginOutcome{State: UserDenied, Reject: &reject}
	}
	if !credentialOK {
		return LoginOutcome{State: UserInvalid}
	}
	return LoginOutcome{State: UserAccepted, Accept: &hydra.AcceptLogin{
		Subject:     in.Email,
		Remember:    in.Remember,
		RememberFor: p.RememberFor,
	}}
}

// Package directory define el credential validator del flujo login.
//
// La interfaz es una capability mínima: el resolver solo necesita saber si
// identidad+secreto validan. Cambiar de backend (lista fija, Postgres, un
// directorio externo) no toca el resolver.
package directory

import (
	"context"
	"crypto/subtle"
	"strings"
)

// Validator chequea credenciales. Sin side effects más allá del chequeo.
// ok=false cubre tanto usuario desconocido como password incorrecto; los
// callers no deben poder distinguirlos.
type Validator interface {
	Validate(ctx context.Context, email, password string) (ok bool, err error)
}

// Static valida contra una lista fija de emails y un password compartido.
// Es explícitamente un placeholder de demo: cualquier deployment real debe
// reemplazarlo por un directorio con hashes y rate limiting.
type Static struct {
	emails   map[string]struct{}
	password string
}

// DefaultUsers son los usuarios de ejemplo que habilita la config vacía.
var DefaultUsers = []string{
	"thomas@plenty.com",
	"christoph@plenty.com",
	"götz@plenty.com",
	"marcus@plenty.com",
}

// DefaultPassword es el password compartido del directorio de ejemplo.
const DefaultPassword = "foobar"

// NewStatic crea el validator fijo. Con listas vacías usa los defaults de demo.
func NewStatic(emails []string, password string) *Static {
	if len(emails) == 0 {
		emails = DefaultUsers
	}
	if password == "" {
		password = DefaultPassword
	}
	set := make(map[string]struct{}, len(emails))
	for _, e := range emails {
		set[strings.ToLower(strings.TrimSpace(e))] = struct{}{}
	}
	return &Static{emails: set, password: password}
}

// Validate chequea membresía del email y igualdad del password en tiempo
// constante. El error siempre es nil en este backend.
func (s *Static) Validate(_ context.Context, email, password string) (bool, error) {
	_, known := s.emails[strings.ToLower(strings.TrimSpace(email))]
	match := subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
	return known && match, nil
}

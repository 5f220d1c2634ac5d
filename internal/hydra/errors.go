package hydra

import (
	"errors"
	"fmt"
)

// ErrMissingChallenge: el request llegó sin challenge. Es un error del
// cliente (browser), no del provider; se corta antes de llamar al admin API.
var ErrMissingChallenge = errors.New("hydra: challenge vacío")

// ProviderError envuelve cualquier fallo del admin API: error de transporte,
// status no-2xx o respuesta malformada. El contenido es opaco para los
// resolvers; Status y Body quedan disponibles solo para logging de operadores.
type ProviderError struct {
	Op     string // ej. "accept_login_request"
	Status int    // 0 si el fallo fue de transporte
	Body   string // truncado, para diagnóstico
	Err    error  // causa subyacente (transporte/decode), puede ser nil
}

func (e *ProviderError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("hydra: %s: upstream status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("hydra: %s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

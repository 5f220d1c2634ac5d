// Package cache define la abstracción de cache efímero del servicio.
//
// Se usa para estado transitorio de un solo uso (tokens anti-forgery emitidos
// al renderizar un formulario). Backends:
//   - memory (in-process, desarrollo/testing)
//   - redis (para correr varias réplicas detrás de un LB)
package cache

import "time"

// Cache es la interfaz mínima que necesitan los flujos.
// Get retorna ok=false si la key no existe o expiró.
type Cache interface {
	Get(key string) (value []byte, ok bool)
	Set(key string, value []byte, ttl time.Duration)
	Delete(key string)
}

package middlewares

import (
	"net/http"
	"strings"

	"github.com/dropDatabas3/hellogrant/internal/cache"
)

// CSRFConfig configura el chequeo anti-forgery de los formularios.
type CSRFConfig struct {
	CookieName string // Default: "csrf_token"
	FieldName  string // Default: "_csrf"
	// OnReject responde cuando el chequeo falla. Si es nil, 403 plano.
	OnReject http.HandlerFunc
}

// CSRFKeyPrefix es el namespace de los tokens emitidos en el cache.
const CSRFKeyPrefix = "csrf:token:"

// WithFormCSRF valida el token anti-forgery de los POST de formularios.
//
// Esquema double-submit + registro one-shot: al renderizar, el handler emite
// un token que viaja como cookie y como hidden field, y guarda una copia con
// TTL en el cache. El POST debe traer ambos valores iguales y el registro
// debe existir; el registro se borra al primer uso (el token no se puede
// reusar). Cualquier mismatch corta el request ANTES de tocar el provider.
func WithFormCSRF(store cache.Cache, cfg CSRFConfig) Middleware {
	cookieName := strings.TrimSpace(cfg.CookieName)
	if cookieName == "" {
		cookieName = "csrf_token"
	}
	fieldName := strings.TrimSpace(cfg.FieldName)
	if fieldName == "" {
		fieldName = "_csrf"
	}
	reject := cfg.OnReject
	if reject == nil {
		reject = func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "CSRF token missing or mismatch", http.StatusForbidden)
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}

			if err := r.ParseForm(); err != nil {
				reject(w, r)
				return
			}

			field := strings.TrimSpace(r.PostFormValue(fieldName))
			ck, _ := r.Cookie(cookieName)

			if field == "" || ck == nil || strings.TrimSpace(ck.Value) == "" || !constantTimeEqual(field, ck.Value) {
				reject(w, r)
				return
			}

			// one-shot: el token tiene que estar registrado y se quema al usarlo
			if _, ok := store.Get(CSRFKeyPrefix + field); !ok {
				reject(w, r)
				return
			}
			store.Delete(CSRFKeyPrefix + field)

			next.ServeHTTP(w, r)
		})
	}
}

// constantTimeEqual compara dos strings en tiempo constante para evitar timing attacks.
func constantTimeEqual(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	var v byte
	for i := 0; i < len(a); i++ {
		v |= a[i] ^ b[i]
	}
	return v == 0
}

package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/dropDatabas3/hellogrant/internal/cache"
	"github.com/dropDatabas3/hellogrant/internal/http/middlewares"
)

// CSRFOptions parametriza la emisión del token anti-forgery.
type CSRFOptions struct {
	CookieName string
	TTL        time.Duration
}

func (o CSRFOptions) withDefaults() CSRFOptions {
	if o.CookieName == "" {
		o.CookieName = "csrf_token"
	}
	if o.TTL <= 0 {
		o.TTL = 30 * time.Minute
	}
	return o
}

// issueCSRF genera un token al renderizar un formulario: setea la cookie
// (double-submit), registra la copia one-shot en el cache y retorna el valor
// para el hidden field. Cada render emite un token nuevo.
func issueCSRF(w http.ResponseWriter, store cache.Cache, opts CSRFOptions) string {
	opts = opts.withDefaults()

	var b [32]byte
	_, _ = rand.Read(b[:])
	tok := hex.EncodeToString(b[:])

	// non-HttpOnly no hace falta acá: el form lo lleva server-side.
	http.SetCookie(w, &http.Cookie{
		Name:     opts.CookieName,
		Value:    tok,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(opts.TTL).UTC(),
	})

	store.Set(middlewares.CSRFKeyPrefix+tok, []byte("1"), opts.TTL)
	return tok
}

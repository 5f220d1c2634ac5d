package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/dropDatabas3/hellogrant/internal/observability/logger"
)

//go:embed templates/*.html
var templatesFS embed.FS

var (
	loginTmpl   = template.Must(template.ParseFS(templatesFS, "templates/login.html"))
	consentTmpl = template.Must(template.ParseFS(templatesFS, "templates/consent.html"))
	errorTmpl   = template.Must(template.ParseFS(templatesFS, "templates/error.html"))
)

// loginPage alimenta login.html. Password jamás viaja de vuelta al template.
type loginPage struct {
	CSRFToken string
	Challenge string
	Action    string
	Error     string
}

// consentPage alimenta consent.html.
type consentPage struct {
	CSRFToken      string
	Challenge      string
	Action         string
	RequestedScope []string
	User           string
	ClientName     string
	LogoURI        string
}

// errorPage alimenta error.html. Message es siempre genérico; el detalle del
// error queda en los logs, nunca en el browser.
type errorPage struct {
	Message   string
	RequestID string
}

// render ejecuta el template a un buffer primero: si falla a mitad de camino
// no dejamos media página escrita con status 200.
func render(w http.ResponseWriter, status int, t *template.Template, data any) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		logger.Named("handlers").Error("template render failed", logger.Err(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

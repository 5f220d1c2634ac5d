package hydra

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dropDatabas3/hellogrant/internal/metrics"
)

// maxErrBody limita cuánto body upstream guardamos en un ProviderError.
const maxErrBody = 2048

// Client habla con el admin API por HTTP. Construirlo una vez e inyectarlo en
// los handlers (nada de cliente global).
type Client struct {
	baseURL string
	http    *http.Client
}

// New crea un cliente contra baseURL (ej. http://hydra:4445).
// Si timeout es 0 se usan 10s.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// GetLoginRequest trae el snapshot de un login challenge pendiente.
func (c *Client) GetLoginRequest(ctx context.Context, challenge string) (*LoginRequest, error) {
	var out LoginRequest
	if err := c.do(ctx, "get_login_request", http.MethodGet, FlowLogin, "", challenge, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AcceptLoginRequest confirma la autenticación del subject.
func (c *Client) AcceptLoginRequest(ctx context.Context, challenge string, body AcceptLogin) (*RedirectResult, error) {
	var out RedirectResult
	if err := c.do(ctx, "accept_login_request", http.MethodPut, FlowLogin, "accept", challenge, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RejectLoginRequest rechaza el login challenge.
func (c *Client) RejectLoginRequest(ctx context.Context, challenge string, body RejectRequest) (*RedirectResult, error) {
	var out RedirectResult
	if err := c.do(ctx, "reject_login_request", http.MethodPut, FlowLogin, "reject", challenge, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetConsentRequest trae el snapshot de un consent challenge pendiente.
func (c *Client) GetConsentRequest(ctx context.Context, challenge string) (*ConsentRequest, error) {
	var out ConsentRequest
	if err := c.do(ctx, "get_consent_request", http.MethodGet, FlowConsent, "", challenge, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AcceptConsentRequest otorga scopes/audiences y entrega la session.
func (c *Client) AcceptConsentRequest(ctx context.Context, challenge string, body AcceptConsent) (*RedirectResult, error) {
	var out RedirectResult
	if err := c.do(ctx, "accept_consent_request", http.MethodPut, FlowConsent, "accept", challenge, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RejectConsentRequest rechaza el consent challenge.
func (c *Client) RejectConsentRequest(ctx context.Context, challenge string, body RejectRequest) (*RedirectResult, error) {
	var out RedirectResult
	if err := c.do(ctx, "reject_consent_request", http.MethodPut, FlowConsent, "reject", challenge, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do arma la URL del admin API, ejecuta el round-trip y decodifica.
// Invariante: challenge no vacío antes de tocar la red (un challenge ausente
// es error del cliente, no del provider, y no cuenta como llamada).
func (c *Client) do(ctx context.Context, op, method string, kind FlowKind, verb, challenge string, in, out any) error {
	if strings.TrimSpace(challenge) == "" {
		return ErrMissingChallenge
	}
	start := time.Now()
	err := c.roundTrip(ctx, op, method, kind, verb, challenge, in, out)
	metrics.ObserveProviderCall(op, time.Since(start), err)
	return err
}

func (c *Client) roundTrip(ctx context.Context, op, method string, kind FlowKind, verb, challenge string, in, out any) error {
	// /oauth2/auth/requests/{login|consent}[/accept|/reject]?{kind}_challenge=...
	p := "/oauth2/auth/requests/" + string(kind)
	if verb != "" {
		p += "/" + verb
	}
	q := url.Values{}
	q.Set(string(kind)+"_challenge", challenge)
	u := c.baseURL + p + "?" + q.Encode()

	var rd io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return &ProviderError{Op: op, Err: err}
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return &ProviderError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &ProviderError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrBody))
		return &ProviderError{Op: op, Status: resp.StatusCode, Body: string(b)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ProviderError{Op: op, Status: resp.StatusCode, Err: err}
	}
	return nil
}

package handlers

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/dropDatabas3/hellogrant/internal/flow"
	"github.com/dropDatabas3/hellogrant/internal/hydra"
)

// fakeProvider es el double del admin API para los tests de handlers.
// Graba cada payload que recibe para poder afirmar sobre lo que viajó.
type fakeProvider struct {
	loginReq   *hydra.LoginRequest
	consentReq *hydra.ConsentRequest
	err        error

	gotLoginAccepts   []hydra.AcceptLogin
	gotLoginRejects   []hydra.RejectRequest
	gotConsentAccepts []hydra.AcceptConsent
	gotConsentRejects []hydra.RejectRequest
	consentFetches    int
}

const fakeRedirect = "https://hydra.example/redirect"

func (f *fakeProvider) GetLoginRequest(_ context.Context, _ string) (*hydra.LoginRequest, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.loginReq, nil
}

func (f *fakeProvider) AcceptLoginRequest(_ context.Context, _ string, body hydra.AcceptLogin) (*hydra.RedirectResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.gotLoginAccepts = append(f.gotLoginAccepts, body)
	return &hydra.RedirectResult{RedirectTo: fakeRedirect}, nil
}

func (f *fakeProvider) RejectLoginRequest(_ context.Context, _ string, body hydra.RejectRequest) (*hydra.RedirectResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.gotLoginRejects = append(f.gotLoginRejects, body)
	return &hydra.RedirectResult{RedirectTo: fakeRedirect}, nil
}

func (f *fakeProvider) GetConsentRequest(_ context.Context, _ string) (*hydra.ConsentRequest, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.consentFetches++
	return f.consentReq, nil
}

func (f *fakeProvider) AcceptConsentRequest(_ context.Context, _ string, body hydra.AcceptConsent) (*hydra.RedirectResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.gotConsentAccepts = append(f.gotConsentAccepts, body)
	return &hydra.RedirectResult{RedirectTo: fakeRedirect}, nil
}

func (f *fakeProvider) RejectConsentRequest(_ context.Context, _ string, body hydra.RejectRequest) (*hydra.RedirectResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.gotConsentRejects = append(f.gotConsentRejects, body)
	return &hydra.RedirectResult{RedirectTo: fakeRedirect}, nil
}

// stubValidator responde un veredicto fijo.
type stubValidator struct {
	ok  bool
	err error
}

func (s stubValidator) Validate(_ context.Context, _, _ string) (bool, error) {
	return s.ok, s.err
}

// mapCache es un cache.Cache en memoria sin TTL, suficiente para tests.
type mapCache struct{ m map[string][]byte }

func newMapCache() *mapCache { return &mapCache{m: map[string][]byte{}} }

func (c *mapCache) Get(k string) ([]byte, bool) { v, ok := c.m[k]; return v, ok }
func (c *mapCache) Set(k string, v []byte, _ time.Duration) { c.m[k] = v }
func (c *mapCache) Delete(k string)                         { delete(c.m, k) }

func testOpts() FlowOptions {
	return FlowOptions{
		BaseURL: "http://localhost:3000",
		CSRF:    CSRFOptions{CookieName: "csrf_token", TTL: time.Minute},
		Policy:  flow.Policy{RememberFor: 3600},
	}
}

func formBody(vals url.Values) *strings.Reader {
	return strings.NewReader(vals.Encode())
}

package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/hellogrant/internal/app"
	"github.com/dropDatabas3/hellogrant/internal/hydra"
)

func TestConsentGet_SkipEchoesRequestedSets(t *testing.T) {
	fp := &fakeProvider{consentReq: &hydra.ConsentRequest{
		Challenge:                    "ch-2",
		Skip:                         true,
		Subject:                      "user@example.com",
		RequestedScope:               []string{"openid", "offline"},
		RequestedAccessTokenAudience: []string{"https://api.example.com"},
		Client:                       hydra.OAuthClient{ClientID: "web"},
	}}
	c := &app.Container{Provider: fp, Directory: stubValidator{}, Cache: newMapCache()}
	h := NewConsentGetHandler(c, testOpts())

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/consent?consent_challenge=ch-2", nil))

	require.Equal(t, http.StatusFound, rec.Code)
	require.Len(t, fp.gotConsentAccepts, 1)
	acc := fp.gotConsentAccepts[0]
	require.Equal(t, []string{"openid", "offline"}, acc.GrantScope)
	require.Equal(t, []string{"https://api.example.com"}, acc.GrantAccessTokenAudience)
	require.False(t, acc.Remember)
	require.Zero(t, acc.RememberFor)
}

func TestConsentGet_RendersScopeCheckboxes(t *testing.T) {
	fp := &fakeProvider{consentReq: &hydra.ConsentRequest{
		Challenge:      "ch-2",
		Subject:        "user@example.com",
		RequestedScope: []string{"openid", "offline"},
		Client:         hydra.OAuthClient{ClientID: "web", ClientName: "Web App"},
	}}
	c := &app.Container{Provider: fp, Directory: stubValidator{}, Cache: newMapCache()}
	h := NewConsentGetHandler(c, testOpts())

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/consent?consent_challenge=ch-2", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "Web App")
	require.Contains(t, body, `name="grant_scope" value="openid"`)
	require.Contains(t, body, `name="grant_scope" value="offline"`)
	require.Empty(t, fp.gotConsentAccepts)
}

func TestConsentGet_FallsBackToClientID(t *testing.T) {
	fp := &fakeProvider{consentReq: &hydra.ConsentRequest{
		Challenge: "ch-2",
		Client:    hydra.OAuthClient{ClientID: "raw-client-id"},
	}}
	c := &app.Container{Provider: fp, Directory: stubValidator{}, Cache: newMapCache()}
	h := NewConsentGetHandler(c, testOpts())

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/consent?consent_challenge=ch-2", nil))

	require.Contains(t, rec.Body.String(), "raw-client-id")
}

func postConsent(t *testing.T, h http.HandlerFunc, vals url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/consent", formBody(vals))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestConsentPost_Deny(t *testing.T) {
	fp := &fakeProvider{}
	c := &app.Container{Provider: fp, Directory: stubValidator{}, Cache: newMapCache()}
	h := NewConsentPostHandler(c, testOpts())

	rec := postConsent(t, h, url.Values{
		"challenge":   {"ch-2"},
		"grant_scope": {"openid"},
		"submit":      {"Deny access"},
	})

	require.Equal(t, http.StatusFound, rec.Code)
	require.Len(t, fp.gotConsentRejects, 1)
	require.Equal(t, "access_denied", fp.gotConsentRejects[0].Error)
	// deny no re-fetchea ni acepta
	require.Zero(t, fp.consentFetches)
	require.Empty(t, fp.gotConsentAccepts)
}

func TestConsentPost_AcceptRefetchesForAudience(t *testing.T) {
	fp := &fakeProvider{consentReq: &hydra.ConsentRequest{
		Challenge:                    "ch-2",
		RequestedScope:               []string{"openid", "offline"},
		RequestedAccessTokenAudience: []string{"https://api.example.com"},
	}}
	c := &app.Container{Provider: fp, Directory: stubValidator{}, Cache: newMapCache()}
	h := NewConsentPostHandler(c, testOpts())

	rec := postConsent(t, h, url.Values{
		"challenge":   {"ch-2"},
		"grant_scope": {"openid", "offline"},
		"remember":    {"1"},
		"submit":      {"Allow access"},
	})

	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, 1, fp.consentFetches)
	require.Len(t, fp.gotConsentAccepts, 1)
	acc := fp.gotConsentAccepts[0]
	require.Equal(t, []string{"openid", "offline"}, acc.GrantScope)
	// la audience sale del re-fetch, no del form
	require.Equal(t, []string{"https://api.example.com"}, acc.GrantAccessTokenAudience)
	require.NotNil(t, acc.Session.AccessToken)
	require.NotNil(t, acc.Session.IDToken)
	require.True(t, acc.Remember)
	require.Equal(t, 3600, acc.RememberFor)
}

func TestConsentPost_SingleCheckboxEqualsList(t *testing.T) {
	newHandler := func() (*fakeProvider, http.HandlerFunc) {
		fp := &fakeProvider{consentReq: &hydra.ConsentRequest{Challenge: "ch-2"}}
		c := &app.Container{Provider: fp, Directory: stubValidator{}, Cache: newMapCache()}
		return fp, NewConsentPostHandler(c, testOpts())
	}

	// un solo checkbox marcado
	fp1, h1 := newHandler()
	postConsent(t, h1, url.Values{
		"challenge":   {"ch-2"},
		"grant_scope": {"openid"},
		"submit":      {"Allow access"},
	})
	require.Len(t, fp1.gotConsentAccepts, 1)
	require.Equal(t, []string{"openid"}, fp1.gotConsentAccepts[0].GrantScope)
}

func TestConsentPost_GrantNothing(t *testing.T) {
	fp := &fakeProvider{consentReq: &hydra.ConsentRequest{Challenge: "ch-2"}}
	c := &app.Container{Provider: fp, Directory: stubValidator{}, Cache: newMapCache()}
	h := NewConsentPostHandler(c, testOpts())

	rec := postConsent(t, h, url.Values{
		"challenge": {"ch-2"},
		"submit":    {"Allow access"},
	})

	// grant vacío es un accept legítimo, no un error
	require.Equal(t, http.StatusFound, rec.Code)
	require.Len(t, fp.gotConsentAccepts, 1)
	require.NotNil(t, fp.gotConsentAccepts[0].GrantScope)
	require.Empty(t, fp.gotConsentAccepts[0].GrantScope)
}

func TestConsentPost_MissingChallenge(t *testing.T) {
	fp := &fakeProvider{}
	c := &app.Container{Provider: fp, Directory: stubValidator{}, Cache: newMapCache()}
	h := NewConsentPostHandler(c, testOpts())

	rec := postConsent(t, h, url.Values{"submit": {"Allow access"}})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Expected a consent challenge to be set but received none.")
	require.Zero(t, fp.consentFetches)
}

func TestConsentPost_ProviderDownOnAccept(t *testing.T) {
	fp := &fakeProvider{err: &hydra.ProviderError{Op: "get_consent_request", Status: 503}}
	c := &app.Container{Provider: fp, Directory: stubValidator{}, Cache: newMapCache()}
	h := NewConsentPostHandler(c, testOpts())

	rec := postConsent(t, h, url.Values{
		"challenge":   {"ch-2"},
		"grant_scope": {"openid"},
		"submit":      {"Allow access"},
	})

	require.Equal(t, http.StatusBadGateway, rec.Code)
	// sin redirect: el challenge queda sin resolver upstream
	require.Empty(t, rec.Header().Get("Location"))
}

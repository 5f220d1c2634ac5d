package middlewares

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

type mapCache struct{ m map[string][]byte }

func newMapCache() *mapCache { return &mapCache{m: map[string][]byte{}} }

func (c *mapCache) Get(k string) ([]byte, bool)             { v, ok := c.m[k]; return v, ok }
func (c *mapCache) Set(k string, v []byte, _ time.Duration) { c.m[k] = v }
func (c *mapCache) Delete(k string)                         { delete(c.m, k) }

func csrfPost(token, cookie string) *http.Request {
	vals := url.Values{"_csrf": {token}, "challenge": {"ch-1"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(vals.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "csrf_token", Value: cookie})
	}
	return req
}

func run(t *testing.T, store *mapCache, req *http.Request) (*httptest.ResponseRecorder, *bool) {
	t.Helper()
	reached := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	})
	h := WithFormCSRF(store, CSRFConfig{})(next)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec, &reached
}

func TestCSRF_GetPassesThrough(t *testing.T) {
	rec, reached := run(t, newMapCache(), httptest.NewRequest(http.MethodGet, "/login", nil))
	if !*reached || rec.Code != http.StatusOK {
		t.Fatalf("GET must bypass the check: reached=%v code=%d", *reached, rec.Code)
	}
}

func TestCSRF_ValidTokenOneShot(t *testing.T) {
	store := newMapCache()
	store.Set(CSRFKeyPrefix+"tok-1", []byte("1"), time.Minute)

	rec, reached := run(t, store, csrfPost("tok-1", "tok-1"))
	if !*reached || rec.Code != http.StatusOK {
		t.Fatalf("valid token rejected: code=%d", rec.Code)
	}
	// el registro se quema al primer uso
	if _, ok := store.Get(CSRFKeyPrefix + "tok-1"); ok {
		t.Fatal("token registration must be deleted after use")
	}

	// replay del mismo POST: rechazado
	rec, reached = run(t, store, csrfPost("tok-1", "tok-1"))
	if *reached || rec.Code != http.StatusForbidden {
		t.Fatalf("replayed token must be rejected: reached=%v code=%d", *reached, rec.Code)
	}
}

func TestCSRF_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		setup  func(*mapCache)
		req    func() *http.Request
	}{
		{"sin field", nil, func() *http.Request { return csrfPost("", "tok-1") }},
		{"sin cookie", nil, func() *http.Request { return csrfPost("tok-1", "") }},
		{"mismatch", nil, func() *http.Request { return csrfPost("tok-1", "tok-2") }},
		{"no registrado", nil, func() *http.Request { return csrfPost("tok-1", "tok-1") }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newMapCache()
			if tc.setup != nil {
				tc.setup(store)
			}
			rec, reached := run(t, store, tc.req())
			if *reached {
				t.Fatal("handler must not run on a failed check")
			}
			if rec.Code != http.StatusForbidden {
				t.Fatalf("code = %d, want 403", rec.Code)
			}
		})
	}
}

func TestCSRF_CustomOnReject(t *testing.T) {
	called := false
	h := WithFormCSRF(newMapCache(), CSRFConfig{
		OnReject: func(w http.ResponseWriter, r *http.Request) {
			called = true
			w.WriteHeader(http.StatusTeapot)
		},
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next must not run")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, csrfPost("tok-1", "tok-2"))
	if !called || rec.Code != http.StatusTeapot {
		t.Fatalf("custom OnReject not used: called=%v code=%d", called, rec.Code)
	}
}

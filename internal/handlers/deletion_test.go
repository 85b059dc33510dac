package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postDeletionForm(t *testing.T, env *testEnv, form url.Values, ip string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/account-deletion-request", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if ip != "" {
		req.Header.Set("X-Forwarded-For", ip)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestDeletionPageServed(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/account-deletion", "/account-deletion/"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, w.Body.String(), "Hesap Silme")
		assert.Contains(t, w.Body.String(), `name="website"`)
	}

	// Store review bots probe with HEAD.
	req := httptest.NewRequest(http.MethodHead, "/account-deletion", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeletionRequestStored(t *testing.T) {
	env := newTestEnv(t)

	w := postDeletionForm(t, env, url.Values{
		"email": {"Ayse@Example.com"},
		"note":  {"lütfen hesabımı silin"},
	}, "203.0.113.7")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "DEL-")
}

func TestDeletionHoneypotRejected(t *testing.T) {
	env := newTestEnv(t)

	w := postDeletionForm(t, env, url.Values{
		"email":   {"bot@example.com"},
		"website": {"https://spam.example.com"},
	}, "203.0.113.7")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotContains(t, w.Body.String(), "DEL-")
}

func TestDeletionInvalidEmail(t *testing.T) {
	env := newTestEnv(t)

	w := postDeletionForm(t, env, url.Values{"email": {"not-an-email"}}, "203.0.113.7")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Geçerli bir e-posta")
}

func TestDeletionRateLimitPerIP(t *testing.T) {
	env := newTestEnv(t)

	for i := 0; i < 5; i++ {
		w := postDeletionForm(t, env, url.Values{"email": {"a@b.com"}}, "203.0.113.7")
		require.Equal(t, http.StatusOK, w.Code, "request %d", i+1)
	}
	w := postDeletionForm(t, env, url.Values{"email": {"a@b.com"}}, "203.0.113.7")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// A different address is unaffected.
	w = postDeletionForm(t, env, url.Values{"email": {"a@b.com"}}, "198.51.100.9")
	assert.Equal(t, http.StatusOK, w.Code)
}

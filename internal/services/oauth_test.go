package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidRedirectURL(t *testing.T) {
	assert.True(t, ValidRedirectURL("exp://192.168.1.5:8081"))
	assert.True(t, ValidRedirectURL("caloriediet://auth"))
	assert.True(t, ValidRedirectURL("https://app.example.com/cb"))
	assert.True(t, ValidRedirectURL("HTTP://example.com"))

	assert.False(t, ValidRedirectURL("javascript://alert(1)"))
	assert.False(t, ValidRedirectURL("file:///etc/passwd"))
	assert.False(t, ValidRedirectURL("no-scheme-here"))
	assert.False(t, ValidRedirectURL(""))
}

func TestStateRoundTrip(t *testing.T) {
	state := EncodeState("exp://192.168.1.5:8081")
	url, ok := DecodeState(state)
	require.True(t, ok)
	assert.Equal(t, "exp://192.168.1.5:8081", url)
}

func TestStateNoncesDiffer(t *testing.T) {
	assert.NotEqual(t, EncodeState("exp://a"), EncodeState("exp://a"))
}

func TestDecodeStateRejectsGarbage(t *testing.T) {
	_, ok := DecodeState("%%%not-base64%%%")
	assert.False(t, ok)

	_, ok = DecodeState("")
	assert.False(t, ok)
}

func TestAuthorizeURL(t *testing.T) {
	g := NewGoogleOAuth("client-id", "secret", "https://api.example.com/auth/callback", "", "")
	u := g.AuthorizeURL("the-state")
	assert.Contains(t, u, "client_id=client-id")
	assert.Contains(t, u, "state=the-state")
	assert.Contains(t, u, "scope=openid+email+profile")
	assert.Contains(t, u, "prompt=select_account")
}

func TestExchangeHappyPath(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "the-code", r.PostFormValue("code"))
		assert.Equal(t, "authorization_code", r.PostFormValue("grant_type"))
		json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-123"})
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]string{
			"email":   "a@b.com",
			"name":    "Ayşe",
			"picture": "https://img.example.com/p.jpg",
			"sub":     "1234567890",
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	g := NewGoogleOAuth("client-id", "secret", "https://api.example.com/auth/callback",
		srv.URL+"/token", srv.URL+"/userinfo")

	data, err := g.Exchange(context.Background(), "the-code")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", data.Email)
	assert.Equal(t, "Ayşe", data.Name)
	assert.Equal(t, "1234567890", data.GoogleID)
}

func TestExchangeTokenFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	g := NewGoogleOAuth("client-id", "secret", "cb", srv.URL, srv.URL)
	_, err := g.Exchange(context.Background(), "bad-code")
	assert.ErrorIs(t, err, ErrOAuthExchange)
}

func TestExchangeMissingEmail(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-123"})
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"sub": "123"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	g := NewGoogleOAuth("client-id", "secret", "cb", srv.URL+"/token", srv.URL+"/userinfo")
	_, err := g.Exchange(context.Background(), "the-code")
	assert.ErrorIs(t, err, ErrOAuthExchange)
}

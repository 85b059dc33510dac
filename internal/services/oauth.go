package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Google endpoints, overridable for tests.
const (
	defaultGoogleAuthURL     = "https://accounts.google.com/o/oauth2/v2/auth"
	defaultGoogleTokenURL    = "https://oauth2.googleapis.com/token"
	defaultGoogleUserinfoURL = "https://openidconnect.googleapis.com/v1/userinfo"
)

// ErrOAuthExchange covers token-exchange and userinfo failures. There is no
// fallback for OAuth; it surfaces straight to the caller.
var ErrOAuthExchange = errors.New("oauth exchange failed")

// redirectSchemes the mobile app may ask to be sent back to.
var redirectSchemes = map[string]bool{
	"exp":         true,
	"caloriediet": true,
	"http":        true,
	"https":       true,
}

// GoogleOAuth drives the three-legged Google login: build the authorize
// redirect, exchange the callback code, fetch the profile.
type GoogleOAuth struct {
	clientID     string
	clientSecret string
	callbackURL  string
	authURL      string
	tokenURL     string
	userinfoURL  string
	http         *http.Client
}

// NewGoogleOAuth builds the client. tokenURL and userinfoURL may be empty to
// use the real Google endpoints.
func NewGoogleOAuth(clientID, clientSecret, callbackURL, tokenURL, userinfoURL string) *GoogleOAuth {
	if tokenURL == "" {
		tokenURL = defaultGoogleTokenURL
	}
	if userinfoURL == "" {
		userinfoURL = defaultGoogleUserinfoURL
	}
	return &GoogleOAuth{
		clientID:     clientID,
		clientSecret: clientSecret,
		callbackURL:  callbackURL,
		authURL:      defaultGoogleAuthURL,
		tokenURL:     tokenURL,
		userinfoURL:  userinfoURL,
		http:         &http.Client{Timeout: 30 * time.Second},
	}
}

// Configured reports whether both client credentials are present.
func (g *GoogleOAuth) Configured() bool {
	return g.clientID != "" && g.clientSecret != ""
}

// ValidRedirectURL checks the scheme against the allow list.
func ValidRedirectURL(redirectURL string) bool {
	scheme, _, ok := strings.Cut(redirectURL, "://")
	if !ok {
		return false
	}
	return redirectSchemes[strings.ToLower(scheme)]
}

// EncodeState packs the app redirect URL plus a nonce into the OAuth state
// parameter.
func EncodeState(redirectURL string) string {
	nonce := make([]byte, 16)
	rand.Read(nonce)
	payload := redirectURL + "|" + base64.RawURLEncoding.EncodeToString(nonce)
	return base64.URLEncoding.EncodeToString([]byte(payload))
}

// DecodeState recovers the redirect URL from a state parameter.
func DecodeState(state string) (string, bool) {
	raw, err := base64.URLEncoding.DecodeString(state)
	if err != nil {
		return "", false
	}
	redirectURL, _, ok := strings.Cut(string(raw), "|")
	if !ok || redirectURL == "" {
		return "", false
	}
	return redirectURL, true
}

// AuthorizeURL builds the Google authorize redirect for the given state.
func (g *GoogleOAuth) AuthorizeURL(state string) string {
	params := url.Values{
		"client_id":     {g.clientID},
		"redirect_uri":  {g.callbackURL},
		"response_type": {"code"},
		"scope":         {"openid email profile"},
		"state":         {state},
		"access_type":   {"offline"},
		"prompt":        {"select_account"},
	}
	return g.authURL + "?" + params.Encode()
}

// Exchange trades the callback code for tokens and fetches the user's
// Google profile.
func (g *GoogleOAuth) Exchange(ctx context.Context, code string) (*HandoffData, error) {
	form := url.Values{
		"code":          {code},
		"client_id":     {g.clientID},
		"client_secret": {g.clientSecret},
		"redirect_uri":  {g.callbackURL},
		"grant_type":    {"authorization_code"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: token request: %v", ErrOAuthExchange, err)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("%w: read token response: %v", ErrOAuthExchange, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: token exchange status %d", ErrOAuthExchange, resp.StatusCode)
	}
	var tokens struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &tokens); err != nil || tokens.AccessToken == "" {
		return nil, fmt.Errorf("%w: no access token", ErrOAuthExchange)
	}

	uiReq, err := http.NewRequestWithContext(ctx, http.MethodGet, g.userinfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build userinfo request: %w", err)
	}
	uiReq.Header.Set("Authorization", "Bearer "+tokens.AccessToken)

	uiResp, err := g.http.Do(uiReq)
	if err != nil {
		return nil, fmt.Errorf("%w: userinfo request: %v", ErrOAuthExchange, err)
	}
	uiBody, err := io.ReadAll(io.LimitReader(uiResp.Body, 1<<20))
	uiResp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("%w: read userinfo: %v", ErrOAuthExchange, err)
	}
	if uiResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: userinfo status %d", ErrOAuthExchange, uiResp.StatusCode)
	}
	var userinfo struct {
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
		Sub     string `json:"sub"`
	}
	if err := json.Unmarshal(uiBody, &userinfo); err != nil {
		return nil, fmt.Errorf("%w: parse userinfo: %v", ErrOAuthExchange, err)
	}
	if userinfo.Email == "" {
		return nil, fmt.Errorf("%w: userinfo missing email", ErrOAuthExchange)
	}
	return &HandoffData{
		Email:    userinfo.Email,
		Name:     userinfo.Name,
		Picture:  userinfo.Picture,
		GoogleID: userinfo.Sub,
	}, nil
}

package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/eystudio/caloriediet-backend/internal/models"
	"github.com/eystudio/caloriediet-backend/internal/services"
	"github.com/eystudio/caloriediet-backend/internal/store"
)

// OAuthRedirect validates the app's return URL and bounces the browser to
// Google's authorize page with the URL packed into state.
func (a *API) OAuthRedirect(w http.ResponseWriter, r *http.Request) {
	redirectURL := r.URL.Query().Get("redirect_url")
	if !services.ValidRedirectURL(redirectURL) {
		respondError(w, http.StatusBadRequest, "Invalid redirect URL scheme. Must be exp://, caloriediet://, http://, or https://")
		return
	}
	if !a.OAuth.Configured() {
		respondError(w, http.StatusInternalServerError, "Google OAuth not fully configured")
		return
	}
	state := services.EncodeState(redirectURL)
	http.Redirect(w, r, a.OAuth.AuthorizeURL(state), http.StatusFound)
}

// OAuthCallback exchanges the Google code, parks the profile in the handoff
// store and sends the browser back into the app with the handoff id in the
// URL fragment, which keeps it out of access logs.
func (a *API) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if errMsg := q.Get("error"); errMsg != "" {
		a.Log.Warn("oauth error from provider", zap.String("error", errMsg))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, "<html><body><h1>Login Error</h1><p>%s</p></body></html>", errMsg)
		return
	}
	code, state := q.Get("code"), q.Get("state")
	if code == "" || state == "" {
		respondError(w, http.StatusBadRequest, "Missing code or state parameter")
		return
	}
	redirectURL, ok := services.DecodeState(state)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid state parameter")
		return
	}
	if !a.OAuth.Configured() {
		respondError(w, http.StatusInternalServerError, "Google OAuth not fully configured")
		return
	}

	profile, err := a.OAuth.Exchange(r.Context(), code)
	if err != nil {
		a.Log.Error("oauth exchange failed", zap.Error(err))
		respondError(w, http.StatusBadRequest, "Failed to complete OAuth flow")
		return
	}
	a.Log.Info("google oauth successful", zap.String("email", profile.Email))

	handoffID := a.Handoff.Put(*profile)
	http.Redirect(w, r, redirectURL+"#session_id="+handoffID, http.StatusFound)
}

// ExchangeSession trades a one-time handoff id for a durable session,
// creating the Google-backed user on first login. The id arrives in the
// X-Session-ID header or the session_id query parameter.
func (a *API) ExchangeSession(w http.ResponseWriter, r *http.Request) {
	handoffID := r.Header.Get("X-Session-ID")
	if handoffID == "" {
		handoffID = r.URL.Query().Get("session_id")
	}
	if handoffID == "" {
		respondError(w, http.StatusBadRequest, "Missing session_id")
		return
	}
	profile, ok := a.Handoff.Claim(handoffID)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Invalid or expired session_id")
		return
	}
	if profile.Email == "" {
		respondError(w, http.StatusBadRequest, "No email in OAuth data")
		return
	}

	userID := services.GoogleUserID(profile.Email)
	user, err := a.Store.Users.GetByID(r.Context(), userID)
	if errors.Is(err, store.ErrNotFound) {
		user = &models.User{
			UserID:           userID,
			Email:            profile.Email,
			Name:             profile.Name,
			Picture:          profile.Picture,
			AuthType:         models.AuthTypeGoogle,
			GoogleID:         profile.GoogleID,
			ActivityLevel:    "moderate",
			Goal:             "maintain",
			DailyCalorieGoal: 2000,
			CreatedAt:        models.NowUTC(),
		}
		user.Normalize()
		if err := a.Store.Users.Insert(r.Context(), user); err != nil {
			a.respondServiceError(w, err)
			return
		}
	} else if err != nil {
		a.respondServiceError(w, err)
		return
	} else {
		// Google is authoritative for the display name and avatar.
		fields := map[string]any{}
		if profile.Name != "" && profile.Name != user.Name {
			user.Name = profile.Name
			fields["name"] = profile.Name
		}
		if profile.Picture != "" && profile.Picture != user.Picture {
			user.Picture = profile.Picture
			fields["picture"] = profile.Picture
		}
		if len(fields) > 0 {
			if err := a.Store.Users.Update(r.Context(), user.UserID, fields); err != nil {
				a.respondServiceError(w, err)
				return
			}
		}
	}
	a.issueSession(w, r, user)
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/eystudio/caloriediet-backend/internal/config"
	"github.com/eystudio/caloriediet-backend/internal/middleware"
	"github.com/eystudio/caloriediet-backend/internal/services"
	"github.com/eystudio/caloriediet-backend/internal/store"
)

// API carries every dependency the HTTP layer needs. Handlers hang off it
// so tests can build one against the in-memory store and fake upstreams.
type API struct {
	Cfg        *config.Config
	Store      *store.Store
	Lifecycle  *services.Lifecycle
	OAuth      *services.GoogleOAuth
	Handoff    *services.HandoffStore
	Vision     *services.Vision
	DietGen    *services.DietGenerator
	Content    *services.ContentService
	Cloudinary *services.CloudinaryService
	FormLimit  *middleware.FormLimiter
	Log        *zap.Logger
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, map[string]string{"detail": detail})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// respondServiceError maps the error taxonomy onto stable status codes.
func (a *API) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrSessionNotFound),
		errors.Is(err, services.ErrSessionExpired),
		errors.Is(err, services.ErrUserMissing):
		respondError(w, http.StatusUnauthorized, "Not authenticated")
	case errors.Is(err, store.ErrNotFound), errors.Is(err, services.ErrContentNotFound):
		respondError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, services.ErrNotConfigured):
		respondError(w, http.StatusInternalServerError, "Service not configured")
	case errors.Is(err, services.ErrRateLimited),
		errors.Is(err, services.ErrServiceUnavailable),
		errors.Is(err, services.ErrParseFailure),
		errors.Is(err, services.ErrOAuthExchange):
		respondError(w, http.StatusServiceUnavailable, "Upstream service unavailable")
	default:
		a.Log.Error("internal error", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// requestIsSecure reports whether the client side of the hop is https,
// looking through the platform proxy's header.
func requestIsSecure(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	return strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}

// setSessionCookie writes the session cookie. Secure and SameSite follow the
// request scheme: https gets Secure + SameSite=None so the mobile web view
// can send it cross-site, plain http falls back to Lax.
func setSessionCookie(w http.ResponseWriter, r *http.Request, token string, maxAgeSeconds int) {
	c := &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAgeSeconds,
		HttpOnly: true,
	}
	if requestIsSecure(r) {
		c.Secure = true
		c.SameSite = http.SameSiteNoneMode
	} else {
		c.SameSite = http.SameSiteLaxMode
	}
	http.SetCookie(w, c)
}

func clearSessionCookie(w http.ResponseWriter, r *http.Request) {
	setSessionCookie(w, r, "", -1)
}

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/eystudio/caloriediet-backend/internal/models"
	"github.com/eystudio/caloriediet-backend/internal/services"
)

type contextKey string

const (
	userKey    contextKey = "current_user"
	sessionKey contextKey = "current_session"
)

// SessionCookieName is where the mobile web view keeps the token; native
// clients send it as a bearer header instead.
const SessionCookieName = "session_token"

// TokenFromRequest extracts the session token from the Authorization header
// or the session cookie. Header wins.
func TokenFromRequest(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	if c, err := r.Cookie(SessionCookieName); err == nil {
		return c.Value
	}
	return ""
}

// RequireAuth resolves the session and injects the user into the request
// context, rejecting the request with 401 when resolution fails. Resolution
// itself stamps last_active and auto-cancels pending deletion.
func RequireAuth(lifecycle *services.Lifecycle) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, sess, err := lifecycle.ResolveSession(r.Context(), TokenFromRequest(r))
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"detail":"Not authenticated"}`))
				return
			}
			ctx := context.WithValue(r.Context(), userKey, user)
			ctx = context.WithValue(ctx, sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFrom returns the authenticated user placed by RequireAuth.
func UserFrom(ctx context.Context) *models.User {
	u, _ := ctx.Value(userKey).(*models.User)
	return u
}

// SessionFrom returns the resolved session placed by RequireAuth.
func SessionFrom(ctx context.Context) *models.Session {
	s, _ := ctx.Value(sessionKey).(*models.Session)
	return s
}

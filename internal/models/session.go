package models

import "time"

// Session lifetimes. Guests get the short one.
const (
	SessionTTL      = 30 * 24 * time.Hour
	GuestSessionTTL = 7 * 24 * time.Hour
)

// Session is a server-side session record keyed by its opaque token.
type Session struct {
	Token     string    `bson:"session_token" json:"session_token"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Email     string    `bson:"email,omitempty" json:"email,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
}

// Expired reports whether the session is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

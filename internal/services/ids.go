package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

func shortUUID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// NewUserID mints an id for an email-registered account.
func NewUserID() string { return "user_" + shortUUID() }

// NewGuestID mints an id for a disposable guest account.
func NewGuestID() string { return "guest_" + shortUUID() }

// GoogleUserID derives the stable id for a Google account from its email, so
// repeated OAuth logins land on the same document.
func GoogleUserID(email string) string {
	sum := sha256.Sum256([]byte(email))
	return "google_" + hex.EncodeToString(sum[:])[:12]
}

// NewSessionToken mints an opaque session token.
func NewSessionToken() string {
	buf := make([]byte, 16)
	rand.Read(buf)
	return "sess_" + hex.EncodeToString(buf)
}

// NewMealID, NewEntryID etc. mint record ids with a type prefix.
func NewMealID() string    { return "meal_" + shortUUID() }
func NewEntryID() string   { return "entry_" + shortUUID() }
func NewVitaminID() string { return "vit_" + shortUUID() }
func NewDietID() string    { return "diet_" + shortUUID() }
func NewActiveID() string  { return "prog_" + shortUUID() }

// NewDeletionRequestID mints the public id shown to a compliance-form
// submitter, e.g. DEL-3F9A01BC.
func NewDeletionRequestID() string {
	buf := make([]byte, 4)
	rand.Read(buf)
	return "DEL-" + strings.ToUpper(hex.EncodeToString(buf))
}

package services

import (
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"
)

// HandoffTTL is how long an OAuth handoff id stays claimable after the
// browser redirect back into the app.
const HandoffTTL = 5 * time.Minute

// HandoffData is the Google profile carried between the OAuth callback and
// the app's session exchange.
type HandoffData struct {
	Email    string
	Name     string
	Picture  string
	GoogleID string
}

// HandoffStore is a short-TTL one-time-use key-value store for OAuth
// handoffs. It is owned by whoever constructs it and passed down
// explicitly; entries are volatile and lost on restart by design. Expired
// entries are swept on every access rather than by a background job.
type HandoffStore struct {
	mu      sync.Mutex
	entries map[string]handoffEntry
	now     func() time.Time
}

type handoffEntry struct {
	data      HandoffData
	expiresAt time.Time
}

// NewHandoffStore builds an empty store.
func NewHandoffStore() *HandoffStore {
	return &HandoffStore{
		entries: map[string]handoffEntry{},
		now:     time.Now,
	}
}

// SetClock overrides the time source.
func (h *HandoffStore) SetClock(now func() time.Time) { h.now = now }

// Put stores the profile and returns the handoff id to embed in the
// redirect fragment.
func (h *HandoffStore) Put(data HandoffData) string {
	buf := make([]byte, 32)
	rand.Read(buf)
	id := "oauth_" + base64.RawURLEncoding.EncodeToString(buf)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.sweepLocked()
	h.entries[id] = handoffEntry{data: data, expiresAt: h.now().Add(HandoffTTL)}
	return id
}

// Claim consumes a handoff id. Each id yields its data at most once; an
// expired or unknown id yields nothing.
func (h *HandoffStore) Claim(id string) (HandoffData, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sweepLocked()
	entry, ok := h.entries[id]
	if !ok {
		return HandoffData{}, false
	}
	delete(h.entries, id)
	if h.now().After(entry.expiresAt) {
		return HandoffData{}, false
	}
	return entry.data, true
}

func (h *HandoffStore) sweepLocked() {
	now := h.now()
	for id, entry := range h.entries {
		if now.After(entry.expiresAt) {
			delete(h.entries, id)
		}
	}
}

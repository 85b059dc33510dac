package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandoffPutAndClaim(t *testing.T) {
	h := NewHandoffStore()
	data := HandoffData{Email: "a@b.com", Name: "Ayşe", GoogleID: "google_abc"}

	id := h.Put(data)
	assert.True(t, strings.HasPrefix(id, "oauth_"))

	got, ok := h.Claim(id)
	require.True(t, ok)
	assert.Equal(t, data, got)
}

func TestHandoffClaimIsOneTime(t *testing.T) {
	h := NewHandoffStore()
	id := h.Put(HandoffData{Email: "a@b.com"})

	_, ok := h.Claim(id)
	require.True(t, ok)
	_, ok = h.Claim(id)
	assert.False(t, ok)
}

func TestHandoffUnknownID(t *testing.T) {
	h := NewHandoffStore()
	_, ok := h.Claim("oauth_nope")
	assert.False(t, ok)
}

func TestHandoffExpires(t *testing.T) {
	h := NewHandoffStore()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	h.SetClock(func() time.Time { return now })

	id := h.Put(HandoffData{Email: "a@b.com"})
	now = now.Add(HandoffTTL + time.Second)

	_, ok := h.Claim(id)
	assert.False(t, ok)
}

func TestHandoffIDsAreUnique(t *testing.T) {
	h := NewHandoffStore()
	a := h.Put(HandoffData{})
	b := h.Put(HandoffData{})
	assert.NotEqual(t, a, b)
}

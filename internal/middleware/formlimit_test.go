package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormLimiterAllowsUpToMax(t *testing.T) {
	l := NewFormLimiter(3, time.Hour)
	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("1.2.3.4"), "hit %d should pass", i+1)
	}
	assert.False(t, l.Allow("1.2.3.4"))
}

func TestFormLimiterKeysAreIndependent(t *testing.T) {
	l := NewFormLimiter(1, time.Hour)
	assert.True(t, l.Allow("1.2.3.4"))
	assert.False(t, l.Allow("1.2.3.4"))
	assert.True(t, l.Allow("5.6.7.8"))
}

func TestFormLimiterWindowSlides(t *testing.T) {
	l := NewFormLimiter(2, time.Hour)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	l.SetClock(func() time.Time { return now })

	assert.True(t, l.Allow("ip"))
	assert.True(t, l.Allow("ip"))
	assert.False(t, l.Allow("ip"))

	now = now.Add(61 * time.Minute)
	assert.True(t, l.Allow("ip"))
}

package middleware

import (
	"sync"
	"time"
)

// FormLimiter is a per-key fixed-window counter for low-volume public forms.
// It is owned by whoever constructs it and passed down explicitly; state is
// volatile and lost on restart by design. Stale windows are swept on access.
type FormLimiter struct {
	mu      sync.Mutex
	max     int
	window  time.Duration
	entries map[string][]time.Time
	now     func() time.Time
}

// NewFormLimiter allows max hits per key per window.
func NewFormLimiter(max int, window time.Duration) *FormLimiter {
	return &FormLimiter{
		max:     max,
		window:  window,
		entries: map[string][]time.Time{},
		now:     time.Now,
	}
}

// SetClock overrides the time source.
func (l *FormLimiter) SetClock(now func() time.Time) { l.now = now }

// Allow records a hit for key and reports whether it is within the limit.
func (l *FormLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	cutoff := now.Add(-l.window)

	kept := l.entries[key][:0]
	for _, t := range l.entries[key] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	if len(kept) >= l.max {
		l.entries[key] = kept
		return false
	}
	l.entries[key] = append(kept, now)

	for k, hits := range l.entries {
		if k == key {
			continue
		}
		live := hits[:0]
		for _, t := range hits {
			if t.After(cutoff) {
				live = append(live, t)
			}
		}
		if len(live) == 0 {
			delete(l.entries, k)
		} else {
			l.entries[k] = live
		}
	}
	return true
}

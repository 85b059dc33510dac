package models

import (
	"strings"
	"time"
)

// DateLayout is the calendar-day format used to scope daily records.
const DateLayout = "2006-01-02"

// NowUTC is the single clock for the reference day. Records written "today"
// use the UTC calendar day regardless of the client's timezone.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// Today returns the current UTC calendar day as YYYY-MM-DD.
func Today() string {
	return NowUTC().Format(DateLayout)
}

// DayOf formats a timestamp as its UTC calendar day.
func DayOf(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// DayDelta returns the number of whole calendar days from a to b in UTC.
// Delta 0 means same day, 1 means b is the day after a.
func DayDelta(a, b time.Time) int {
	au := time.Date(a.UTC().Year(), a.UTC().Month(), a.UTC().Day(), 0, 0, 0, 0, time.UTC)
	bu := time.Date(b.UTC().Year(), b.UTC().Month(), b.UTC().Day(), 0, 0, 0, 0, time.UTC)
	return int(bu.Sub(au).Hours() / 24)
}

// ParseTimestamp parses the timestamp strings that have accumulated in the
// stored documents across deployed versions: RFC3339 with or without
// fractional seconds, with a trailing Z, or naive (assumed UTC).
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05.999999",
		"2006-01-02T15:04:05",
		DateLayout,
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

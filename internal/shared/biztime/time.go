// Package biztime provides business timezone helpers.
// Storage and transport use UTC; the business timezone is only used to render
// dates for people and to compute day boundaries.
package biztime

import (
	"fmt"
	"sync"
	"time"
)

const (
	// DefaultTimezone is the default business timezone.
	DefaultTimezone = "America/Sao_Paulo"

	DateLayout     = "02/01/2006"
	TimeLayout     = "15:04:05"
	DateTimeLayout = "02/01/2006 15:04"
	ISODateLayout  = "2006-01-02"
)

var (
	mu          sync.RWMutex
	bizLocation *time.Location
	nowFunc     = time.Now
)

// Init sets the business timezone. Empty tz selects DefaultTimezone.
func Init(tz string) error {
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("failed to load timezone %q: %w", tz, err)
	}
	mu.Lock()
	bizLocation = loc
	mu.Unlock()
	return nil
}

// Location returns the business timezone, initializing the default one on first use.
func Location() *time.Location {
	mu.RLock()
	loc := bizLocation
	mu.RUnlock()
	if loc != nil {
		return loc
	}
	if err := Init(""); err != nil {
		// tzdata missing; fall back to the fixed BRT offset
		loc = time.FixedZone("BRT", -3*60*60)
		mu.Lock()
		bizLocation = loc
		mu.Unlock()
		return loc
	}
	return Location()
}

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return nowFunc().UTC()
}

// SetNowFunc overrides the clock. It returns a function restoring the previous clock.
func SetNowFunc(fn func() time.Time) func() {
	prev := nowFunc
	nowFunc = fn
	return func() { nowFunc = prev }
}

// StartOfDayUTC returns business-timezone midnight of t, in UTC.
func StartOfDayUTC(t time.Time) time.Time {
	b := t.In(Location())
	return time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, Location()).UTC()
}

// EndOfDayUTC returns the last nanosecond of t's business day, in UTC.
func EndOfDayUTC(t time.Time) time.Time {
	b := t.In(Location())
	return time.Date(b.Year(), b.Month(), b.Day(), 23, 59, 59, 999999999, Location()).UTC()
}

// ParseDate parses YYYY-MM-DD as business-timezone midnight and returns it in UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(ISODateLayout, s, Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format %q: %w", s, err)
	}
	return t.UTC(), nil
}

// Format renders t in the business timezone.
func Format(t time.Time, layout string) string {
	return t.In(Location()).Format(layout)
}

// DayKey returns the business-timezone calendar day of t as YYYY-MM-DD.
func DayKey(t time.Time) string {
	return Format(t, ISODateLayout)
}

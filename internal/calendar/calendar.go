// Package calendar provides civil-date arithmetic in the user's local calendar.
//
// Day boundaries are the ones a person perceives ("today", "this week"), so
// every conversion from an instant takes an explicit *time.Location and no
// math is done in elapsed time.
package calendar

import (
	"fmt"
	"time"

	"github.com/mrz1836/cadence/internal/clock"
	"github.com/mrz1836/cadence/internal/constants"
	cerrors "github.com/mrz1836/cadence/internal/errors"
)

// Day is a calendar date without a time of day or location.
// The zero Day means "no date". Day is comparable and usable as a map key.
type Day struct {
	year  int
	month time.Month
	day   int
}

// New returns the Day for year, month and day, normalizing overflow
// the same way time.Date does (January 32 becomes February 1).
func New(year int, month time.Month, day int) Day {
	y, m, d := time.Date(year, month, day, 12, 0, 0, 0, time.UTC).Date()
	return Day{year: y, month: m, day: d}
}

// Of returns the calendar day the instant t falls on in loc.
// A nil loc means time.Local.
func Of(t time.Time, loc *time.Location) Day {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := t.In(loc).Date()
	return Day{year: y, month: m, day: d}
}

// Today returns the current calendar day according to c in loc.
func Today(c clock.Clock, loc *time.Location) Day {
	return Of(c.Now(), loc)
}

// Parse reads a yyyy-mm-dd date.
func Parse(s string) (Day, error) {
	t, err := time.Parse(constants.DateLayout, s)
	if err != nil {
		return Day{}, fmt.Errorf("%w: date %q must be yyyy-mm-dd", cerrors.ErrInvalidInput, s)
	}
	return Of(t, time.UTC), nil
}

// IsZero reports whether d is the zero Day.
func (d Day) IsZero() bool {
	return d == Day{}
}

// Date returns the components of d.
func (d Day) Date() (int, time.Month, int) {
	return d.year, d.month, d.day
}

// String formats d as yyyy-mm-dd, or "" for the zero Day.
func (d Day) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.year, d.month, d.day)
}

// AddDays returns d shifted by n calendar days.
func (d Day) AddDays(n int) Day {
	return New(d.year, d.month, d.day+n)
}

// Weekday returns the day of the week of d.
func (d Day) Weekday() time.Weekday {
	return d.noon().Weekday()
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or after other.
func (d Day) Compare(other Day) int {
	return d.noon().Compare(other.noon())
}

// Before reports whether d is strictly earlier than other.
func (d Day) Before(other Day) bool {
	return d.Compare(other) < 0
}

// After reports whether d is strictly later than other.
func (d Day) After(other Day) bool {
	return d.Compare(other) > 0
}

// Start returns local midnight of d in loc.
func (d Day) Start(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, loc)
}

// Contains reports whether the instant t falls on d in loc.
func (d Day) Contains(t time.Time, loc *time.Location) bool {
	return Of(t, loc) == d
}

// MarshalText implements encoding.TextMarshaler.
func (d Day) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Empty text yields the zero Day.
func (d *Day) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*d = Day{}
		return nil
	}
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// noon anchors d at UTC noon so weekday and ordering are DST-proof.
func (d Day) noon() time.Time {
	return time.Date(d.year, d.month, d.day, 12, 0, 0, 0, time.UTC)
}

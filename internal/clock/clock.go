// Package clock provides an abstraction for time operations to improve testability.
// Instead of calling time.Now() directly, code can use the Clock interface which
// can be replaced in tests to control completion timestamps and "today".
package clock

import "time"

// Clock is an interface for time operations.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the actual system time.
type RealClock struct{}

// Now returns the current time from the system clock.
func (RealClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns the same instant.
type FixedClock struct {
	Time time.Time
}

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time {
	return c.Time
}

// Ensure both clocks implement Clock.
var (
	_ Clock = RealClock{}
	_ Clock = FixedClock{}
)

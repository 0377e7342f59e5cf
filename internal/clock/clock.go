// Package clock provides an abstraction for time operations to improve testability.
// Code that stamps items (received/implemented timestamps, updatedAt) takes a Clock
// instead of calling time.Now() directly.
package clock

import "time"

// Clock is an interface for time operations.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the actual system time, in UTC.
type RealClock struct{}

// Now returns the current time from the system clock.
func (RealClock) Now() time.Time {
	return time.Now().UTC()
}

// Fixed is a Clock that always returns the same instant.
type Fixed struct {
	T time.Time
}

// Now returns the fixed time.
func (f Fixed) Now() time.Time {
	return f.T
}

// Ensure implementations satisfy Clock.
var (
	_ Clock = RealClock{}
	_ Clock = Fixed{}
)

package clock

import "time"

// Clock provides time operations that can be mocked for testing
type Clock interface {
	Now() time.Time

	// AfterFunc schedules f to run in its own goroutine after d has elapsed,
	// returning a handle that can stop the call before it fires.
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a handle to a deferred call scheduled via AfterFunc
type Timer interface {
	// Stop prevents the call from firing. It reports whether the call was
	// stopped before it ran.
	Stop() bool
}

// RealClock implements Clock using the system clock
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current time
func (c *RealClock) Now() time.Time {
	return time.Now()
}

// AfterFunc schedules f via time.AfterFunc
func (c *RealClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

var _ Clock = (*RealClock)(nil)
var _ Timer = (*time.Timer)(nil)

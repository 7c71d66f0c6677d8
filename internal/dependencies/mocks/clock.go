package mocks

import (
	"sync"
	"time"

	"github.com/matiasolis/impostor-party/internal/dependencies/clock"
)

// MockClock is a mock implementation of Clock for testing. Time only moves
// when advanced explicitly; scheduled functions fire synchronously from
// Advance or FireTimers.
type MockClock struct {
	mu          sync.Mutex
	CurrentTime time.Time
	timers      []*mockTimer
}

type mockTimer struct {
	clock   *MockClock
	fireAt  time.Time
	f       func()
	stopped bool
	fired   bool
}

// Ensure MockClock implements Clock
var _ clock.Clock = (*MockClock)(nil)

// NewMockClock creates a MockClock set to the given time
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{CurrentTime: t}
}

// Now returns the mocked current time
func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.CurrentTime
}

// AfterFunc registers f to fire once the clock has been advanced past d
func (c *MockClock) AfterFunc(d time.Duration, f func()) clock.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &mockTimer{clock: c, fireAt: c.CurrentTime.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

// Stop prevents the timer from firing
func (t *mockTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// Advance moves the clock forward by the given duration and fires any timers
// whose deadline has been reached, in scheduling order
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.CurrentTime = c.CurrentTime.Add(d)
	due := c.dueTimersLocked()
	c.mu.Unlock()

	for _, t := range due {
		t.f()
	}
}

// Set sets the clock to the given time without firing timers
func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.CurrentTime = t
}

// FireTimers fires all pending timers regardless of deadline
func (c *MockClock) FireTimers() {
	c.mu.Lock()
	c.CurrentTime = c.CurrentTime.Add(100 * time.Hour)
	due := c.dueTimersLocked()
	c.mu.Unlock()

	for _, t := range due {
		t.f()
	}
}

// PendingTimers returns the number of timers that have not fired or stopped
func (c *MockClock) PendingTimers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	count := 0
	for _, t := range c.timers {
		if !t.fired && !t.stopped {
			count++
		}
	}
	return count
}

func (c *MockClock) dueTimersLocked() []*mockTimer {
	var due []*mockTimer
	for _, t := range c.timers {
		if !t.fired && !t.stopped && !t.fireAt.After(c.CurrentTime) {
			t.fired = true
			due = append(due, t)
		}
	}
	return due
}

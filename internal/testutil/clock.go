package testutil

import (
	"sync"
	"time"
)

// DefaultTime is the instant a new FixedClock starts at.
var DefaultTime = time.Date(2026, time.January, 28, 9, 30, 0, 0, time.UTC)

// FixedClock is a wall clock that only moves when told to.
//
// Pass clock.Now wherever a func() time.Time is accepted.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixedClock creates a clock reading t. A zero t means DefaultTime.
func NewFixedClock(t time.Time) *FixedClock {
	if t.IsZero() {
		t = DefaultTime
	}
	return &FixedClock{now: t}
}

// Now returns the current reading.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// AdvanceDays moves the clock forward by n calendar days.
func (c *FixedClock) AdvanceDays(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.AddDate(0, 0, n)
}

// Set moves the clock to t.
func (c *FixedClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

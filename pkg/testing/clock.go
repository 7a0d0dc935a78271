package testing

import "time"

// FakeClock is a manually advanced [sched.Clock]. The zero value is not
// usable; construct with NewFakeClock.
type FakeClock struct {
	now time.Time
}

// NewFakeClock starts at a fixed, arbitrary instant so test output is
// reproducible.
func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Now returns the current fake instant.
func (c *FakeClock) Now() time.Time {
	return c.now
}

// Advance moves the clock forward. Negative durations are ignored;
// time never runs backwards.
func (c *FakeClock) Advance(d time.Duration) {
	if d > 0 {
		c.now = c.now.Add(d)
	}
}

// Set jumps the clock to a specific instant.
func (c *FakeClock) Set(t time.Time) {
	c.now = t
}

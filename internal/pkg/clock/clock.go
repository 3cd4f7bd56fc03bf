// Package clock abstracts the wall clock so code that stamps ledger
// rows can be tested against a pinned instant.
package clock

import "time"

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// NewRealClock returns a Clock backed by time.Now.
func NewRealClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

// MockClock is a Clock frozen at a chosen instant. It only moves when a
// test tells it to.
type MockClock struct {
	now time.Time
}

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{now: t}
}

func (c *MockClock) Now() time.Time {
	return c.now
}

// Set pins the clock to an absolute instant.
func (c *MockClock) Set(t time.Time) {
	c.now = t
}

// Add shifts the clock by d, which may be negative.
func (c *MockClock) Add(d time.Duration) {
	c.now = c.now.Add(d)
}

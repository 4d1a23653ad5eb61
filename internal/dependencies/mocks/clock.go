package mocks

import (
	"time"

	"github.com/mcoot/rpgroster/internal/dependencies/clock"
)

// MockClock is a Clock fixed at a settable instant
type MockClock struct {
	now time.Time
}

var _ clock.Clock = (*MockClock)(nil)

// NewMockClock creates a MockClock reading t
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{now: t}
}

func (c *MockClock) Now() time.Time {
	return c.now
}

// Set moves the clock to t
func (c *MockClock) Set(t time.Time) {
	c.now = t
}

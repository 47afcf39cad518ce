// Package clock provides the frame clock and the one-shot timers that run on it.
package clock

import (
	"sync"
	"time"
)

// Clock reports elapsed time since some fixed origin.
type Clock interface {
	Now() time.Duration
}

// Real is a monotonic wall clock starting at creation.
type Real struct {
	start time.Time
}

// NewReal creates a clock starting at zero now.
func NewReal() *Real {
	return &Real{start: time.Now()}
}

// Now returns the time elapsed since the clock was created.
func (c *Real) Now() time.Duration {
	return time.Since(c.start)
}

// Manual is a clock advanced explicitly, for tests and offline rendering.
type Manual struct {
	mu  sync.Mutex
	now time.Duration
}

// NewManual creates a manual clock at zero.
func NewManual() *Manual {
	return &Manual{}
}

// Now returns the current manual time.
func (c *Manual) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *Manual) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	c.mu.Unlock()
}

// Seconds converts a duration to float32 seconds, the unit animation math uses.
func Seconds(d time.Duration) float32 {
	return float32(d.Seconds())
}

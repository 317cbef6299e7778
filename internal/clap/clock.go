package clap

import (
	"sync"
	"time"
)

// Clock supplies monotonic timestamps measured from an arbitrary origin.
type Clock interface {
	Now() time.Duration
}

// monotonicClock measures time since its creation. time.Since uses the
// monotonic reading, so wall-clock jumps do not affect it.
type monotonicClock struct {
	origin time.Time
}

// NewMonotonicClock returns a Clock starting at zero now.
func NewMonotonicClock() Clock {
	return monotonicClock{origin: time.Now()}
}

func (c monotonicClock) Now() time.Duration {
	return time.Since(c.origin)
}

// ManualClock is a Clock moved explicitly by its owner. It drives tests
// and offline replay, where time advances with the audio playhead.
type ManualClock struct {
	mu  sync.Mutex
	now time.Duration
}

// Now implements Clock.
func (c *ManualClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += d
}

// Set moves the clock to t.
func (c *ManualClock) Set(t time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

package ratelimitport

import (
	"context"
	"sync"
	"time"

	"gitlab.com/hirecode-2025.net/internal/core/ports/secondary"
)

// sweepThreshold is the number of tracked clients above which expired windows are purged
const sweepThreshold = 10000

var _ secondary.RequestCounter = (*RequestCounter)(nil)

type window struct {
	count   int64
	resetAt time.Time
}

// RequestCounter implements the RequestCounter interface in process memory.
// Expired windows are replaced on the next request of the same client.
type RequestCounter struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
}

// NewRequestCounter creates a new in-memory request counter
func NewRequestCounter() *RequestCounter {
	return NewRequestCounterWithClock(time.Now)
}

// NewRequestCounterWithClock creates an in-memory request counter reading time from now
func NewRequestCounterWithClock(now func() time.Time) *RequestCounter {
	return &RequestCounter{
		windows: make(map[string]*window),
		now:     now,
	}
}

// Increment bumps the counter of client, opening a new window when the last one expired
func (c *RequestCounter) Increment(_ context.Context, client string, d time.Duration) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	w, ok := c.windows[client]
	if !ok || now.After(w.resetAt) {
		if !ok && len(c.windows) >= sweepThreshold {
			c.sweep(now)
		}
		c.windows[client] = &window{count: 1, resetAt: now.Add(d)}
		return 1, nil
	}

	w.count++
	return w.count, nil
}

func (c *RequestCounter) sweep(now time.Time) {
	for client, w := range c.windows {
		if now.After(w.resetAt) {
			delete(c.windows, client)
		}
	}
}

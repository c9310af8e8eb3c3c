package secondary

import (
	"context"
	"time"
)

// RequestCounter counts requests per client inside fixed windows
type RequestCounter interface {
	// Increment bumps the counter of client in its current window and returns the new count.
	// A window starts with the first request after the previous one expired.
	Increment(ctx context.Context, client string, window time.Duration) (int64, error)
}

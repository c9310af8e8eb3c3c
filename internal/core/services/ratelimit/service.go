package ratelimit

import "context"

// ILimiter gates requests per client identity
type ILimiter interface {
	// Allow reports whether client may make one more request in its current window
	Allow(ctx context.Context, client string) bool
}

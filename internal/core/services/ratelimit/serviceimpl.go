package ratelimit

import (
	"context"
	"time"

	"gitlab.com/hirecode-2025.net/internal/config"
	"gitlab.com/hirecode-2025.net/internal/core/ports/primary"
	"gitlab.com/hirecode-2025.net/internal/core/ports/secondary"
)

var _ ILimiter = (*Limiter)(nil)

// Limiter allows at most limit requests per client per fixed window
type Limiter struct {
	counter secondary.RequestCounter
	limit   int64
	window  time.Duration
	scope   string
	logger  primary.Logger
}

type LimiterOption func(*Limiter)

// WithScope counts clients in a budget separate from other limiters sharing the counter
func WithScope(scope string) LimiterOption {
	return func(l *Limiter) {
		l.scope = scope
	}
}

// WithLimit overrides the configured request limit
func WithLimit(limit int) LimiterOption {
	return func(l *Limiter) {
		l.limit = int64(limit)
	}
}

// NewLimiter creates a new fixed-window limiter
func NewLimiter(counter secondary.RequestCounter, cfg *config.RateLimitConfig, logger primary.Logger, options ...LimiterOption) *Limiter {
	l := &Limiter{
		counter: counter,
		limit:   int64(cfg.Limit),
		window:  cfg.Window,
		logger:  logger,
	}
	for _, opt := range options {
		opt(l)
	}
	return l
}

// Allow lets the request through when the counter cannot be reached
func (l *Limiter) Allow(ctx context.Context, client string) bool {
	key := client
	if l.scope != "" {
		key = l.scope + ":" + client
	}
	count, err := l.counter.Increment(ctx, key, l.window)
	if err != nil {
		l.logger.Error("Rate limit counter unavailable, allowing request", "client", client, "error", err)
		return true
	}

	if count > l.limit {
		l.logger.Warn("Rate limit exceeded", "client", client, "scope", l.scope, "count", count, "limit", l.limit)
		return false
	}

	return true
}

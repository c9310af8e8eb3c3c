package ratelimitport

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"gitlab.com/hirecode-2025.net/internal/core/ports/primary"
	"gitlab.com/hirecode-2025.net/internal/core/ports/secondary"
)

const counterKeyPrefix = "ratelimit:"

// incrementScript bumps the counter and arms the expiry in one round trip, so a key never
// outlives its window. A key found without a TTL is re-armed rather than left to grow.
var incrementScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if redis.call("PTTL", KEYS[1]) < 0 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

var _ secondary.RequestCounter = (*RequestCounter)(nil)

// RequestCounter implements the RequestCounter interface with Redis.
// The key expiry closes the window, so Redis does the eviction.
type RequestCounter struct {
	redisClient *redis.Client
	logger      primary.Logger
}

// NewRequestCounter creates a new Redis request counter
func NewRequestCounter(redisClient *redis.Client, logger primary.Logger) *RequestCounter {
	return &RequestCounter{
		redisClient: redisClient,
		logger:      logger,
	}
}

// Increment bumps the counter of client and starts its window when none is running
func (c *RequestCounter) Increment(ctx context.Context, client string, window time.Duration) (int64, error) {
	key := fmt.Sprintf("%s%s", counterKeyPrefix, client)

	count, err := incrementScript.Run(ctx, c.redisClient, []string{key}, window.Milliseconds()).Int64()
	if err != nil {
		c.logger.Error("Failed to increment request counter", "client", client, "error", err)
		return 0, fmt.Errorf("failed to increment request counter: %w", err)
	}

	return count, nil
}

package config

import "time"

type RateLimitConfig struct {
	Limit  int
	Window time.Duration
	// SessionLimit bounds access code attempts per client per window
	SessionLimit int
}

func NewRateLimitConfig() *RateLimitConfig {
	return &RateLimitConfig{
		Limit:  getIntEnv("RATE_LIMIT", 20),
		Window: getSecondsEnv("RATE_WINDOW_SEC", 60),

		SessionLimit: getIntEnv("RATE_LIMIT_SESSION", 10),
	}
}

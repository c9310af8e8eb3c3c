package config

import "os"

type AppConfig struct {
	DebugMode       bool
	HttpConfig      *HttpConfig
	AwsConfig       *AwsConfig
	ExecutorConfig  *ExecutorConfig
	RedisConfig     *RedisConfig
	PostgresConfig  *PostgresConfig
	JwtConfig       *JwtConfig
	AccessConfig    *AccessConfig
	GGAuthConfig    *GGAuthConfig
	RateLimitConfig *RateLimitConfig
	NotifyConfig    *NotifyConfig
}

func NewSystemConfig() *AppConfig {
	return &AppConfig{
		DebugMode:       os.Getenv("DEBUG_MODE") == "true",
		HttpConfig:      NewHttpConfig(),
		AwsConfig:       NewAwsConfig(),
		ExecutorConfig:  NewExecutorConfig(),
		RedisConfig:     NewRedisConfig(),
		PostgresConfig:  NewPostgresConfig(),
		JwtConfig:       NewJwtConfig(),
		AccessConfig:    NewAccessConfig(),
		GGAuthConfig:    NewGGAuthConfig(),
		RateLimitConfig: NewRateLimitConfig(),
		NotifyConfig:    NewNotifyConfig(),
	}
}

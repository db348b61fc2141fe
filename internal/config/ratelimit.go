package config

import "fmt"

// RateLimitConfig holds per-client rate limiting configuration.
type RateLimitConfig struct {
	// Enabled turns the rate limiting middleware on.
	Enabled bool
	// RPS is the sustained number of requests per second allowed per client IP.
	RPS float64
	// Burst is the maximum burst size per client IP.
	Burst int
}

// LoadRateLimitConfigFromEnv loads rate limit configuration from environment variables.
func LoadRateLimitConfigFromEnv() RateLimitConfig {
	return RateLimitConfig{
		Enabled: GetEnvBool("RATE_LIMIT_ENABLED", true),
		RPS:     GetEnvFloat("RATE_LIMIT_RPS", 20),
		Burst:   GetEnvInt("RATE_LIMIT_BURST", 40),
	}
}

// Validate validates rate limit configuration.
func (c RateLimitConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.RPS <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be greater than 0")
	}
	if c.Burst <= 0 {
		return fmt.Errorf("RATE_LIMIT_BURST must be greater than 0")
	}
	return nil
}

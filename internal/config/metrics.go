package config

import (
	"fmt"
	"strings"
)

// MetricsConfig holds Prometheus exposition configuration.
type MetricsConfig struct {
	// Enabled exposes the metrics endpoint and records HTTP metrics.
	Enabled bool
	// Path is the HTTP path the metrics are served on.
	Path string
}

// LoadMetricsConfigFromEnv loads metrics configuration from environment variables.
func LoadMetricsConfigFromEnv() MetricsConfig {
	return MetricsConfig{
		Enabled: GetEnvBool("METRICS_ENABLED", true),
		Path:    GetEnv("METRICS_PATH", "/metrics"),
	}
}

// Validate validates metrics configuration.
func (c MetricsConfig) Validate() error {
	if c.Enabled && !strings.HasPrefix(c.Path, "/") {
		return fmt.Errorf("invalid METRICS_PATH: %s (must start with /)", c.Path)
	}
	return nil
}

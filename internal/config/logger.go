package config

import (
	"fmt"

	"go.uber.org/zap/zapcore"
)

// DefaultServiceName tags log entries when LOG_SERVICE is not set.
const DefaultServiceName = "prode"

// LoggerConfig holds logger configuration.
type LoggerConfig struct {
	// Level is one of debug, info, warn, error.
	Level string
	// Format is json or console.
	Format string
	// Output is stdout, stderr or a file path.
	Output string
	// Service is attached to every entry as the "service" field.
	Service string
	// Caller adds the calling file and line to every entry.
	Caller bool
}

// LoadLoggerConfigFromEnv loads logger configuration from environment variables.
func LoadLoggerConfigFromEnv() LoggerConfig {
	return LoggerConfig{
		Level:   GetEnv("LOG_LEVEL", "info"),
		Format:  GetEnv("LOG_FORMAT", "json"),
		Output:  GetEnv("LOG_OUTPUT", "stdout"),
		Service: GetEnv("LOG_SERVICE", DefaultServiceName),
		Caller:  GetEnvBool("LOG_CALLER", true),
	}
}

// Validate validates logger configuration.
func (c LoggerConfig) Validate() error {
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil || level < zapcore.DebugLevel || level > zapcore.ErrorLevel {
		return fmt.Errorf("invalid LOG_LEVEL: %q (must be: debug, info, warn, error)", c.Level)
	}
	if c.Format != "json" && c.Format != "console" {
		return fmt.Errorf("invalid LOG_FORMAT: %q (must be: json, console)", c.Format)
	}
	if c.Output == "" {
		return fmt.Errorf("LOG_OUTPUT must not be empty")
	}
	if c.Service == "" {
		return fmt.Errorf("LOG_SERVICE must not be empty")
	}
	return nil
}

// ZapLevel returns the configured level, info when it does not parse.
func (c LoggerConfig) ZapLevel() zapcore.Level {
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}

// Development reports whether entries are meant for a developer's terminal
// (console output or debug level) rather than a log collector.
func (c LoggerConfig) Development() bool {
	return c.Format == "console" || c.ZapLevel() == zapcore.DebugLevel
}

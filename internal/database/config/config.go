// Package config provides database configuration management.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	appConfig "github.com/festy23/prode/internal/config"
	"github.com/festy23/prode/pkg/retry"
)

// Config holds database connection configuration.
type Config struct {
	Host     string
	User     string
	Password string
	DBName   string
	Port     string
	SSLMode  string
	TimeZone string
	// SlowQueryThreshold is the duration above which queries are logged as slow.
	SlowQueryThreshold time.Duration
}

// LoadConfigFromEnv loads database configuration from environment variables.
func LoadConfigFromEnv() Config {
	return Config{
		Host:               appConfig.GetEnv("DB_HOST", "localhost"),
		User:               appConfig.GetEnv("DB_USER", "postgres"),
		Password:           appConfig.GetEnv("DB_PASSWORD", "postgres"),
		DBName:             appConfig.GetEnv("DB_NAME", "prode"),
		Port:               appConfig.GetEnv("DB_PORT", "5432"),
		SSLMode:            appConfig.GetEnv("DB_SSLMODE", "disable"),
		TimeZone:           appConfig.GetEnv("DB_TIMEZONE", "UTC"),
		SlowQueryThreshold: appConfig.GetEnvDuration("DB_SLOW_QUERY_THRESHOLD", 200*time.Millisecond),
	}
}

// Validate validates database configuration.
func (c Config) Validate() error {
	if c.Host == "" {
		return errors.New("DB_HOST is required")
	}
	if c.DBName == "" {
		return errors.New("DB_NAME is required")
	}
	if c.Port == "" {
		return errors.New("DB_PORT is required")
	}
	switch c.SSLMode {
	case "disable", "allow", "prefer", "require", "verify-ca", "verify-full":
	default:
		return fmt.Errorf("invalid DB_SSLMODE: %s", c.SSLMode)
	}
	return nil
}

// DSN returns the PostgreSQL connection string.
func (c Config) DSN() string {
	return c.dsn(c.Password)
}

// SafeDSN returns the connection string with the password masked.
func (c Config) SafeDSN() string {
	return c.dsn("***")
}

func (c Config) dsn(password string) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.Host, c.User, password, c.DBName, c.Port, c.SSLMode, c.TimeZone)
}

// SanitizeError removes the password from a connection error.
func SanitizeError(err error, cfg Config) error {
	if err == nil {
		return nil
	}
	msg := strings.ReplaceAll(err.Error(), cfg.DSN(), cfg.SafeDSN())
	if cfg.Password != "" {
		msg = strings.ReplaceAll(msg, cfg.Password, "***")
	}
	return fmt.Errorf("failed to connect to database: %s", msg)
}

// LoadRetryConfigFromEnv loads connection retry configuration from environment variables.
func LoadRetryConfigFromEnv() retry.Config {
	cfg := retry.ConnectConfig()
	cfg.MaxAttempts = appConfig.GetEnvInt("DB_RETRY_MAX_ATTEMPTS", cfg.MaxAttempts)
	cfg.InitialDelay = appConfig.GetEnvDuration("DB_RETRY_INITIAL_DELAY", cfg.InitialDelay)
	cfg.MaxDelay = appConfig.GetEnvDuration("DB_RETRY_MAX_DELAY", cfg.MaxDelay)
	cfg.Multiplier = appConfig.GetEnvFloat("DB_RETRY_MULTIPLIER", cfg.Multiplier)
	return cfg
}

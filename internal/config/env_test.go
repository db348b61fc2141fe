package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// setEnv sets every variable for the duration of the test; an empty value
// behaves like an unset variable for the GetEnv helpers.
func setEnv(t *testing.T, vars map[string]string) {
	t.Helper()
	for key, value := range vars {
		t.Setenv(key, value)
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("PRODE_TEST_STRING", "liga")
	t.Setenv("PRODE_TEST_EMPTY", "")

	assert.Equal(t, "liga", GetEnv("PRODE_TEST_STRING", "copa"))
	assert.Equal(t, "copa", GetEnv("PRODE_TEST_EMPTY", "copa"))
	assert.Equal(t, "copa", GetEnv("PRODE_TEST_NEVER_SET", "copa"))
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{"positive", "42", 42},
		{"negative", "-10", -10},
		{"not a number", "ten", 5},
		{"float", "1.5", 5},
		{"empty", "", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PRODE_TEST_INT", tt.value)
			assert.Equal(t, tt.want, GetEnvInt("PRODE_TEST_INT", 5))
		})
	}
}

func TestGetEnvFloat(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  float64
	}{
		{"float", "1.5", 1.5},
		{"integer", "20", 20},
		{"not a number", "abc", 3},
		{"empty", "", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PRODE_TEST_FLOAT", tt.value)
			assert.InDelta(t, tt.want, GetEnvFloat("PRODE_TEST_FLOAT", 3), 0.0001)
		})
	}
}

func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"seconds", "30s", 30 * time.Second},
		{"compound", "1h30m15s", time.Hour + 30*time.Minute + 15*time.Second},
		{"milliseconds", "250ms", 250 * time.Millisecond},
		{"bare number", "30", time.Minute},
		{"empty", "", time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PRODE_TEST_DURATION", tt.value)
			assert.Equal(t, tt.want, GetEnvDuration("PRODE_TEST_DURATION", time.Minute))
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value        string
		defaultValue bool
		want         bool
	}{
		{"true", false, true},
		{"false", true, false},
		{"1", false, true},
		{"0", true, false},
		{"yes", true, true},
		{"yes", false, false},
		{"", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("PRODE_TEST_BOOL", tt.value)
			assert.Equal(t, tt.want, GetEnvBool("PRODE_TEST_BOOL", tt.defaultValue))
		})
	}
}

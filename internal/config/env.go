package config

import (
	"os"
	"strings"
	"time"
)

// Duration wraps time.Duration for clearer type usage in Config.
type Duration = time.Duration

// lookup returns the trimmed value of key, or "" when unset.
func lookup(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func envOrDefault(key, defaultValue string) string {
	if val := lookup(key); val != "" {
		return val
	}
	return defaultValue
}

// durationEnvOrDefault parses a Go duration ("15s", "600ms"). Unparseable
// or non-positive values fall back to the default.
func durationEnvOrDefault(key string, defaultValue time.Duration) time.Duration {
	raw := lookup(key)
	if raw == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return defaultValue
	}
	return parsed
}

func boolEnvOrDefault(key string, defaultValue bool) bool {
	switch strings.ToLower(lookup(key)) {
	case "1", "true", "yes":
		return true
	case "0", "false", "no":
		return false
	default:
		return defaultValue
	}
}

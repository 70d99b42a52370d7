// Package config loads and validates application configuration from
// environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables. Everything has a
// sensible local default: the app must come up with zero configuration.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// DataFile is the path of the ledger blob when the file store is used.
	// Defaults to "carl_app_data_v1.json" in the working directory, the
	// same key name the data has always lived under.
	DataFile string

	// RedisAddr, when set, switches the ledger blob to a redis key on this
	// server. RedisPassword is optional.
	RedisAddr     string
	RedisPassword string

	// PollInterval is how often the display snapshot re-reads the ledger.
	// Defaults to 2s.
	PollInterval time.Duration

	// LocationTimeout bounds a one-shot coordinate acquisition before
	// falling back to the default center. Defaults to 5s.
	LocationTimeout time.Duration

	// AdvisoryURL is an optional OpenAI-compatible chat-completions
	// endpoint for coaching tips. Empty means canned tips only.
	AdvisoryURL    string
	AdvisoryAPIKey string
	AdvisoryModel  string
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error when a duration variable fails to parse.
func Load() (Config, error) {
	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		CORSOrigins:    splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		DataFile:       getEnv("DATA_FILE", "carl_app_data_v1.json"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		AdvisoryURL:    os.Getenv("ADVISORY_URL"),
		AdvisoryAPIKey: os.Getenv("ADVISORY_API_KEY"),
		AdvisoryModel:  getEnv("ADVISORY_MODEL", "gemini-2.5-flash"),
	}

	var err error
	cfg.PollInterval, err = getDuration("POLL_INTERVAL", 2*time.Second)
	if err != nil {
		return Config{}, err
	}
	cfg.LocationTimeout, err = getDuration("LOCATION_TIMEOUT", 5*time.Second)
	if err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getDuration parses the environment variable named by key as a duration,
// or returns fallback when it is unset.
func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring
// empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

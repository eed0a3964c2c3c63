// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config holds all application configuration.
type Config struct {
	// DBPath is the SQLite database location.
	DBPath string
	// AppBaseURL is the public base URL embedded in onboarding links.
	AppBaseURL string
	// SenderName is the display name reminders are signed with.
	SenderName string
	// LogTicks enables slog output for scheduler tick use cases.
	LogTicks bool
}

// Load reads configuration from environment variables, falling back to
// defaults. The database defaults to ~/.nudge/nudge.db.
func Load() (*Config, error) {
	dbPath := os.Getenv("NUDGE_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".nudge", "nudge.db")
	}

	return &Config{
		DBPath:     dbPath,
		AppBaseURL: getEnv("NUDGE_APP_URL", "http://localhost:3000"),
		SenderName: getEnv("NUDGE_SENDER_NAME", "The Onboarding Team"),
		LogTicks:   getEnvBool("NUDGE_LOG_TICKS", false),
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

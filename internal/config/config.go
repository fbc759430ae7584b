package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	CORS        CORSConfig
	RemoteStore RemoteStoreConfig
	Summary     SummaryConfig
	Sync        SyncConfig
	Log         LogConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// RemoteStoreConfig points at the external record store the dashboard mirrors
// its transactions to. An empty URL disables remote persistence.
type RemoteStoreConfig struct {
	URL     string
	Timeout time.Duration
}

// Enabled reports whether a remote record store is configured.
func (c RemoteStoreConfig) Enabled() bool {
	return c.URL != ""
}

// SummaryConfig holds the narrative summary (Gemini) settings.
type SummaryConfig struct {
	APIKey string
	Model  string
}

// SyncConfig controls the background retry of records that failed to reach
// the remote store.
type SyncConfig struct {
	Schedule    string
	Concurrency int
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	timeout, err := time.ParseDuration(getEnv("REMOTE_STORE_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid REMOTE_STORE_TIMEOUT: %w", err)
	}

	concurrency, err := strconv.Atoi(getEnv("SYNC_CONCURRENCY", "4"))
	if err != nil || concurrency < 1 {
		return nil, fmt.Errorf("invalid SYNC_CONCURRENCY: must be a positive integer")
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/dollar_trade_tracker.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost")),
		},
		RemoteStore: RemoteStoreConfig{
			URL:     strings.TrimSpace(os.Getenv("REMOTE_STORE_URL")),
			Timeout: timeout,
		},
		Summary: SummaryConfig{
			APIKey: strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		Sync: SyncConfig{
			Schedule:    getEnv("SYNC_SCHEDULE", "@every 5m"),
			Concurrency: concurrency,
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// splitList splits a comma-separated value, dropping empty entries.
func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Package config builds the immutable run configuration from the
// environment. Loaded once in main and passed down; nothing reads env
// vars after startup.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Gemini settings. Empty key switches the writer to local
	// heuristics instead of failing the run.
	GeminiAPIKey string
	GeminiModel  string

	// Feed settings
	FeedsConfigPath string
	MaxPerFeed      int // articles taken from a single source
	MaxTotal        int // articles in the fetched pool overall

	// Pipeline settings
	MaxPerRun int // documents rendered per invocation

	// Output settings
	HistoryFilePath string
	OutputDir       string

	// App settings
	Debug          bool
	RequestTimeout time.Duration
	RetryAttempts  int
	RetryDelay     time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		GeminiModel:     "gemini-1.5-flash",
		FeedsConfigPath: "feeds.yaml",
		MaxPerFeed:      5,
		MaxTotal:        20,
		MaxPerRun:       4,
		HistoryFilePath: "processed_articles.json",
		OutputDir:       "digests",
		RequestTimeout:  15 * time.Second,
		RetryAttempts:   3,
		RetryDelay:      5 * time.Second,
	}

	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")

	cfg.GeminiModel = getEnvOrDefault("GEMINI_MODEL", cfg.GeminiModel)
	cfg.FeedsConfigPath = getEnvOrDefault("FEEDS_CONFIG", cfg.FeedsConfigPath)
	cfg.HistoryFilePath = getEnvOrDefault("HISTORY_FILE", cfg.HistoryFilePath)
	cfg.OutputDir = getEnvOrDefault("OUTPUT_DIR", cfg.OutputDir)

	cfg.MaxPerFeed = getEnvIntOrDefault("MAX_PER_FEED", cfg.MaxPerFeed)
	cfg.MaxTotal = getEnvIntOrDefault("MAX_TOTAL", cfg.MaxTotal)
	cfg.MaxPerRun = getEnvIntOrDefault("MAX_PER_RUN", cfg.MaxPerRun)
	cfg.RetryAttempts = getEnvIntOrDefault("RETRY_ATTEMPTS", cfg.RetryAttempts)

	if v := os.Getenv("REQUEST_TIMEOUT_SECONDS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.RequestTimeout = time.Duration(val) * time.Second
		}
	}

	if debug := os.Getenv("DEBUG"); debug == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.FeedsConfigPath == "" {
		return fmt.Errorf("FEEDS_CONFIG must not be empty")
	}
	if c.HistoryFilePath == "" {
		return fmt.Errorf("HISTORY_FILE must not be empty")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("OUTPUT_DIR must not be empty")
	}
	if c.MaxPerFeed <= 0 {
		return fmt.Errorf("MAX_PER_FEED must be positive, got %d", c.MaxPerFeed)
	}
	if c.MaxTotal <= 0 {
		return fmt.Errorf("MAX_TOTAL must be positive, got %d", c.MaxTotal)
	}
	if c.MaxPerRun <= 0 {
		return fmt.Errorf("MAX_PER_RUN must be positive, got %d", c.MaxPerRun)
	}
	return nil
}

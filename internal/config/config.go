// Package config provides application configuration management with support
// for environment variables and .env files.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
)

// Config holds the client configuration.
type Config struct {
	App    AppConfig
	Logger LoggerConfig
	API    APIConfig
	Mock   MockConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// APIConfig holds remote store API configuration.
type APIConfig struct {
	BaseURL  string        // Base URL of the resource API, e.g. http://localhost:4000/api
	Timeout  time.Duration // HTTP client timeout (default: 30s)
	PageSize int           // Catalog page size for load/load-more (default: 5)
	RPS      float64       // Outbound requests per second per host (default: 10)
	Burst    int           // Outbound burst per host (default: 20)
}

// MockConfig holds configuration for the local mock store.
type MockConfig struct {
	Addr string // Listen address for cmd/mockstore (default: :4000)
}

// LoadConfig loads configuration with precedence:
// 1. Environment variables.
// 2. .env file (BOOKMARKET_ENV_FILE overrides the path).
// 3. Default values.
func LoadConfig() (*Config, error) {
	envFile := os.Getenv("BOOKMARKET_ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: envValue("ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: envValue("LOG_LEVEL", "info"),
		},
		API: APIConfig{
			BaseURL:  envValue("API_BASE_URL", "http://localhost:4000/api"),
			PageSize: envInt("CATALOG_PAGE_SIZE", 5),
			RPS:      envFloat("API_RPS", 10),
			Burst:    envInt("API_BURST", 20),
		},
		Mock: MockConfig{
			Addr: envValue("MOCKSTORE_ADDR", ":4000"),
		},
	}

	timeoutStr := envValue("API_TIMEOUT", "30s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid API timeout %q: %w", timeoutStr, err)
	}
	cfg.API.Timeout = timeout

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.API.BaseURL == "" {
		return errors.New("API base URL is required")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid API base URL: %s", c.API.BaseURL)
	}

	if c.API.PageSize <= 0 {
		return fmt.Errorf("catalog page size must be positive, got %d", c.API.PageSize)
	}

	if c.API.RPS <= 0 || c.API.Burst <= 0 {
		return errors.New("API rate limit values must be positive")
	}

	return nil
}

// envValue returns the environment value or the default when unset.
func envValue(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

// envInt returns an int from the environment or the default.
func envInt(key string, defaultValue int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	var result int
	if _, err := fmt.Sscanf(v, "%d", &result); err != nil {
		return defaultValue
	}
	return result
}

// envFloat returns a float from the environment or the default.
func envFloat(key string, defaultValue float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	var result float64
	if _, err := fmt.Sscanf(v, "%g", &result); err != nil {
		return defaultValue
	}
	return result
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments.
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)

		// Env vars take precedence over the .env file.
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}

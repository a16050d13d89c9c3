// Package config provides configuration management functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aristath/tactical/internal/clients/alphavantage"
	"github.com/joho/godotenv"
)

// DefaultSchedule re-evaluates after the US close on weekdays (seconds field first)
const DefaultSchedule = "0 0 22 * * MON-FRI"

// ErrMissingAPIKey is returned when no Alpha Vantage key is configured
var ErrMissingAPIKey = errors.New("ALPHAVANTAGE_API_KEY is required")

// Config holds application configuration
type Config struct {
	AlphaVantage AlphaVantageConfig
	Symbol       string // Default symbol for check/watch
	Schedule     string // Cron schedule for watch
	LogLevel     string
	LogPretty    bool
	Port         int
	DevMode      bool
}

// AlphaVantageConfig holds the data provider settings
type AlphaVantageConfig struct {
	APIKey            string
	BaseURL           string
	DailyLimit        int // 0 disables the quota
	RequestsPerMinute int // 0 disables pacing
	Timeout           time.Duration
}

// ClientOptions converts the settings to client options
func (c AlphaVantageConfig) ClientOptions() []alphavantage.ClientOption {
	return []alphavantage.ClientOption{
		alphavantage.WithBaseURL(c.BaseURL),
		alphavantage.WithTimeout(c.Timeout),
		alphavantage.WithDailyLimit(c.DailyLimit),
		alphavantage.WithRequestsPerMinute(c.RequestsPerMinute),
	}
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		AlphaVantage: AlphaVantageConfig{
			APIKey:            strings.TrimSpace(os.Getenv("ALPHAVANTAGE_API_KEY")),
			BaseURL:           getEnv("ALPHAVANTAGE_BASE_URL", alphavantage.DefaultBaseURL),
			DailyLimit:        getEnvAsInt("ALPHAVANTAGE_DAILY_LIMIT", alphavantage.DefaultDailyLimit),
			RequestsPerMinute: getEnvAsInt("ALPHAVANTAGE_REQUESTS_PER_MINUTE", alphavantage.DefaultRequestsPerMinute),
			Timeout:           getEnvAsDuration("ALPHAVANTAGE_TIMEOUT", alphavantage.DefaultTimeout),
		},
		Symbol:    strings.ToUpper(getEnv("TACTICAL_SYMBOL", "NVDA")),
		Schedule:  getEnv("TACTICAL_SCHEDULE", DefaultSchedule),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogPretty: getEnvAsBool("LOG_PRETTY", true),
		Port:      getEnvAsInt("GO_PORT", 8001),
		DevMode:   getEnvAsBool("DEV_MODE", false),
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.AlphaVantage.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.AlphaVantage.DailyLimit < 0 {
		return fmt.Errorf("ALPHAVANTAGE_DAILY_LIMIT must not be negative, got %d", c.AlphaVantage.DailyLimit)
	}
	if c.AlphaVantage.RequestsPerMinute < 0 {
		return fmt.Errorf("ALPHAVANTAGE_REQUESTS_PER_MINUTE must not be negative, got %d", c.AlphaVantage.RequestsPerMinute)
	}
	if c.AlphaVantage.Timeout <= 0 {
		return fmt.Errorf("ALPHAVANTAGE_TIMEOUT must be positive, got %s", c.AlphaVantage.Timeout)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("GO_PORT out of range: %d", c.Port)
	}
	if c.Symbol == "" {
		return errors.New("TACTICAL_SYMBOL must not be empty")
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

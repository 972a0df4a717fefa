// Package config loads converter settings from the environment and an optional .env file
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/damon-houk/simplifi-csv-converter/internal/infrastructure/logger"
)

const (
	defaultPort              = "8080"
	defaultLogLevel          = "info"
	defaultRateAPIBaseURL    = "https://api.exchangerate-api.com/v4"
	defaultRequestsPerSecond = 5.0
	defaultFallbackRate      = 1.10
	defaultMaxUploadSize     = 10 * 1024 * 1024
	defaultBaseCurrency      = "EUR"
	defaultQuoteCurrency     = "USD"
)

// Config holds all settings for the server and the CLI
type Config struct {
	Port     string
	LogLevel string

	// Exchange rate provider
	RateAPIBaseURL           string
	RateAPITimeout           time.Duration
	RateAPIRequestsPerSecond float64
	FallbackRate             float64
	BaseCurrency             string
	QuoteCurrency            string

	// RateStorePath enables the badger rate store when non-empty
	RateStorePath string

	MaxUploadSizeBytes int64
}

// Load reads .env from the current or parent directory if present, then the environment.
// Invalid values are logged and replaced by their defaults.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil && !os.IsNotExist(err) {
			logger.Warn("Error loading .env file, relying on environment", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return &Config{
		Port:                     getEnv("PORT", defaultPort),
		LogLevel:                 getEnv("LOG_LEVEL", defaultLogLevel),
		RateAPIBaseURL:           getEnv("RATE_API_BASE_URL", defaultRateAPIBaseURL),
		RateAPITimeout:           getEnvAsDuration("RATE_API_TIMEOUT", 0),
		RateAPIRequestsPerSecond: getEnvAsFloat("RATE_API_REQUESTS_PER_SECOND", defaultRequestsPerSecond),
		FallbackRate:             getEnvAsFloat("RATE_FALLBACK", defaultFallbackRate),
		BaseCurrency:             strings.ToUpper(getEnv("RATE_BASE_CURRENCY", defaultBaseCurrency)),
		QuoteCurrency:            strings.ToUpper(getEnv("RATE_QUOTE_CURRENCY", defaultQuoteCurrency)),
		RateStorePath:            getEnv("RATE_STORE_PATH", ""),
		MaxUploadSizeBytes:       getEnvAsInt64("MAX_UPLOAD_SIZE_BYTES", defaultMaxUploadSize),
	}
}

// getEnv retrieves an environment variable or returns a fallback value
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil && value >= 0 {
		return value
	}
	warnInvalid(key, valueStr, fallback)
	return fallback
}

func getEnvAsInt64(key string, fallback int64) int64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil && value > 0 {
		return value
	}
	warnInvalid(key, valueStr, fallback)
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := time.ParseDuration(valueStr); err == nil && value >= 0 {
		return value
	}
	warnInvalid(key, valueStr, fallback.String())
	return fallback
}

func warnInvalid(key, value string, fallback interface{}) {
	logger.Warn("Invalid configuration value, using default", map[string]interface{}{
		"key":     key,
		"value":   value,
		"default": fallback,
	})
}

package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/logger"
)

// DefaultUSDToINR is the fixed exchange rate used to normalize USD holdings.
const DefaultUSDToINR = 83.5

// Config holds all configuration for the application
type Config struct {
	Env       string
	Server    ServerConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	Gemini    GeminiConfig
	Valuation ValuationConfig
	Refresh   RefreshConfig
	Storage   StorageConfig
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

// GeminiConfig holds the generative AI service configuration.
// An empty APIKey disables every AI-backed feature.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// Enabled reports whether an API key was configured.
func (g GeminiConfig) Enabled() bool {
	return g.APIKey != ""
}

// ValuationConfig holds the static valuation parameters.
type ValuationConfig struct {
	USDToINR float64
}

// RefreshConfig holds the price refresh loop configuration.
type RefreshConfig struct {
	Schedule string // cron expression, e.g. "@every 5m"
}

// StorageConfig holds persisted state options.
type StorageConfig struct {
	EncryptionKey string // base64 fernet key, empty disables encryption
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Env: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/portfolio_dashboard.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost")),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		Valuation: ValuationConfig{
			USDToINR: getEnvFloat("USD_INR_RATE", DefaultUSDToINR),
		},
		Refresh: RefreshConfig{
			Schedule: getEnv("PRICE_REFRESH_SCHEDULE", "@every 5m"),
		},
		Storage: StorageConfig{
			EncryptionKey: getEnv("STATE_ENCRYPTION_KEY", ""),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	if rate := config.Valuation.USDToINR; rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return nil, fmt.Errorf("USD_INR_RATE must be a positive finite number, got %v", rate)
	}

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

// getEnvFloat parses a float environment variable, falling back to the default
// when it is unset or unparsable.
func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		logger.Get().Warnw("invalid environment value, using default", "key", key, "value", value, "default", defaultValue)
		return defaultValue
	}
	return f
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

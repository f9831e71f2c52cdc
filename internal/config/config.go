package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Logging  LoggingConfig
	Rates    RatesConfig
	Limits   LimitsConfig
	Jobs     JobsConfig
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	FrontendURL     string
	AllowedOrigins  []string
	Environment     string
	RateLimitRPS    float64
	RateLimitBurst  int
}

// DatabaseConfig contains database configuration
type DatabaseConfig struct {
	// URL selects PostgreSQL when non-empty.
	URL             string
	// Path is the SQLite file used when URL is empty.
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

// Dialect reports which backing store the configuration selects.
func (d DatabaseConfig) Dialect() string {
	if d.URL != "" {
		return "postgres"
	}
	return "sqlite"
}

// AuthConfig contains authentication configuration
type AuthConfig struct {
	JWTSecret   string
	TokenExpiry time.Duration
	BCryptCost  int
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string
	Format string // json or console
}

// RatesConfig holds the fixed conversion rates to lira.
type RatesConfig struct {
	USD float64
	EUR float64
}

// LimitsConfig holds free-tier quotas
type LimitsConfig struct {
	FreeSubscriptions int
}

// JobsConfig contains background job configuration
type JobsConfig struct {
	Enabled             bool
	BillingRollSchedule string
}

const defaultJWTSecret = "paycal-dev-secret"

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore errors as it's optional)
	_ = godotenv.Load()

	cfg := FromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// FromEnv builds a Config from the current environment without validating it.
func FromEnv() *Config {
	port := getEnvAsInt("SERVER_PORT", 0)
	if port == 0 {
		port = getEnvAsInt("PORT", 5000)
	}
	frontend := getEnv("FRONTEND_URL", "http://localhost:5173")

	return &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            port,
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			FrontendURL:     frontend,
			AllowedOrigins:  getEnvAsList("ALLOWED_ORIGINS", []string{frontend, "http://localhost:8081"}),
			Environment:     getEnv("ENVIRONMENT", "development"),
			RateLimitRPS:    getEnvAsFloat("RATE_LIMIT_RPS", 20),
			RateLimitBurst:  getEnvAsInt("RATE_LIMIT_BURST", 40),
		},
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			Path:            getEnv("DB_PATH", "./paycal.db"),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
			AutoMigrate:     getEnvAsBool("DB_AUTO_MIGRATE", true),
		},
		Auth: AuthConfig{
			JWTSecret:   getEnv("JWT_SECRET", defaultJWTSecret),
			TokenExpiry: getEnvAsDuration("JWT_EXPIRY", 30*24*time.Hour),
			BCryptCost:  getEnvAsInt("BCRYPT_COST", 10),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Rates: RatesConfig{
			USD: getEnvAsFloat("RATE_USD", 34),
			EUR: getEnvAsFloat("RATE_EUR", 36),
		},
		Limits: LimitsConfig{
			FreeSubscriptions: getEnvAsInt("FREE_SUBSCRIPTION_LIMIT", 5),
		},
		Jobs: JobsConfig{
			Enabled:             getEnvAsBool("JOBS_ENABLED", true),
			BillingRollSchedule: getEnv("BILLING_ROLL_SCHEDULE", "0 9 * * *"),
		},
	}
}

// IsProduction reports whether the server runs in production
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must be set")
	}
	if c.IsProduction() && c.Auth.JWTSecret == defaultJWTSecret {
		return fmt.Errorf("JWT_SECRET must not use the default value in production")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.URL == "" && c.Database.Path == "" {
		return fmt.Errorf("either DATABASE_URL or DB_PATH must be set")
	}

	if c.Rates.USD <= 0 || c.Rates.EUR <= 0 {
		return fmt.Errorf("exchange rates must be positive (usd=%v eur=%v)", c.Rates.USD, c.Rates.EUR)
	}

	if c.Limits.FreeSubscriptions < 1 {
		return fmt.Errorf("invalid free subscription limit: %d", c.Limits.FreeSubscriptions)
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
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

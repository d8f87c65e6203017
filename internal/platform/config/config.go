package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	RedisURL     string
	Port         string
	IsProduction bool
	JWTSecret    string
	JWTIssuer    string

	// Cancellation codes
	CancellationCodeTTL    time.Duration
	CancellationCodeLength int

	BalanceTolerance decimal.Decimal

	// RateLimit uses the ulule/limiter formatted rate, e.g. "30-M".
	RateLimit          string
	CORSAllowedOrigins []string
	MigrationsPath     string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_ISSUER", "")
	v.SetDefault("CANCELLATION_CODE_TTL", "10m")
	v.SetDefault("CANCELLATION_CODE_LENGTH", 8)
	v.SetDefault("BALANCE_TOLERANCE", "0.01")
	v.SetDefault("RATE_LIMIT", "30-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:    v.GetString("PGSQL_URL"),
		RedisURL:       v.GetString("REDIS_URL"),
		Port:           v.GetString("PORT"),
		IsProduction:   v.GetBool("IS_PRODUCTION"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		JWTIssuer:      v.GetString("JWT_ISSUER"),
		RateLimit:      v.GetString("RATE_LIMIT"),
		MigrationsPath: v.GetString("MIGRATIONS_PATH"),
	}

	if cfg.DatabaseURL == "" {
		slog.Warn("PGSQL_URL environment variable not set")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = defaultJWTSecret
		slog.Warn("JWT_SECRET not set, using default insecure key")
	}

	ttl, err := time.ParseDuration(v.GetString("CANCELLATION_CODE_TTL"))
	if err != nil || ttl <= 0 {
		return nil, fmt.Errorf("invalid CANCELLATION_CODE_TTL %q", v.GetString("CANCELLATION_CODE_TTL"))
	}
	cfg.CancellationCodeTTL = ttl

	cfg.CancellationCodeLength = v.GetInt("CANCELLATION_CODE_LENGTH")
	if cfg.CancellationCodeLength < 6 || cfg.CancellationCodeLength > 32 {
		return nil, fmt.Errorf("CANCELLATION_CODE_LENGTH must be between 6 and 32, got %d", cfg.CancellationCodeLength)
	}

	tolerance, err := decimal.NewFromString(v.GetString("BALANCE_TOLERANCE"))
	if err != nil || tolerance.IsNegative() {
		return nil, fmt.Errorf("invalid BALANCE_TOLERANCE %q", v.GetString("BALANCE_TOLERANCE"))
	}
	cfg.BalanceTolerance = tolerance

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	return cfg, nil
}

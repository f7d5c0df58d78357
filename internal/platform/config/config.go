package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/SscSPs/ledger_reconciler/internal/core/domain"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string `validate:"required"`
	Port              string `validate:"required,numeric"`
	IsProduction      bool
	EnableDBCheck     bool
	JWTSecret         string        `validate:"required,min=16"`
	JWTExpiryDuration time.Duration `validate:"gt=0"`
	JWTIssuer         string        `validate:"required"`

	// RateLimit uses the limiter's formatted rate, e.g. "100-M".
	RateLimit          string `validate:"required"`
	CORSAllowedOrigins []string

	PosthogAPIKey   string
	PosthogEndpoint string `validate:"omitempty,url"`

	// RedisURL enables the chart-of-accounts cache and a shared rate limit store.
	RedisURL        string        `validate:"omitempty,url"`
	AccountCacheTTL time.Duration `validate:"gte=0"`

	SyncMode       domain.SyncMode `validate:"oneof=best_effort atomic"`
	LogLevel       string          `validate:"oneof=debug info warn error"`
	MigrationsPath string          `validate:"required"`
}

const insecureDefaultSecret = "change-me-local-development-only"

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("JWT_SECRET", insecureDefaultSecret)
	v.SetDefault("JWT_EXPIRY_DURATION", "1h")
	v.SetDefault("JWT_ISSUER", "ledger-reconciler")
	v.SetDefault("RATE_LIMIT", "300-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("ACCOUNT_CACHE_TTL", "5m")
	v.SetDefault("SYNC_MODE", string(domain.SyncBestEffort))
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:        v.GetString("PGSQL_URL"),
		Port:               v.GetString("PORT"),
		IsProduction:       v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:      v.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		JWTIssuer:          v.GetString("JWT_ISSUER"),
		RateLimit:          v.GetString("RATE_LIMIT"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		PosthogAPIKey:      v.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint:    v.GetString("POSTHOG_ENDPOINT"),
		RedisURL:           v.GetString("REDIS_URL"),
		SyncMode:           domain.SyncMode(strings.ToLower(v.GetString("SYNC_MODE"))),
		LogLevel:           strings.ToLower(v.GetString("LOG_LEVEL")),
		MigrationsPath:     v.GetString("MIGRATIONS_PATH"),
	}

	var err error
	if cfg.JWTExpiryDuration, err = time.ParseDuration(v.GetString("JWT_EXPIRY_DURATION")); err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRY_DURATION: %w", err)
	}
	if cfg.AccountCacheTTL, err = time.ParseDuration(v.GetString("ACCOUNT_CACHE_TTL")); err != nil {
		return nil, fmt.Errorf("invalid ACCOUNT_CACHE_TTL: %w", err)
	}

	if cfg.JWTSecret == insecureDefaultSecret {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		slog.Warn("JWT_SECRET not set, using the insecure development secret")
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// SlogLevel maps LogLevel to a slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

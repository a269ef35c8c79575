package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Config represents the application configuration
type Config struct {
	// Bank backend
	APIBaseURL  string
	HTTPTimeout time.Duration

	// Optional JWKS endpoint used to verify session tokens.
	// When empty, token claims are read without signature verification.
	JWKSURL string

	// Environment info
	Environment string
	LogLevel    slog.Level
}

// LoadFromEnv loads the configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{}

	// Required environment variables
	cfg.APIBaseURL = strings.TrimRight(os.Getenv("BANK_API_BASE_URL"), "/")
	if cfg.APIBaseURL == "" {
		return nil, errors.New("BANK_API_BASE_URL environment variable is required")
	}

	cfg.Environment = os.Getenv("ENVIRONMENT")
	if cfg.Environment == "" {
		cfg.Environment = "dev" // Default to dev environment
	}

	cfg.HTTPTimeout = 10 * time.Second
	if raw := os.Getenv("HTTP_TIMEOUT"); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("HTTP_TIMEOUT must be a duration such as 10s: %w", err)
		}
		if timeout <= 0 {
			return nil, errors.New("HTTP_TIMEOUT must be positive")
		}
		cfg.HTTPTimeout = timeout
	}

	cfg.JWKSURL = os.Getenv("AUTH_JWKS_URL")

	cfg.LogLevel = slog.LevelInfo
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(raw)); err != nil {
			return nil, fmt.Errorf("LOG_LEVEL: %w", err)
		}
	}

	return cfg, nil
}

func (c *Config) IsProd() bool {
	return c.Environment == "prod"
}

// VerifiesTokens reports whether session tokens are checked against a JWKS endpoint
func (c *Config) VerifiesTokens() bool {
	return c.JWKSURL != ""
}

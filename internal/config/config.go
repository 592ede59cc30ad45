// Package config loads runtime settings for the task tracker server from
// environment variables. Nothing security sensitive has a default.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

// Config holds runtime settings for the server.
type Config struct {
	HTTPAddr      string `env:"HTTP_ADDR"      envDefault:":8000"`
	MongoURI      string `env:"MONGO_URI"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"task_tracker"`

	// JWTSecret signs session credentials. Rotating it invalidates every
	// outstanding session.
	JWTSecret   string `env:"JWT_SECRET"`
	TokenIssuer string `env:"TOKEN_ISSUER" envDefault:"task-tracker-api"`

	SessionTokenTTL time.Duration `env:"SESSION_TOKEN_TTL" envDefault:"24h"`
	ResetTokenTTL   time.Duration `env:"RESET_TOKEN_TTL"   envDefault:"1h"`

	// ResetBaseURL is the frontend page the reset email links to. The token
	// is appended as the final path segment.
	ResetBaseURL string `env:"RESET_BASE_URL" envDefault:"http://localhost:3001/reset-password"`
}

// New creates a Config instance from environment variables.
func New(logger *zerolog.Logger) *Config {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse environment variables")
	}

	if err := cfg.validate(); err != nil {
		logger.Fatal().Err(err).Msg("failed to validate server configuration")
	}

	return &cfg
}

// validate checks if the server configuration is valid.
func (c *Config) validate() error {
	if c.MongoURI == "" {
		return fmt.Errorf("missing MONGO_URI environment variable")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("missing JWT_SECRET environment variable")
	}
	if c.SessionTokenTTL <= 0 {
		return fmt.Errorf("SESSION_TOKEN_TTL must be positive")
	}
	if c.ResetTokenTTL <= 0 {
		return fmt.Errorf("RESET_TOKEN_TTL must be positive")
	}

	return nil
}

package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Environment    string        `env:"GO_ENV" envDefault:"development"`
	Port           string        `env:"PORT" envDefault:"5000"`
	DBPath         string        `env:"DATABASE_PATH" envDefault:"database.db"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"5s"`
	MaxUploadBytes int64         `env:"MAX_UPLOAD_BYTES" envDefault:"10485760"`
	// CORSAllowedOrigins lists origins allowed to call the JSON API; "*" allows any.
	CORSAllowedOrigins []string   `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	Mail               MailConfig `envPrefix:"MAIL_"`
}

// MailConfig selects and configures the outbound mailer used for registration confirmations.
type MailConfig struct {
	Provider           string `env:"PROVIDER" envDefault:"noop"`
	FromAddress        string `env:"FROM_ADDRESS" envDefault:"events@localhost"`
	FromName           string `env:"FROM_NAME" envDefault:"Event Registration"`
	SESRegion          string `env:"SES_REGION" envDefault:"us-east-1"`
	SESAccessKeyID     string `env:"SES_ACCESS_KEY_ID"`
	SESSecretAccessKey string `env:"SES_SECRET_ACCESS_KEY"`
	InsecureSkipVerify bool   `env:"SES_INSECURE_SKIP_VERIFY" envDefault:"false"`
}

// IsProduction reports whether the process runs with GO_ENV=production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Load loads configuration from environment variables
// It attempts to load from .env file if not in production
func Load() (*Config, error) {
	// In production the .env file is usually absent and the
	// system environment is authoritative.
	if os.Getenv("GO_ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("DATABASE_PATH must not be empty")
	}
	if cfg.RequestTimeout <= 0 {
		return nil, fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", cfg.RequestTimeout)
	}
	return cfg, nil
}

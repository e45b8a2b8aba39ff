package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"FinTwin"`
		Port int    `envconfig:"PORT" default:"8080"`
		// User the TUI acts as; the API derives users from bearer tokens.
		User string `envconfig:"APP_USER" default:"local"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"fintwin"`
	}

	Server struct {
		Timeout        time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		AllowedOrigins []string      `envconfig:"CORS_ORIGINS" default:"*"`
	}

	Auth struct {
		// HMAC secret for bearer tokens issued by the hosted auth provider.
		JWTSecret string `envconfig:"JWT_SECRET"`
	}

	Insights struct {
		CacheTTL time.Duration `envconfig:"INSIGHTS_CACHE_TTL" default:"60s"`
	}

	Enrich struct {
		// Base URL of the optional AI sidecar. Empty disables enrichment.
		BaseURL string        `envconfig:"AI_SERVER_URL"`
		Timeout time.Duration `envconfig:"AI_SERVER_TIMEOUT" default:"10s"`
	}

	Digest struct {
		// Cron spec for the weekly digest job. Empty disables scheduling.
		Schedule string `envconfig:"DIGEST_SCHEDULE" default:"0 8 * * MON"`
		// user id -> email address, e.g. "u1:a@b.com,u2:c@d.com".
		Recipients map[string]string `envconfig:"DIGEST_RECIPIENTS"`

		SMTPHost string `envconfig:"SMTP_HOST"`
		SMTPPort int    `envconfig:"SMTP_PORT" default:"587"`
		SMTPUser string `envconfig:"SMTP_USER"`
		SMTPPass string `envconfig:"SMTP_PASSWORD"`
		From     string `envconfig:"DIGEST_FROM"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func (c *Config) SMTPAddr() string {
	return fmt.Sprintf("%s:%d", c.Digest.SMTPHost, c.Digest.SMTPPort)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

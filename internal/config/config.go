// Package config loads service configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration.
type Config struct {
	Port     string   `env:"PORT" envDefault:"8080"`
	Database Database `envPrefix:"DB_"`
	WhatsApp WhatsApp `envPrefix:"WHATSAPP_"`
}

// Database holds PostgreSQL connection settings.
type Database struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     string `env:"PORT" envDefault:"5432"`
	User     string `env:"USER" envDefault:"postgres"`
	Password string `env:"PASSWORD" envDefault:"postgres"`
	Name     string `env:"NAME" envDefault:"registrations"`
	SSLMode  string `env:"SSLMODE" envDefault:"disable"`
}

// DSN builds a libpq-compatible connection string.
func (d Database) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// WhatsApp holds the outbound notification gateway settings. The API token
// lives here, on the server, and is never exposed to clients.
type WhatsApp struct {
	APIURL              string        `env:"API_URL" envDefault:"https://api.fonnte.com/send"`
	APIToken            string        `env:"API_TOKEN"`
	CountryCode         string        `env:"COUNTRY_CODE" envDefault:"91"`
	CreativityGroupLink string        `env:"CREATIVITY_GROUP_LINK"`
	StageVibeGroupLink  string        `env:"STAGE_VIBE_GROUP_LINK"`
	SendTimeout         time.Duration `env:"SEND_TIMEOUT" envDefault:"10s"`
}

// Load parses configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// Package config loads binary configuration from the environment and sets up
// logging for the CLI and MCP server.
package config

import (
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds application configuration. Values come from MEMOIRE_-prefixed
// environment variables.
type Config struct {
	StoreURL    string `envconfig:"STORE_URL" default:"http://localhost:8080"`
	StoreAPIKey string `envconfig:"STORE_API_KEY" required:"true"`

	AuthURL     string `envconfig:"AUTH_URL"`
	AuthAnonKey string `envconfig:"AUTH_ANON_KEY"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	PageSize int    `envconfig:"PAGE_SIZE" default:"10"`
}

// Load reads configuration from MEMOIRE_-prefixed environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("MEMOIRE", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Init initializes logging from the loaded configuration.
func (c *Config) Init() {
	InitLogger()
	SetLogLevel(ParseLevel(c.LogLevel))

	log.Info().
		Str("store_url", c.StoreURL).
		Str("log_level", c.LogLevel).
		Msg("Application configuration loaded")
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Package common provides shared configuration, logging and version
// utilities for kabu.
package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for the kabu client and reference server.
type Config struct {
	Environment string        `toml:"environment"`
	API         APIConfig     `toml:"api"`
	Session     SessionConfig `toml:"session"`
	Server      ServerConfig  `toml:"server"`
	Auth        AuthConfig    `toml:"auth"`
	Logging     LoggingConfig `toml:"logging"`
}

// APIConfig holds backend connection settings for the client.
type APIConfig struct {
	BaseURL   string `toml:"base_url"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the request timeout duration.
func (c *APIConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// SessionConfig holds local session persistence settings.
type SessionConfig struct {
	Path string `toml:"path"` // directory holding the persisted session record
}

// ServerConfig holds HTTP settings for the reference server.
type ServerConfig struct {
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
	DataDir string `toml:"data_dir"` // user and portfolio records
}

// AuthConfig holds token issuing settings for the reference server.
type AuthConfig struct {
	JWTSecret     string `toml:"jwt_secret"`
	AccessExpiry  string `toml:"access_expiry"`  // duration string, default "30m"
	RefreshExpiry string `toml:"refresh_expiry"` // duration string, default "168h"
}

// GetAccessExpiry parses and returns the access token lifetime.
func (c *AuthConfig) GetAccessExpiry() time.Duration {
	d, err := time.ParseDuration(c.AccessExpiry)
	if err != nil {
		return 30 * time.Minute
	}
	return d
}

// GetRefreshExpiry parses and returns the refresh token lifetime.
func (c *AuthConfig) GetRefreshExpiry() time.Duration {
	d, err := time.ParseDuration(c.RefreshExpiry)
	if err != nil {
		return 7 * 24 * time.Hour
	}
	return d
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `toml:"level"`
}

// NewDefaultConfig returns a Config with sensible defaults.
func NewDefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Environment: "development",
		API: APIConfig{
			BaseURL:   "http://localhost:8000/api/v1",
			RateLimit: 10,
			Timeout:   "30s",
		},
		Session: SessionConfig{
			Path: filepath.Join(home, ".kabu"),
		},
		Server: ServerConfig{
			Host:    "0.0.0.0",
			Port:    8000,
			DataDir: "data",
		},
		Auth: AuthConfig{
			JWTSecret:     "dev-jwt-secret-change-in-production",
			AccessExpiry:  "30m",
			RefreshExpiry: "168h",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides.
// Later files override earlier ones; missing files are skipped.
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)
	return config, nil
}

// applyEnvOverrides applies KABU_* environment variable overrides.
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("KABU_ENV"); env != "" {
		config.Environment = env
	}
	if url := os.Getenv("KABU_API_URL"); url != "" {
		config.API.BaseURL = url
	}
	if path := os.Getenv("KABU_SESSION_PATH"); path != "" {
		config.Session.Path = path
	}
	if host := os.Getenv("KABU_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("KABU_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if dir := os.Getenv("KABU_DATA_DIR"); dir != "" {
		config.Server.DataDir = dir
	}
	if v := os.Getenv("KABU_JWT_SECRET"); v != "" {
		config.Auth.JWTSecret = v
	}
	if level := os.Getenv("KABU_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}

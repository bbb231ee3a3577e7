// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-passkey.
//
// go-passkey is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

// Package config loads the server configuration from a YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config represents the complete server configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	CORS    CORSConfig    `yaml:"cors"`
	Session SessionConfig `yaml:"session"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// ServerConfig contains server-level settings. Timeouts are in seconds.
type ServerConfig struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	ReadTimeout  int    `yaml:"read_timeout"`
	WriteTimeout int    `yaml:"write_timeout"`
	IdleTimeout  int    `yaml:"idle_timeout"`
}

// LoggingConfig controls logging behavior
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// CORSConfig controls cross-origin access for the browser front end
type CORSConfig struct {
	// AllowedOrigin is the front-end origin allowed to send
	// credentialed requests.
	AllowedOrigin string `yaml:"allowed_origin"`
}

// SessionConfig controls the authentication cookie
type SessionConfig struct {
	// CookieName is the session cookie name.
	CookieName string `yaml:"cookie_name"`

	// MaxAge is the cookie lifetime in seconds.
	MaxAge int `yaml:"max_age"`
}

// MetricsConfig controls Prometheus metrics exposure
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Default returns a configuration with default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "",
			Port:         3001,
			ReadTimeout:  15,
			WriteTimeout: 15,
			IdleTimeout:  60,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		CORS: CORSConfig{
			AllowedOrigin: "http://localhost:5173",
		},
		Session: SessionConfig{
			CookieName: "authToken",
			MaxAge:     24 * 60 * 60,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// Load reads the configuration from the given path. A missing file is
// not an error; defaults are used. Environment variables override the
// file in either case.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides. PORT and
// FRONTEND_URL match the variables the original deployment used.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("FRONTEND_URL"); v != "" {
		cfg.CORS.AllowedOrigin = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		// Valid
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "text", "json":
		// Valid
	default:
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}

	if c.Session.CookieName == "" {
		return fmt.Errorf("session cookie name is required")
	}
	if c.Session.MaxAge <= 0 {
		return fmt.Errorf("invalid session max age: %d", c.Session.MaxAge)
	}

	return nil
}

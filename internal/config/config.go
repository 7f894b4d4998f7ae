// Spokeworks Marketplace - Multi-Vendor Bicycle Marketplace
// Copyright 2026 Spokeworks
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/spokeworks/marketplace

// Package config provides layered configuration for the marketplace
// recommendation service. Settings are loaded from built-in defaults, an
// optional YAML file, and environment variables, in increasing order of
// precedence.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/spokeworks/marketplace/internal/recommend"
)

// Config is the complete service configuration.
type Config struct {
	Server    ServerConfig     `koanf:"server"`
	Database  DatabaseConfig   `koanf:"database"`
	API       APIConfig        `koanf:"api"`
	Logging   LoggingConfig    `koanf:"logging"`
	Recommend recommend.Config `koanf:"recommend"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	// Host is the listen address.
	Host string `koanf:"host" validate:"required"`

	// Port is the listen port.
	Port int `koanf:"port" validate:"min=1,max=65535"`

	// ReadTimeout bounds request header and body reads.
	ReadTimeout time.Duration `koanf:"read_timeout" validate:"gt=0"`

	// WriteTimeout bounds response writes.
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"gt=0"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

// DatabaseConfig holds the DuckDB settings.
type DatabaseConfig struct {
	// Path is the database file path. ":memory:" for an in-memory store.
	Path string `koanf:"path" validate:"required"`

	// MaxMemory is the DuckDB memory limit (e.g. "2GB").
	MaxMemory string `koanf:"max_memory"`

	// Threads is the DuckDB thread count. Zero uses the runtime default.
	Threads int `koanf:"threads" validate:"min=0"`
}

// APIConfig holds HTTP API behavior settings.
type APIConfig struct {
	// CORSOrigins lists the allowed CORS origins.
	CORSOrigins []string `koanf:"cors_origins"`

	// RateLimitRequests is the per-IP request budget per window. Zero
	// disables rate limiting.
	RateLimitRequests int `koanf:"rate_limit_requests" validate:"min=0"`

	// RateLimitWindow is the rate-limit window.
	RateLimitWindow time.Duration `koanf:"rate_limit_window" validate:"gt=0"`
}

// LoggingConfig holds the logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level" validate:"oneof=trace debug info warn error"`

	// Format is the output format: json or console.
	Format string `koanf:"format" validate:"oneof=json console"`

	// Caller includes caller file and line in log output.
	Caller bool `koanf:"caller"`
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	if err := c.Recommend.Validate(); err != nil {
		return fmt.Errorf("recommend config: %w", err)
	}
	return nil
}

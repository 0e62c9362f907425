// Fundviz - Crowdfunding Marketplace Analytics and Network Visualization
// Copyright 2026 Fundviz Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fundviz/fundviz

// Package config loads application configuration with Koanf v2.
//
// Configuration is layered, highest priority last:
//
//  1. Built-in defaults
//  2. Optional YAML config file (config.yaml, FUNDVIZ_CONFIG to override)
//  3. Environment variables
//
// Config is immutable after Load() and safe for concurrent reads.
package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig `koanf:"database"`
	Server   ServerConfig   `koanf:"server"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
	API      APIConfig      `koanf:"api"`
}

// DatabaseConfig holds DuckDB settings.
//
// Environment variables:
//   - DUCKDB_PATH: Database file path (":memory:" for ephemeral)
//   - DUCKDB_MAX_MEMORY: Memory limit (default: 1GB)
//   - DUCKDB_THREADS: Worker threads (default: 0 = NumCPU)
//   - SEED_DEMO_DATA: Load demo marketplace records at startup
type DatabaseConfig struct {
	Path         string `koanf:"path"`
	MaxMemory    string `koanf:"max_memory"`
	Threads      int    `koanf:"threads"`
	SeedDemoData bool   `koanf:"seed_demo_data"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// SecurityConfig holds authentication settings.
//
// AuthMode selects the access gate:
//   - "jwt": staff endpoints require a Bearer token with the staff role
//     (default). JWTSecret, AdminUsername and AdminPassword are required.
//   - "none": no authentication; every caller is treated as staff.
//     Development only.
type SecurityConfig struct {
	AuthMode      string        `koanf:"auth_mode"`
	JWTSecret     string        `koanf:"jwt_secret"`
	TokenTTL      time.Duration `koanf:"token_ttl"`
	AdminUsername string        `koanf:"admin_username"`
	AdminPassword string        `koanf:"admin_password"`
	CORSOrigins   []string      `koanf:"cors_origins"`
	RateLimit     int           `koanf:"rate_limit"` // requests per minute per IP
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// APIConfig holds response shaping limits.
type APIConfig struct {
	// MaxCategories caps the category list embedded into chart templates.
	MaxCategories int `koanf:"max_categories"`
}

// Validate checks the configuration for consistency. It is called by Load
// after all layers are merged.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database path must not be empty")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}

	switch c.Security.AuthMode {
	case "none":
		// development mode, nothing to check
	case "jwt":
		if len(c.Security.JWTSecret) < 32 {
			return fmt.Errorf("jwt_secret must be at least 32 characters in jwt auth mode")
		}
		if c.Security.AdminUsername == "" {
			return fmt.Errorf("admin_username is required in jwt auth mode")
		}
		if len(c.Security.AdminPassword) < 8 {
			return fmt.Errorf("admin_password must be at least 8 characters in jwt auth mode")
		}
	default:
		return fmt.Errorf("unknown auth_mode %q (expected jwt or none)", c.Security.AuthMode)
	}

	if c.API.MaxCategories < 0 {
		return fmt.Errorf("max_categories must not be negative")
	}
	return nil
}

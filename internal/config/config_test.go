// Fundviz - Crowdfunding Marketplace Analytics and Network Visualization
// Copyright 2026 Fundviz Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fundviz/fundviz

package config

import (
	"strings"
	"testing"
)

func validTestConfig() *Config {
	cfg := defaultConfig()
	cfg.Security.AuthMode = "none"
	return cfg
}

func TestDefaultsValidateInNoneMode(t *testing.T) {
	cfg := validTestConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config with auth_mode=none should validate, got: %v", err)
	}
}

func TestValidateJWTModeRequiresCredentials(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "short secret",
			mutate:  func(c *Config) { c.Security.JWTSecret = "short" },
			wantErr: "jwt_secret",
		},
		{
			name: "missing admin username",
			mutate: func(c *Config) {
				c.Security.JWTSecret = strings.Repeat("s", 32)
				c.Security.AdminUsername = ""
				c.Security.AdminPassword = "supersecret"
			},
			wantErr: "admin_username",
		},
		{
			name: "short admin password",
			mutate: func(c *Config) {
				c.Security.JWTSecret = strings.Repeat("s", 32)
				c.Security.AdminUsername = "admin"
				c.Security.AdminPassword = "short"
			},
			wantErr: "admin_password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.Security.AuthMode = "jwt"
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error mentioning %q, got: %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateRejectsUnknownAuthMode(t *testing.T) {
	cfg := validTestConfig()
	cfg.Security.AuthMode = "oauth"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown auth_mode")
	}
}

func TestValidateRejectsBadPort(t *testing.T) {
	cfg := validTestConfig()
	cfg.Server.Port = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for port 0")
	}
	cfg.Server.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for port 70000")
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"DUCKDB_PATH", "database.path"},
		{"HTTP_PORT", "server.port"},
		{"JWT_SECRET", "security.jwt_secret"},
		{"LOG_LEVEL", "logging.level"},
		{"SEED_DEMO_DATA", "database.seed_demo_data"},
		{"PATH", ""},     // unrelated env vars are dropped
		{"HOSTNAME", ""}, // unrelated env vars are dropped
	}

	for _, tt := range tests {
		if got := envTransformFunc(tt.env); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.want)
		}
	}
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	t.Setenv("AUTH_MODE", "none")
	t.Setenv("DUCKDB_PATH", ":memory:")
	t.Setenv("HTTP_PORT", "9999")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Database.Path != ":memory:" {
		t.Errorf("expected database path override, got %q", cfg.Database.Path)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("expected port 9999, got %d", cfg.Server.Port)
	}
	if len(cfg.Security.CORSOrigins) != 2 || cfg.Security.CORSOrigins[0] != "https://a.example" {
		t.Errorf("expected parsed CORS origins, got %v", cfg.Security.CORSOrigins)
	}
}

// Fundviz - Crowdfunding Marketplace Analytics and Network Visualization
// Copyright 2026 Fundviz Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fundviz/fundviz

// Package main is the entry point for the Fundviz server.
//
// Fundviz serves the analytics pages of a crowdfunding bounty marketplace:
// sunburst and circle-packing hierarchies of bounty data, spiral and
// calendar-heatmap time series of engagement metrics, and a force-directed
// graph of the funding network.
//
// The server initializes components in the following order:
//
//  1. Configuration: Koanf v2 layered load (defaults, YAML file, env vars)
//  2. Database: DuckDB with the marketplace schema
//  3. Authentication: JWT staff gate or no-auth mode
//  4. HTTP Server: Chi router with the visualization routes
//
// # Configuration
//
// Common environment variables:
//   - DUCKDB_PATH: Database file path (":memory:" for ephemeral)
//   - HTTP_PORT: Listen port (default: 8040)
//   - AUTH_MODE: "jwt" (default) or "none" (development only)
//   - JWT_SECRET: 32+ character secret for token signing
//   - ADMIN_USERNAME / ADMIN_PASSWORD: staff login credentials
//   - SEED_DEMO_DATA: load demo marketplace records at startup
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM: it stops
// accepting new connections, waits for in-flight requests up to
// SHUTDOWN_TIMEOUT, then closes the database.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/fundviz/fundviz/internal/api"
	"github.com/fundviz/fundviz/internal/auth"
	"github.com/fundviz/fundviz/internal/config"
	"github.com/fundviz/fundviz/internal/database"
	"github.com/fundviz/fundviz/internal/logging"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("auth_mode", cfg.Security.AuthMode).
		Msg("Configuration loaded")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	if cfg.Database.SeedDemoData {
		logging.Info().Msg("Demo data seeding enabled (SEED_DEMO_DATA=true)")
		if err := db.SeedDemoData(context.Background()); err != nil {
			logging.Error().Err(err).Msg("Failed to seed demo data")
			return
		}
	}

	if cfg.Security.AuthMode == "none" {
		logging.Warn().Msg("Authentication is DISABLED (AUTH_MODE=none); all visualization routes are public")
		logging.Warn().Msg("NEVER use AUTH_MODE=none in production or on public networks!")
	}

	handler, err := api.NewHandler(db, cfg)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to create API handler")
		return
	}
	authMW, err := auth.NewMiddleware(&cfg.Security)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to create auth middleware")
		return
	}

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      api.NewRouter(handler, authMW),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		logging.Error().Err(err).Msg("HTTP server failed")
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown failed")
	} else {
		logging.Info().Msg("Server stopped")
	}
}

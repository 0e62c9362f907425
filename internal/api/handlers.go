// Fundviz - Crowdfunding Marketplace Analytics and Network Visualization
// Copyright 2026 Fundviz Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fundviz/fundviz

// Package api wires the visualization pipelines to HTTP: chi routing, the
// staff gate, HTML template pages and the JSON/CSV data endpoints the
// charts poll.
package api

import (
	"fmt"
	"time"

	"github.com/fundviz/fundviz/internal/auth"
	"github.com/fundviz/fundviz/internal/config"
	"github.com/fundviz/fundviz/internal/database"
	"github.com/fundviz/fundviz/internal/dataviz"
)

// Handler carries the dependencies of all API handlers.
//
// Handler methods are split across files:
//   - handlers.go: struct and constructor (this file)
//   - responses.go: shared response helpers
//   - handlers_viz.go: the four visualization families and the index
//   - handlers_auth.go: login
//   - handlers_health.go: health probe
type Handler struct {
	db          *database.DB
	cfg         *config.Config
	aggregator  *dataviz.Aggregator
	graphs      *dataviz.GraphBuilder
	jwtManager  *auth.JWTManager
	credentials *auth.CredentialChecker
	templates   *TemplateRenderer
	startTime   time.Time
}

// NewHandler creates the API handler. The JWT manager and credential
// checker are only built in jwt auth mode; in none mode the login endpoint
// reports authentication as disabled.
func NewHandler(db *database.DB, cfg *config.Config) (*Handler, error) {
	templates, err := NewTemplateRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	h := &Handler{
		db:         db,
		cfg:        cfg,
		aggregator: dataviz.NewAggregator(db),
		graphs:     dataviz.NewGraphBuilder(db, nil),
		templates:  templates,
		startTime:  time.Now(),
	}

	if cfg.Security.AuthMode == "jwt" {
		jwtManager, err := auth.NewJWTManager(&cfg.Security)
		if err != nil {
			return nil, fmt.Errorf("failed to create handler: %w", err)
		}
		credentials, err := auth.NewCredentialChecker(cfg.Security.AdminUsername, cfg.Security.AdminPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to create handler: %w", err)
		}
		h.jwtManager = jwtManager
		h.credentials = credentials
	}

	return h, nil
}

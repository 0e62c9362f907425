// Fundviz - Crowdfunding Marketplace Analytics and Network Visualization
// Copyright 2026 Fundviz Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fundviz/fundviz

package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/fundviz/fundviz/internal/config"
	"github.com/fundviz/fundviz/internal/logging"
	"github.com/fundviz/fundviz/internal/models"
)

type contextKey string

const claimsContextKey contextKey = "auth_claims"

// ClaimsFromContext returns the validated claims the middleware attached,
// or false when the request was not authenticated (auth_mode none).
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*Claims)
	return claims, ok
}

// Middleware is the staff gate applied to every visualization route.
type Middleware struct {
	manager *JWTManager
	mode    string
}

// NewMiddleware builds the gate for the configured auth mode. In "none"
// mode every caller passes; in "jwt" mode a valid Bearer token with the
// staff role is required.
func NewMiddleware(cfg *config.SecurityConfig) (*Middleware, error) {
	m := &Middleware{mode: cfg.AuthMode}
	if cfg.AuthMode == "jwt" {
		manager, err := NewJWTManager(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create auth middleware: %w", err)
		}
		m.manager = manager
	}
	return m, nil
}

// RequireStaff rejects requests without a valid staff token. A failed check
// terminates the request before any pipeline logic runs.
func (m *Middleware) RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.mode == "none" {
			next.ServeHTTP(w, r)
			return
		}

		token := extractBearerToken(r)
		if token == "" {
			writeAuthError(w, http.StatusUnauthorized, "AUTH_REQUIRED", "authentication required")
			return
		}

		claims, err := m.manager.ValidateToken(token)
		if err != nil {
			logging.Debug().Err(err).Str("path", r.URL.Path).Msg("Token validation failed")
			writeAuthError(w, http.StatusUnauthorized, "AUTH_REQUIRED", "invalid or expired token")
			return
		}

		if claims.Role != RoleStaff {
			writeAuthError(w, http.StatusForbidden, "STAFF_REQUIRED", "staff access required")
			return
		}

		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return header[len(prefix):]
	}
	return ""
}

func writeAuthError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := models.APIResponse{
		Status:   "error",
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
		Error: &models.APIError{
			Code:    code,
			Message: message,
		},
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logging.Error().Err(err).Msg("Failed to encode auth error response")
	}
}

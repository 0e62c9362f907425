// Fundviz - Crowdfunding Marketplace Analytics and Network Visualization
// Copyright 2026 Fundviz Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fundviz/fundviz

package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/fundviz/fundviz/internal/auth"
	"github.com/fundviz/fundviz/internal/logging"
	"github.com/fundviz/fundviz/internal/validation"
)

// LoginRequest is the credential payload for POST /api/v1/auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued token.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Login checks the admin credentials and issues a staff token. Disabled in
// auth_mode none, where no token is needed.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	if h.jwtManager == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "authentication is disabled", nil)
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body", err)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	if err := h.credentials.Check(req.Username, req.Password); err != nil {
		logging.Warn().Str("username", req.Username).Msg("Failed login attempt")
		respondError(w, http.StatusUnauthorized, "AUTH_REQUIRED", "invalid credentials", nil)
		return
	}

	token, err := h.jwtManager.GenerateToken(req.Username, auth.RoleStaff)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to issue token", err)
		return
	}

	respondSuccess(w, LoginResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(h.cfg.Security.TokenTTL).UTC(),
	}, started)
}

// Fundviz - Crowdfunding Marketplace Analytics and Network Visualization
// Copyright 2026 Fundviz Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fundviz/fundviz

package api

import (
	"net/http"
	"time"
)

// HealthResponse is the body of GET /api/v1/health.
type HealthResponse struct {
	Status        string `json:"status"`
	Database      string `json:"database"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// Health reports liveness and database connectivity. It is unauthenticated
// so orchestrators can probe it.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	resp := HealthResponse{
		Status:        "healthy",
		Database:      "connected",
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
	}
	status := http.StatusOK
	if err := h.db.Ping(r.Context()); err != nil {
		resp.Status = "degraded"
		resp.Database = "unreachable"
		status = http.StatusServiceUnavailable
	}

	respondJSON(w, status, successEnvelope(resp, started))
}

// Fundviz - Crowdfunding Marketplace Analytics and Network Visualization
// Copyright 2026 Fundviz Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fundviz/fundviz

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fundviz/fundviz/internal/auth"
	"github.com/fundviz/fundviz/internal/middleware"
)

// NewRouter assembles the full route tree. Health, login and Prometheus
// scraping are public; every visualization route sits behind the staff gate.
func NewRouter(h *Handler, authMW *auth.Middleware) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.cfg.Security.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	if limit := h.cfg.Security.RateLimit; limit > 0 {
		r.Use(httprate.LimitByIP(limit, time.Minute))
	}
	r.Use(middleware.PrometheusMetrics)

	r.Get("/api/v1/health", h.Health)
	r.Post("/api/v1/auth/login", h.Login)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/viz", func(r chi.Router) {
		r.Use(authMW.RequireStaff)

		r.Get("/", h.VizIndex)
		r.Get("/index", h.VizIndex)

		r.Get("/sunburst", h.VizSunburst)
		r.Get("/sunburst/{vizType}", h.VizSunburst)
		r.Get("/circles", h.VizCircles)
		r.Get("/circles/{vizType}", h.VizCircles)

		r.Get("/spiral", h.VizSpiral)
		r.Get("/spiral/{key}", h.VizSpiral)
		r.Get("/heatmap", h.VizHeatmap)
		r.Get("/heatmap/{key}", h.VizHeatmap)

		r.Get("/graph", h.VizGraph)
		r.Get("/graph/{graphType}", h.VizGraph)
	})

	return r
}

// Fundviz - Crowdfunding Marketplace Analytics and Network Visualization
// Copyright 2026 Fundviz Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fundviz/fundviz

// Package metrics registers and records the Prometheus metrics exposed at
// /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	apiRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fundviz_api_requests_total",
		Help: "Total API requests by method, path and status code.",
	}, []string{"method", "path", "status"})

	apiRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fundviz_api_request_duration_seconds",
		Help:    "API request latency by method and path.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	apiActiveRequests = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "fundviz_api_active_requests",
		Help: "Number of API requests currently being served.",
	})

	vizBuildDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fundviz_viz_build_duration_seconds",
		Help:    "Time spent building one visualization payload.",
		Buckets: prometheus.DefBuckets,
	}, []string{"pipeline", "viz_type"})
)

// RecordAPIRequest records one completed API request.
func RecordAPIRequest(method, path, status string, duration time.Duration) {
	apiRequestsTotal.WithLabelValues(method, path, status).Inc()
	apiRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(active bool) {
	if active {
		apiActiveRequests.Inc()
	} else {
		apiActiveRequests.Dec()
	}
}

// ObserveVizBuild records the duration of one pipeline run
// (aggregate/tree/graph/heatmap) for the given visualization type.
func ObserveVizBuild(pipeline, vizType string, duration time.Duration) {
	vizBuildDuration.WithLabelValues(pipeline, vizType).Observe(duration.Seconds())
}

// Fundviz - Crowdfunding Marketplace Analytics and Network Visualization
// Copyright 2026 Fundviz Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fundviz/fundviz

package api

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/fundviz/fundviz/internal/dataviz"
	"github.com/fundviz/fundviz/internal/metrics"
	"github.com/fundviz/fundviz/internal/models"
)

const (
	// spiralHour is the hour-of-day bucket the spiral chart samples;
	// picking one hour per day turns the hourly series into a daily one.
	spiralHour = 1

	// heatmapWindow is the trailing window the heatmap covers.
	heatmapWindow = 14 * 24 * time.Hour

	// defaultStatKey is the metric shown before the user picks one.
	defaultStatKey = "email_open"
)

// VizIndex renders the visualization index page.
func (h *Handler) VizIndex(w http.ResponseWriter, r *http.Request) {
	h.templates.Render(w, "index", map[string]interface{}{
		"title": "Data Visualizations",
	})
}

// VizSunburst serves the sunburst family: HTML page, or CSV/JSON aggregate
// when ?data= is present.
func (h *Handler) VizSunburst(w http.ResponseWriter, r *http.Request) {
	h.serveSunburst(w, r, "sunburst")
}

// VizCircles is the circle-packing rendering of the same aggregates.
func (h *Handler) VizCircles(w http.ResponseWriter, r *http.Request) {
	h.serveSunburst(w, r, "circles")
}

func (h *Handler) serveSunburst(w http.ResponseWriter, r *http.Request, page string) {
	vizType := dataviz.NormalizeVizType(chi.URLParam(r, "vizType"))

	if r.URL.Query().Get("data") != "" {
		h.serveSunburstData(w, r, vizType)
		return
	}

	title, comment := sunburstMeta(vizType)
	categories, err := h.sunburstCategories(r.Context(), vizType)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to load categories", err)
		return
	}
	categoriesJSON, err := json.Marshal(categories)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to encode categories", err)
		return
	}

	h.templates.Render(w, page, map[string]interface{}{
		"title":        title,
		"comment":      comment,
		"viz_type":     string(vizType),
		"page_route":   page,
		"type_options": dataviz.SunburstTypes,
		"categories":   template.JS(categoriesJSON),
	})
}

func (h *Handler) serveSunburstData(w http.ResponseWriter, r *http.Request, vizType dataviz.VizType) {
	started := time.Now()
	aggregate, err := h.aggregator.Aggregate(r.Context(), vizType)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "aggregation failed", err)
		return
	}
	metrics.ObserveVizBuild("aggregate", string(vizType), time.Since(started))

	if r.URL.Query().Get("format") == "json" {
		tree, err := dataviz.BuildTree(aggregate)
		if err != nil {
			if errors.Is(err, dataviz.ErrLeafConflict) {
				respondError(w, http.StatusInternalServerError, "TREE_CONFLICT", "aggregate produced conflicting leaves", err)
				return
			}
			respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "tree construction failed", err)
			return
		}
		respondRawJSON(w, tree)
		return
	}

	// default format: one "label,magnitude" line per aggregate row, in
	// sorted label order for reproducible output
	labels := make([]string, 0, len(aggregate))
	for label := range aggregate {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	lines := make([]string, 0, len(labels))
	for _, label := range labels {
		lines = append(lines, label+","+formatMagnitude(aggregate[label]))
	}
	respondCSV(w, strings.Join(lines, "\n"))
}

func formatMagnitude(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func sunburstMeta(vizType dataviz.VizType) (title, comment string) {
	switch vizType {
	case dataviz.VizRepos:
		return "Github Structure of All Bounties", "of bounties value with this github structure"
	case dataviz.VizFulfillers:
		return "Fulfillers", "of bounties value with this fulfiller"
	case dataviz.VizFunders:
		return "Funders", "of bounties value with this funder"
	default:
		return "Status Progression Viz", "of statuses begin with this sequence of status"
	}
}

// sunburstCategories builds the category list embedded into the chart page
// for client-side coloring. The list walks every revision, not just the
// canonical ones, and is capped by api.max_categories.
func (h *Handler) sunburstCategories(ctx context.Context, vizType dataviz.VizType) ([]string, error) {
	categories := []string{}

	switch vizType {
	case dataviz.VizStatusProgression:
		statuses, err := h.db.DistinctStatuses(ctx)
		if err != nil {
			return nil, err
		}
		categories = append(categories, statuses...)
		categories = append(categories, dataviz.PadToken)

	case dataviz.VizRepos:
		bounties, err := h.db.BountiesByNetwork(ctx, models.NetworkMainnet)
		if err != nil {
			return nil, err
		}
		for i := range bounties {
			categories = append(categories, strings.ReplaceAll(bounties[i].OrgName, "-", ""))
		}
		for i := range bounties {
			categories = append(categories, strings.ReplaceAll(bounties[i].GithubRepoName, "-", ""))
		}
		for i := range bounties {
			categories = append(categories, strconv.FormatInt(bounties[i].GithubIssueNumber, 10))
		}

	case dataviz.VizFulfillers:
		handles, err := h.db.FulfillerHandlesByNetwork(ctx, models.NetworkMainnet)
		if err != nil {
			return nil, err
		}
		for _, handle := range handles {
			categories = append(categories, strings.ReplaceAll(handle, "-", ""))
		}

	case dataviz.VizFunders:
		bounties, err := h.db.BountiesByNetwork(ctx, models.NetworkMainnet)
		if err != nil {
			return nil, err
		}
		for i := range bounties {
			categories = append(categories, strings.ReplaceAll(bounties[i].BountyOwnerGithubUsername, "-", ""))
		}
	}

	if limit := h.cfg.API.MaxCategories; limit > 0 && len(categories) > limit {
		categories = categories[:limit]
	}
	return categories, nil
}

// VizSpiral serves the spiral time-series: daily samples of one metric at
// the fixed hour-of-day bucket.
func (h *Handler) VizSpiral(w http.ResponseWriter, r *http.Request) {
	options, err := h.db.DistinctStatKeysAtHour(r.Context(), spiralHour)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to load metric keys", err)
		return
	}
	key := normalizeStatKey(chi.URLParam(r, "key"), options)

	stats, err := h.db.StatsAtHour(r.Context(), key, spiralHour)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to load stats", err)
		return
	}

	if r.URL.Query().Get("data") != "" {
		respondRawJSON(w, stats)
		return
	}

	statsJSON, err := json.Marshal(stats)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to encode stats", err)
		return
	}
	h.templates.Render(w, "spiral", map[string]interface{}{
		"title":        "Spiral",
		"key":          key,
		"viz_type":     key,
		"page_route":   "spiral",
		"type_options": options,
		"stats":        template.JS(statsJSON),
	})
}

// VizHeatmap serves the calendar heatmap: the trailing two weeks of one
// metric, normalized against the window maximum and scaled to 800.
func (h *Handler) VizHeatmap(w http.ResponseWriter, r *http.Request) {
	after := time.Now().UTC().Add(-heatmapWindow)

	options, err := h.db.DistinctStatKeysSince(r.Context(), after)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to load metric keys", err)
		return
	}
	key := normalizeStatKey(chi.URLParam(r, "key"), options)

	stats, err := h.db.StatsInWindow(r.Context(), key, after)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to load stats", err)
		return
	}

	if r.URL.Query().Get("data") != "" {
		started := time.Now()
		series := dataviz.BuildHeatmapSeries(stats)
		metrics.ObserveVizBuild("heatmap", key, time.Since(started))
		respondRawJSON(w, series)
		return
	}

	h.templates.Render(w, "heatmap", map[string]interface{}{
		"title":        "Heatmap",
		"key":          key,
		"viz_type":     key,
		"page_route":   "heatmap",
		"type_options": options,
	})
}

// normalizeStatKey validates the requested metric key against the window's
// available keys, substituting the first available one when invalid.
func normalizeStatKey(requested string, options []string) string {
	if requested == "" {
		requested = defaultStatKey
	}
	for _, option := range options {
		if option == requested {
			return requested
		}
	}
	if len(options) > 0 {
		return options[0]
	}
	return requested
}

// VizGraph serves the force-directed network graph.
func (h *Handler) VizGraph(w http.ResponseWriter, r *http.Request) {
	graphType := dataviz.NormalizeGraphType(chi.URLParam(r, "graphType"))

	if r.URL.Query().Get("data") != "" {
		started := time.Now()
		graph, err := h.graphs.Build(r.Context(), graphType)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "graph construction failed", err)
			return
		}
		metrics.ObserveVizBuild("graph", string(graphType), time.Since(started))
		respondRawJSON(w, graph)
		return
	}

	h.templates.Render(w, "graph", map[string]interface{}{
		"title":        "Graph of the Fundviz Network",
		"viz_type":     string(graphType),
		"page_route":   "graph",
		"type_options": dataviz.GraphTypes,
	})
}

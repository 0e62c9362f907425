// Fundviz - Crowdfunding Marketplace Analytics and Network Visualization
// Copyright 2026 Fundviz Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fundviz/fundviz

package dataviz

import (
	"testing"
	"time"

	"github.com/fundviz/fundviz/internal/models"
)

func TestBuildHeatmapSeriesNormalization(t *testing.T) {
	ts := time.Date(2026, 8, 20, 14, 37, 12, 0, time.UTC)
	stats := []models.Stat{
		{Key: "email_open", CreatedOn: ts, ValSinceHour: 10},
		{Key: "email_open", CreatedOn: ts.Add(time.Hour), ValSinceHour: 40},
	}

	series := BuildHeatmapSeries(stats)
	if len(series.Data) != 2 {
		t.Fatalf("expected 2 points, got %d", len(series.Data))
	}
	if got := series.Data[0].Value[HeatmapSeriesKey]; got != 200.0 {
		t.Errorf("expected 10/40 scaled to 200, got %v", got)
	}
	if got := series.Data[1].Value[HeatmapSeriesKey]; got != 800.0 {
		t.Errorf("expected window max scaled to 800, got %v", got)
	}
	// minutes and seconds truncated to the top of the hour
	if series.Data[0].Timestamp != "2026-08-20T14:00:00" {
		t.Errorf("unexpected timestamp %q", series.Data[0].Timestamp)
	}
}

func TestBuildHeatmapSeriesEmptyWindow(t *testing.T) {
	series := BuildHeatmapSeries(nil)
	if series.Data == nil || len(series.Data) != 0 {
		t.Errorf("expected empty but non-nil data, got %#v", series.Data)
	}

	// all-zero deltas would divide by zero; expect empty output instead
	zero := []models.Stat{{Key: "k", CreatedOn: time.Now(), ValSinceHour: 0}}
	if series := BuildHeatmapSeries(zero); len(series.Data) != 0 {
		t.Errorf("expected empty series for all-zero window, got %v", series.Data)
	}
}

func TestBuildHeatmapSeriesPreservesOrder(t *testing.T) {
	base := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	stats := []models.Stat{
		{Key: "k", CreatedOn: base.Add(2 * time.Hour), ValSinceHour: 3},
		{Key: "k", CreatedOn: base, ValSinceHour: 1},
		{Key: "k", CreatedOn: base.Add(time.Hour), ValSinceHour: 2},
	}

	series := BuildHeatmapSeries(stats)
	want := []string{"2026-08-20T02:00:00", "2026-08-20T00:00:00", "2026-08-20T01:00:00"}
	for i, ts := range want {
		if series.Data[i].Timestamp != ts {
			t.Errorf("point %d: expected %q, got %q", i, ts, series.Data[i].Timestamp)
		}
	}
}

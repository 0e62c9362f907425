// Fundviz - Crowdfunding Marketplace Analytics and Network Visualization
// Copyright 2026 Fundviz Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fundviz/fundviz

package dataviz

import (
	"github.com/fundviz/fundviz/internal/models"
)

// HeatmapCeiling is the value the largest delta in the window is scaled to.
const HeatmapCeiling = 800.0

// HeatmapSeriesKey is the series name the charting library expects inside
// each point's value map.
const HeatmapSeriesKey = "PM2.5"

// heatmapTimeLayout pins every point to the top of its hour.
const heatmapTimeLayout = "2006-01-02T15:00:00"

// BuildHeatmapSeries normalizes a window of stat samples against the
// window's maximum delta, scaled to HeatmapCeiling. Sample order is
// preserved. An empty or all-zero window yields an empty series rather
// than a division by zero.
func BuildHeatmapSeries(stats []models.Stat) models.HeatmapSeries {
	series := models.HeatmapSeries{Data: []models.HeatmapPoint{}}

	max := 0.0
	for _, s := range stats {
		if s.ValSinceHour > max {
			max = s.ValSinceHour
		}
	}
	if max == 0 {
		return series
	}

	for _, s := range stats {
		series.Data = append(series.Data, models.HeatmapPoint{
			Timestamp: s.CreatedOn.Format(heatmapTimeLayout),
			Value:     map[string]float64{HeatmapSeriesKey: s.ValSinceHour * HeatmapCeiling / max},
		})
	}
	return series
}

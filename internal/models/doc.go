// Fundviz - Crowdfunding Marketplace Analytics and Network Visualization
// Copyright 2026 Fundviz Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fundviz/fundviz

// Package models defines the data structures shared across the application.
//
// Two kinds of types live here:
//
//   - Persisted marketplace records (Bounty, Fulfillment, Tip, Profile, Stat)
//     owned by the database layer and consumed read-only by the visualization
//     pipelines.
//
//   - Ephemeral visualization payloads (TreeNode, Graph, GraphNode, GraphEdge,
//     HeatmapPoint) built fresh per request and never persisted. They are
//     constructed bottom-up and must not be mutated after being returned.
//
// The package also carries the standard API response envelope (APIResponse,
// Metadata, APIError) used by every HTTP endpoint.
package models

// Fundviz - Crowdfunding Marketplace Analytics and Network Visualization
// Copyright 2026 Fundviz Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fundviz/fundviz

package models

// GraphNode types. A handle keeps the first classification it receives;
// later scans only classify handles they introduce.
const (
	NodeTypeSource         = "source"          // funded at least one bounty
	NodeTypeTarget         = "target"          // fulfilled a bounty (not accepted)
	NodeTypeTargetAccepted = "target_accepted" // fulfilled a bounty, accepted
	NodeTypeIndependent    = "independent"     // linked profile with no marketplace edges
)

// TreeNode is one node of a sunburst/circles hierarchy. A node is exactly
// one of leaf (Size set, Children nil) or internal (Children set, Size nil).
// Size is a pointer so a zero-valued leaf still serializes a "size" key.
type TreeNode struct {
	Name     string      `json:"name"`
	Size     *int        `json:"size,omitempty"`
	Children []*TreeNode `json:"children,omitempty"`
}

// IsLeaf reports whether the node carries a size instead of children.
func (n *TreeNode) IsLeaf() bool {
	return n.Size != nil
}

// Graph is the force-directed network payload: nodes plus links whose
// Source/Target fields index into Nodes.
type Graph struct {
	Nodes []GraphNode `json:"nodes"`
	Links []GraphEdge `json:"links"`
}

// GraphNode is one participant in the network graph. Value is the
// fourth-root-dampened accumulated edge weight; Avatar is only set for
// nodes whose raw accumulated weight crossed the avatar threshold and is
// serialized as null otherwise, which the client relies on.
type GraphNode struct {
	Name   string  `json:"name"`
	Value  int     `json:"value"`
	Type   string  `json:"type"`
	Avatar *string `json:"avatar"`
}

// GraphEdge connects two nodes by their positions in Graph.Nodes.
// Weight is the square root of the raw monetary weight.
type GraphEdge struct {
	Source int     `json:"source"`
	Target int     `json:"target"`
	Weight float64 `json:"weight"`
}

// HeatmapPoint is one normalized sample of the calendar heatmap series.
// The charting library consumes a fixed series key inside Value, so the
// payload is a map rather than a scalar.
type HeatmapPoint struct {
	Timestamp string             `json:"timestamp"`
	Value     map[string]float64 `json:"value"`
}

// HeatmapSeries wraps the heatmap points in the envelope the client expects.
type HeatmapSeries struct {
	Data []HeatmapPoint `json:"data"`
}

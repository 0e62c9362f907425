// Fundviz - Crowdfunding Marketplace Analytics and Network Visualization
// Copyright 2026 Fundviz Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fundviz/fundviz

package dataviz

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/fundviz/fundviz/internal/models"
)

// RootName is the synthetic root every aggregate tree hangs under.
const RootName = "data"

// ErrLeafConflict is returned when a merge would collapse two same-named
// siblings of which at least one is a leaf. Last-write-wins would silently
// drop a magnitude, so the conflict is surfaced instead.
var ErrLeafConflict = errors.New("cannot merge same-named leaf nodes")

// BuildLeaf converts one composite label into a single-child chain: the node
// for each segment has exactly one child holding the remaining segments, and
// the final segment becomes a leaf carrying the integer-truncated magnitude.
//
//	BuildLeaf("a-b-c", 5) => a > b > c{size:5}
func BuildLeaf(label string, magnitude float64) *models.TreeNode {
	return buildChain(strings.Split(label, LabelSeparator), magnitude)
}

func buildChain(segments []string, magnitude float64) *models.TreeNode {
	node := &models.TreeNode{Name: segments[0]}
	if len(segments) == 1 {
		size := int(magnitude)
		node.Size = &size
		return node
	}
	node.Children = []*models.TreeNode{buildChain(segments[1:], magnitude)}
	return node
}

// Merge deduplicates same-named siblings at every level of the tree. When a
// later child shares a name with an earlier one, the later child's children
// are spliced onto the earlier child's list, then every resulting child is
// merged recursively. Leaves are returned unchanged.
//
// Merge consumes its input; the returned tree aliases the input's nodes.
// After a successful merge no two siblings at any level share a name.
func Merge(node *models.TreeNode) (*models.TreeNode, error) {
	if node.Children == nil {
		return node, nil
	}

	merged := []*models.TreeNode{}
	position := map[string]int{}
	for _, child := range node.Children {
		idx, seen := position[child.Name]
		if !seen {
			position[child.Name] = len(merged)
			merged = append(merged, child)
			continue
		}
		if child.IsLeaf() || merged[idx].IsLeaf() {
			return nil, fmt.Errorf("sibling %q under %q: %w", child.Name, node.Name, ErrLeafConflict)
		}
		merged[idx].Children = append(merged[idx].Children, child.Children...)
	}

	for i, child := range merged {
		m, err := Merge(child)
		if err != nil {
			return nil, err
		}
		merged[i] = m
	}

	node.Children = merged
	return node, nil
}

// BuildTree converts an aggregate into the merged hierarchy the sunburst
// and circles charts consume. Labels are attached in sorted order so the
// output is independent of map iteration; zero magnitudes are dropped.
func BuildTree(aggregate map[string]float64) (*models.TreeNode, error) {
	labels := make([]string, 0, len(aggregate))
	for label := range aggregate {
		if aggregate[label] != 0 {
			labels = append(labels, label)
		}
	}
	sort.Strings(labels)

	root := &models.TreeNode{
		Name:     RootName,
		Children: []*models.TreeNode{},
	}
	for _, label := range labels {
		root.Children = append(root.Children, BuildLeaf(label, aggregate[label]))
	}
	return Merge(root)
}

// Fundviz - Crowdfunding Marketplace Analytics and Network Visualization
// Copyright 2026 Fundviz Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fundviz/fundviz

package dataviz

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/fundviz/fundviz/internal/models"
)

// GraphType selects which slice of the network the graph shows.
type GraphType string

// Network graph variants.
const (
	GraphAcceptedOnly GraphType = "fulfillments_accepted_only"
	GraphAll          GraphType = "all"
	GraphFulfillments GraphType = "fulfillments"
	GraphFuture       GraphType = "what_future_could_look_like"
)

// GraphTypes is the fixed allow-list for the graph family, in fallback order.
var GraphTypes = []GraphType{GraphAcceptedOnly, GraphAll, GraphFulfillments, GraphFuture}

// NormalizeGraphType validates a requested type against the graph
// allow-list, substituting the first option when invalid.
func NormalizeGraphType(requested string) GraphType {
	for _, t := range GraphTypes {
		if string(t) == requested {
			return t
		}
	}
	return GraphTypes[0]
}

// avatarThreshold is the accumulated raw magnitude above which a node gets
// an avatar URL.
const avatarThreshold = 40

// avatarURLFormat derives the avatar URL from a node's handle.
const avatarURLFormat = "https://fundviz.io/funding/avatar?repo=https://github.com/%s&v=3"

// GraphBuilder assembles the force-directed network graph from bounty,
// tip and profile records.
type GraphBuilder struct {
	store Store
	rng   *rand.Rand
}

// NewGraphBuilder creates a GraphBuilder. rng drives the speculative-future
// mode; pass a seeded source in tests for deterministic output, or nil for
// a time-seeded one.
func NewGraphBuilder(store Store, rng *rand.Rand) *GraphBuilder {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &GraphBuilder{store: store, rng: rng}
}

// rawEdge is an edge keyed by handle, before index resolution.
type rawEdge struct {
	source string
	target string
	weight float64
}

// graphState accumulates nodes in first-seen order alongside their
// classification.
type graphState struct {
	order []string
	types map[string]string
	edges []rawEdge
}

func newGraphState() *graphState {
	return &graphState{types: map[string]string{}}
}

// classify records a node's type. Overwrite replaces an existing
// classification (the bounty scan refines target -> target_accepted);
// otherwise the first classification wins.
func (s *graphState) classify(name, nodeType string, overwrite bool) {
	if _, seen := s.types[name]; !seen {
		s.order = append(s.order, name)
		s.types[name] = nodeType
		return
	}
	if overwrite {
		s.types[name] = nodeType
	}
}

func (s *graphState) seen(name string) bool {
	_, ok := s.types[name]
	return ok
}

// Build assembles the graph for the given type. Node values are the fourth
// root of the summed weight of every incident edge, edge weights the square
// root of the raw monetary weight, and edge endpoints index into the node
// list in first-seen order.
func (g *GraphBuilder) Build(ctx context.Context, graphType GraphType) (*models.Graph, error) {
	state := newGraphState()

	lastBountyValue, err := g.scanBounties(ctx, state, graphType)
	if err != nil {
		return nil, fmt.Errorf("build graph %s: %w", graphType, err)
	}
	if err := g.scanTips(ctx, state, lastBountyValue); err != nil {
		return nil, fmt.Errorf("build graph %s: %w", graphType, err)
	}
	if graphType == GraphAll || graphType == GraphFuture {
		if err := g.scanProfiles(ctx, state, graphType); err != nil {
			return nil, fmt.Errorf("build graph %s: %w", graphType, err)
		}
	}

	return emit(state), nil
}

// scanBounties adds a source->fulfiller edge per qualifying fulfillment and
// returns the value of the last bounty iterated, which the tip scan
// inherits as its edge weight (a long-standing quirk kept for output
// compatibility; see DESIGN.md).
func (g *GraphBuilder) scanBounties(ctx context.Context, state *graphState, graphType GraphType) (float64, error) {
	bounties, err := g.store.CurrentBounties(ctx, models.NetworkMainnet)
	if err != nil {
		return 0, err
	}

	lastValue := 0.0
	for i := range bounties {
		b := &bounties[i]
		lastValue = b.ValueInUSDTThen
		if b.ValueInUSDTThen == 0 || b.OrgName == "" {
			continue
		}

		acceptedOnly := graphType == GraphAcceptedOnly
		fulfillments, err := g.store.FulfillmentsForBounty(ctx, b.ID, acceptedOnly)
		if err != nil {
			return 0, err
		}
		for _, f := range fulfillments {
			if f.FulfillerGithubUsername == "" {
				continue
			}
			target := strings.ToLower(f.FulfillerGithubUsername)
			targetType := models.NodeTypeTarget
			if f.Accepted {
				targetType = models.NodeTypeTargetAccepted
			}
			state.classify(b.OrgName, models.NodeTypeSource, true)
			state.classify(target, targetType, true)
			state.edges = append(state.edges, rawEdge{
				source: b.OrgName,
				target: target,
				weight: b.ValueInUSDTThen,
			})
		}
	}
	return lastValue, nil
}

// scanTips adds a recipient->sender edge per mainnet tip, weighted by the
// inherited bounty value, classifying only handles the bounty scan did not
// introduce.
func (g *GraphBuilder) scanTips(ctx context.Context, state *graphState, weight float64) error {
	if weight == 0 {
		return nil
	}
	tips, err := g.store.TipsByNetwork(ctx, models.NetworkMainnet)
	if err != nil {
		return err
	}

	for _, tip := range tips {
		source := strings.ToLower(tip.Username)
		target := strings.ToLower(tip.FromUsername)
		if source == "" || target == "" {
			continue
		}
		state.classify(source, models.NodeTypeSource, false)
		state.classify(target, models.NodeTypeTarget, false)
		state.edges = append(state.edges, rawEdge{source: source, target: target, weight: weight})
	}
	return nil
}

// scanProfiles adds every linked profile as an independent node. In the
// speculative-future mode each node after the first also receives a
// synthetic edge from a uniformly random other profile, with integer weight
// in [1,10].
func (g *GraphBuilder) scanProfiles(ctx context.Context, state *graphState, graphType GraphType) error {
	profiles, err := g.store.ProfilesWithToken(ctx)
	if err != nil {
		return err
	}

	for i := range profiles {
		node := strings.ToLower(profiles[i].Handle)
		if node == "" {
			continue
		}
		state.classify(node, models.NodeTypeIndependent, false)

		if graphType != GraphFuture || i == 0 || len(profiles) < 2 {
			continue
		}
		j := g.rng.Intn(len(profiles) - 1)
		if j >= i {
			j++
		}
		state.edges = append(state.edges, rawEdge{
			source: strings.ToLower(profiles[j].Handle),
			target: node,
			weight: float64(g.rng.Intn(10) + 1),
		})
	}
	return nil
}

func emit(state *graphState) *models.Graph {
	// raw magnitude per node: every incident edge counts
	magnitudes := map[string]float64{}
	for _, e := range state.edges {
		magnitudes[e.source] += e.weight
		magnitudes[e.target] += e.weight
	}

	graph := &models.Graph{
		Nodes: make([]models.GraphNode, 0, len(state.order)),
		Links: make([]models.GraphEdge, 0, len(state.edges)),
	}

	indices := make(map[string]int, len(state.order))
	for _, name := range state.order {
		indices[name] = len(graph.Nodes)

		magnitude, ok := magnitudes[name]
		if !ok {
			magnitude = 1
		}
		node := models.GraphNode{
			Name:  name,
			Value: int(math.Sqrt(math.Sqrt(magnitude))),
			Type:  state.types[name],
		}
		if magnitudes[name] > avatarThreshold {
			avatar := fmt.Sprintf(avatarURLFormat, name)
			node.Avatar = &avatar
		}
		graph.Nodes = append(graph.Nodes, node)
	}

	for _, e := range state.edges {
		graph.Links = append(graph.Links, models.GraphEdge{
			Source: indices[e.source],
			Target: indices[e.target],
			Weight: math.Sqrt(e.weight),
		})
	}
	return graph
}

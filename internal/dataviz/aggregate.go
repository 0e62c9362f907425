// Fundviz - Crowdfunding Marketplace Analytics and Network Visualization
// Copyright 2026 Fundviz Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fundviz/fundviz

package dataviz

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/fundviz/fundviz/internal/models"
)

// VizType selects which sunburst/circles aggregation to run.
type VizType string

// Sunburst aggregation variants.
const (
	VizStatusProgression VizType = "status_progression"
	VizRepos             VizType = "repos"
	VizFulfillers        VizType = "fulfillers"
	VizFunders           VizType = "funders"
)

// SunburstTypes is the fixed allow-list for the sunburst/circles family,
// in fallback order.
var SunburstTypes = []VizType{VizStatusProgression, VizRepos, VizFulfillers, VizFunders}

// NormalizeVizType validates a requested type against the sunburst
// allow-list, substituting the first option when invalid.
func NormalizeVizType(requested string) VizType {
	for _, t := range SunburstTypes {
		if string(t) == requested {
			return t
		}
	}
	return SunburstTypes[0]
}

const (
	// LabelSeparator joins composite label segments.
	LabelSeparator = "-"

	// PadToken right-pads status progressions to statusSlots entries.
	PadToken = "_"

	statusSlots = 12
)

// Aggregator folds marketplace records into composite-label magnitudes.
type Aggregator struct {
	store Store
}

// NewAggregator creates an Aggregator over the given store.
func NewAggregator(store Store) *Aggregator {
	return &Aggregator{store: store}
}

// Aggregate scans the canonical mainnet bounties for the given type and
// returns the summed magnitude per composite label. Records yielding no
// label or no magnitude are skipped; repeated labels accumulate.
func (a *Aggregator) Aggregate(ctx context.Context, vizType VizType) (map[string]float64, error) {
	bounties, err := a.store.CurrentBounties(ctx, models.NetworkMainnet)
	if err != nil {
		return nil, fmt.Errorf("aggregate %s: %w", vizType, err)
	}

	result := make(map[string]float64)
	for i := range bounties {
		rows, err := a.rowsFor(ctx, vizType, &bounties[i])
		if err != nil {
			return nil, fmt.Errorf("aggregate %s: %w", vizType, err)
		}
		for _, row := range rows {
			result[row.label] += row.magnitude
		}
	}
	return result, nil
}

// row is one label contribution from a single bounty.
type row struct {
	label     string
	magnitude float64
}

func (a *Aggregator) rowsFor(ctx context.Context, vizType VizType, b *models.Bounty) ([]row, error) {
	switch vizType {
	case VizStatusProgression:
		return a.statusProgressionRows(ctx, b)
	case VizRepos:
		return repoRows(b), nil
	case VizFulfillers:
		return a.fulfillerRows(ctx, b)
	case VizFunders:
		return funderRows(b), nil
	default:
		return nil, fmt.Errorf("unknown visualization type %q", vizType)
	}
}

// statusProgressionRows reconstructs the bounty's lifecycle as a fixed
// 12-slot dash-joined sequence, magnitude 1 per bounty:
//
//   - prior revisions, oldest first, with consecutive duplicate statuses
//     collapsed
//   - seeded with "open" when the earliest prior revision was already
//     "started" (status changes did not always write an open revision)
//   - the current status appended when it differs from the last prior one
//   - truncated, then right-padded with "_" to exactly 12 slots
func (a *Aggregator) statusProgressionRows(ctx context.Context, b *models.Bounty) ([]row, error) {
	revisions, err := a.store.BountyRevisions(ctx, b.StandardBountiesID, b.Network, b.ID)
	if err != nil {
		return nil, err
	}

	sequence := make([]string, 0, statusSlots)
	if len(revisions) > 0 && revisions[0].IdxStatus == models.StatusStarted {
		sequence = append(sequence, models.StatusOpen)
	}

	last := ""
	for i := range revisions {
		if revisions[i].IdxStatus != last {
			sequence = append(sequence, revisions[i].IdxStatus)
		}
		last = revisions[i].IdxStatus
	}
	if b.IdxStatus != last {
		sequence = append(sequence, b.IdxStatus)
	}

	if len(sequence) > statusSlots {
		sequence = sequence[:statusSlots]
	}
	for len(sequence) < statusSlots {
		sequence = append(sequence, PadToken)
	}

	return []row{{label: strings.Join(sequence, LabelSeparator), magnitude: 1}}, nil
}

func repoRows(b *models.Bounty) []row {
	if b.OrgName == "" || b.ValueInUSDTThen == 0 {
		return nil
	}
	label := strings.Join([]string{
		stripSeparator(b.OrgName),
		stripSeparator(b.GithubRepoName),
		strconv.FormatInt(b.GithubIssueNumber, 10),
	}, LabelSeparator)
	return []row{{label: label, magnitude: b.ValueInUSDTThen}}
}

func (a *Aggregator) fulfillerRows(ctx context.Context, b *models.Bounty) ([]row, error) {
	if b.IdxStatus != models.StatusDone || b.ValueInUSDTThen == 0 {
		return nil, nil
	}
	fulfillments, err := a.store.FulfillmentsForBounty(ctx, b.ID, true)
	if err != nil {
		return nil, err
	}

	rows := []row{}
	for _, f := range fulfillments {
		if f.FulfillerGithubUsername == "" {
			continue
		}
		rows = append(rows, row{
			label:     stripSeparator(f.FulfillerGithubUsername),
			magnitude: b.ValueInUSDTThen,
		})
	}
	return rows, nil
}

func funderRows(b *models.Bounty) []row {
	if b.BountyOwnerGithubUsername == "" || b.ValueInUSDTThen == 0 {
		return nil
	}
	return []row{{
		label:     stripSeparator(b.BountyOwnerGithubUsername),
		magnitude: b.ValueInUSDTThen,
	}}
}

// stripSeparator removes internal dashes from a segment so the segment
// cannot fake extra label depth.
func stripSeparator(segment string) string {
	return strings.ReplaceAll(segment, LabelSeparator, "")
}

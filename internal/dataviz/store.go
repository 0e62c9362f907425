// Fundviz - Crowdfunding Marketplace Analytics and Network Visualization
// Copyright 2026 Fundviz Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fundviz/fundviz

// Package dataviz holds the data-reshaping pipelines behind the charts:
// aggregation of marketplace records into composite dash-joined labels,
// conversion of flat aggregates into a merged hierarchy, and construction
// of the weighted network graph.
//
// Every pipeline is a pure function of the store's state. Reproducibility
// therefore rests on the store returning deterministically ordered results;
// internal/database orders every query by explicit columns.
package dataviz

import (
	"context"

	"github.com/fundviz/fundviz/internal/models"
)

// Store is the read-only record access the pipelines consume. Implemented
// by *database.DB; tests substitute an in-memory fake.
//
// Implementations must return deterministically ordered slices: bounties by
// insertion id, revisions oldest first, profiles by handle.
type Store interface {
	// CurrentBounties returns the canonical revision of each bounty on the
	// network.
	CurrentBounties(ctx context.Context, network string) ([]models.Bounty, error)

	// BountyRevisions returns the historical revisions sharing the logical
	// id, excluding the revision identified by excludeID, oldest first.
	BountyRevisions(ctx context.Context, standardBountiesID int64, network string, excludeID int64) ([]models.Bounty, error)

	// FulfillmentsForBounty returns the claims against one bounty revision,
	// optionally restricted to accepted ones.
	FulfillmentsForBounty(ctx context.Context, bountyID int64, acceptedOnly bool) ([]models.Fulfillment, error)

	// TipsByNetwork returns every tip sent on the network.
	TipsByNetwork(ctx context.Context, network string) ([]models.Tip, error)

	// ProfilesWithToken returns the profiles with a linked integration
	// token, sorted by handle.
	ProfilesWithToken(ctx context.Context) ([]models.Profile, error)
}

// Fundviz - Crowdfunding Marketplace Analytics and Network Visualization
// Copyright 2026 Fundviz Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fundviz/fundviz

package dataviz

import (
	"context"

	"github.com/fundviz/fundviz/internal/models"
)

// fakeStore is an in-memory Store for pipeline tests. Slices are returned
// in the order they were populated, mirroring the deterministic ordering
// the real store guarantees.
type fakeStore struct {
	bounties     []models.Bounty
	fulfillments map[int64][]models.Fulfillment
	tips         []models.Tip
	profiles     []models.Profile
}

func (s *fakeStore) CurrentBounties(_ context.Context, network string) ([]models.Bounty, error) {
	out := []models.Bounty{}
	for _, b := range s.bounties {
		if b.Network == network && b.CurrentBounty {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *fakeStore) BountyRevisions(_ context.Context, standardBountiesID int64, network string, excludeID int64) ([]models.Bounty, error) {
	out := []models.Bounty{}
	for _, b := range s.bounties {
		if b.StandardBountiesID == standardBountiesID && b.Network == network && b.ID != excludeID {
			out = append(out, b)
		}
	}
	// callers expect oldest first
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].CreatedOn.Before(out[j-1].CreatedOn); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out, nil
}

func (s *fakeStore) FulfillmentsForBounty(_ context.Context, bountyID int64, acceptedOnly bool) ([]models.Fulfillment, error) {
	out := []models.Fulfillment{}
	for _, f := range s.fulfillments[bountyID] {
		if acceptedOnly && !f.Accepted {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

func (s *fakeStore) TipsByNetwork(_ context.Context, network string) ([]models.Tip, error) {
	out := []models.Tip{}
	for _, t := range s.tips {
		if t.Network == network {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *fakeStore) ProfilesWithToken(_ context.Context) ([]models.Profile, error) {
	out := []models.Profile{}
	for _, p := range s.profiles {
		if p.GithubAccessToken != "" {
			out = append(out, p)
		}
	}
	return out, nil
}

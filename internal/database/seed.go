// Fundviz - Crowdfunding Marketplace Analytics and Network Visualization
// Copyright 2026 Fundviz Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fundviz/fundviz

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/fundviz/fundviz/internal/logging"
	"github.com/fundviz/fundviz/internal/models"
)

// SeedDemoData loads a small synthetic marketplace into an empty database so
// every chart renders something out of the box. It is a no-op when bounties
// already exist.
func (db *DB) SeedDemoData(ctx context.Context) error {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	var count int64
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM bounties`).Scan(&count); err != nil {
		return fmt.Errorf("failed to check for existing data: %w", err)
	}
	if count > 0 {
		logging.Debug().Int64("bounties", count).Msg("Skipping demo seed, data present")
		return nil
	}

	now := time.Now().UTC().Truncate(time.Hour)

	type revision struct {
		status string
		age    time.Duration
	}
	type demoBounty struct {
		sbid      int64
		org       string
		repo      string
		issue     int64
		owner     string
		value     float64
		revisions []revision // oldest first; the last one becomes current
		fulfiller string
		accepted  bool
	}

	demo := []demoBounty{
		{
			sbid: 101, org: "AcmeCorp", repo: "widget-api", issue: 7,
			owner: "alice", value: 850,
			revisions: []revision{
				{models.StatusStarted, 96 * time.Hour},
				{models.StatusSubmitted, 48 * time.Hour},
				{models.StatusDone, 12 * time.Hour},
			},
			fulfiller: "bob", accepted: true,
		},
		{
			sbid: 102, org: "AcmeCorp", repo: "widget-api", issue: 12,
			owner: "alice", value: 300,
			revisions: []revision{
				{models.StatusOpen, 72 * time.Hour},
				{models.StatusStarted, 24 * time.Hour},
			},
			fulfiller: "carol", accepted: false,
		},
		{
			sbid: 103, org: "nebula-labs", repo: "orbit-sdk", issue: 3,
			owner: "dave", value: 1200,
			revisions: []revision{
				{models.StatusOpen, 120 * time.Hour},
				{models.StatusStarted, 80 * time.Hour},
				{models.StatusSubmitted, 40 * time.Hour},
				{models.StatusDone, 8 * time.Hour},
			},
			fulfiller: "erin", accepted: true,
		},
		{
			sbid: 104, org: "nebula-labs", repo: "orbit-sdk", issue: 9,
			owner: "dave", value: 95,
			revisions: []revision{
				{models.StatusOpen, 60 * time.Hour},
				{models.StatusExpired, 6 * time.Hour},
			},
		},
		{
			sbid: 105, org: "solo-dev", repo: "tiny-tool", issue: 1,
			owner: "frank", value: 40,
			revisions: []revision{
				{models.StatusOpen, 30 * time.Hour},
			},
		},
	}

	for _, d := range demo {
		var currentID int64
		for i, rev := range d.revisions {
			b := models.Bounty{
				StandardBountiesID:        d.sbid,
				Network:                   models.NetworkMainnet,
				Web3Type:                  "bounties_network",
				OrgName:                   d.org,
				GithubRepoName:            d.repo,
				GithubIssueNumber:         d.issue,
				IdxStatus:                 rev.status,
				ValueInUSDTThen:           d.value,
				BountyOwnerGithubUsername: d.owner,
				CurrentBounty:             i == len(d.revisions)-1,
				CreatedOn:                 now.Add(-rev.age),
			}
			id, err := db.InsertBounty(ctx, &b)
			if err != nil {
				return err
			}
			if b.CurrentBounty {
				currentID = id
			}
		}
		if d.fulfiller != "" {
			f := models.Fulfillment{
				BountyID:                currentID,
				FulfillerGithubUsername: d.fulfiller,
				Accepted:                d.accepted,
			}
			if _, err := db.InsertFulfillment(ctx, &f); err != nil {
				return err
			}
		}
	}

	tips := []models.Tip{
		{Network: models.NetworkMainnet, Username: "bob", FromUsername: "alice", ValueInUSDTNow: 25},
		{Network: models.NetworkMainnet, Username: "erin", FromUsername: "dave", ValueInUSDTNow: 60},
		{Network: models.NetworkMainnet, Username: "carol", FromUsername: "bob", ValueInUSDTNow: 10},
	}
	for i := range tips {
		if _, err := db.InsertTip(ctx, &tips[i]); err != nil {
			return err
		}
	}

	profiles := []models.Profile{
		{Handle: "alice", GithubAccessToken: "gho_demo_alice"},
		{Handle: "bob", GithubAccessToken: "gho_demo_bob"},
		{Handle: "carol", GithubAccessToken: ""},
		{Handle: "dave", GithubAccessToken: "gho_demo_dave"},
		{Handle: "erin", GithubAccessToken: ""},
		{Handle: "frank", GithubAccessToken: "gho_demo_frank"},
	}
	for i := range profiles {
		if err := db.InsertProfile(ctx, &profiles[i]); err != nil {
			return err
		}
	}

	// Two weeks of hourly samples for two metrics, plus the daily 01:00
	// samples the spiral chart reads.
	for h := 0; h < 14*24; h++ {
		ts := now.Add(-time.Duration(h) * time.Hour)
		samples := []models.Stat{
			{Key: "email_subscribers", CreatedOn: ts, ValSinceHour: float64(3 + h%7)},
			{Key: "slack_users", CreatedOn: ts, ValSinceHour: float64(1 + h%5)},
		}
		for i := range samples {
			if err := db.InsertStat(ctx, &samples[i]); err != nil {
				return err
			}
		}
	}

	logging.Info().Int("bounties", len(demo)).Msg("Demo data seeded")
	return nil
}

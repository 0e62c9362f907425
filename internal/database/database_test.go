// Fundviz - Crowdfunding Marketplace Analytics and Network Visualization
// Copyright 2026 Fundviz Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fundviz/fundviz

package database

import (
	"context"
	"testing"
	"time"

	"github.com/fundviz/fundviz/internal/config"
	"github.com/fundviz/fundviz/internal/models"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	cfg := &config.DatabaseConfig{
		Path:      ":memory:",
		MaxMemory: "1GB",
	}
	db, err := New(cfg)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Failed to close test database: %v", err)
		}
	})
	return db
}

func mustInsertBounty(t *testing.T, db *DB, b models.Bounty) int64 {
	t.Helper()
	id, err := db.InsertBounty(context.Background(), &b)
	if err != nil {
		t.Fatalf("InsertBounty failed: %v", err)
	}
	return id
}

func TestNewAndPing(t *testing.T) {
	db := setupTestDB(t)
	if err := db.Ping(context.Background()); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}

func TestCurrentBountiesFiltering(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	mustInsertBounty(t, db, models.Bounty{
		StandardBountiesID: 1, Network: models.NetworkMainnet,
		IdxStatus: models.StatusOpen, CurrentBounty: true, CreatedOn: now,
	})
	// historical revision, must be excluded
	mustInsertBounty(t, db, models.Bounty{
		StandardBountiesID: 1, Network: models.NetworkMainnet,
		IdxStatus: models.StatusStarted, CurrentBounty: false, CreatedOn: now.Add(-time.Hour),
	})
	// wrong network, must be excluded
	mustInsertBounty(t, db, models.Bounty{
		StandardBountiesID: 2, Network: "rinkeby",
		IdxStatus: models.StatusOpen, CurrentBounty: true, CreatedOn: now,
	})

	bounties, err := db.CurrentBounties(ctx, models.NetworkMainnet)
	if err != nil {
		t.Fatalf("CurrentBounties failed: %v", err)
	}
	if len(bounties) != 1 {
		t.Fatalf("expected 1 current mainnet bounty, got %d", len(bounties))
	}
	if bounties[0].IdxStatus != models.StatusOpen {
		t.Errorf("expected open bounty, got %q", bounties[0].IdxStatus)
	}
}

func TestBountyRevisionsOrderAndExclusion(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	// inserted out of chronological order on purpose
	mustInsertBounty(t, db, models.Bounty{
		StandardBountiesID: 7, Network: models.NetworkMainnet,
		IdxStatus: models.StatusSubmitted, CreatedOn: now.Add(-1 * time.Hour),
	})
	mustInsertBounty(t, db, models.Bounty{
		StandardBountiesID: 7, Network: models.NetworkMainnet,
		IdxStatus: models.StatusStarted, CreatedOn: now.Add(-3 * time.Hour),
	})
	currentID := mustInsertBounty(t, db, models.Bounty{
		StandardBountiesID: 7, Network: models.NetworkMainnet,
		IdxStatus: models.StatusDone, CurrentBounty: true, CreatedOn: now,
	})
	// different logical bounty, must not appear
	mustInsertBounty(t, db, models.Bounty{
		StandardBountiesID: 8, Network: models.NetworkMainnet,
		IdxStatus: models.StatusOpen, CreatedOn: now.Add(-2 * time.Hour),
	})

	revisions, err := db.BountyRevisions(ctx, 7, models.NetworkMainnet, currentID)
	if err != nil {
		t.Fatalf("BountyRevisions failed: %v", err)
	}
	if len(revisions) != 2 {
		t.Fatalf("expected 2 revisions, got %d", len(revisions))
	}
	if revisions[0].IdxStatus != models.StatusStarted || revisions[1].IdxStatus != models.StatusSubmitted {
		t.Errorf("revisions not ordered oldest first: %q, %q",
			revisions[0].IdxStatus, revisions[1].IdxStatus)
	}
	for _, r := range revisions {
		if r.ID == currentID {
			t.Error("current revision must be excluded")
		}
	}
}

func TestFulfillmentsAcceptedFilter(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	bountyID := mustInsertBounty(t, db, models.Bounty{
		StandardBountiesID: 1, Network: models.NetworkMainnet,
		IdxStatus: models.StatusDone, CurrentBounty: true, CreatedOn: time.Now().UTC(),
	})

	for _, f := range []models.Fulfillment{
		{BountyID: bountyID, FulfillerGithubUsername: "bob", Accepted: true},
		{BountyID: bountyID, FulfillerGithubUsername: "carol", Accepted: false},
	} {
		if _, err := db.InsertFulfillment(ctx, &f); err != nil {
			t.Fatalf("InsertFulfillment failed: %v", err)
		}
	}

	all, err := db.FulfillmentsForBounty(ctx, bountyID, false)
	if err != nil {
		t.Fatalf("FulfillmentsForBounty failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 fulfillments, got %d", len(all))
	}

	accepted, err := db.FulfillmentsForBounty(ctx, bountyID, true)
	if err != nil {
		t.Fatalf("FulfillmentsForBounty(acceptedOnly) failed: %v", err)
	}
	if len(accepted) != 1 || accepted[0].FulfillerGithubUsername != "bob" {
		t.Errorf("expected only bob's accepted fulfillment, got %+v", accepted)
	}
}

func TestTipsByNetwork(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	for _, tip := range []models.Tip{
		{Network: models.NetworkMainnet, Username: "bob", FromUsername: "alice", ValueInUSDTNow: 5},
		{Network: "rinkeby", Username: "x", FromUsername: "y", ValueInUSDTNow: 1},
	} {
		if _, err := db.InsertTip(ctx, &tip); err != nil {
			t.Fatalf("InsertTip failed: %v", err)
		}
	}

	tips, err := db.TipsByNetwork(ctx, models.NetworkMainnet)
	if err != nil {
		t.Fatalf("TipsByNetwork failed: %v", err)
	}
	if len(tips) != 1 || tips[0].Username != "bob" {
		t.Errorf("expected single mainnet tip to bob, got %+v", tips)
	}
}

func TestProfilesWithToken(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	for _, p := range []models.Profile{
		{Handle: "zed", GithubAccessToken: "tok1"},
		{Handle: "amy", GithubAccessToken: "tok2"},
		{Handle: "nolink", GithubAccessToken: ""},
	} {
		if err := db.InsertProfile(ctx, &p); err != nil {
			t.Fatalf("InsertProfile failed: %v", err)
		}
	}

	profiles, err := db.ProfilesWithToken(ctx)
	if err != nil {
		t.Fatalf("ProfilesWithToken failed: %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("expected 2 linked profiles, got %d", len(profiles))
	}
	if profiles[0].Handle != "amy" || profiles[1].Handle != "zed" {
		t.Errorf("profiles not sorted by handle: %+v", profiles)
	}
}

func TestStatsWindowAndHourBucket(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 1, 0, 0, 0, time.UTC)
	samples := []models.Stat{
		{Key: "email_subscribers", CreatedOn: base, ValSinceHour: 10},
		{Key: "email_subscribers", CreatedOn: base.Add(24 * time.Hour), ValSinceHour: 20},
		{Key: "email_subscribers", CreatedOn: base.Add(5 * time.Hour), ValSinceHour: 30}, // 06:00, not in hour bucket
		{Key: "slack_users", CreatedOn: base, ValSinceHour: 1},
	}
	for i := range samples {
		if err := db.InsertStat(ctx, &samples[i]); err != nil {
			t.Fatalf("InsertStat failed: %v", err)
		}
	}

	window, err := db.StatsInWindow(ctx, "email_subscribers", base.Add(-time.Hour))
	if err != nil {
		t.Fatalf("StatsInWindow failed: %v", err)
	}
	if len(window) != 3 {
		t.Fatalf("expected 3 samples in window, got %d", len(window))
	}
	if !window[0].CreatedOn.After(window[1].CreatedOn) {
		t.Error("window samples should be newest first")
	}

	hourly, err := db.StatsAtHour(ctx, "email_subscribers", 1)
	if err != nil {
		t.Fatalf("StatsAtHour failed: %v", err)
	}
	if len(hourly) != 2 {
		t.Fatalf("expected 2 samples at 01:00, got %d", len(hourly))
	}
	if hourly[0].ValSinceHour != 10 || hourly[1].ValSinceHour != 20 {
		t.Errorf("hourly samples not ordered oldest first: %+v", hourly)
	}

	keys, err := db.DistinctStatKeysAtHour(ctx, 1)
	if err != nil {
		t.Fatalf("DistinctStatKeysAtHour failed: %v", err)
	}
	if len(keys) != 2 || keys[0] != "email_subscribers" || keys[1] != "slack_users" {
		t.Errorf("unexpected keys at hour 1: %v", keys)
	}

	sinceKeys, err := db.DistinctStatKeysSince(ctx, base.Add(12*time.Hour))
	if err != nil {
		t.Fatalf("DistinctStatKeysSince failed: %v", err)
	}
	if len(sinceKeys) != 1 || sinceKeys[0] != "email_subscribers" {
		t.Errorf("unexpected keys since cutoff: %v", sinceKeys)
	}
}

func TestSeedDemoDataIdempotent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if err := db.SeedDemoData(ctx); err != nil {
		t.Fatalf("SeedDemoData failed: %v", err)
	}
	bounties, err := db.CurrentBounties(ctx, models.NetworkMainnet)
	if err != nil {
		t.Fatalf("CurrentBounties failed: %v", err)
	}
	if len(bounties) == 0 {
		t.Fatal("seed produced no current bounties")
	}

	// second call must not duplicate anything
	if err := db.SeedDemoData(ctx); err != nil {
		t.Fatalf("second SeedDemoData failed: %v", err)
	}
	again, err := db.CurrentBounties(ctx, models.NetworkMainnet)
	if err != nil {
		t.Fatalf("CurrentBounties failed: %v", err)
	}
	if len(again) != len(bounties) {
		t.Errorf("seed is not idempotent: %d vs %d bounties", len(again), len(bounties))
	}
}

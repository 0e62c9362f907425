// Fundviz - Crowdfunding Marketplace Analytics and Network Visualization
// Copyright 2026 Fundviz Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fundviz/fundviz

package database

import "fmt"

// createTables creates the marketplace schema if it does not exist.
//
// bounties keeps every historical revision of a funding request; the
// canonical row per standard_bounties_id carries current_bounty=true.
// Sequences back the synthetic primary keys so seeding and tests can insert
// without managing IDs.
func (db *DB) createTables() error {
	statements := []string{
		`CREATE SEQUENCE IF NOT EXISTS seq_bounty_id START 1`,
		`CREATE SEQUENCE IF NOT EXISTS seq_fulfillment_id START 1`,
		`CREATE SEQUENCE IF NOT EXISTS seq_tip_id START 1`,

		`CREATE TABLE IF NOT EXISTS bounties (
			id BIGINT PRIMARY KEY DEFAULT nextval('seq_bounty_id'),
			standard_bounties_id BIGINT NOT NULL,
			network VARCHAR NOT NULL,
			web3_type VARCHAR NOT NULL DEFAULT 'bounties_network',
			org_name VARCHAR NOT NULL DEFAULT '',
			github_repo_name VARCHAR NOT NULL DEFAULT '',
			github_issue_number BIGINT NOT NULL DEFAULT 0,
			idx_status VARCHAR NOT NULL,
			value_in_usdt_then DOUBLE NOT NULL DEFAULT 0,
			bounty_owner_github_username VARCHAR NOT NULL DEFAULT '',
			current_bounty BOOLEAN NOT NULL DEFAULT false,
			created_on TIMESTAMP NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS fulfillments (
			id BIGINT PRIMARY KEY DEFAULT nextval('seq_fulfillment_id'),
			bounty_id BIGINT NOT NULL,
			fulfiller_github_username VARCHAR NOT NULL DEFAULT '',
			accepted BOOLEAN NOT NULL DEFAULT false
		)`,

		`CREATE TABLE IF NOT EXISTS tips (
			id BIGINT PRIMARY KEY DEFAULT nextval('seq_tip_id'),
			network VARCHAR NOT NULL,
			username VARCHAR NOT NULL DEFAULT '',
			from_username VARCHAR NOT NULL DEFAULT '',
			value_in_usdt_now DOUBLE NOT NULL DEFAULT 0
		)`,

		`CREATE TABLE IF NOT EXISTS profiles (
			handle VARCHAR PRIMARY KEY,
			github_access_token VARCHAR NOT NULL DEFAULT ''
		)`,

		`CREATE TABLE IF NOT EXISTS stats (
			key VARCHAR NOT NULL,
			created_on TIMESTAMP NOT NULL,
			val_since_hour DOUBLE NOT NULL DEFAULT 0
		)`,

		`CREATE INDEX IF NOT EXISTS idx_bounties_network_current
			ON bounties (network, current_bounty)`,
		`CREATE INDEX IF NOT EXISTS idx_bounties_sbid
			ON bounties (standard_bounties_id, network)`,
		`CREATE INDEX IF NOT EXISTS idx_fulfillments_bounty
			ON fulfillments (bounty_id)`,
		`CREATE INDEX IF NOT EXISTS idx_stats_key_created
			ON stats (key, created_on)`,
	}

	for _, stmt := range statements {
		if _, err := db.conn.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}
	return nil
}

// Fundviz - Crowdfunding Marketplace Analytics and Network Visualization
// Copyright 2026 Fundviz Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fundviz/fundviz

package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fundviz/fundviz/internal/models"
)

const bountyColumns = `id, standard_bounties_id, network, web3_type, org_name,
		github_repo_name, github_issue_number, idx_status, value_in_usdt_then,
		bounty_owner_github_username, current_bounty, created_on`

// CurrentBounties returns the canonical revision of every bounty on the
// given network, ordered by insertion id for stable output.
func (db *DB) CurrentBounties(ctx context.Context, network string) ([]models.Bounty, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	query := fmt.Sprintf(`
		SELECT %s
		FROM bounties
		WHERE network = ? AND current_bounty = true
		ORDER BY id ASC
	`, bountyColumns)

	rows, err := db.conn.QueryContext(ctx, query, network)
	if err != nil {
		return nil, fmt.Errorf("failed to query current bounties: %w", err)
	}
	defer rows.Close()

	return scanBounties(rows)
}

// BountyRevisions returns the historical revisions of one logical bounty,
// excluding the revision identified by excludeID, ordered oldest first.
// The caller walks these to reconstruct the status progression.
func (db *DB) BountyRevisions(ctx context.Context, standardBountiesID int64, network string, excludeID int64) ([]models.Bounty, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	query := fmt.Sprintf(`
		SELECT %s
		FROM bounties
		WHERE standard_bounties_id = ? AND network = ? AND id != ?
		ORDER BY created_on ASC, id ASC
	`, bountyColumns)

	rows, err := db.conn.QueryContext(ctx, query, standardBountiesID, network, excludeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bounty revisions: %w", err)
	}
	defer rows.Close()

	return scanBounties(rows)
}

// BountiesByNetwork returns every revision recorded on the given network,
// ordered by insertion id. The sunburst category lists walk all revisions,
// not just the canonical ones.
func (db *DB) BountiesByNetwork(ctx context.Context, network string) ([]models.Bounty, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	query := fmt.Sprintf(`
		SELECT %s
		FROM bounties
		WHERE network = ?
		ORDER BY id ASC
	`, bountyColumns)

	rows, err := db.conn.QueryContext(ctx, query, network)
	if err != nil {
		return nil, fmt.Errorf("failed to query bounties by network: %w", err)
	}
	defer rows.Close()

	return scanBounties(rows)
}

// DistinctStatuses returns every lifecycle status present in the bounties
// table, sorted alphabetically.
func (db *DB) DistinctStatuses(ctx context.Context) ([]string, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	query := `SELECT DISTINCT idx_status FROM bounties ORDER BY idx_status ASC`

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query distinct statuses: %w", err)
	}
	defer rows.Close()

	statuses := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan status: %w", err)
		}
		statuses = append(statuses, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating status rows: %w", err)
	}
	return statuses, nil
}

// InsertBounty inserts a bounty revision and returns its generated id.
func (db *DB) InsertBounty(ctx context.Context, b *models.Bounty) (int64, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	query := `
		INSERT INTO bounties (
			standard_bounties_id, network, web3_type, org_name,
			github_repo_name, github_issue_number, idx_status,
			value_in_usdt_then, bounty_owner_github_username,
			current_bounty, created_on
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`

	var id int64
	err := db.conn.QueryRowContext(ctx, query,
		b.StandardBountiesID, b.Network, b.Web3Type, b.OrgName,
		b.GithubRepoName, b.GithubIssueNumber, b.IdxStatus,
		b.ValueInUSDTThen, b.BountyOwnerGithubUsername,
		b.CurrentBounty, b.CreatedOn,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert bounty: %w", err)
	}
	return id, nil
}

func scanBounties(rows *sql.Rows) ([]models.Bounty, error) {
	bounties := []models.Bounty{}
	for rows.Next() {
		var b models.Bounty
		err := rows.Scan(
			&b.ID, &b.StandardBountiesID, &b.Network, &b.Web3Type, &b.OrgName,
			&b.GithubRepoName, &b.GithubIssueNumber, &b.IdxStatus,
			&b.ValueInUSDTThen, &b.BountyOwnerGithubUsername,
			&b.CurrentBounty, &b.CreatedOn,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bounty: %w", err)
		}
		bounties = append(bounties, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bounty rows: %w", err)
	}
	return bounties, nil
}

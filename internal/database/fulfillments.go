// Fundviz - Crowdfunding Marketplace Analytics and Network Visualization
// Copyright 2026 Fundviz Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fundviz/fundviz

package database

import (
	"context"
	"fmt"

	"github.com/fundviz/fundviz/internal/models"
)

// FulfillmentsForBounty returns the fulfillments claimed against one bounty
// revision, oldest first. When acceptedOnly is set, rejected and pending
// claims are filtered out.
func (db *DB) FulfillmentsForBounty(ctx context.Context, bountyID int64, acceptedOnly bool) ([]models.Fulfillment, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	query := `
		SELECT id, bounty_id, fulfiller_github_username, accepted
		FROM fulfillments
		WHERE bounty_id = ?
	`
	if acceptedOnly {
		query += ` AND accepted = true`
	}
	query += ` ORDER BY id ASC`

	rows, err := db.conn.QueryContext(ctx, query, bountyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query fulfillments: %w", err)
	}
	defer rows.Close()

	fulfillments := []models.Fulfillment{}
	for rows.Next() {
		var f models.Fulfillment
		if err := rows.Scan(&f.ID, &f.BountyID, &f.FulfillerGithubUsername, &f.Accepted); err != nil {
			return nil, fmt.Errorf("failed to scan fulfillment: %w", err)
		}
		fulfillments = append(fulfillments, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fulfillment rows: %w", err)
	}
	return fulfillments, nil
}

// FulfillerHandlesByNetwork returns the fulfiller handle of every
// fulfillment claimed against a bounty on the given network, in claim order.
// Duplicates are kept; the category list wants one entry per claim.
func (db *DB) FulfillerHandlesByNetwork(ctx context.Context, network string) ([]string, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	query := `
		SELECT f.fulfiller_github_username
		FROM fulfillments f
		JOIN bounties b ON b.id = f.bounty_id
		WHERE b.network = ?
		ORDER BY f.id ASC
	`

	rows, err := db.conn.QueryContext(ctx, query, network)
	if err != nil {
		return nil, fmt.Errorf("failed to query fulfiller handles: %w", err)
	}
	defer rows.Close()

	handles := []string{}
	for rows.Next() {
		var h string
		if err := rows.Scan(&h); err != nil {
			return nil, fmt.Errorf("failed to scan fulfiller handle: %w", err)
		}
		handles = append(handles, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fulfiller handle rows: %w", err)
	}
	return handles, nil
}

// InsertFulfillment inserts a fulfillment and returns its generated id.
func (db *DB) InsertFulfillment(ctx context.Context, f *models.Fulfillment) (int64, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	query := `
		INSERT INTO fulfillments (bounty_id, fulfiller_github_username, accepted)
		VALUES (?, ?, ?)
		RETURNING id
	`

	var id int64
	err := db.conn.QueryRowContext(ctx, query, f.BountyID, f.FulfillerGithubUsername, f.Accepted).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert fulfillment: %w", err)
	}
	return id, nil
}

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

// TipsByNetwork returns every tip sent on the given network, oldest first.
func (db *DB) TipsByNetwork(ctx context.Context, network string) ([]models.Tip, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	query := `
		SELECT id, network, username, from_username, value_in_usdt_now
		FROM tips
		WHERE network = ?
		ORDER BY id ASC
	`

	rows, err := db.conn.QueryContext(ctx, query, network)
	if err != nil {
		return nil, fmt.Errorf("failed to query tips: %w", err)
	}
	defer rows.Close()

	tips := []models.Tip{}
	for rows.Next() {
		var t models.Tip
		if err := rows.Scan(&t.ID, &t.Network, &t.Username, &t.FromUsername, &t.ValueInUSDTNow); err != nil {
			return nil, fmt.Errorf("failed to scan tip: %w", err)
		}
		tips = append(tips, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tip rows: %w", err)
	}
	return tips, nil
}

// InsertTip inserts a tip and returns its generated id.
func (db *DB) InsertTip(ctx context.Context, t *models.Tip) (int64, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	query := `
		INSERT INTO tips (network, username, from_username, value_in_usdt_now)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`

	var id int64
	err := db.conn.QueryRowContext(ctx, query, t.Network, t.Username, t.FromUsername, t.ValueInUSDTNow).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert tip: %w", err)
	}
	return id, nil
}

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

// ProfilesWithToken returns the profiles that linked the external code
// hosting integration, sorted by handle. These are the users the speculative
// network graph scatters as independent nodes.
func (db *DB) ProfilesWithToken(ctx context.Context) ([]models.Profile, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	query := `
		SELECT handle, github_access_token
		FROM profiles
		WHERE github_access_token != ''
		ORDER BY handle ASC
	`

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	profiles := []models.Profile{}
	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(&p.Handle, &p.GithubAccessToken); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profile rows: %w", err)
	}
	return profiles, nil
}

// InsertProfile inserts a profile.
func (db *DB) InsertProfile(ctx context.Context, p *models.Profile) error {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	query := `INSERT INTO profiles (handle, github_access_token) VALUES (?, ?)`
	if _, err := db.conn.ExecContext(ctx, query, p.Handle, p.GithubAccessToken); err != nil {
		return fmt.Errorf("failed to insert profile: %w", err)
	}
	return nil
}

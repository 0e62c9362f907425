// Fundviz - Crowdfunding Marketplace Analytics and Network Visualization
// Copyright 2026 Fundviz Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fundviz/fundviz

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fundviz/fundviz/internal/models"
)

// StatsInWindow returns the hourly samples of one metric recorded after the
// cutoff, newest first. The heatmap consumes this window.
func (db *DB) StatsInWindow(ctx context.Context, key string, after time.Time) ([]models.Stat, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	query := `
		SELECT key, created_on, val_since_hour
		FROM stats
		WHERE key = ? AND created_on > ?
		ORDER BY created_on DESC
	`

	rows, err := db.conn.QueryContext(ctx, query, key, after)
	if err != nil {
		return nil, fmt.Errorf("failed to query stats window: %w", err)
	}
	defer rows.Close()

	return scanStats(rows)
}

// StatsAtHour returns the samples of one metric taken at the given hour of
// day, oldest first. Sampling one hour per day turns the hourly series into
// a daily one for the spiral chart.
func (db *DB) StatsAtHour(ctx context.Context, key string, hour int) ([]models.Stat, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	query := `
		SELECT key, created_on, val_since_hour
		FROM stats
		WHERE key = ? AND EXTRACT(HOUR FROM created_on) = ?
		ORDER BY created_on ASC
	`

	rows, err := db.conn.QueryContext(ctx, query, key, hour)
	if err != nil {
		return nil, fmt.Errorf("failed to query stats at hour: %w", err)
	}
	defer rows.Close()

	return scanStats(rows)
}

// DistinctStatKeysAtHour returns the metric names that have at least one
// sample at the given hour of day, sorted alphabetically.
func (db *DB) DistinctStatKeysAtHour(ctx context.Context, hour int) ([]string, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	query := `
		SELECT DISTINCT key
		FROM stats
		WHERE EXTRACT(HOUR FROM created_on) = ?
		ORDER BY key ASC
	`
	return db.queryKeys(ctx, query, hour)
}

// DistinctStatKeysSince returns the metric names sampled after the cutoff,
// sorted alphabetically.
func (db *DB) DistinctStatKeysSince(ctx context.Context, after time.Time) ([]string, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	query := `
		SELECT DISTINCT key
		FROM stats
		WHERE created_on > ?
		ORDER BY key ASC
	`
	return db.queryKeys(ctx, query, after)
}

// InsertStat inserts an hourly metric sample.
func (db *DB) InsertStat(ctx context.Context, s *models.Stat) error {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	query := `INSERT INTO stats (key, created_on, val_since_hour) VALUES (?, ?, ?)`
	if _, err := db.conn.ExecContext(ctx, query, s.Key, s.CreatedOn, s.ValSinceHour); err != nil {
		return fmt.Errorf("failed to insert stat: %w", err)
	}
	return nil
}

func (db *DB) queryKeys(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query stat keys: %w", err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan stat key: %w", err)
		}
		keys = append(keys, key)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stat key rows: %w", err)
	}
	return keys, nil
}

func scanStats(rows *sql.Rows) ([]models.Stat, error) {
	stats := []models.Stat{}
	for rows.Next() {
		var s models.Stat
		if err := rows.Scan(&s.Key, &s.CreatedOn, &s.ValSinceHour); err != nil {
			return nil, fmt.Errorf("failed to scan stat: %w", err)
		}
		stats = append(stats, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stat rows: %w", err)
	}
	return stats, nil
}

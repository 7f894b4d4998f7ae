// Spokeworks Marketplace - Multi-Vendor Bicycle Marketplace
// Copyright 2026 Spokeworks
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/spokeworks/marketplace

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/spokeworks/marketplace/internal/metrics"
	"github.com/spokeworks/marketplace/internal/models"
	"github.com/spokeworks/marketplace/internal/recommend"
)

// RecordInteraction appends one interaction event. Events are immutable
// once written.
func (db *DB) RecordInteraction(ctx context.Context, ev *models.UserInteraction) error {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}

	start := time.Now()
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO user_interactions
			(id, user_id, session_id, product_id, interaction_type, dwell_time_seconds, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ev.ID, ev.UserID, ev.SessionID, ev.ProductID, string(ev.Type), ev.DwellTimeSeconds, ev.Timestamp)
	metrics.RecordDBQuery("insert", "user_interactions", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("record interaction: %w", err)
	}
	return nil
}

// HasHistory reports whether the user has any interaction events.
func (db *DB) HasHistory(ctx context.Context, userID string) (bool, error) {
	start := time.Now()
	var exists bool
	err := db.conn.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM user_interactions WHERE user_id = ?)`,
		userID).Scan(&exists)
	metrics.RecordDBQuery("has_history", "user_interactions", time.Since(start), err)
	if err != nil {
		return false, fmt.Errorf("check interaction history: %w", err)
	}
	return exists, nil
}

// CategoryCounts returns the user's interaction counts per product category,
// ordered by count descending with category ascending as the tie-break.
func (db *DB) CategoryCounts(ctx context.Context, userID string) ([]recommend.CategoryCount, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, `
		SELECT p.category, COUNT(*) AS cnt
		FROM user_interactions ui
		JOIN products p ON p.id = ui.product_id
		WHERE ui.user_id = ?
		GROUP BY p.category
		ORDER BY cnt DESC, p.category ASC`, userID)
	metrics.RecordDBQuery("category_counts", "user_interactions", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("query category counts: %w", err)
	}
	defer closeQuietly(rows)

	counts := make([]recommend.CategoryCount, 0, 8)
	for rows.Next() {
		var c recommend.CategoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, fmt.Errorf("scan category count: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category counts: %w", err)
	}
	return counts, nil
}

// RecentProductIDs returns the user's most recently interacted product IDs,
// newest first, deduplicated.
func (db *DB) RecentProductIDs(ctx context.Context, userID string, limit int) ([]string, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, `
		SELECT product_id
		FROM user_interactions
		WHERE user_id = ? AND product_id <> ''
		GROUP BY product_id
		ORDER BY MAX(created_at) DESC, product_id ASC
		LIMIT ?`, userID, limit)
	metrics.RecordDBQuery("recent_products", "user_interactions", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("query recent products: %w", err)
	}
	defer closeQuietly(rows)

	ids := make([]string, 0, limit)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan recent product: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recent products: %w", err)
	}
	return ids, nil
}

// CoInteractedProducts returns products interacted with by users who share
// interactions with this user, ranked by how many of those peers touched
// each product. The user's own products are excluded.
func (db *DB) CoInteractedProducts(ctx context.Context, userID string, limit int) ([]recommend.RankedProduct, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, `
		WITH mine AS (
			SELECT DISTINCT product_id
			FROM user_interactions
			WHERE user_id = ? AND product_id <> ''
		),
		peers AS (
			SELECT DISTINCT ui.user_id
			FROM user_interactions ui
			JOIN mine ON mine.product_id = ui.product_id
			WHERE ui.user_id <> ? AND ui.user_id <> ''
		)
		SELECT ui.product_id, COUNT(DISTINCT ui.user_id) AS cnt
		FROM user_interactions ui
		JOIN peers ON peers.user_id = ui.user_id
		WHERE ui.product_id <> ''
		  AND ui.product_id NOT IN (SELECT product_id FROM mine)
		GROUP BY ui.product_id
		ORDER BY cnt DESC, ui.product_id ASC
		LIMIT ?`, userID, userID, limit)
	metrics.RecordDBQuery("co_interacted", "user_interactions", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("query co-interacted products: %w", err)
	}
	defer closeQuietly(rows)

	ranked := make([]recommend.RankedProduct, 0, limit)
	for rows.Next() {
		var rp recommend.RankedProduct
		if err := rows.Scan(&rp.ProductID, &rp.Score); err != nil {
			return nil, fmt.Errorf("scan co-interacted product: %w", err)
		}
		ranked = append(ranked, rp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate co-interacted products: %w", err)
	}
	return ranked, nil
}

// Spokeworks Marketplace - Multi-Vendor Bicycle Marketplace
// Copyright 2026 Spokeworks
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/spokeworks/marketplace

package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations.
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createSchema creates the tables and indexes. All columns are defined in
// the initial CREATE TABLE statements; there is no migration layer yet.
func (db *DB) createSchema() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range schemaQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("execute schema query: %s: %w", query, err)
		}
	}
	return nil
}

// schemaQueries returns the table and index creation statements.
func schemaQueries() []string {
	return []string{
		// Product catalog, synced from the point-of-sale system.
		`CREATE TABLE IF NOT EXISTS products (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price DOUBLE NOT NULL DEFAULT 0,
			category TEXT NOT NULL DEFAULT '',
			subcategory TEXT NOT NULL DEFAULT '',
			brand TEXT NOT NULL DEFAULT '',
			manufacturer TEXT NOT NULL DEFAULT '',
			bike_type TEXT NOT NULL DEFAULT '',
			seller_id TEXT NOT NULL DEFAULT '',
			image_url TEXT NOT NULL DEFAULT '',
			active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		// Pre-computed ranking signals, maintained by the aggregation job.
		`CREATE TABLE IF NOT EXISTS product_scores (
			product_id TEXT PRIMARY KEY,
			trending_score DOUBLE NOT NULL DEFAULT 0,
			popularity_score DOUBLE NOT NULL DEFAULT 0,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		// Append-only interaction event log.
		`CREATE TABLE IF NOT EXISTS user_interactions (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL DEFAULT '',
			session_id TEXT NOT NULL DEFAULT '',
			product_id TEXT NOT NULL DEFAULT '',
			interaction_type TEXT NOT NULL,
			dwell_time_seconds INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		// Derived keyword preferences, recomputed by the aggregation job.
		`CREATE TABLE IF NOT EXISTS user_keywords (
			user_id TEXT NOT NULL,
			keyword TEXT NOT NULL,
			score DOUBLE NOT NULL DEFAULT 0,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, keyword)
		)`,

		// Stated onboarding preferences; list fields are stored as JSON text.
		`CREATE TABLE IF NOT EXISTS onboarding_preferences (
			user_id TEXT PRIMARY KEY,
			riding_styles TEXT NOT NULL DEFAULT '[]',
			preferred_brands TEXT NOT NULL DEFAULT '[]',
			experience_level TEXT NOT NULL DEFAULT '',
			budget_range TEXT NOT NULL DEFAULT '',
			interests TEXT NOT NULL DEFAULT '[]',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_products_active_category
			ON products (active, category)`,
		`CREATE INDEX IF NOT EXISTS idx_products_created
			ON products (created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_interactions_user
			ON user_interactions (user_id, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_interactions_product
			ON user_interactions (product_id)`,
	}
}

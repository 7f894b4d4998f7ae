// Spokeworks Marketplace - Multi-Vendor Bicycle Marketplace
// Copyright 2026 Spokeworks
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/spokeworks/marketplace

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/spokeworks/marketplace/internal/metrics"
	"github.com/spokeworks/marketplace/internal/models"
	"github.com/spokeworks/marketplace/internal/recommend"
)

// UpsertScore inserts or replaces a product's pre-computed scores. Called by
// the aggregation job.
func (db *DB) UpsertScore(ctx context.Context, s *models.ProductScore) error {
	start := time.Now()
	_, err := db.conn.ExecContext(ctx, `
		INSERT OR REPLACE INTO product_scores
			(product_id, trending_score, popularity_score, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)`,
		s.ProductID, s.TrendingScore, s.PopularityScore)
	metrics.RecordDBQuery("upsert", "product_scores", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("upsert score %s: %w", s.ProductID, err)
	}
	return nil
}

// TopProducts returns active products ranked by the metric, score descending
// with product ID ascending as the tie-break.
func (db *DB) TopProducts(ctx context.Context, metric recommend.ScoreMetric, limit int) ([]recommend.RankedProduct, error) {
	column := "trending_score"
	if metric == recommend.MetricPopularity {
		column = "popularity_score"
	}

	query := fmt.Sprintf(`
		SELECT s.product_id, s.%s
		FROM product_scores s
		JOIN products p ON p.id = s.product_id
		WHERE p.active = true AND s.%s > 0
		ORDER BY s.%s DESC, s.product_id ASC
		LIMIT ?`, column, column, column)

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query, limit)
	metrics.RecordDBQuery("top_products", "product_scores", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("query top products by %s: %w", metric, err)
	}
	defer closeQuietly(rows)

	ranked := make([]recommend.RankedProduct, 0, limit)
	for rows.Next() {
		var rp recommend.RankedProduct
		if err := rows.Scan(&rp.ProductID, &rp.Score); err != nil {
			return nil, fmt.Errorf("scan ranked product: %w", err)
		}
		ranked = append(ranked, rp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ranked products: %w", err)
	}
	return ranked, nil
}

// GetScores returns scores for the given products. Products without a score
// row are omitted; callers treat absence as zero.
func (db *DB) GetScores(ctx context.Context, ids []string) (map[string]models.ProductScore, error) {
	scores := make(map[string]models.ProductScore, len(ids))
	if len(ids) == 0 {
		return scores, nil
	}

	query := `
		SELECT product_id, trending_score, popularity_score
		FROM product_scores
		WHERE product_id IN (` + placeholders(len(ids)) + `)`
	args := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query, args...)
	metrics.RecordDBQuery("get_scores", "product_scores", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("get product scores: %w", err)
	}
	defer closeQuietly(rows)

	for rows.Next() {
		var s models.ProductScore
		if err := rows.Scan(&s.ProductID, &s.TrendingScore, &s.PopularityScore); err != nil {
			return nil, fmt.Errorf("scan product score: %w", err)
		}
		scores[s.ProductID] = s
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product scores: %w", err)
	}
	return scores, nil
}

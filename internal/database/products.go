// Spokeworks Marketplace - Multi-Vendor Bicycle Marketplace
// Copyright 2026 Spokeworks
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/spokeworks/marketplace

package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/spokeworks/marketplace/internal/metrics"
	"github.com/spokeworks/marketplace/internal/models"
	"github.com/spokeworks/marketplace/internal/recommend"
)

const productColumns = `id, name, description, price, category, subcategory,
	brand, manufacturer, bike_type, seller_id, image_url, active, created_at`

// UpsertProduct inserts or replaces a catalog product. Called by the
// catalog sync job.
func (db *DB) UpsertProduct(ctx context.Context, p *models.Product) error {
	start := time.Now()
	_, err := db.conn.ExecContext(ctx, `
		INSERT OR REPLACE INTO products
			(id, name, description, price, category, subcategory,
			 brand, manufacturer, bike_type, seller_id, image_url, active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, p.Price, p.Category, p.Subcategory,
		p.Brand, p.Manufacturer, p.BikeType, p.SellerID, p.ImageURL, p.Active, p.CreatedAt)
	metrics.RecordDBQuery("upsert", "products", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("upsert product %s: %w", p.ID, err)
	}
	return nil
}

// QueryActive returns active products matching the filter.
func (db *DB) QueryActive(ctx context.Context, filter recommend.ProductFilter) ([]models.Product, error) {
	var sb strings.Builder
	sb.WriteString("SELECT " + productColumns + " FROM products WHERE active = true")
	args := make([]interface{}, 0, 8)

	if filter.MinPrice != nil {
		sb.WriteString(" AND price >= ?")
		args = append(args, *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		sb.WriteString(" AND price <= ?")
		args = append(args, *filter.MaxPrice)
	}
	if len(filter.Categories) > 0 {
		sb.WriteString(" AND category IN (" + placeholders(len(filter.Categories)) + ")")
		for _, c := range filter.Categories {
			args = append(args, c)
		}
	}
	if len(filter.MatchKeywords) > 0 {
		clauses := make([]string, 0, len(filter.MatchKeywords))
		for _, kw := range filter.MatchKeywords {
			clauses = append(clauses, "(name ILIKE ? OR description ILIKE ?)")
			pattern := "%" + kw + "%"
			args = append(args, pattern, pattern)
		}
		sb.WriteString(" AND (" + strings.Join(clauses, " OR ") + ")")
	}

	switch filter.Order {
	case recommend.OrderNewest:
		sb.WriteString(" ORDER BY created_at DESC, id ASC")
	default:
		sb.WriteString(" ORDER BY id ASC")
	}

	if filter.Limit > 0 {
		sb.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, sb.String(), args...)
	metrics.RecordDBQuery("query_active", "products", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("query active products: %w", err)
	}
	defer closeQuietly(rows)

	return scanProducts(rows)
}

// GetByIDs returns the products with the given IDs, active or not. Order is
// not guaranteed; missing IDs are silently omitted.
func (db *DB) GetByIDs(ctx context.Context, ids []string) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}

	query := "SELECT " + productColumns + " FROM products WHERE id IN (" + placeholders(len(ids)) + ")"
	args := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query, args...)
	metrics.RecordDBQuery("get_by_ids", "products", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("get products by ids: %w", err)
	}
	defer closeQuietly(rows)

	return scanProducts(rows)
}

func scanProducts(rows *sql.Rows) ([]models.Product, error) {
	products := make([]models.Product, 0, 32)
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price,
			&p.Category, &p.Subcategory, &p.Brand, &p.Manufacturer,
			&p.BikeType, &p.SellerID, &p.ImageURL, &p.Active, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

// placeholders returns n comma-separated SQL placeholders.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// Spokeworks Marketplace - Multi-Vendor Bicycle Marketplace
// Copyright 2026 Spokeworks
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/spokeworks/marketplace

package recommend

import (
	"context"

	"github.com/spokeworks/marketplace/internal/models"
)

// Note: this package has no dependency on the database package. The store
// interfaces below are implemented by internal/database, which keeps the
// engine unit-testable without a live store.

// ScoreMetric selects which pre-computed score ranks a product.
type ScoreMetric string

const (
	// MetricTrending ranks by short-window interaction velocity.
	MetricTrending ScoreMetric = "trending"
	// MetricPopularity ranks by all-time interaction weight.
	MetricPopularity ScoreMetric = "popularity"
)

// ProductOrder selects the ordering of a catalog query.
type ProductOrder int

const (
	// OrderCatalog is the deterministic catalog order (product ID ascending).
	OrderCatalog ProductOrder = iota
	// OrderNewest orders by listing creation time, most recent first.
	OrderNewest
)

// ProductFilter restricts a catalog query. Zero-value fields are ignored.
type ProductFilter struct {
	// MinPrice and MaxPrice bound the price window when non-nil.
	MinPrice *float64
	MaxPrice *float64

	// Categories restricts to the given catalog categories.
	Categories []string

	// MatchKeywords restricts to products whose name or description contains
	// at least one keyword (case-insensitive substring match).
	MatchKeywords []string

	// Order is the result ordering.
	Order ProductOrder

	// Limit caps the result size. Zero means the store default.
	Limit int
}

// RankedProduct is a product ID with an associated store-computed score.
type RankedProduct struct {
	ProductID string
	Score     float64
}

// CategoryCount is an interaction count for one catalog category.
type CategoryCount struct {
	Category string
	Count    int
}

// ProductStore provides read access to the active product catalog.
type ProductStore interface {
	// QueryActive returns active products matching the filter.
	QueryActive(ctx context.Context, filter ProductFilter) ([]models.Product, error)

	// GetByIDs returns the products with the given IDs, active or not.
	// Order is not guaranteed; missing IDs are silently omitted.
	GetByIDs(ctx context.Context, ids []string) ([]models.Product, error)
}

// ScoreStore provides read access to pre-computed product scores.
type ScoreStore interface {
	// TopProducts returns active products ranked by the metric, score
	// descending with product ID ascending as the tie-break.
	TopProducts(ctx context.Context, metric ScoreMetric, limit int) ([]RankedProduct, error)

	// GetScores returns scores for the given products. Products without a
	// score row are omitted; callers treat absence as zero.
	GetScores(ctx context.Context, ids []string) (map[string]models.ProductScore, error)
}

// InteractionStore provides read-only aggregate access to the interaction
// event log.
type InteractionStore interface {
	// HasHistory reports whether the user has any interaction events.
	HasHistory(ctx context.Context, userID string) (bool, error)

	// CategoryCounts returns the user's interaction counts per product
	// category, ordered by count descending.
	CategoryCounts(ctx context.Context, userID string) ([]CategoryCount, error)

	// RecentProductIDs returns the user's most recently interacted product
	// IDs, newest first, deduplicated.
	RecentProductIDs(ctx context.Context, userID string, limit int) ([]string, error)

	// CoInteractedProducts returns products interacted with by users who
	// share interactions with this user, ranked by co-interaction count.
	// The user's own products are excluded.
	CoInteractedProducts(ctx context.Context, userID string, limit int) ([]RankedProduct, error)
}

// PreferenceStore provides read access to derived user preferences.
type PreferenceStore interface {
	// GetUserPreferences returns the user's derived preference record, or
	// (nil, nil) when absent. Absence is the cold-start signal, not an error.
	GetUserPreferences(ctx context.Context, userID string) (*models.UserPreferences, error)
}

// OnboardingStore provides read access to stated onboarding preferences.
type OnboardingStore interface {
	// GetOnboardingPreferences returns the user's stated preferences, or
	// (nil, nil) when absent.
	GetOnboardingPreferences(ctx context.Context, userID string) (*models.OnboardingPreferences, error)
}

// Spokeworks Marketplace - Multi-Vendor Bicycle Marketplace
// Copyright 2026 Spokeworks
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/spokeworks/marketplace

package recommend

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/spokeworks/marketplace/internal/metrics"
	"github.com/spokeworks/marketplace/internal/models"
)

// Enricher hydrates a ranked product-ID list into display-ready summaries.
type Enricher struct {
	products ProductStore
	logger   zerolog.Logger
}

// NewEnricher creates a new enrichment stage over the product store.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEnricher(products ProductStore, logger zerolog.Logger) *Enricher {
	return &Enricher{
		products: products,
		logger:   logger.With().Str("component", "enrich").Logger(),
	}
}

// Enrich fetches the full product rows for the ranked IDs in a single
// batched lookup, re-imposes rank order, and silently drops IDs whose
// product is no longer active. A product going inactive between scoring and
// hydration is an expected race, not an error: it shortens the result
// instead of failing it.
func (en *Enricher) Enrich(ctx context.Context, rankedIDs []string) ([]models.ProductSummary, error) {
	if len(rankedIDs) == 0 {
		return []models.ProductSummary{}, nil
	}

	products, err := en.products.GetByIDs(ctx, rankedIDs)
	if err != nil {
		return nil, fmt.Errorf("batch product lookup: %w", err)
	}

	// Batch fetches do not preserve order; index by ID first.
	byID := make(map[string]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	summaries := make([]models.ProductSummary, 0, len(rankedIDs))
	dropped := 0
	for _, id := range rankedIDs {
		p, ok := byID[id]
		if !ok || !p.Active {
			dropped++
			continue
		}
		summaries = append(summaries, p.Summary())
	}

	if dropped > 0 {
		metrics.EnrichmentDropped.Add(float64(dropped))
		en.logger.Debug().
			Int("dropped", dropped).
			Int("returned", len(summaries)).
			Msg("dropped inactive products during enrichment")
	}

	return summaries, nil
}

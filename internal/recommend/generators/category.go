// Spokeworks Marketplace - Multi-Vendor Bicycle Marketplace
// Copyright 2026 Spokeworks
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/spokeworks/marketplace

package generators

import (
	"context"
	"fmt"

	"github.com/spokeworks/marketplace/internal/recommend"
)

// topAffinityCategories is how many of the user's most-interacted categories
// the category generator draws candidates from.
const topAffinityCategories = 3

// CategoryConfig contains configuration for the category generator.
type CategoryConfig struct {
	// MaxCandidates bounds the candidate pool pulled from the store.
	MaxCandidates int

	// Confidence is the declared confidence when candidates are produced.
	Confidence float64
}

// Category recommends products from the categories the user interacts with
// most. Each candidate is scored by its category's share of the user's total
// interaction count, so a dominant category outranks occasional ones.
type Category struct {
	products     recommend.ProductStore
	interactions recommend.InteractionStore
	cfg          CategoryConfig
}

// NewCategory creates the category-affinity generator.
func NewCategory(products recommend.ProductStore, interactions recommend.InteractionStore, cfg CategoryConfig) *Category {
	if cfg.MaxCandidates <= 0 {
		cfg.MaxCandidates = 500
	}
	return &Category{products: products, interactions: interactions, cfg: cfg}
}

func (g *Category) Name() string { return "category" }

// Applicable requires an identified user with interaction history.
func (g *Category) Applicable(state recommend.UserState) bool {
	return !state.Anonymous && state.HasHistory
}

func (g *Category) Generate(ctx context.Context, rctx *recommend.Context) (recommend.Result, error) {
	counts, err := g.interactions.CategoryCounts(ctx, rctx.UserID)
	if err != nil {
		return recommend.EmptyResult(g.Name()), fmt.Errorf("category affinity query: %w", err)
	}
	if len(counts) == 0 {
		return recommend.EmptyResult(g.Name()), nil
	}

	total := 0
	for _, c := range counts {
		total += c.Count
	}

	top := counts
	if len(top) > topAffinityCategories {
		top = top[:topAffinityCategories]
	}

	share := make(map[string]float64, len(top))
	categories := make([]string, 0, len(top))
	for _, c := range top {
		categories = append(categories, c.Category)
		share[c.Category] = float64(c.Count) / float64(total)
	}

	products, err := g.products.QueryActive(ctx, recommend.ProductFilter{
		Categories: categories,
		Limit:      g.cfg.MaxCandidates,
	})
	if err != nil {
		return recommend.EmptyResult(g.Name()), fmt.Errorf("category candidate query: %w", err)
	}

	candidates := make([]scoredCandidate, 0, len(products))
	for i := range products {
		candidates = append(candidates, scoredCandidate{
			id:    products[i].ID,
			score: share[products[i].Category],
		})
	}

	sortCandidates(candidates)
	return resultFrom(g.Name(), collectIDs(candidates, rctx, rctx.Limit), g.cfg.Confidence), nil
}

// Spokeworks Marketplace - Multi-Vendor Bicycle Marketplace
// Copyright 2026 Spokeworks
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/spokeworks/marketplace

package generators

import (
	"context"
	"fmt"
	"strings"

	"github.com/spokeworks/marketplace/internal/models"
	"github.com/spokeworks/marketplace/internal/recommend"
)

// similarSeedWindow is how many recently viewed products seed the
// similarity search.
const similarSeedWindow = 10

// Attribute contributions for the content-similarity score.
const (
	similarSubcategoryScore = 3
	similarBrandScore       = 2
	similarBikeTypeScore    = 2
)

// SimilarConfig contains configuration for the similarity generator.
type SimilarConfig struct {
	// MaxCandidates bounds the candidate pool pulled from the store.
	MaxCandidates int

	// Confidence is the declared confidence when candidates are produced.
	Confidence float64
}

// Similar recommends products whose attributes resemble the user's recently
// viewed products. Candidates are drawn from the seed products' categories
// and scored by the best attribute overlap (subcategory, brand, bike type)
// against any seed, plus a price-proximity term in [0, 1].
type Similar struct {
	products     recommend.ProductStore
	interactions recommend.InteractionStore
	cfg          SimilarConfig
}

// NewSimilar creates the content-similarity generator.
func NewSimilar(products recommend.ProductStore, interactions recommend.InteractionStore, cfg SimilarConfig) *Similar {
	if cfg.MaxCandidates <= 0 {
		cfg.MaxCandidates = 500
	}
	return &Similar{products: products, interactions: interactions, cfg: cfg}
}

func (g *Similar) Name() string { return "similar" }

// Applicable requires an identified user with interaction history.
func (g *Similar) Applicable(state recommend.UserState) bool {
	return !state.Anonymous && state.HasHistory
}

func (g *Similar) Generate(ctx context.Context, rctx *recommend.Context) (recommend.Result, error) {
	recentIDs, err := g.interactions.RecentProductIDs(ctx, rctx.UserID, similarSeedWindow)
	if err != nil {
		return recommend.EmptyResult(g.Name()), fmt.Errorf("recent products query: %w", err)
	}
	if len(recentIDs) == 0 {
		return recommend.EmptyResult(g.Name()), nil
	}

	seeds, err := g.products.GetByIDs(ctx, recentIDs)
	if err != nil {
		return recommend.EmptyResult(g.Name()), fmt.Errorf("seed product lookup: %w", err)
	}
	if len(seeds) == 0 {
		return recommend.EmptyResult(g.Name()), nil
	}

	seedSet := make(map[string]struct{}, len(seeds))
	categorySet := make(map[string]struct{})
	categories := make([]string, 0, len(seeds))
	for i := range seeds {
		seedSet[seeds[i].ID] = struct{}{}
		if _, ok := categorySet[seeds[i].Category]; !ok {
			categorySet[seeds[i].Category] = struct{}{}
			categories = append(categories, seeds[i].Category)
		}
	}

	products, err := g.products.QueryActive(ctx, recommend.ProductFilter{
		Categories: categories,
		Limit:      g.cfg.MaxCandidates,
	})
	if err != nil {
		return recommend.EmptyResult(g.Name()), fmt.Errorf("similar candidate query: %w", err)
	}

	candidates := make([]scoredCandidate, 0, len(products))
	for i := range products {
		p := &products[i]
		if _, isSeed := seedSet[p.ID]; isSeed {
			continue
		}
		candidates = append(candidates, scoredCandidate{
			id:    p.ID,
			score: bestSeedSimilarity(p, seeds),
		})
	}

	sortCandidates(candidates)
	return resultFrom(g.Name(), collectIDs(candidates, rctx, rctx.Limit), g.cfg.Confidence), nil
}

// bestSeedSimilarity returns the highest similarity between the candidate
// and any seed product.
func bestSeedSimilarity(p *models.Product, seeds []models.Product) float64 {
	var best float64
	for i := range seeds {
		if s := attributeSimilarity(p, &seeds[i]); s > best {
			best = s
		}
	}
	return best
}

// attributeSimilarity scores how closely two products resemble each other:
// shared subcategory, brand, and bike type contribute fixed weights, and
// price proximity contributes up to 1.
func attributeSimilarity(a, b *models.Product) float64 {
	var score float64

	if a.Subcategory != "" && a.Subcategory == b.Subcategory {
		score += similarSubcategoryScore
	}
	if a.Brand != "" && strings.EqualFold(a.Brand, b.Brand) {
		score += similarBrandScore
	}
	if a.BikeType != "" && strings.EqualFold(a.BikeType, b.BikeType) {
		score += similarBikeTypeScore
	}

	score += priceProximity(a.Price, b.Price)
	return score
}

// priceProximity maps the relative price difference to [0, 1]: identical
// prices score 1, a candidate at twice or half the seed price scores 0.
func priceProximity(a, b float64) float64 {
	if a <= 0 || b <= 0 {
		return 0
	}
	hi, lo := a, b
	if lo > hi {
		hi, lo = lo, hi
	}
	p := 1 - (hi-lo)/hi
	if p < 0 {
		return 0
	}
	return p
}

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
	"github.com/spokeworks/marketplace/internal/recommend/scoring"
)

// Match score contributions for the onboarding generator.
const (
	brandMatchScore    = 5
	styleMatchScore    = 3
	interestMatchScore = 2
	budgetMatchScore   = 1
)

// OnboardingConfig contains configuration for the onboarding generator.
type OnboardingConfig struct {
	// MaxCandidates bounds the candidate pool pulled from the store.
	MaxCandidates int

	// Confidence is the declared confidence when candidates are produced.
	Confidence float64
}

// Onboarding recommends products matching the preferences a user stated at
// signup. It is the cold-start path for users with no interaction history.
//
// The candidate pool is restricted server-side only by the stated budget
// range; every candidate is then scored in memory. Zero-score candidates are
// kept: being within budget is itself considered relevant. This is an
// intentional asymmetry with the keyword generator, which drops zero-score
// matches.
type Onboarding struct {
	products   recommend.ProductStore
	onboarding recommend.OnboardingStore
	cfg        OnboardingConfig
}

// NewOnboarding creates the onboarding generator.
func NewOnboarding(products recommend.ProductStore, onboarding recommend.OnboardingStore, cfg OnboardingConfig) *Onboarding {
	if cfg.MaxCandidates <= 0 {
		cfg.MaxCandidates = 500
	}
	return &Onboarding{products: products, onboarding: onboarding, cfg: cfg}
}

func (g *Onboarding) Name() string { return "onboarding" }

// Applicable requires an identified user; the generator itself handles the
// absence of an onboarding record.
func (g *Onboarding) Applicable(state recommend.UserState) bool {
	return !state.Anonymous
}

func (g *Onboarding) Generate(ctx context.Context, rctx *recommend.Context) (recommend.Result, error) {
	prefs, err := g.onboarding.GetOnboardingPreferences(ctx, rctx.UserID)
	if err != nil {
		return recommend.EmptyResult(g.Name()), fmt.Errorf("onboarding lookup: %w", err)
	}
	if prefs == nil {
		return recommend.EmptyResult(g.Name()), nil
	}

	filter := recommend.ProductFilter{Limit: g.cfg.MaxCandidates}
	budget, budgetOK := scoring.ParseBudgetRange(prefs.BudgetRange)
	if budgetOK {
		minPrice := budget.Min
		filter.MinPrice = &minPrice
		if budget.HasMax {
			maxPrice := budget.Max
			filter.MaxPrice = &maxPrice
		}
	}

	products, err := g.products.QueryActive(ctx, filter)
	if err != nil {
		return recommend.EmptyResult(g.Name()), fmt.Errorf("onboarding candidate query: %w", err)
	}

	candidates := make([]scoredCandidate, 0, len(products))
	for i := range products {
		p := &products[i]
		score := g.matchScore(p, prefs)
		if budgetOK && budget.Contains(p.Price) {
			score += budgetMatchScore
		}
		candidates = append(candidates, scoredCandidate{id: p.ID, score: score})
	}

	// Stable sort keeps catalog order for equal scores.
	sortByScoreKeepOrder(candidates)
	return resultFrom(g.Name(), collectIDs(candidates, rctx, rctx.Limit), g.cfg.Confidence), nil
}

// matchScore computes the in-memory preference match score for one product.
func (g *Onboarding) matchScore(p *models.Product, prefs *models.OnboardingPreferences) float64 {
	var score float64

	haystack := strings.ToLower(strings.Join([]string{p.Name, p.Description, p.Brand, p.Manufacturer}, " "))
	for _, brand := range prefs.PreferredBrands {
		b := strings.ToLower(strings.TrimSpace(brand))
		if b != "" && strings.Contains(haystack, b) {
			score += brandMatchScore
		}
	}

	for _, style := range prefs.RidingStyles {
		m := scoring.StyleCategory(style)
		if m.BikeType != "" {
			if strings.EqualFold(p.BikeType, m.BikeType) {
				score += styleMatchScore
			}
		} else if p.Category == m.Category {
			score += styleMatchScore
		}
	}

	for _, interest := range prefs.Interests {
		if category, ok := scoring.InterestCategory(interest); ok && p.Category == category {
			score += interestMatchScore
		}
	}

	return score
}

// Spokeworks Marketplace - Multi-Vendor Bicycle Marketplace
// Copyright 2026 Spokeworks
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/spokeworks/marketplace

package generators

import (
	"context"
	"fmt"

	"github.com/spokeworks/marketplace/internal/recommend"
	"github.com/spokeworks/marketplace/internal/recommend/scoring"
)

// KeywordConfig contains configuration for the keyword generator.
type KeywordConfig struct {
	// TopKeywords is how many of the user's highest-frequency keywords to
	// match against.
	TopKeywords int

	// WeightFactor multiplies the keyword match score in the ranking key so
	// keyword relevance dominates popularity.
	WeightFactor float64

	// MaxCandidates bounds the candidate pool pulled from the store.
	MaxCandidates int

	// Confidence is the declared confidence when candidates are produced.
	Confidence float64
}

// Keyword recommends products whose name or description overlaps with the
// user's derived favorite keywords.
//
// The ranking key is keywordMatchScore*WeightFactor + popularityScore:
// keyword relevance dominates, popularity breaks ties. Products with a zero
// match score are dropped; unlike the onboarding generator, mere presence in
// the candidate pool is not considered relevant.
type Keyword struct {
	products    recommend.ProductStore
	scores      recommend.ScoreStore
	preferences recommend.PreferenceStore
	cfg         KeywordConfig
}

// NewKeyword creates the keyword generator.
func NewKeyword(products recommend.ProductStore, scores recommend.ScoreStore, preferences recommend.PreferenceStore, cfg KeywordConfig) *Keyword {
	if cfg.TopKeywords <= 0 {
		cfg.TopKeywords = 5
	}
	if cfg.WeightFactor <= 0 {
		cfg.WeightFactor = 10
	}
	if cfg.MaxCandidates <= 0 {
		cfg.MaxCandidates = 500
	}
	return &Keyword{products: products, scores: scores, preferences: preferences, cfg: cfg}
}

func (g *Keyword) Name() string { return "keyword" }

// Applicable requires an identified user with interaction history: the
// keyword preference record is derived from that history.
func (g *Keyword) Applicable(state recommend.UserState) bool {
	return !state.Anonymous && state.HasHistory
}

func (g *Keyword) Generate(ctx context.Context, rctx *recommend.Context) (recommend.Result, error) {
	prefs, err := g.preferences.GetUserPreferences(ctx, rctx.UserID)
	if err != nil {
		return recommend.EmptyResult(g.Name()), fmt.Errorf("preference lookup: %w", err)
	}
	if prefs == nil || len(prefs.FavoriteKeywords) == 0 {
		return recommend.EmptyResult(g.Name()), nil
	}

	keywords := scoring.TopKeywords(prefs.FavoriteKeywords, g.cfg.TopKeywords)
	if len(keywords) == 0 {
		return recommend.EmptyResult(g.Name()), nil
	}

	terms := make([]string, len(keywords))
	for i, kw := range keywords {
		terms[i] = kw.Keyword
	}

	products, err := g.products.QueryActive(ctx, recommend.ProductFilter{
		MatchKeywords: terms,
		Limit:         g.cfg.MaxCandidates,
	})
	if err != nil {
		return recommend.EmptyResult(g.Name()), fmt.Errorf("keyword candidate query: %w", err)
	}
	if len(products) == 0 {
		return recommend.EmptyResult(g.Name()), nil
	}

	ids := make([]string, len(products))
	for i := range products {
		ids[i] = products[i].ID
	}
	productScores, err := g.scores.GetScores(ctx, ids)
	if err != nil {
		return recommend.EmptyResult(g.Name()), fmt.Errorf("score lookup: %w", err)
	}

	candidates := make([]scoredCandidate, 0, len(products))
	for i := range products {
		p := &products[i]
		matchScore := scoring.KeywordMatchScore(p.Name+" "+p.Description, keywords)
		if matchScore <= 0 {
			continue
		}
		candidates = append(candidates, scoredCandidate{
			id:    p.ID,
			score: matchScore*g.cfg.WeightFactor + productScores[p.ID].PopularityScore,
		})
	}

	sortCandidates(candidates)
	return resultFrom(g.Name(), collectIDs(candidates, rctx, rctx.Limit), g.cfg.Confidence), nil
}

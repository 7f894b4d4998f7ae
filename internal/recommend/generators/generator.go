// Spokeworks Marketplace - Multi-Vendor Bicycle Marketplace
// Copyright 2026 Spokeworks
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/spokeworks/marketplace

package generators

import (
	"sort"

	"github.com/spokeworks/marketplace/internal/recommend"
)

// Sources bundles the read-only stores the generators consume.
type Sources struct {
	Products     recommend.ProductStore
	Scores       recommend.ScoreStore
	Interactions recommend.InteractionStore
	Preferences  recommend.PreferenceStore
	Onboarding   recommend.OnboardingStore
}

// RegisterDefaults registers the full generator ensemble on the engine in
// the standard priority order. Registration order breaks confidence ties
// during the merge, so the behavioral generators come before the global
// baselines.
func RegisterDefaults(engine *recommend.Engine, src Sources, cfg *recommend.Config) {
	engine.RegisterGenerator(NewKeyword(src.Products, src.Scores, src.Preferences, KeywordConfig{
		TopKeywords:   cfg.TopKeywords,
		WeightFactor:  cfg.KeywordWeightFactor,
		MaxCandidates: cfg.MaxCandidates,
		Confidence:    cfg.Confidence.Keyword,
	}))
	engine.RegisterGenerator(NewOnboarding(src.Products, src.Onboarding, OnboardingConfig{
		MaxCandidates: cfg.MaxCandidates,
		Confidence:    cfg.Confidence.Onboarding,
	}))
	engine.RegisterGenerator(NewTrending(src.Scores, cfg.Confidence.Trending))
	engine.RegisterGenerator(NewCategory(src.Products, src.Interactions, CategoryConfig{
		MaxCandidates: cfg.MaxCandidates,
		Confidence:    cfg.Confidence.Category,
	}))
	engine.RegisterGenerator(NewPopularity(src.Scores, cfg.Confidence.Popularity))
	engine.RegisterGenerator(NewSimilar(src.Products, src.Interactions, SimilarConfig{
		MaxCandidates: cfg.MaxCandidates,
		Confidence:    cfg.Confidence.Similar,
	}))
	engine.RegisterGenerator(NewCollaborative(src.Interactions, CollaborativeConfig{
		MaxCandidates: cfg.MaxCandidates,
		Confidence:    cfg.Confidence.Collaborative,
	}))
}

// scoredCandidate pairs a product ID with an in-memory ranking score.
type scoredCandidate struct {
	id    string
	score float64
}

// sortCandidates orders candidates by score descending with product ID
// ascending as the deterministic tie-break.
func sortCandidates(candidates []scoredCandidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].id < candidates[j].id
	})
}

// sortByScoreKeepOrder orders candidates by score descending, preserving
// the input (catalog) order for equal scores.
func sortByScoreKeepOrder(candidates []scoredCandidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
}

// collectIDs extracts candidate IDs in order, skipping excluded IDs and
// duplicates, truncated to limit.
func collectIDs(candidates []scoredCandidate, rctx *recommend.Context, limit int) []string {
	seen := make(map[string]struct{}, limit)
	ids := make([]string, 0, limit)
	for _, c := range candidates {
		if len(ids) >= limit {
			break
		}
		if rctx.Excluded(c.id) {
			continue
		}
		if _, dup := seen[c.id]; dup {
			continue
		}
		seen[c.id] = struct{}{}
		ids = append(ids, c.id)
	}
	return ids
}

// resultFrom builds the generator result, declaring confidence only when
// candidates were produced.
func resultFrom(algorithm string, ids []string, confidence float64) recommend.Result {
	if len(ids) == 0 {
		return recommend.EmptyResult(algorithm)
	}
	return recommend.Result{
		ProductIDs: ids,
		Confidence: confidence,
		Algorithm:  algorithm,
	}
}

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

// scoreRanked selects active products by one pre-computed score metric. It
// backs both the trending and popularity generators, which differ only in
// the metric and declared confidence.
//
// The store ranks score descending with product ID ascending as the
// tie-break, which keeps pagination deterministic.
type scoreRanked struct {
	name       string
	metric     recommend.ScoreMetric
	scores     recommend.ScoreStore
	confidence float64
}

// NewTrending creates the trending generator, ranking by short-window
// interaction velocity.
func NewTrending(scores recommend.ScoreStore, confidence float64) recommend.Generator {
	return &scoreRanked{
		name:       "trending",
		metric:     recommend.MetricTrending,
		scores:     scores,
		confidence: confidence,
	}
}

// NewPopularity creates the popularity generator, ranking by all-time
// interaction weight.
func NewPopularity(scores recommend.ScoreStore, confidence float64) recommend.Generator {
	return &scoreRanked{
		name:       "popularity",
		metric:     recommend.MetricPopularity,
		scores:     scores,
		confidence: confidence,
	}
}

func (g *scoreRanked) Name() string { return g.name }

// Applicable always returns true: score rankings need no user signal.
func (g *scoreRanked) Applicable(recommend.UserState) bool { return true }

func (g *scoreRanked) Generate(ctx context.Context, rctx *recommend.Context) (recommend.Result, error) {
	// Over-fetch by the exclusion size so exclusions cannot starve the page.
	ranked, err := g.scores.TopProducts(ctx, g.metric, rctx.Limit+len(rctx.Exclude))
	if err != nil {
		return recommend.EmptyResult(g.name), fmt.Errorf("%s ranking query: %w", g.name, err)
	}

	ids := make([]string, 0, rctx.Limit)
	for _, rp := range ranked {
		if len(ids) >= rctx.Limit {
			break
		}
		if rctx.Excluded(rp.ProductID) {
			continue
		}
		ids = append(ids, rp.ProductID)
	}

	return resultFrom(g.name, ids, g.confidence), nil
}

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

// CollaborativeConfig contains configuration for the collaborative
// generator.
type CollaborativeConfig struct {
	// MaxCandidates bounds the candidate pool pulled from the store.
	MaxCandidates int

	// Confidence is the declared confidence when candidates are produced.
	Confidence float64
}

// Collaborative recommends products through co-interaction patterns: items
// interacted with by users who share interactions with this user, ranked by
// co-interaction count. The heavy lifting (the two-hop join over the event
// log) happens in the store.
type Collaborative struct {
	interactions recommend.InteractionStore
	cfg          CollaborativeConfig
}

// NewCollaborative creates the collaborative generator.
func NewCollaborative(interactions recommend.InteractionStore, cfg CollaborativeConfig) *Collaborative {
	if cfg.MaxCandidates <= 0 {
		cfg.MaxCandidates = 500
	}
	return &Collaborative{interactions: interactions, cfg: cfg}
}

func (g *Collaborative) Name() string { return "collaborative" }

// Applicable requires an identified user with interaction history.
func (g *Collaborative) Applicable(state recommend.UserState) bool {
	return !state.Anonymous && state.HasHistory
}

func (g *Collaborative) Generate(ctx context.Context, rctx *recommend.Context) (recommend.Result, error) {
	ranked, err := g.interactions.CoInteractedProducts(ctx, rctx.UserID, g.cfg.MaxCandidates)
	if err != nil {
		return recommend.EmptyResult(g.Name()), fmt.Errorf("co-interaction query: %w", err)
	}

	// The store already ranks by co-interaction count with a deterministic
	// tie-break; only exclusion filtering and truncation remain.
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

	return resultFrom(g.Name(), ids, g.cfg.Confidence), nil
}

// Spokeworks Marketplace - Multi-Vendor Bicycle Marketplace
// Copyright 2026 Spokeworks
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/spokeworks/marketplace

// Package api provides HTTP routing and handlers for the recommendation
// service using the Chi router.
package api

import (
	"context"

	"github.com/spokeworks/marketplace/internal/recommend"
)

// Recommender is the engine surface the HTTP layer depends on. Narrowing it
// to one method keeps handlers testable with a scripted fake.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Response, error)
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler holds the HTTP handlers and their dependencies.
type Handler struct {
	engine Recommender
	db     Pinger
	cfg    *recommend.Config
}

// NewHandler creates the API handler set.
func NewHandler(engine Recommender, db Pinger, cfg *recommend.Config) *Handler {
	if cfg == nil {
		cfg = recommend.DefaultConfig()
	}
	return &Handler{engine: engine, db: db, cfg: cfg}
}

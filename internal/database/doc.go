// Spokeworks Marketplace - Multi-Vendor Bicycle Marketplace
// Copyright 2026 Spokeworks
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/spokeworks/marketplace

// Package database provides the DuckDB-backed read model for the
// recommendation service.
//
// DuckDB serves as a local analytical store: the product catalog and
// pre-computed scores are synced into it by external jobs, and the
// recommendation engine reads aggregates (top-N scores, category counts,
// co-interaction joins) that DuckDB evaluates efficiently in-process
// without a separate database server.
//
// The package implements the store interfaces declared by
// internal/recommend, keeping the engine free of SQL and unit-testable
// against in-memory fakes.
package database

import "github.com/spokeworks/marketplace/internal/recommend"

// Compile-time checks that DB satisfies the engine's store interfaces.
var (
	_ recommend.ProductStore     = (*DB)(nil)
	_ recommend.ScoreStore       = (*DB)(nil)
	_ recommend.InteractionStore = (*DB)(nil)
	_ recommend.PreferenceStore  = (*DB)(nil)
	_ recommend.OnboardingStore  = (*DB)(nil)
)

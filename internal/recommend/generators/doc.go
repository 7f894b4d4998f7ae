// Spokeworks Marketplace - Multi-Vendor Bicycle Marketplace
// Copyright 2026 Spokeworks
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/spokeworks/marketplace

// Package generators implements the candidate generators for the hybrid
// recommendation engine.
//
// Each generator implements the recommend.Generator interface, consumes one
// signal source, and can be registered with the engine:
//
//   - Trending / Popularity: pre-computed score rankings (all users)
//   - Keyword: overlap with derived favorite keywords (warm users)
//   - Onboarding: stated signup preferences (cold-start users)
//   - Category / Similar / Collaborative: behavioral signals (warm users)
//
// All generators follow the same contract: signal absence yields an empty
// zero-confidence result, never an error; errors are reserved for store
// failures, which the engine degrades at its task boundary. Output never
// contains duplicates or caller-excluded IDs, and ranking ties always break
// on product ID so output is deterministic.
package generators

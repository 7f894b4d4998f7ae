// Spokeworks Marketplace - Multi-Vendor Bicycle Marketplace
// Copyright 2026 Spokeworks
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/spokeworks/marketplace

// Package recommend implements the hybrid recommendation engine for the
// marketplace catalog.
//
// # Architecture
//
// Recommendations are produced in three stages:
//
//   - Candidate generation: independent, stateless generators each produce a
//     ranked list of product IDs from one signal (trending score, global
//     popularity, keyword overlap with browsing history, onboarding stated
//     preferences, category affinity, content similarity, co-interaction).
//   - Hybrid combination: applicable generators run concurrently; their
//     outputs are merged first-writer-wins under a confidence ordering,
//     deduplicated, and truncated to the requested limit.
//   - Enrichment: the ranked ID list is hydrated into display-ready product
//     summaries in a single batched lookup, preserving rank order and
//     dropping products that went inactive between ranking and hydration.
//
// # Degradation
//
// A generator never fails the request. Signal absence (no preference record,
// no onboarding record, no history) yields an empty zero-confidence result;
// upstream store failures and per-generator timeouts are logged and degraded
// to empty results at the engine's task boundary. When every generator comes
// back empty the engine falls back to the newest active products, so a
// non-empty catalog never produces an empty response. The only error the
// caller can see is the fallback catalog query itself failing.
//
// # Determinism
//
// Same inputs against unchanged backing data produce identical ordered
// output: every generator uses a deterministic tie-break (product ID), the
// merge order is fixed, and nothing in the pipeline consults a random
// source.
//
// # Thread Safety
//
// The engine is safe for concurrent use. All per-request state travels in an
// explicit Context value passed down to generators; there is no shared
// mutable state between requests.
package recommend

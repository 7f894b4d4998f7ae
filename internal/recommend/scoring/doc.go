// Spokeworks Marketplace - Multi-Vendor Bicycle Marketplace
// Copyright 2026 Spokeworks
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/spokeworks/marketplace

// Package scoring provides the shared numeric helpers consumed by the
// candidate generators: budget-range parsing, the riding-style and interest
// mapping tables, and keyword frequency scoring.
//
// Everything in this package is pure and deterministic: same inputs always
// produce the same outputs, with no I/O and no shared state.
package scoring

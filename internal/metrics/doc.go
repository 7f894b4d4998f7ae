// Spokeworks Marketplace - Multi-Vendor Bicycle Marketplace
// Copyright 2026 Spokeworks
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/spokeworks/marketplace

// Package metrics provides Prometheus instrumentation for the service:
// recommendation request latency, per-generator timing and degradation
// counters, fallback engagement, enrichment drops, API throughput, and
// database query performance.
package metrics

// Spokeworks Marketplace - Multi-Vendor Bicycle Marketplace
// Copyright 2026 Spokeworks
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/spokeworks/marketplace

// Package models defines the domain entities shared across the service:
// catalog products, pre-computed product scores, user interaction events,
// derived user preferences, onboarding preferences, and the API response
// envelope.
//
// All types here are plain data carriers. Business logic lives in the
// packages that consume them (internal/recommend, internal/database).
package models

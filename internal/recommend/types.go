// Spokeworks Marketplace - Multi-Vendor Bicycle Marketplace
// Copyright 2026 Spokeworks
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/spokeworks/marketplace

package recommend

import (
	"context"
	"time"

	"github.com/spokeworks/marketplace/internal/models"
)

// Request is a recommendation request.
type Request struct {
	// UserID is the requesting user. Empty for anonymous sessions.
	UserID string `json:"user_id,omitempty"`

	// Limit is the number of recommendations to return. Defaults to
	// Config.DefaultLimit if zero, capped at Config.MaxLimit.
	Limit int `json:"limit,omitempty"`

	// ExcludeIDs are product IDs to exclude (already purchased, dismissed).
	ExcludeIDs []string `json:"exclude_ids,omitempty"`

	// RequestID is a unique identifier for tracing. Generated if empty.
	RequestID string `json:"request_id,omitempty"`
}

// Response is a recommendation response.
type Response struct {
	// Products is the ordered list of hydrated product summaries. May be
	// shorter than the requested limit.
	Products []models.ProductSummary `json:"products"`

	// Metadata contains timing and diagnostic information.
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata contains timing and diagnostic information.
type ResponseMetadata struct {
	// RequestID is the unique request identifier.
	RequestID string `json:"request_id"`

	// UserID is the user the recommendations are for, if any.
	UserID string `json:"user_id,omitempty"`

	// AlgorithmsUsed lists the generators that contributed candidates.
	AlgorithmsUsed []string `json:"algorithms_used"`

	// Fallback indicates the catalog fallback produced the result.
	Fallback bool `json:"fallback,omitempty"`

	// LatencyMS is the total recommendation latency in milliseconds.
	LatencyMS int64 `json:"latency_ms"`

	// Timestamp is when the response was generated.
	Timestamp time.Time `json:"timestamp"`
}

// UserState captures the signals that decide which generators apply to a
// request. It is computed once per request.
type UserState struct {
	// Anonymous reports whether the request carries no user identity.
	Anonymous bool

	// HasHistory reports whether the user has any interaction history.
	HasHistory bool
}

// Context is the per-request context passed down to every generator. It
// carries no connection state and is never shared between requests.
type Context struct {
	// UserID is the requesting user. Empty for anonymous sessions.
	UserID string

	// Limit is the effective result-size limit.
	Limit int

	// Exclude is the caller-supplied exclusion set.
	Exclude map[string]struct{}

	// State is the computed user state.
	State UserState
}

// Excluded reports whether id is in the exclusion set.
func (c *Context) Excluded(id string) bool {
	_, ok := c.Exclude[id]
	return ok
}

// Result is the output of one candidate generator.
type Result struct {
	// ProductIDs is the ranked candidate list, best first. Contains no
	// duplicates and no excluded IDs.
	ProductIDs []string

	// Confidence is the generator's declared confidence weight. Zero when
	// the generator had no signal to work with.
	Confidence float64

	// Algorithm is the generator name.
	Algorithm string
}

// Empty reports whether the result carries no candidates.
func (r Result) Empty() bool {
	return len(r.ProductIDs) == 0
}

// EmptyResult returns the zero-confidence result a generator yields when its
// signal is absent.
func EmptyResult(algorithm string) Result {
	return Result{Algorithm: algorithm}
}

// Generator is one candidate-generation strategy. Implementations are
// stateless with respect to requests: all per-request data arrives through
// the Context.
//
// Generate returns an empty zero-confidence result (not an error) when the
// signal it consumes is absent. Errors are reserved for genuine
// infrastructure failures; the engine degrades them to empty results at the
// task boundary.
type Generator interface {
	// Name returns the generator identifier (e.g. "trending", "keyword").
	Name() string

	// Applicable reports whether the generator applies to the user state.
	Applicable(state UserState) bool

	// Generate produces a ranked candidate list for the request.
	Generate(ctx context.Context, rctx *Context) (Result, error)
}

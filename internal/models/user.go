// Spokeworks Marketplace - Multi-Vendor Bicycle Marketplace
// Copyright 2026 Spokeworks
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/spokeworks/marketplace

package models

import "time"

// InteractionType classifies a user interaction event.
type InteractionType string

const (
	// InteractionView is a product detail page view.
	InteractionView InteractionType = "view"
	// InteractionClick is a click-through from a list or search result.
	InteractionClick InteractionType = "click"
	// InteractionSearch is a search event; ProductID is empty.
	InteractionSearch InteractionType = "search"
	// InteractionFavorite is a save/favorite action.
	InteractionFavorite InteractionType = "favorite"
	// InteractionPurchase is a completed purchase.
	InteractionPurchase InteractionType = "purchase"
)

// UserInteraction is an append-only user-product interaction event. Events
// are immutable once written; the recommender only reads aggregates derived
// from them.
type UserInteraction struct {
	// ID is the event identifier.
	ID string `json:"id"`

	// UserID identifies the acting user. Empty for anonymous sessions.
	UserID string `json:"user_id,omitempty"`

	// SessionID identifies the anonymous session when UserID is empty.
	SessionID string `json:"session_id,omitempty"`

	// ProductID is the interacted product. Empty for pure search events.
	ProductID string `json:"product_id,omitempty"`

	// Type classifies the event.
	Type InteractionType `json:"type"`

	// DwellTimeSeconds is how long the user stayed on the product page.
	DwellTimeSeconds int `json:"dwell_time_seconds,omitempty"`

	// Metadata carries event-specific attributes (search query, referrer).
	Metadata map[string]string `json:"metadata,omitempty"`

	// Timestamp is when the event occurred.
	Timestamp time.Time `json:"timestamp"`
}

// KeywordWeight is one derived favorite keyword with its frequency score.
type KeywordWeight struct {
	// Keyword is the lowercased term.
	Keyword string `json:"keyword"`

	// Score is the frequency weight computed from interaction history.
	Score float64 `json:"score"`
}

// UserPreferences is the per-user derived preference state, recomputed
// periodically by an external job from interaction history. Absence of a
// record is the cold-start signal.
type UserPreferences struct {
	// UserID is the owning user.
	UserID string `json:"user_id"`

	// FavoriteKeywords is ordered by descending frequency score.
	FavoriteKeywords []KeywordWeight `json:"favorite_keywords"`

	// UpdatedAt is when the external job last recomputed the record.
	UpdatedAt time.Time `json:"updated_at"`
}

// OnboardingPreferences holds the preferences a user stated at signup.
// Immutable after creation except by explicit user edit.
type OnboardingPreferences struct {
	// UserID is the owning user.
	UserID string `json:"user_id"`

	// RidingStyles are stated disciplines ("mountain", "road", "gravel", ...).
	RidingStyles []string `json:"riding_styles,omitempty"`

	// PreferredBrands are stated brand names.
	PreferredBrands []string `json:"preferred_brands,omitempty"`

	// ExperienceLevel is the self-reported level (beginner/intermediate/expert).
	ExperienceLevel string `json:"experience_level,omitempty"`

	// BudgetRange is the stated budget in "min-max" or "min+" form.
	BudgetRange string `json:"budget_range,omitempty"`

	// Interests are stated product interests ("complete-bikes", "wheels", ...).
	Interests []string `json:"interests,omitempty"`

	// CreatedAt is when the user completed onboarding.
	CreatedAt time.Time `json:"created_at"`
}

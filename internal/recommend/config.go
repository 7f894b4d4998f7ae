// Spokeworks Marketplace - Multi-Vendor Bicycle Marketplace
// Copyright 2026 Spokeworks
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/spokeworks/marketplace

package recommend

import (
	"fmt"
	"time"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// DefaultLimit is the result size used when a request carries none.
	DefaultLimit int `koanf:"default_limit" json:"default_limit"`

	// MaxLimit caps the requested result size.
	MaxLimit int `koanf:"max_limit" json:"max_limit"`

	// MaxCandidates bounds the candidate pool a single generator may pull
	// from the store.
	MaxCandidates int `koanf:"max_candidates" json:"max_candidates"`

	// GeneratorTimeout is the per-generator deadline. A timed-out generator
	// is treated as returning an empty result.
	GeneratorTimeout time.Duration `koanf:"generator_timeout" json:"generator_timeout"`

	// TopKeywords is how many of the user's highest-frequency keywords the
	// keyword generator considers.
	TopKeywords int `koanf:"top_keywords" json:"top_keywords"`

	// KeywordWeightFactor multiplies the keyword match score in the keyword
	// generator's ranking key, so keyword relevance dominates popularity.
	KeywordWeightFactor float64 `koanf:"keyword_weight_factor" json:"keyword_weight_factor"`

	// Confidence holds the per-generator declared confidence weights, which
	// double as the merge priority ordering.
	Confidence ConfidenceWeights `koanf:"confidence" json:"confidence"`
}

// ConfidenceWeights holds the declared confidence of each generator when it
// produces candidates. Values are in (0, 1].
type ConfidenceWeights struct {
	Trending      float64 `koanf:"trending" json:"trending"`
	Popularity    float64 `koanf:"popularity" json:"popularity"`
	Keyword       float64 `koanf:"keyword" json:"keyword"`
	Onboarding    float64 `koanf:"onboarding" json:"onboarding"`
	Category      float64 `koanf:"category" json:"category"`
	Similar       float64 `koanf:"similar" json:"similar"`
	Collaborative float64 `koanf:"collaborative" json:"collaborative"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		DefaultLimit:        20,
		MaxLimit:            100,
		MaxCandidates:       500,
		GeneratorTimeout:    2 * time.Second,
		TopKeywords:         5,
		KeywordWeightFactor: 10,
		Confidence: ConfidenceWeights{
			Trending:      0.8,
			Popularity:    0.7,
			Keyword:       0.9,
			Onboarding:    0.85,
			Category:      0.75,
			Similar:       0.7,
			Collaborative: 0.65,
		},
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.DefaultLimit <= 0 {
		return fmt.Errorf("default_limit must be positive, got %d", c.DefaultLimit)
	}
	if c.MaxLimit < c.DefaultLimit {
		return fmt.Errorf("max_limit (%d) must be >= default_limit (%d)", c.MaxLimit, c.DefaultLimit)
	}
	if c.MaxCandidates < c.MaxLimit {
		return fmt.Errorf("max_candidates (%d) must be >= max_limit (%d)", c.MaxCandidates, c.MaxLimit)
	}
	if c.GeneratorTimeout <= 0 {
		return fmt.Errorf("generator_timeout must be positive, got %s", c.GeneratorTimeout)
	}
	if c.TopKeywords <= 0 {
		return fmt.Errorf("top_keywords must be positive, got %d", c.TopKeywords)
	}
	if c.KeywordWeightFactor <= 0 {
		return fmt.Errorf("keyword_weight_factor must be positive, got %f", c.KeywordWeightFactor)
	}

	for name, w := range map[string]float64{
		"trending":      c.Confidence.Trending,
		"popularity":    c.Confidence.Popularity,
		"keyword":       c.Confidence.Keyword,
		"onboarding":    c.Confidence.Onboarding,
		"category":      c.Confidence.Category,
		"similar":       c.Confidence.Similar,
		"collaborative": c.Confidence.Collaborative,
	} {
		if w <= 0 || w > 1 {
			return fmt.Errorf("confidence.%s must be in (0, 1], got %f", name, w)
		}
	}

	return nil
}

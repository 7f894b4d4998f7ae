// Spokeworks Marketplace - Multi-Vendor Bicycle Marketplace
// Copyright 2026 Spokeworks
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/spokeworks/marketplace

package scoring

import (
	"sort"
	"strings"

	"github.com/spokeworks/marketplace/internal/models"
)

// TopKeywords returns the n highest-frequency keywords from a preference
// record, ordered by descending score with the keyword string as a
// deterministic tie-break. Keywords with non-positive scores are dropped.
func TopKeywords(keywords []models.KeywordWeight, n int) []models.KeywordWeight {
	filtered := make([]models.KeywordWeight, 0, len(keywords))
	for _, kw := range keywords {
		if kw.Score > 0 && strings.TrimSpace(kw.Keyword) != "" {
			filtered = append(filtered, kw)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].Score != filtered[j].Score {
			return filtered[i].Score > filtered[j].Score
		}
		return filtered[i].Keyword < filtered[j].Keyword
	})

	if len(filtered) > n {
		filtered = filtered[:n]
	}
	return filtered
}

// KeywordMatchScore computes the keyword relevance of a product text:
// the sum over all keywords of (stored frequency weight x number of
// case-insensitive occurrences in the text).
func KeywordMatchScore(text string, keywords []models.KeywordWeight) float64 {
	if text == "" || len(keywords) == 0 {
		return 0
	}

	lower := strings.ToLower(text)
	var score float64
	for _, kw := range keywords {
		term := strings.ToLower(strings.TrimSpace(kw.Keyword))
		if term == "" {
			continue
		}
		if n := strings.Count(lower, term); n > 0 {
			score += kw.Score * float64(n)
		}
	}
	return score
}

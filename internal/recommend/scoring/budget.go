// Spokeworks Marketplace - Multi-Vendor Bicycle Marketplace
// Copyright 2026 Spokeworks
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/spokeworks/marketplace

package scoring

import (
	"strconv"
	"strings"
)

// BudgetRange is a parsed budget window from onboarding preferences.
type BudgetRange struct {
	// Min is the inclusive lower bound.
	Min float64

	// Max is the inclusive upper bound. Only meaningful when HasMax is true.
	Max float64

	// HasMax reports whether the range has an upper bound. A "min+" range
	// has HasMax false.
	HasMax bool
}

// Contains reports whether price falls within the budget window.
func (b BudgetRange) Contains(price float64) bool {
	if price < b.Min {
		return false
	}
	if b.HasMax && price > b.Max {
		return false
	}
	return true
}

// ParseBudgetRange parses a stated budget range string. Supported forms:
//
//	"1000-2500"  bounded range
//	"1000+"      lower bound only
//
// Whitespace around the numbers is tolerated. Returns ok=false for empty,
// malformed, or inverted ranges; callers treat that as "no budget filter".
func ParseBudgetRange(s string) (BudgetRange, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return BudgetRange{}, false
	}

	if strings.HasSuffix(s, "+") {
		minVal, err := parseAmount(strings.TrimSuffix(s, "+"))
		if err != nil || minVal < 0 {
			return BudgetRange{}, false
		}
		return BudgetRange{Min: minVal}, true
	}

	lo, hi, found := strings.Cut(s, "-")
	if !found {
		return BudgetRange{}, false
	}

	minVal, err := parseAmount(lo)
	if err != nil {
		return BudgetRange{}, false
	}
	maxVal, err := parseAmount(hi)
	if err != nil {
		return BudgetRange{}, false
	}
	if minVal < 0 || maxVal < minVal {
		return BudgetRange{}, false
	}

	return BudgetRange{Min: minVal, Max: maxVal, HasMax: true}, true
}

func parseAmount(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

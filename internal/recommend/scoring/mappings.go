// Spokeworks Marketplace - Multi-Vendor Bicycle Marketplace
// Copyright 2026 Spokeworks
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/spokeworks/marketplace

package scoring

import "strings"

// CategoryBicycles is the broad catalog category unknown riding styles
// default to.
const CategoryBicycles = "Bicycles"

// StyleMapping maps a stated riding style onto catalog constraints.
type StyleMapping struct {
	// Category is the catalog category the style implies.
	Category string

	// BikeType is the bike-type constraint, empty when the style carries no
	// type constraint (unknown styles).
	BikeType string
}

// ridingStyles maps stated riding styles to catalog categories and bike
// types. Keys are lowercase.
var ridingStyles = map[string]StyleMapping{
	"mountain": {Category: CategoryBicycles, BikeType: "Mountain"},
	"road":     {Category: CategoryBicycles, BikeType: "Road"},
	"gravel":   {Category: CategoryBicycles, BikeType: "Gravel"},
	"track":    {Category: CategoryBicycles, BikeType: "Track"},
	"bmx":      {Category: CategoryBicycles, BikeType: "BMX"},
	"commuter": {Category: CategoryBicycles, BikeType: "Commuter"},
}

// StyleCategory maps a stated riding style to its catalog constraints.
// Unknown styles default to the broad Bicycles category with no bike-type
// constraint.
func StyleCategory(style string) StyleMapping {
	if m, ok := ridingStyles[strings.ToLower(strings.TrimSpace(style))]; ok {
		return m
	}
	return StyleMapping{Category: CategoryBicycles}
}

// interestCategories maps stated onboarding interests to catalog categories.
// Keys are lowercase.
var interestCategories = map[string]string{
	"complete-bikes": CategoryBicycles,
	"wheels":         "Wheels & Tyres",
	"accessories":    "Parts",
	"components":     "Parts",
	"apparel":        "Apparel",
	"nutrition":      "Nutrition",
	"frames":         "Frames",
	"groupsets":      "Drivetrain",
}

// InterestCategory maps a stated interest to a catalog category. Unmapped
// interests return ok=false and are ignored by callers.
func InterestCategory(interest string) (string, bool) {
	c, ok := interestCategories[strings.ToLower(strings.TrimSpace(interest))]
	return c, ok
}

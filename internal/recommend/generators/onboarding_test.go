// Spokeworks Marketplace - Multi-Vendor Bicycle Marketplace
// Copyright 2026 Spokeworks
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/spokeworks/marketplace

package generators

import (
	"context"
	"testing"

	"github.com/spokeworks/marketplace/internal/models"
	"github.com/spokeworks/marketplace/internal/recommend"
)

func onboardingFixture() *fakeProductStore {
	return &fakeProductStore{products: []models.Product{
		{ID: "p1", Name: "Trail hardtail", Description: "Entry mountain bike", Price: 900, Category: "Bicycles", BikeType: "Mountain", Active: true},
		{ID: "p2", Name: "Santa Cruz Hightower", Description: "Carbon trail bike", Manufacturer: "Santa Cruz", Price: 1200, Category: "Bicycles", BikeType: "Mountain", Active: true},
		{ID: "p3", Name: "Road endurance bike", Description: "Comfort geometry", Price: 1500, Category: "Bicycles", BikeType: "Road", Active: true},
		{ID: "p4", Name: "Wheelset 700c", Description: "Alloy clinchers", Price: 1100, Category: "Wheels & Tyres", Active: true},
		{ID: "p5", Name: "Bib shorts", Description: "Summer kit", Price: 1050, Category: "Apparel", Active: true},
	}}
}

func onboardingPrefs() *fakeOnboardingStore {
	return &fakeOnboardingStore{prefs: &models.OnboardingPreferences{
		UserID:          "user-1",
		RidingStyles:    []string{"mountain"},
		PreferredBrands: []string{"Santa Cruz"},
		BudgetRange:     "1000-2500",
		Interests:       []string{"wheels"},
	}}
}

func coldContext(limit int, exclude ...string) *recommend.Context {
	rctx := warmContext(limit, exclude...)
	rctx.State = recommend.UserState{Anonymous: false, HasHistory: false}
	return rctx
}

func TestOnboarding_BudgetRestrictsCandidatePool(t *testing.T) {
	products := onboardingFixture()
	g := NewOnboarding(products, onboardingPrefs(), OnboardingConfig{Confidence: 0.85})

	result, err := g.Generate(context.Background(), coldContext(10))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	// p1 at $900 is below the 1000-2500 window: excluded from the pool
	// entirely, never scored.
	for _, id := range result.ProductIDs {
		if id == "p1" {
			t.Error("product below budget must not appear")
		}
	}
	if products.lastFilter.MinPrice == nil || *products.lastFilter.MinPrice != 1000 {
		t.Error("budget lower bound must be pushed into the store filter")
	}
	if products.lastFilter.MaxPrice == nil || *products.lastFilter.MaxPrice != 2500 {
		t.Error("budget upper bound must be pushed into the store filter")
	}
}

func TestOnboarding_ScoringOrder(t *testing.T) {
	g := NewOnboarding(onboardingFixture(), onboardingPrefs(), OnboardingConfig{Confidence: 0.85})

	result, err := g.Generate(context.Background(), coldContext(10))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	// p2: brand 5 + style 3 + budget 1 = 9
	// p3: budget 1 (road bike, mountain style mismatch)
	// p4: interest 2 + budget 1 = 3
	// p5: budget 1
	// Ties (p3, p5) keep catalog order.
	assertIDs(t, result.ProductIDs, []string{"p2", "p4", "p3", "p5"})
}

func TestOnboarding_BrandMatchScoresAtLeastFive(t *testing.T) {
	g := NewOnboarding(onboardingFixture(), onboardingPrefs(), OnboardingConfig{Confidence: 0.85})
	prefs := onboardingPrefs().prefs

	p := &models.Product{ID: "p2", Name: "Santa Cruz Hightower", Manufacturer: "Santa Cruz", Price: 1200, Category: "Bicycles", BikeType: "Mountain"}
	if score := g.matchScore(p, prefs); score < 5 {
		t.Errorf("matchScore = %f, want >= 5 for a brand match", score)
	}
}

func TestOnboarding_KeepsZeroScoreCandidates(t *testing.T) {
	// In-budget products with no preference match are still returned:
	// being within budget is itself considered relevant.
	store := &fakeOnboardingStore{prefs: &models.OnboardingPreferences{
		UserID:      "user-1",
		BudgetRange: "", // no budget: all candidates score zero
	}}
	g := NewOnboarding(onboardingFixture(), store, OnboardingConfig{Confidence: 0.85})

	result, err := g.Generate(context.Background(), coldContext(10))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(result.ProductIDs) == 0 {
		t.Fatal("zero-score candidates must be kept")
	}
}

func TestOnboarding_UnboundedBudget(t *testing.T) {
	store := &fakeOnboardingStore{prefs: &models.OnboardingPreferences{
		UserID:      "user-1",
		BudgetRange: "1100+",
	}}
	products := onboardingFixture()
	g := NewOnboarding(products, store, OnboardingConfig{Confidence: 0.85})

	result, err := g.Generate(context.Background(), coldContext(10))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if products.lastFilter.MaxPrice != nil {
		t.Error("unbounded budget must not set an upper price filter")
	}
	for _, id := range result.ProductIDs {
		if id == "p1" || id == "p5" {
			t.Errorf("product %s below the lower bound must not appear", id)
		}
	}
}

func TestOnboarding_NoRecordIsEmptyNotError(t *testing.T) {
	g := NewOnboarding(onboardingFixture(), &fakeOnboardingStore{prefs: nil}, OnboardingConfig{Confidence: 0.85})

	result, err := g.Generate(context.Background(), coldContext(10))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	assertEmptyResult(t, result)
}

func TestOnboarding_UnknownStyleMatchesBroadCategory(t *testing.T) {
	store := &fakeOnboardingStore{prefs: &models.OnboardingPreferences{
		UserID:       "user-1",
		RidingStyles: []string{"freeride-unicycle"},
	}}
	g := NewOnboarding(onboardingFixture(), store, OnboardingConfig{Confidence: 0.85})
	prefs := store.prefs

	bike := &models.Product{ID: "b", Category: "Bicycles", BikeType: "Road", Price: 100}
	part := &models.Product{ID: "w", Category: "Wheels & Tyres", Price: 100}

	if score := g.matchScore(bike, prefs); score != styleMatchScore {
		t.Errorf("unknown style should match any bicycle, got %f", score)
	}
	if score := g.matchScore(part, prefs); score != 0 {
		t.Errorf("unknown style must not match non-bicycle categories, got %f", score)
	}
}

func TestOnboarding_RespectsExclusions(t *testing.T) {
	g := NewOnboarding(onboardingFixture(), onboardingPrefs(), OnboardingConfig{Confidence: 0.85})

	result, err := g.Generate(context.Background(), coldContext(10, "p2"))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	for _, id := range result.ProductIDs {
		if id == "p2" {
			t.Error("excluded product must not appear")
		}
	}
}

func TestOnboarding_Applicability(t *testing.T) {
	g := NewOnboarding(onboardingFixture(), onboardingPrefs(), OnboardingConfig{})

	if g.Applicable(recommend.UserState{Anonymous: true}) {
		t.Error("onboarding must not apply to anonymous sessions")
	}
	if !g.Applicable(recommend.UserState{Anonymous: false}) {
		t.Error("onboarding must apply to identified users")
	}
}

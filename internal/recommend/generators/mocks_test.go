// Spokeworks Marketplace - Multi-Vendor Bicycle Marketplace
// Copyright 2026 Spokeworks
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/spokeworks/marketplace

package generators

import (
	"context"
	"sort"
	"strings"

	"github.com/spokeworks/marketplace/internal/models"
	"github.com/spokeworks/marketplace/internal/recommend"
)

// fakeProductStore implements recommend.ProductStore over an in-memory
// product slice, applying filters the way the real store does.
type fakeProductStore struct {
	products   []models.Product
	queryErr   error
	getErr     error
	lastFilter recommend.ProductFilter
}

func (f *fakeProductStore) QueryActive(_ context.Context, filter recommend.ProductFilter) ([]models.Product, error) {
	f.lastFilter = filter
	if f.queryErr != nil {
		return nil, f.queryErr
	}

	var out []models.Product
	for _, p := range f.products {
		if !p.Active {
			continue
		}
		if filter.MinPrice != nil && p.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && p.Price > *filter.MaxPrice {
			continue
		}
		if len(filter.Categories) > 0 && !containsString(filter.Categories, p.Category) {
			continue
		}
		if len(filter.MatchKeywords) > 0 && !matchesAnyKeyword(p, filter.MatchKeywords) {
			continue
		}
		out = append(out, p)
	}

	if filter.Order == recommend.OrderNewest {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	} else {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].ID < out[j].ID
		})
	}

	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (f *fakeProductStore) GetByIDs(_ context.Context, ids []string) ([]models.Product, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	idSet := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		idSet[id] = struct{}{}
	}
	var out []models.Product
	for _, p := range f.products {
		if _, ok := idSet[p.ID]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

func matchesAnyKeyword(p models.Product, keywords []string) bool {
	text := strings.ToLower(p.Name + " " + p.Description)
	for _, kw := range keywords {
		if strings.Contains(text, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// fakeScoreStore implements recommend.ScoreStore over an in-memory map.
type fakeScoreStore struct {
	scores map[string]models.ProductScore
	topErr error
	getErr error
}

func (f *fakeScoreStore) TopProducts(_ context.Context, metric recommend.ScoreMetric, limit int) ([]recommend.RankedProduct, error) {
	if f.topErr != nil {
		return nil, f.topErr
	}
	ranked := make([]recommend.RankedProduct, 0, len(f.scores))
	for id, s := range f.scores {
		score := s.TrendingScore
		if metric == recommend.MetricPopularity {
			score = s.PopularityScore
		}
		ranked = append(ranked, recommend.RankedProduct{ProductID: id, Score: score})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].ProductID < ranked[j].ProductID
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

func (f *fakeScoreStore) GetScores(_ context.Context, ids []string) (map[string]models.ProductScore, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	out := make(map[string]models.ProductScore)
	for _, id := range ids {
		if s, ok := f.scores[id]; ok {
			out[id] = s
		}
	}
	return out, nil
}

// fakeInteractionStore implements recommend.InteractionStore with canned
// aggregates.
type fakeInteractionStore struct {
	hasHistory     bool
	historyErr     error
	categoryCounts []recommend.CategoryCount
	categoryErr    error
	recent         []string
	recentErr      error
	coInteracted   []recommend.RankedProduct
	coErr          error
}

func (f *fakeInteractionStore) HasHistory(_ context.Context, _ string) (bool, error) {
	return f.hasHistory, f.historyErr
}

func (f *fakeInteractionStore) CategoryCounts(_ context.Context, _ string) ([]recommend.CategoryCount, error) {
	return f.categoryCounts, f.categoryErr
}

func (f *fakeInteractionStore) RecentProductIDs(_ context.Context, _ string, limit int) ([]string, error) {
	if f.recentErr != nil {
		return nil, f.recentErr
	}
	if len(f.recent) > limit {
		return f.recent[:limit], nil
	}
	return f.recent, nil
}

func (f *fakeInteractionStore) CoInteractedProducts(_ context.Context, _ string, _ int) ([]recommend.RankedProduct, error) {
	return f.coInteracted, f.coErr
}

// fakePreferenceStore implements recommend.PreferenceStore.
type fakePreferenceStore struct {
	prefs *models.UserPreferences
	err   error
}

func (f *fakePreferenceStore) GetUserPreferences(_ context.Context, _ string) (*models.UserPreferences, error) {
	return f.prefs, f.err
}

// fakeOnboardingStore implements recommend.OnboardingStore.
type fakeOnboardingStore struct {
	prefs *models.OnboardingPreferences
	err   error
}

func (f *fakeOnboardingStore) GetOnboardingPreferences(_ context.Context, _ string) (*models.OnboardingPreferences, error) {
	return f.prefs, f.err
}

// warmContext returns a request context for an identified user with history.
func warmContext(limit int, exclude ...string) *recommend.Context {
	ex := make(map[string]struct{}, len(exclude))
	for _, id := range exclude {
		ex[id] = struct{}{}
	}
	return &recommend.Context{
		UserID:  "user-1",
		Limit:   limit,
		Exclude: ex,
		State:   recommend.UserState{HasHistory: true},
	}
}

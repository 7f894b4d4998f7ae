// Spokeworks Marketplace - Multi-Vendor Bicycle Marketplace
// Copyright 2026 Spokeworks
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/spokeworks/marketplace

package recommend

import (
	"context"
	"sort"

	"github.com/spokeworks/marketplace/internal/models"
)

// mockGenerator is a scripted Generator for engine tests.
type mockGenerator struct {
	name       string
	applicable func(UserState) bool
	result     Result
	err        error

	// block, when non-nil, makes Generate wait for the channel or the
	// context, whichever comes first. Used to exercise the timeout path.
	block chan struct{}

	called bool
}

func (m *mockGenerator) Name() string { return m.name }

func (m *mockGenerator) Applicable(state UserState) bool {
	if m.applicable == nil {
		return true
	}
	return m.applicable(state)
}

func (m *mockGenerator) Generate(ctx context.Context, _ *Context) (Result, error) {
	m.called = true
	if m.block != nil {
		select {
		case <-m.block:
		case <-ctx.Done():
			return EmptyResult(m.name), ctx.Err()
		}
	}
	if m.err != nil {
		return EmptyResult(m.name), m.err
	}
	return m.result, nil
}

// scriptedGenerator builds a generator that always returns the given ranked
// IDs at the given confidence.
func scriptedGenerator(name string, confidence float64, ids ...string) *mockGenerator {
	return &mockGenerator{
		name: name,
		result: Result{
			ProductIDs: ids,
			Confidence: confidence,
			Algorithm:  name,
		},
	}
}

// mockProductStore implements ProductStore over an in-memory slice.
type mockProductStore struct {
	products []models.Product
	queryErr error
	getErr   error
}

func (m *mockProductStore) QueryActive(_ context.Context, filter ProductFilter) ([]models.Product, error) {
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	var out []models.Product
	for _, p := range m.products {
		if p.Active {
			out = append(out, p)
		}
	}
	if filter.Order == OrderNewest {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (m *mockProductStore) GetByIDs(_ context.Context, ids []string) ([]models.Product, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	idSet := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		idSet[id] = struct{}{}
	}
	var out []models.Product
	for _, p := range m.products {
		if _, ok := idSet[p.ID]; ok {
			out = append(out, p)
		}
	}
	// Deliberately shuffled relative to the request: batch lookups make no
	// ordering promise, and the enricher must not rely on one.
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// mockInteractionStore implements the single InteractionStore method the
// engine itself calls.
type mockInteractionStore struct {
	hasHistory bool
	historyErr error
}

func (m *mockInteractionStore) HasHistory(_ context.Context, _ string) (bool, error) {
	return m.hasHistory, m.historyErr
}

func (m *mockInteractionStore) CategoryCounts(_ context.Context, _ string) ([]CategoryCount, error) {
	return nil, nil
}

func (m *mockInteractionStore) RecentProductIDs(_ context.Context, _ string, _ int) ([]string, error) {
	return nil, nil
}

func (m *mockInteractionStore) CoInteractedProducts(_ context.Context, _ string, _ int) ([]RankedProduct, error) {
	return nil, nil
}

// activeProducts builds one active product per ID for enrichment.
func activeProducts(ids ...string) []models.Product {
	out := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.Product{ID: id, Name: "Product " + id, Active: true})
	}
	return out
}

func summaryIDs(summaries []models.ProductSummary) []string {
	ids := make([]string, 0, len(summaries))
	for _, s := range summaries {
		ids = append(ids, s.ID)
	}
	return ids
}

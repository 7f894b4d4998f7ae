// Spokeworks Marketplace - Multi-Vendor Bicycle Marketplace
// Copyright 2026 Spokeworks
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/spokeworks/marketplace

package recommend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/spokeworks/marketplace/internal/models"
)

func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.GeneratorTimeout = 100 * time.Millisecond
	return cfg
}

func newTestEngine(t *testing.T, products *mockProductStore, interactions InteractionStore, gens ...Generator) *Engine {
	t.Helper()
	engine, err := NewEngine(testConfig(), zerolog.Nop(), products, interactions)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	for _, g := range gens {
		engine.RegisterGenerator(g)
	}
	return engine
}

func assertProductOrder(t *testing.T, resp *Response, want []string) {
	t.Helper()
	got := summaryIDs(resp.Products)
	if len(got) != len(want) {
		t.Fatalf("products = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("products = %v, want %v", got, want)
		}
	}
}

func TestEngine_MergeVisitsHigherConfidenceFirst(t *testing.T) {
	products := &mockProductStore{products: activeProducts("p1", "p2", "p3", "p4")}
	engine := newTestEngine(t, products, &mockInteractionStore{hasHistory: true},
		scriptedGenerator("low", 0.6, "p3", "p4"),
		scriptedGenerator("high", 0.9, "p1", "p2"),
	)

	resp, err := engine.Recommend(context.Background(), Request{UserID: "user-1", Limit: 10})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	assertProductOrder(t, resp, []string{"p1", "p2", "p3", "p4"})
}

func TestEngine_OverlapKeepsFirstPosition(t *testing.T) {
	products := &mockProductStore{products: activeProducts("p1", "p2", "p3")}
	engine := newTestEngine(t, products, &mockInteractionStore{hasHistory: true},
		scriptedGenerator("high", 0.9, "p1", "p2"),
		scriptedGenerator("low", 0.6, "p2", "p3"),
	)

	resp, err := engine.Recommend(context.Background(), Request{UserID: "user-1", Limit: 10})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	// p2 appears in both; it keeps the position from the higher-confidence
	// result and is not demoted or duplicated.
	assertProductOrder(t, resp, []string{"p1", "p2", "p3"})
}

func TestEngine_ConfidenceTieBreaksByRegistrationOrder(t *testing.T) {
	products := &mockProductStore{products: activeProducts("a1", "b1")}
	engine := newTestEngine(t, products, &mockInteractionStore{hasHistory: true},
		scriptedGenerator("first", 0.8, "a1"),
		scriptedGenerator("second", 0.8, "b1"),
	)

	resp, err := engine.Recommend(context.Background(), Request{UserID: "user-1", Limit: 10})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	assertProductOrder(t, resp, []string{"a1", "b1"})
}

func TestEngine_MergeIsDeterministic(t *testing.T) {
	products := &mockProductStore{products: activeProducts("p1", "p2", "p3", "p4")}
	engine := newTestEngine(t, products, &mockInteractionStore{hasHistory: true},
		scriptedGenerator("a", 0.9, "p1", "p3"),
		scriptedGenerator("b", 0.7, "p2", "p1"),
		scriptedGenerator("c", 0.7, "p4"),
	)

	first, err := engine.Recommend(context.Background(), Request{UserID: "user-1", Limit: 10})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	for i := 0; i < 20; i++ {
		resp, err := engine.Recommend(context.Background(), Request{UserID: "user-1", Limit: 10})
		if err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
		assertProductOrder(t, resp, summaryIDs(first.Products))
	}
}

func TestEngine_GeneratorErrorDegradesToEmpty(t *testing.T) {
	products := &mockProductStore{products: activeProducts("p1")}
	failing := &mockGenerator{name: "failing", err: errors.New("store down")}
	engine := newTestEngine(t, products, &mockInteractionStore{hasHistory: true},
		failing,
		scriptedGenerator("healthy", 0.8, "p1"),
	)

	resp, err := engine.Recommend(context.Background(), Request{UserID: "user-1", Limit: 10})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	assertProductOrder(t, resp, []string{"p1"})
	for _, alg := range resp.Metadata.AlgorithmsUsed {
		if alg == "failing" {
			t.Error("degraded generator must not be listed as used")
		}
	}
}

func TestEngine_GeneratorTimeoutDegradesToEmpty(t *testing.T) {
	products := &mockProductStore{products: activeProducts("p1")}
	stuck := &mockGenerator{name: "stuck", block: make(chan struct{})}
	engine := newTestEngine(t, products, &mockInteractionStore{hasHistory: true},
		stuck,
		scriptedGenerator("healthy", 0.8, "p1"),
	)

	start := time.Now()
	resp, err := engine.Recommend(context.Background(), Request{UserID: "user-1", Limit: 10})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("request took %s, timeout did not bound the stuck generator", elapsed)
	}
	assertProductOrder(t, resp, []string{"p1"})
}

func TestEngine_FallbackWhenAllGeneratorsEmpty(t *testing.T) {
	now := time.Now()
	products := &mockProductStore{products: []models.Product{
		{ID: "old", Name: "Old listing", Active: true, CreatedAt: now.Add(-48 * time.Hour)},
		{ID: "new", Name: "New listing", Active: true, CreatedAt: now},
		{ID: "mid", Name: "Mid listing", Active: true, CreatedAt: now.Add(-24 * time.Hour)},
	}}
	engine := newTestEngine(t, products, &mockInteractionStore{},
		&mockGenerator{name: "empty", result: EmptyResult("empty")},
	)

	resp, err := engine.Recommend(context.Background(), Request{Limit: 10})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	if !resp.Metadata.Fallback {
		t.Error("Fallback flag must be set when the catalog fallback engages")
	}
	if len(resp.Metadata.AlgorithmsUsed) != 1 || resp.Metadata.AlgorithmsUsed[0] != "catalog_fallback" {
		t.Errorf("AlgorithmsUsed = %v, want [catalog_fallback]", resp.Metadata.AlgorithmsUsed)
	}
	assertProductOrder(t, resp, []string{"new", "mid", "old"})
}

func TestEngine_FallbackQueryFailureErrorsTheRequest(t *testing.T) {
	products := &mockProductStore{queryErr: errors.New("catalog unavailable")}
	engine := newTestEngine(t, products, &mockInteractionStore{},
		&mockGenerator{name: "empty", result: EmptyResult("empty")},
	)

	if _, err := engine.Recommend(context.Background(), Request{Limit: 10}); err == nil {
		t.Fatal("Recommend() expected error when the fallback query fails")
	}
}

func TestEngine_RequestLimitDefaultsAndCap(t *testing.T) {
	ids := make([]string, 0, 150)
	for i := 0; i < 150; i++ {
		ids = append(ids, "p"+string(rune('a'+i/26))+string(rune('a'+i%26)))
	}
	products := &mockProductStore{products: activeProducts(ids...)}
	engine := newTestEngine(t, products, &mockInteractionStore{hasHistory: true},
		scriptedGenerator("all", 0.9, ids...),
	)

	resp, err := engine.Recommend(context.Background(), Request{UserID: "user-1"})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(resp.Products) != testConfig().DefaultLimit {
		t.Errorf("zero limit: got %d products, want default %d", len(resp.Products), testConfig().DefaultLimit)
	}

	resp, err = engine.Recommend(context.Background(), Request{UserID: "user-1", Limit: 10000})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(resp.Products) != testConfig().MaxLimit {
		t.Errorf("oversized limit: got %d products, want cap %d", len(resp.Products), testConfig().MaxLimit)
	}
}

func TestEngine_ExclusionsEnforcedAtMerge(t *testing.T) {
	products := &mockProductStore{products: activeProducts("p1", "p2", "p3")}
	// The generator misbehaves and returns an excluded ID anyway; the merge
	// must still filter it.
	engine := newTestEngine(t, products, &mockInteractionStore{hasHistory: true},
		scriptedGenerator("sloppy", 0.9, "p1", "p2", "p3"),
	)

	resp, err := engine.Recommend(context.Background(), Request{
		UserID:     "user-1",
		Limit:      10,
		ExcludeIDs: []string{"p2"},
	})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	assertProductOrder(t, resp, []string{"p1", "p3"})
}

func TestEngine_AnonymousSkipsPersonalizedGenerators(t *testing.T) {
	products := &mockProductStore{products: activeProducts("p1", "p2")}
	personalized := scriptedGenerator("personal", 0.9, "p2")
	personalized.applicable = func(s UserState) bool { return !s.Anonymous }
	global := scriptedGenerator("global", 0.8, "p1")

	engine := newTestEngine(t, products, &mockInteractionStore{}, personalized, global)

	resp, err := engine.Recommend(context.Background(), Request{Limit: 10})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	if personalized.called {
		t.Error("personalized generator must not run for anonymous sessions")
	}
	assertProductOrder(t, resp, []string{"p1"})
}

func TestEngine_HistoryLookupFailureTreatsUserAsColdStart(t *testing.T) {
	products := &mockProductStore{products: activeProducts("p1")}
	warmOnly := scriptedGenerator("warm", 0.9, "p2")
	warmOnly.applicable = func(s UserState) bool { return s.HasHistory }
	global := scriptedGenerator("global", 0.8, "p1")

	interactions := &mockInteractionStore{hasHistory: true, historyErr: errors.New("db down")}
	engine := newTestEngine(t, products, interactions, warmOnly, global)

	resp, err := engine.Recommend(context.Background(), Request{UserID: "user-1", Limit: 10})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if warmOnly.called {
		t.Error("history-gated generator must not run when the lookup fails")
	}
	assertProductOrder(t, resp, []string{"p1"})
}

func TestEngine_RequestIDGeneratedWhenEmpty(t *testing.T) {
	products := &mockProductStore{products: activeProducts("p1")}
	engine := newTestEngine(t, products, &mockInteractionStore{},
		scriptedGenerator("global", 0.8, "p1"),
	)

	resp, err := engine.Recommend(context.Background(), Request{Limit: 5})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if resp.Metadata.RequestID == "" {
		t.Error("request ID must be generated when the caller omits one")
	}

	resp, err = engine.Recommend(context.Background(), Request{Limit: 5, RequestID: "req-42"})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if resp.Metadata.RequestID != "req-42" {
		t.Errorf("RequestID = %q, want caller-supplied req-42", resp.Metadata.RequestID)
	}
}

func TestNewEngine_RequiresProductStore(t *testing.T) {
	if _, err := NewEngine(testConfig(), zerolog.Nop(), nil, &mockInteractionStore{}); err == nil {
		t.Fatal("NewEngine() expected error for nil product store")
	}
}

func TestNewEngine_RejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DefaultLimit = -1
	if _, err := NewEngine(cfg, zerolog.Nop(), &mockProductStore{}, nil); err == nil {
		t.Fatal("NewEngine() expected error for invalid config")
	}
}

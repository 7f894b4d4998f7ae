// Spokeworks Marketplace - Multi-Vendor Bicycle Marketplace
// Copyright 2026 Spokeworks
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/spokeworks/marketplace

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/spokeworks/marketplace/internal/metrics"
	"github.com/spokeworks/marketplace/internal/models"
)

// Engine coordinates the candidate generators and produces final
// recommendations. It is safe for concurrent use: all per-request state is
// carried in an explicit Context value.
type Engine struct {
	config *Config
	logger zerolog.Logger

	products     ProductStore
	interactions InteractionStore
	enricher     *Enricher

	// generators in registration order; the index is the fixed merge
	// priority used to break confidence ties.
	generators []Generator
	genMu      sync.RWMutex
}

// NewEngine creates a new recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger, products ProductStore, interactions InteractionStore) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if products == nil {
		return nil, fmt.Errorf("product store is required")
	}

	componentLogger := logger.With().Str("component", "recommend").Logger()

	return &Engine{
		config:       cfg,
		logger:       componentLogger,
		products:     products,
		interactions: interactions,
		enricher:     NewEnricher(products, componentLogger),
	}, nil
}

// RegisterGenerator adds a generator to the ensemble. Registration order is
// the fixed merge priority used to break confidence ties.
func (e *Engine) RegisterGenerator(g Generator) {
	e.genMu.Lock()
	defer e.genMu.Unlock()

	e.generators = append(e.generators, g)
	e.logger.Info().
		Str("generator", g.Name()).
		Int("priority", len(e.generators)-1).
		Msg("registered generator")
}

// Recommend generates recommendations for a user or anonymous session.
//
// The response is best-effort: individual generator failures and timeouts
// degrade to empty results, and an all-empty merge falls back to the newest
// active products. Recommend only returns an error when the fallback catalog
// query itself fails.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	defer func() {
		metrics.RecommendRequestDuration.Observe(time.Since(start).Seconds())
	}()

	req = e.prepareRequest(req)
	logger := e.createRequestLogger(req)
	logger.Debug().Msg("processing recommendation request")

	rctx := e.buildContext(ctx, req, logger)

	results := e.runGenerators(ctx, rctx)
	merged, algorithmsUsed := e.merge(results, rctx)

	if len(merged) == 0 {
		return e.fallbackResponse(ctx, req, start, logger)
	}

	products, err := e.enricher.Enrich(ctx, merged)
	if err != nil {
		metrics.RecommendRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("enrich recommendations: %w", err)
	}

	metrics.RecommendRequestsTotal.WithLabelValues("success").Inc()
	logger.Debug().
		Int("candidates", len(merged)).
		Int("returned", len(products)).
		Strs("algorithms", algorithmsUsed).
		Msg("recommendation complete")

	return &Response{
		Products: products,
		Metadata: e.buildMetadata(req, algorithmsUsed, false, start),
	}, nil
}

// prepareRequest applies defaults and generates a request ID if needed.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(req Request) Request {
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}
	if req.Limit <= 0 {
		req.Limit = e.config.DefaultLimit
	}
	if req.Limit > e.config.MaxLimit {
		req.Limit = e.config.MaxLimit
	}
	return req
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) createRequestLogger(req Request) zerolog.Logger {
	return e.logger.With().
		Str("request_id", req.RequestID).
		Str("user_id", req.UserID).
		Logger()
}

// buildContext computes the user state and assembles the per-request context.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) buildContext(ctx context.Context, req Request, logger zerolog.Logger) *Context {
	exclude := make(map[string]struct{}, len(req.ExcludeIDs))
	for _, id := range req.ExcludeIDs {
		exclude[id] = struct{}{}
	}

	state := UserState{Anonymous: req.UserID == ""}
	if !state.Anonymous && e.interactions != nil {
		hasHistory, err := e.interactions.HasHistory(ctx, req.UserID)
		if err != nil {
			// An unhealthy interaction store must not fail the request;
			// treat the user as cold-start.
			logger.Warn().Err(err).Msg("interaction history lookup failed")
		}
		state.HasHistory = hasHistory && err == nil
	}

	return &Context{
		UserID:  req.UserID,
		Limit:   req.Limit,
		Exclude: exclude,
		State:   state,
	}
}

// generatorResult pairs a generator's output with its fixed priority index.
type generatorResult struct {
	Result
	priority int
}

// runGenerators invokes every applicable generator concurrently and waits
// for all of them. Each generator runs under its own timeout and error
// boundary, so one unhealthy signal source cannot fail the request.
func (e *Engine) runGenerators(ctx context.Context, rctx *Context) []generatorResult {
	applicable := e.applicableGenerators(rctx.State)
	results := make([]generatorResult, len(applicable))

	var wg sync.WaitGroup
	for i, g := range applicable {
		wg.Add(1)
		go func(idx int, gen prioritizedGenerator) {
			defer wg.Done()
			results[idx] = generatorResult{
				Result:   e.runSingleGenerator(ctx, gen.Generator, rctx),
				priority: gen.priority,
			}
		}(i, g)
	}
	wg.Wait()

	return results
}

// prioritizedGenerator carries a generator with its registration index.
type prioritizedGenerator struct {
	Generator
	priority int
}

// applicableGenerators selects the generators that apply to the user state.
func (e *Engine) applicableGenerators(state UserState) []prioritizedGenerator {
	e.genMu.RLock()
	defer e.genMu.RUnlock()

	applicable := make([]prioritizedGenerator, 0, len(e.generators))
	for i, g := range e.generators {
		if g.Applicable(state) {
			applicable = append(applicable, prioritizedGenerator{Generator: g, priority: i})
		}
	}
	return applicable
}

// runSingleGenerator runs one generator under its timeout and degrades any
// failure to an empty result.
func (e *Engine) runSingleGenerator(ctx context.Context, g Generator, rctx *Context) Result {
	genCtx, cancel := context.WithTimeout(ctx, e.config.GeneratorTimeout)
	defer cancel()

	start := time.Now()
	result, err := g.Generate(genCtx, rctx)
	metrics.GeneratorDuration.WithLabelValues(g.Name()).Observe(time.Since(start).Seconds())

	if err != nil {
		reason := "error"
		if errors.Is(err, context.DeadlineExceeded) {
			reason = "timeout"
		}
		metrics.GeneratorDegraded.WithLabelValues(g.Name(), reason).Inc()
		e.logger.Warn().
			Str("generator", g.Name()).
			Str("reason", reason).
			Err(err).
			Msg("generator degraded to empty result")
		return EmptyResult(g.Name())
	}

	if result.Empty() {
		metrics.GeneratorEmpty.WithLabelValues(g.Name()).Inc()
	}
	return result
}

// merge combines generator outputs into a single deduplicated ranked list.
// Results are visited in confidence order (declared confidence descending,
// registration priority as the tie-break); each candidate keeps the position
// contributed by the first result that mentions it.
func (e *Engine) merge(results []generatorResult, rctx *Context) ([]string, []string) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Confidence != results[j].Confidence {
			return results[i].Confidence > results[j].Confidence
		}
		return results[i].priority < results[j].priority
	})

	seen := make(map[string]struct{})
	merged := make([]string, 0, rctx.Limit)
	algorithmsUsed := make([]string, 0, len(results))

	for _, res := range results {
		contributed := false
		for _, id := range res.ProductIDs {
			if len(merged) >= rctx.Limit {
				break
			}
			if _, dup := seen[id]; dup {
				continue
			}
			if rctx.Excluded(id) {
				continue
			}
			seen[id] = struct{}{}
			merged = append(merged, id)
			contributed = true
		}
		if contributed {
			algorithmsUsed = append(algorithmsUsed, res.Algorithm)
		}
	}

	return merged, algorithmsUsed
}

// fallbackResponse serves the newest active products when every generator
// came back empty. This is the only path that can fail the caller.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) fallbackResponse(ctx context.Context, req Request, start time.Time, logger zerolog.Logger) (*Response, error) {
	products, err := e.products.QueryActive(ctx, ProductFilter{
		Order: OrderNewest,
		Limit: req.Limit,
	})
	if err != nil {
		metrics.RecommendRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("fallback catalog query: %w", err)
	}

	summaries := make([]models.ProductSummary, 0, len(products))
	for i := range products {
		summaries = append(summaries, products[i].Summary())
	}

	metrics.RecommendRequestsTotal.WithLabelValues("fallback").Inc()
	logger.Debug().Int("returned", len(summaries)).Msg("catalog fallback engaged")

	return &Response{
		Products: summaries,
		Metadata: e.buildMetadata(req, []string{"catalog_fallback"}, true, start),
	}, nil
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) buildMetadata(req Request, algorithmsUsed []string, fallback bool, start time.Time) ResponseMetadata {
	return ResponseMetadata{
		RequestID:      req.RequestID,
		UserID:         req.UserID,
		AlgorithmsUsed: algorithmsUsed,
		Fallback:       fallback,
		LatencyMS:      time.Since(start).Milliseconds(),
		Timestamp:      time.Now(),
	}
}

// Spokeworks Marketplace - Multi-Vendor Bicycle Marketplace
// Copyright 2026 Spokeworks
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/spokeworks/marketplace

package api

import (
	"net/http"
	"time"

	"github.com/spokeworks/marketplace/internal/logging"
	"github.com/spokeworks/marketplace/internal/models"
	"github.com/spokeworks/marketplace/internal/recommend"
)

// Recommendations handles GET /api/v1/recommendations.
//
// Query parameters:
//   - user_id: optional; empty means an anonymous session
//   - limit: optional result size; engine defaults and caps apply
//   - exclude: optional comma-separated product IDs to exclude
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	q := r.URL.Query()

	limit := getIntParam(r, "limit", 0)
	if limit < 0 {
		respondError(w, http.StatusBadRequest, "INVALID_LIMIT",
			"limit must be a non-negative integer", nil)
		return
	}

	req := recommend.Request{
		UserID:     q.Get("user_id"),
		Limit:      limit,
		ExcludeIDs: parseCommaSeparated(q.Get("exclude")),
		RequestID:  logging.RequestIDFromContext(r.Context()),
	}

	resp, err := h.engine.Recommend(r.Context(), req)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "RECOMMEND_FAILED",
			"failed to generate recommendations", err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   resp,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// Spokeworks Marketplace - Multi-Vendor Bicycle Marketplace
// Copyright 2026 Spokeworks
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/spokeworks/marketplace

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/spokeworks/marketplace/internal/models"
)

// healthStatus is the health endpoint payload.
type healthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}

// HealthLive handles GET /api/v1/health/live. It reports process liveness
// only and never touches dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     healthStatus{Status: "alive"},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// HealthReady handles GET /api/v1/health/ready. It verifies the database is
// reachable before declaring the service ready for traffic.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, &models.APIResponse{
				Status:   "error",
				Data:     healthStatus{Status: "not ready", Database: "unreachable"},
				Metadata: models.Metadata{Timestamp: time.Now()},
				Error: &models.APIError{
					Code:    "DATABASE_UNAVAILABLE",
					Message: "database ping failed",
				},
			})
			return
		}
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     healthStatus{Status: "ready", Database: "ok"},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// Spokeworks Marketplace - Multi-Vendor Bicycle Marketplace
// Copyright 2026 Spokeworks
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/spokeworks/marketplace

package models

import "time"

// APIResponse is the standardized response wrapper used by all HTTP
// endpoints. It provides a consistent structure for both successful and
// error responses.
//
// Status field values:
//   - "success": request completed, see Data
//   - "error": request failed, see Error
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data,omitempty"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
type Metadata struct {
	// Timestamp is the server time the response was generated.
	Timestamp time.Time `json:"timestamp"`

	// QueryTimeMS is the total server-side processing time in milliseconds.
	QueryTimeMS int64 `json:"query_time_ms"`
}

// APIError describes a failed request.
type APIError struct {
	// Code is a stable machine-readable error code (e.g. "INVALID_LIMIT").
	Code string `json:"code"`

	// Message is a human-readable description.
	Message string `json:"message"`

	// Details carries optional structured context.
	Details map[string]string `json:"details,omitempty"`
}

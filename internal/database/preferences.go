// Spokeworks Marketplace - Multi-Vendor Bicycle Marketplace
// Copyright 2026 Spokeworks
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/spokeworks/marketplace

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"

	"github.com/spokeworks/marketplace/internal/metrics"
	"github.com/spokeworks/marketplace/internal/models"
)

// ReplaceUserKeywords replaces the user's derived keyword set in one
// transaction. Called by the aggregation job after each recompute.
func (db *DB) ReplaceUserKeywords(ctx context.Context, userID string, keywords []models.KeywordWeight) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin keyword replace: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM user_keywords WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("clear keywords for %s: %w", userID, err)
	}
	for _, kw := range keywords {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO user_keywords (user_id, keyword, score, updated_at)
			VALUES (?, ?, ?, CURRENT_TIMESTAMP)`,
			userID, kw.Keyword, kw.Score); err != nil {
			return fmt.Errorf("insert keyword %q for %s: %w", kw.Keyword, userID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit keyword replace: %w", err)
	}
	return nil
}

// GetUserPreferences returns the user's derived preference record, or
// (nil, nil) when absent. Absence is the cold-start signal, not an error.
func (db *DB) GetUserPreferences(ctx context.Context, userID string) (*models.UserPreferences, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, `
		SELECT keyword, score, updated_at
		FROM user_keywords
		WHERE user_id = ?
		ORDER BY score DESC, keyword ASC`, userID)
	metrics.RecordDBQuery("get_preferences", "user_keywords", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("query user keywords: %w", err)
	}
	defer closeQuietly(rows)

	prefs := &models.UserPreferences{UserID: userID}
	for rows.Next() {
		var kw models.KeywordWeight
		var updatedAt time.Time
		if err := rows.Scan(&kw.Keyword, &kw.Score, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan user keyword: %w", err)
		}
		prefs.FavoriteKeywords = append(prefs.FavoriteKeywords, kw)
		if updatedAt.After(prefs.UpdatedAt) {
			prefs.UpdatedAt = updatedAt
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user keywords: %w", err)
	}

	if len(prefs.FavoriteKeywords) == 0 {
		return nil, nil
	}
	return prefs, nil
}

// SaveOnboardingPreferences stores the preferences a user stated at signup.
func (db *DB) SaveOnboardingPreferences(ctx context.Context, prefs *models.OnboardingPreferences) error {
	styles, err := json.Marshal(prefs.RidingStyles)
	if err != nil {
		return fmt.Errorf("marshal riding styles: %w", err)
	}
	brands, err := json.Marshal(prefs.PreferredBrands)
	if err != nil {
		return fmt.Errorf("marshal preferred brands: %w", err)
	}
	interests, err := json.Marshal(prefs.Interests)
	if err != nil {
		return fmt.Errorf("marshal interests: %w", err)
	}

	createdAt := prefs.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	start := time.Now()
	_, err = db.conn.ExecContext(ctx, `
		INSERT OR REPLACE INTO onboarding_preferences
			(user_id, riding_styles, preferred_brands, experience_level,
			 budget_range, interests, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		prefs.UserID, string(styles), string(brands), prefs.ExperienceLevel,
		prefs.BudgetRange, string(interests), createdAt)
	metrics.RecordDBQuery("upsert", "onboarding_preferences", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("save onboarding preferences: %w", err)
	}
	return nil
}

// GetOnboardingPreferences returns the user's stated preferences, or
// (nil, nil) when absent.
func (db *DB) GetOnboardingPreferences(ctx context.Context, userID string) (*models.OnboardingPreferences, error) {
	var (
		prefs     = models.OnboardingPreferences{UserID: userID}
		styles    string
		brands    string
		interests string
	)

	start := time.Now()
	err := db.conn.QueryRowContext(ctx, `
		SELECT riding_styles, preferred_brands, experience_level,
		       budget_range, interests, created_at
		FROM onboarding_preferences
		WHERE user_id = ?`, userID).
		Scan(&styles, &brands, &prefs.ExperienceLevel,
			&prefs.BudgetRange, &interests, &prefs.CreatedAt)
	metrics.RecordDBQuery("get", "onboarding_preferences", time.Since(start), err)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get onboarding preferences: %w", err)
	}

	if err := json.Unmarshal([]byte(styles), &prefs.RidingStyles); err != nil {
		return nil, fmt.Errorf("unmarshal riding styles: %w", err)
	}
	if err := json.Unmarshal([]byte(brands), &prefs.PreferredBrands); err != nil {
		return nil, fmt.Errorf("unmarshal preferred brands: %w", err)
	}
	if err := json.Unmarshal([]byte(interests), &prefs.Interests); err != nil {
		return nil, fmt.Errorf("unmarshal interests: %w", err)
	}
	return &prefs, nil
}

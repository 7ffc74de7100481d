// Package repo implements the optional data persistence layer, backed by
// GORM. This file provides repository functions for the UserProfile model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a profile is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/FAde16-lang/BrandCraft/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// GetProfile fetches a profile by its external identifier, or ErrNotFound.
func GetProfile(ctx context.Context, db *gorm.DB, externalID string) (*domain.UserProfile, error) {
	var p domain.UserProfile
	if err := db.WithContext(ctx).Where("external_id = ?", externalID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// UpsertProfile creates a profile for an unseen external id, or refreshes the
// sign-in fields and LastLogin of an existing one. The returned bool is true
// when a new row was created.
//
// Lookup-then-write (instead of INSERT .. ON CONFLICT) so the caller learns
// whether the profile is new; concurrent syncs of the same id are
// last-write-wins, which is accepted.
func UpsertProfile(ctx context.Context, db *gorm.DB, externalID, email, displayName, pictureURL string) (*domain.UserProfile, bool, error) {
	now := time.Now().UTC()

	existing, err := GetProfile(ctx, db, externalID)
	if err == nil {
		existing.Email = email
		existing.DisplayName = displayName
		existing.PictureURL = pictureURL
		existing.LastLogin = now
		if err := db.WithContext(ctx).Model(existing).Updates(map[string]any{
			"email":        email,
			"display_name": displayName,
			"picture_url":  pictureURL,
			"last_login":   now,
		}).Error; err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, false, err
	}

	p := &domain.UserProfile{
		ID:          uuid.NewString(),
		ExternalID:  externalID,
		Email:       email,
		DisplayName: displayName,
		PictureURL:  pictureURL,
		CreatedAt:   now,
		LastLogin:   now,
	}
	if err := db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, false, err
	}
	return p, true, nil
}

// UpdateBrandVoice replaces the stored brand-voice preferences for a profile.
// Returns ErrNotFound when no profile exists for the external id.
func UpdateBrandVoice(ctx context.Context, db *gorm.DB, externalID string, voice domain.BrandVoice) error {
	res := db.WithContext(ctx).
		Model(&domain.UserProfile{}).
		Where("external_id = ?", externalID).
		Updates(map[string]any{
			"voice_personality":     voice.Personality,
			"voice_industry":        voice.Industry,
			"voice_target_audience": voice.TargetAudience,
			"voice_tone":            voice.Tone,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

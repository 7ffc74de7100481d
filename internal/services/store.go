// Package services – ProfileStore
//
// This file defines the capability-checked persistence seam. Exactly one
// variant is selected at construction time: a GORM-backed store when a
// database is configured and reachable, or a no-op store otherwise. Call
// sites never null-check a database handle; absence of persistence makes
// every dependent operation a safe no-op returning empty results, so the
// generation features stay fully usable without a data store.
package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/FAde16-lang/BrandCraft/internal/domain"
	"github.com/FAde16-lang/BrandCraft/internal/repo"
)

// ProfileStore is the persistence contract consumed by the services.
// Implementations must be safe for concurrent use.
type ProfileStore interface {
	// Enabled reports whether writes actually persist. Handlers use it only
	// to phrase responses; no operation branches on it for correctness.
	Enabled() bool

	// SyncProfile upserts a profile keyed by external id and reports
	// whether it was newly created.
	SyncProfile(ctx context.Context, externalID, email, displayName, pictureURL string) (*domain.UserProfile, bool, error)

	// GetProfile fetches a profile, or nil when unknown/unavailable.
	GetProfile(ctx context.Context, externalID string) (*domain.UserProfile, error)

	// UpdateBrandVoice replaces the stored brand-voice preferences.
	UpdateBrandVoice(ctx context.Context, externalID string, voice domain.BrandVoice) error

	// GetBrandVoice returns the stored preferences, or the zero value.
	GetBrandVoice(ctx context.Context, externalID string) (domain.BrandVoice, error)

	// RecordGeneration appends one history row.
	RecordGeneration(ctx context.Context, rec *domain.GenerationRecord) error

	// ListGenerations returns history most-recent-first, bounded by limit.
	ListGenerations(ctx context.Context, externalID string, limit int) ([]domain.GenerationRecord, error)
}

// GormStore is the database-backed ProfileStore.
type GormStore struct {
	DB *gorm.DB
}

// NewGormStore wraps a live database handle.
func NewGormStore(db *gorm.DB) *GormStore { return &GormStore{DB: db} }

// Enabled always reports true for the database-backed store.
func (s *GormStore) Enabled() bool { return true }

// SyncProfile proxies repo.UpsertProfile.
func (s *GormStore) SyncProfile(ctx context.Context, externalID, email, displayName, pictureURL string) (*domain.UserProfile, bool, error) {
	return repo.UpsertProfile(ctx, s.DB, externalID, email, displayName, pictureURL)
}

// GetProfile proxies repo.GetProfile, mapping missing rows to (nil, nil).
func (s *GormStore) GetProfile(ctx context.Context, externalID string) (*domain.UserProfile, error) {
	p, err := repo.GetProfile(ctx, s.DB, externalID)
	if err == repo.ErrNotFound {
		return nil, nil
	}
	return p, err
}

// UpdateBrandVoice proxies repo.UpdateBrandVoice, creating the profile row
// implicitly is NOT done: unknown ids surface ErrProfileNotFound.
func (s *GormStore) UpdateBrandVoice(ctx context.Context, externalID string, voice domain.BrandVoice) error {
	if err := repo.UpdateBrandVoice(ctx, s.DB, externalID, voice); err != nil {
		if err == repo.ErrNotFound {
			return ErrProfileNotFound
		}
		return err
	}
	return nil
}

// GetBrandVoice returns the stored preferences, or the zero value for an
// unknown profile.
func (s *GormStore) GetBrandVoice(ctx context.Context, externalID string) (domain.BrandVoice, error) {
	p, err := s.GetProfile(ctx, externalID)
	if err != nil || p == nil {
		return domain.BrandVoice{}, err
	}
	return p.Voice, nil
}

// RecordGeneration proxies repo.CreateGeneration.
func (s *GormStore) RecordGeneration(ctx context.Context, rec *domain.GenerationRecord) error {
	return repo.CreateGeneration(ctx, s.DB, rec)
}

// ListGenerations proxies repo.ListGenerations.
func (s *GormStore) ListGenerations(ctx context.Context, externalID string, limit int) ([]domain.GenerationRecord, error) {
	return repo.ListGenerations(ctx, s.DB, externalID, limit)
}

// NoopStore is selected when no database is configured or the initial open
// fails. Every operation succeeds with an empty or neutral result.
type NoopStore struct{}

// NewNoopStore returns the inert store variant.
func NewNoopStore() *NoopStore { return &NoopStore{} }

// Enabled always reports false for the no-op store.
func (*NoopStore) Enabled() bool { return false }

// SyncProfile acknowledges the sync without persisting anything.
func (*NoopStore) SyncProfile(_ context.Context, externalID, email, displayName, pictureURL string) (*domain.UserProfile, bool, error) {
	return &domain.UserProfile{
		ExternalID:  externalID,
		Email:       email,
		DisplayName: displayName,
		PictureURL:  pictureURL,
	}, false, nil
}

// GetProfile reports no profile.
func (*NoopStore) GetProfile(context.Context, string) (*domain.UserProfile, error) {
	return nil, nil
}

// UpdateBrandVoice drops the write.
func (*NoopStore) UpdateBrandVoice(context.Context, string, domain.BrandVoice) error {
	return nil
}

// GetBrandVoice returns the neutral value.
func (*NoopStore) GetBrandVoice(context.Context, string) (domain.BrandVoice, error) {
	return domain.BrandVoice{}, nil
}

// RecordGeneration drops the row.
func (*NoopStore) RecordGeneration(context.Context, *domain.GenerationRecord) error {
	return nil
}

// ListGenerations reports empty history.
func (*NoopStore) ListGenerations(context.Context, string, int) ([]domain.GenerationRecord, error) {
	return []domain.GenerationRecord{}, nil
}

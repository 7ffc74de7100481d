package services

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/FAde16-lang/BrandCraft/internal/domain"
)

// History list bounds.
const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// ProfileService exposes user profile, brand voice, and generation history
// operations over whichever ProfileStore was wired at startup.
type ProfileService struct {
	Store ProfileStore
}

// PersistenceEnabled reports whether a durable store backs this service.
func (s *ProfileService) PersistenceEnabled() bool {
	return s.Store != nil && s.Store.Enabled()
}

// Sync upserts the caller's profile from verified identity claims and
// reports whether the profile was newly created.
func (s *ProfileService) Sync(ctx context.Context, externalID, email, displayName, pictureURL string) (*domain.UserProfile, bool, error) {
	tr := otel.Tracer("services/ProfileService")
	ctx, span := tr.Start(ctx, "Sync")
	defer span.End()

	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return nil, false, ErrProfileNotFound
	}
	profile, isNew, err := s.Store.SyncProfile(ctx, externalID, email, displayName, pictureURL)
	if err != nil {
		return nil, false, err
	}
	span.SetAttributes(attribute.Bool("profile.created", isNew))
	return profile, isNew, nil
}

// Get returns the caller's profile, or ErrProfileNotFound when it was never
// synced.
func (s *ProfileService) Get(ctx context.Context, externalID string) (*domain.UserProfile, error) {
	tr := otel.Tracer("services/ProfileService")
	ctx, span := tr.Start(ctx, "Get")
	defer span.End()

	profile, err := s.Store.GetProfile(ctx, externalID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return profile, nil
}

// BrandVoice returns the caller's stored brand voice. Callers without a
// stored profile, and deployments without persistence, get the zero voice.
func (s *ProfileService) BrandVoice(ctx context.Context, externalID string) (domain.BrandVoice, error) {
	return s.Store.GetBrandVoice(ctx, externalID)
}

// SetBrandVoice replaces the caller's brand voice fields.
func (s *ProfileService) SetBrandVoice(ctx context.Context, externalID string, voice domain.BrandVoice) error {
	tr := otel.Tracer("services/ProfileService")
	ctx, span := tr.Start(ctx, "SetBrandVoice")
	defer span.End()

	return s.Store.UpdateBrandVoice(ctx, externalID, voice)
}

// History returns the caller's most recent generation records, newest first.
// limit <= 0 falls back to the default page size; oversized limits clamp.
func (s *ProfileService) History(ctx context.Context, externalID string, limit int) ([]domain.GenerationRecord, error) {
	tr := otel.Tracer("services/ProfileService")
	ctx, span := tr.Start(ctx, "History",
		trace.WithAttributes(attribute.Int("history.limit", limit)),
	)
	defer span.End()

	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	return s.Store.ListGenerations(ctx, externalID, limit)
}

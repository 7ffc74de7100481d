// Package repo implements the optional data persistence layer, backed by
// GORM. This file provides repository functions for the GenerationRecord
// model. Records are append-only: there is no update or delete path.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/FAde16-lang/BrandCraft/internal/domain"
)

// CreateGeneration inserts a new history row.
func CreateGeneration(ctx context.Context, db *gorm.DB, rec *domain.GenerationRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	return db.WithContext(ctx).Create(rec).Error
}

// ListGenerations returns the owner's history ordered deterministically
// (CreatedAt DESC, ID DESC), bounded by limit. A limit <= 0 returns an
// empty slice rather than an unbounded scan.
func ListGenerations(ctx context.Context, db *gorm.DB, ownerExternalID string, limit int) ([]domain.GenerationRecord, error) {
	if limit <= 0 {
		return []domain.GenerationRecord{}, nil
	}
	var out []domain.GenerationRecord
	err := db.WithContext(ctx).
		Where("owner_external_id = ?", ownerExternalID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// CountGenerations uses a raw COUNT so a missing table surfaces as an error.
func CountGenerations(ctx context.Context, db *gorm.DB, ownerExternalID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM generation_records WHERE owner_external_id = ?", ownerExternalID).
		Scan(&total).Error
	return total, err
}

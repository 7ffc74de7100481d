// Package domain defines the persistence models for user profiles and
// generation history. These types are mapped with GORM and form the optional
// data layer of the application: when no store is configured the rest of the
// system never touches them.
package domain

import (
	"time"

	"gorm.io/gorm"
)

// UserProfile represents a user known from an external sign-in system.
// Profiles are upserted keyed by ExternalID on every sync; there is no
// application-level cache, every read round-trips to storage.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - ExternalID: caller-supplied unique key from the sign-in provider.
//   - Email / DisplayName / PictureURL: latest values from the sign-in payload.
//   - Voice: embedded brand-voice preferences (nullable columns).
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
//   - LastLogin: bumped on every repeat sync.
//   - DeletedAt: soft deletion marker.
type UserProfile struct {
	ID          string         `json:"id"           gorm:"type:char(36);primaryKey"`
	ExternalID  string         `json:"external_id"  gorm:"type:varchar(64);not null;uniqueIndex:ux_profiles_external_id"`
	Email       string         `json:"email"        gorm:"type:varchar(255);not null"`
	DisplayName string         `json:"display_name" gorm:"type:varchar(255);not null"`
	PictureURL  string         `json:"picture_url"  gorm:"type:varchar(512)"`
	Voice       BrandVoice     `json:"brand_voice"  gorm:"embedded;embeddedPrefix:voice_"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	LastLogin   time.Time      `json:"last_login"`
	DeletedAt   gorm.DeletedAt `json:"-"            gorm:"index"`
}

// TableName returns the database table name for UserProfile.
func (UserProfile) TableName() string { return "user_profiles" }

// BrandVoice carries a user's brand personality preferences. All fields are
// optional; an all-empty value is the neutral result returned when no store
// is configured.
type BrandVoice struct {
	Personality    string `json:"personality,omitempty"     gorm:"type:varchar(255)"`
	Industry       string `json:"industry,omitempty"        gorm:"type:varchar(255)"`
	TargetAudience string `json:"target_audience,omitempty" gorm:"type:varchar(255)"`
	Tone           string `json:"tone,omitempty"            gorm:"type:varchar(255)"`
}

// IsZero reports whether no brand-voice preference has been set.
func (v BrandVoice) IsZero() bool {
	return v.Personality == "" && v.Industry == "" && v.TargetAudience == "" && v.Tone == ""
}

// GenerationRecord is an append-only log entry for one generation call.
// Records are never updated or deleted and are listed most-recent-first,
// bounded by a caller-supplied limit.
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - OwnerExternalID: external id of the requesting user (indexed).
//   - Operation: operation type, e.g. "brand_names" or "logo_image".
//   - Provider: the provider that produced the output.
//   - Label: short human-readable label derived from the input.
//   - InputSnapshot / OutputSnapshot: verbatim request/response payloads.
//   - CreatedAt: insertion timestamp (used for ordering).
type GenerationRecord struct {
	ID              string    `json:"id"                gorm:"type:char(36);primaryKey"`
	OwnerExternalID string    `json:"owner_external_id" gorm:"type:varchar(64);not null;index:idx_generations_owner,priority:1"`
	Operation       string    `json:"operation"         gorm:"type:varchar(32);not null"`
	Provider        string    `json:"provider"          gorm:"type:varchar(64);not null"`
	Label           string    `json:"label"             gorm:"type:varchar(255)"`
	InputSnapshot   string    `json:"input_snapshot"    gorm:"type:text"`
	OutputSnapshot  string    `json:"output_snapshot"   gorm:"type:text"`
	CreatedAt       time.Time `json:"created_at"        gorm:"index:idx_generations_owner,priority:2"`
}

// TableName returns the database table name for GenerationRecord.
func (GenerationRecord) TableName() string { return "generation_records" }

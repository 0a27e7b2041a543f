package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Moderation states. Every artwork is in exactly one of these at all times.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Artwork is the moderated content unit. Only approved artworks are visible
// on the public gallery. Any content edit or new report sends it back to
// pending for re-review.
type Artwork struct {
	ID              uuid.UUID                  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID          uuid.UUID                  `gorm:"type:uuid;not null;index" json:"user_id"`
	Title           string                     `gorm:"not null;size:200" json:"title"`
	Description     string                     `gorm:"type:text;not null" json:"description"`
	ImageURL        string                     `gorm:"not null;size:2048" json:"image_url"`
	Genre           string                     `gorm:"size:50;index" json:"genre,omitempty"`
	Tags            datatypes.JSONSlice[string] `json:"tags"`
	Status          string                     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	RejectionReason string                     `gorm:"size:500" json:"rejection_reason,omitempty"`
	IsRecommended   bool                       `gorm:"not null;default:false;index" json:"is_recommended"`
	Reports         []Report                   `gorm:"foreignKey:ArtworkID;constraint:OnDelete:CASCADE" json:"reports,omitempty"`
	CreatedAt       time.Time                  `json:"created_at"`
	UpdatedAt       time.Time                  `json:"updated_at"`
	User            User                       `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// Report is a user complaint against one artwork. The composite unique index
// enforces at most one report per (artwork, reporter) pair; the whole set is
// cleared in bulk when an admin resolves the artwork.
type Report struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ArtworkID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reports_artwork_reporter" json:"artwork_id"`
	ReporterID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reports_artwork_reporter" json:"reporter_id"`
	Reason     string    `gorm:"not null;size:500" json:"reason"`
	CreatedAt  time.Time `json:"created_at"`
	Reporter   User      `gorm:"foreignKey:ReporterID" json:"reporter,omitempty"`
}

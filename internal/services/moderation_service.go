package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/artisle/gallery-backend/internal/cache"
	"github.com/artisle/gallery-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ModerationService owns the report ledger and the admin moderation
// workflow: the pending review queue, approve/reject decisions, report
// resolution and the recommendation flag.
type ModerationService struct {
	db    *gorm.DB
	locks *LockTable
}

func NewModerationService(db *gorm.DB, locks *LockTable) *ModerationService {
	return &ModerationService{db: db, locks: locks}
}

// Report files a complaint against an artwork. Each user may report a given
// artwork once; any accepted report sends the artwork back to pending so an
// admin re-reviews it.
func (s *ModerationService) Report(ctx context.Context, artworkID, reporterID uuid.UUID, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return ValidationError("report reason is required")
	}

	unlock := s.locks.Lock(artworkID)
	defer unlock()

	var artwork models.Artwork
	if err := s.db.WithContext(ctx).First(&artwork, "id = ?", artworkID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrArtworkNotFound
		}
		return fmt.Errorf("failed to load artwork: %w", err)
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Report{}).
		Where("artwork_id = ? AND reporter_id = ?", artworkID, reporterID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check existing reports: %w", err)
	}
	if count > 0 {
		return ErrAlreadyReported
	}

	report := models.Report{
		ID:         uuid.New(),
		ArtworkID:  artworkID,
		ReporterID: reporterID,
		Reason:     reason,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&report).Error; err != nil {
			return err
		}
		return tx.Model(&models.Artwork{}).
			Where("id = ?", artworkID).
			Update("status", models.StatusPending).Error
	})
	if err != nil {
		return fmt.Errorf("failed to file report: %w", err)
	}

	cache.Invalidate(ctx, cache.KeyGallery, cache.KeyRecommended)
	return nil
}

// ListPending returns the review queue, oldest submission first so the
// longest-waiting artwork is reviewed first.
func (s *ModerationService) ListPending(ctx context.Context) ([]models.Artwork, error) {
	var artworks []models.Artwork
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("status = ?", models.StatusPending).
		Order("created_at ASC").
		Find(&artworks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending artworks: %w", err)
	}
	return artworks, nil
}

func (s *ModerationService) Approve(ctx context.Context, artworkID uuid.UUID) error {
	return s.setStatus(ctx, artworkID, models.StatusApproved, "")
}

// Reject marks the artwork rejected. The reason is optional and stored for
// the owner to see.
func (s *ModerationService) Reject(ctx context.Context, artworkID uuid.UUID, reason string) error {
	return s.setStatus(ctx, artworkID, models.StatusRejected, reason)
}

// setStatus is the single write point for admin moderation decisions. The
// write is unconditional: re-approving an approved artwork is a no-op in
// effect but not special-cased.
func (s *ModerationService) setStatus(ctx context.Context, artworkID uuid.UUID, status, reason string) error {
	unlock := s.locks.Lock(artworkID)
	defer unlock()

	result := s.db.WithContext(ctx).Model(&models.Artwork{}).
		Where("id = ?", artworkID).
		Updates(map[string]interface{}{
			"status":           status,
			"rejection_reason": reason,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to set artwork status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrArtworkNotFound
	}

	cache.Invalidate(ctx, cache.KeyGallery, cache.KeyRecommended)
	return nil
}

// ListReported returns every artwork with at least one open report, with the
// owner and reporter identities resolved.
func (s *ModerationService) ListReported(ctx context.Context) ([]models.Artwork, error) {
	var artworks []models.Artwork
	err := s.db.WithContext(ctx).
		Preload("User").
		Preload("Reports.Reporter").
		Where("id IN (?)", s.db.Model(&models.Report{}).Select("artwork_id")).
		Find(&artworks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reported artworks: %w", err)
	}
	return artworks, nil
}

// Resolve clears the entire report list for an artwork. The status is left
// untouched: approving or rejecting is a separate admin decision.
func (s *ModerationService) Resolve(ctx context.Context, artworkID uuid.UUID) (*models.Artwork, error) {
	unlock := s.locks.Lock(artworkID)
	defer unlock()

	var artwork models.Artwork
	if err := s.db.WithContext(ctx).Preload("Reports").First(&artwork, "id = ?", artworkID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArtworkNotFound
		}
		return nil, fmt.Errorf("failed to load artwork: %w", err)
	}

	// The reasons are discarded; leave a trace for operators before the wipe.
	slog.Info("reports resolved", "artwork_id", artworkID, "action", "resolve_reports", "cleared", len(artwork.Reports))

	if err := s.db.WithContext(ctx).Where("artwork_id = ?", artworkID).Delete(&models.Report{}).Error; err != nil {
		return nil, fmt.Errorf("failed to clear reports: %w", err)
	}

	artwork.Reports = nil
	return &artwork, nil
}

// SetRecommended toggles the curation flag. It is independent of moderation
// status; only the public recommended rail additionally filters on approved.
func (s *ModerationService) SetRecommended(ctx context.Context, artworkID uuid.UUID, recommended bool) error {
	unlock := s.locks.Lock(artworkID)
	defer unlock()

	result := s.db.WithContext(ctx).Model(&models.Artwork{}).
		Where("id = ?", artworkID).
		Update("is_recommended", recommended)
	if result.Error != nil {
		return fmt.Errorf("failed to update recommendation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrArtworkNotFound
	}

	cache.Invalidate(ctx, cache.KeyRecommended)
	return nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/artisle/gallery-backend/internal/cache"
	"github.com/artisle/gallery-backend/internal/dto"
	"github.com/artisle/gallery-backend/internal/models"
	"github.com/artisle/gallery-backend/internal/principal"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const galleryCacheTTL = 60 * time.Second

// ArtworkService owns the artwork lifecycle: creation into the pending
// queue, the public gallery view, and the edits that force re-review.
type ArtworkService struct {
	db    *gorm.DB
	locks *LockTable
}

func NewArtworkService(db *gorm.DB, locks *LockTable) *ArtworkService {
	return &ArtworkService{db: db, locks: locks}
}

func (s *ArtworkService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateArtworkRequest) (*models.Artwork, error) {
	if strings.TrimSpace(req.Title) == "" ||
		strings.TrimSpace(req.Description) == "" ||
		strings.TrimSpace(req.ImageURL) == "" {
		return nil, ValidationError("title, description and image URL are required")
	}

	artwork := models.Artwork{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Genre:       req.Genre,
		Tags:        datatypes.JSONSlice[string](req.Tags),
		Status:      models.StatusPending,
	}

	if err := s.db.WithContext(ctx).Create(&artwork).Error; err != nil {
		return nil, fmt.Errorf("failed to create artwork: %w", err)
	}

	if err := s.db.WithContext(ctx).Preload("User").First(&artwork, "id = ?", artwork.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to load created artwork: %w", err)
	}
	return &artwork, nil
}

// List returns the public gallery: approved artworks, newest first. The
// unfiltered listing is served cache-aside.
func (s *ArtworkService) List(ctx context.Context, q dto.GalleryQuery) ([]models.Artwork, error) {
	var artworks []models.Artwork

	fetch := func() error {
		return s.galleryQuery(ctx, q).Find(&artworks).Error
	}

	if q == (dto.GalleryQuery{}) {
		if err := cache.Aside(ctx, cache.KeyGallery, &artworks, galleryCacheTTL, fetch); err != nil {
			return nil, fmt.Errorf("failed to list artworks: %w", err)
		}
		return artworks, nil
	}

	if err := fetch(); err != nil {
		return nil, fmt.Errorf("failed to list artworks: %w", err)
	}
	return artworks, nil
}

// ListRecommended returns the admin-curated promo rail: approved artworks
// with the recommended flag set.
func (s *ArtworkService) ListRecommended(ctx context.Context) ([]models.Artwork, error) {
	var artworks []models.Artwork

	err := cache.Aside(ctx, cache.KeyRecommended, &artworks, galleryCacheTTL, func() error {
		return s.db.WithContext(ctx).
			Preload("User").
			Where("status = ? AND is_recommended = ?", models.StatusApproved, true).
			Order("created_at DESC").
			Find(&artworks).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list recommended artworks: %w", err)
	}
	return artworks, nil
}

func (s *ArtworkService) galleryQuery(ctx context.Context, q dto.GalleryQuery) *gorm.DB {
	query := s.db.WithContext(ctx).
		Preload("User").
		Where("status = ?", models.StatusApproved)

	if q.Genre != "" {
		query = query.Where("genre = ?", q.Genre)
	}
	if q.Tag != "" {
		// Tags are stored as a JSON string array; match the quoted element so
		// "sky" does not match "skyline".
		query = query.Where("CAST(tags AS TEXT) LIKE ?", `%"`+q.Tag+`"%`)
	}
	if q.Search != "" {
		pattern := "%" + strings.ToLower(q.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	return query.Order("created_at DESC")
}

// Get returns one artwork under the visibility rule: approved artworks are
// public, everything else is visible only to the owner or an admin.
func (s *ArtworkService) Get(ctx context.Context, id uuid.UUID, p principal.Principal) (*models.Artwork, error) {
	var artwork models.Artwork
	if err := s.db.WithContext(ctx).Preload("User").First(&artwork, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArtworkNotFound
		}
		return nil, fmt.Errorf("failed to load artwork: %w", err)
	}

	if artwork.Status == models.StatusApproved || p.IsAdmin() || p.ID == artwork.UserID {
		return &artwork, nil
	}
	return nil, ErrNotAuthorized
}

// Update applies a partial patch by the owner or an admin. Any successful
// edit forces the artwork back to pending for re-review, even when no field
// changed value.
func (s *ArtworkService) Update(ctx context.Context, id uuid.UUID, p principal.Principal, req *dto.UpdateArtworkRequest) (*models.Artwork, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	var artwork models.Artwork
	if err := s.db.WithContext(ctx).First(&artwork, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArtworkNotFound
		}
		return nil, fmt.Errorf("failed to load artwork: %w", err)
	}

	if !p.Owns(artwork.UserID) {
		return nil, ErrNotAuthorized
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, ValidationError("title cannot be empty")
		}
		artwork.Title = *req.Title
	}
	if req.Description != nil {
		if strings.TrimSpace(*req.Description) == "" {
			return nil, ValidationError("description cannot be empty")
		}
		artwork.Description = *req.Description
	}
	if req.Genre != nil {
		artwork.Genre = *req.Genre
	}
	if req.Tags != nil {
		artwork.Tags = datatypes.JSONSlice[string](*req.Tags)
	}

	// Content changed, so the previous moderation decision no longer applies.
	artwork.Status = models.StatusPending

	if err := s.db.WithContext(ctx).Save(&artwork).Error; err != nil {
		return nil, fmt.Errorf("failed to update artwork: %w", err)
	}

	cache.Invalidate(ctx, cache.KeyGallery, cache.KeyRecommended)

	if err := s.db.WithContext(ctx).Preload("User").First(&artwork, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to load updated artwork: %w", err)
	}
	return &artwork, nil
}

// Delete removes the artwork and its reports permanently.
func (s *ArtworkService) Delete(ctx context.Context, id uuid.UUID, p principal.Principal) error {
	unlock := s.locks.Lock(id)
	defer unlock()

	var artwork models.Artwork
	if err := s.db.WithContext(ctx).First(&artwork, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrArtworkNotFound
		}
		return fmt.Errorf("failed to load artwork: %w", err)
	}

	if !p.Owns(artwork.UserID) {
		return ErrNotAuthorized
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("artwork_id = ?", id).Delete(&models.Report{}).Error; err != nil {
			return err
		}
		return tx.Delete(&artwork).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete artwork: %w", err)
	}

	cache.Invalidate(ctx, cache.KeyGallery, cache.KeyRecommended)
	return nil
}

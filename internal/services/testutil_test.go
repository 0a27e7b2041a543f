package services

import (
	"testing"
	"time"

	"github.com/artisle/gallery-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Artwork{},
		&models.Report{},
		&models.SystemLog{},
	))

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name, role string) *models.User {
	t.Helper()

	user := &models.User{
		ID:       uuid.New(),
		Name:     name,
		Email:    name + "@example.com",
		Password: "hashed",
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestArtwork(t *testing.T, db *gorm.DB, owner *models.User, title, status string, createdAt time.Time) *models.Artwork {
	t.Helper()

	artwork := &models.Artwork{
		ID:          uuid.New(),
		UserID:      owner.ID,
		Title:       title,
		Description: "description of " + title,
		ImageURL:    "https://images.example.com/" + title + ".jpg",
		Status:      status,
		CreatedAt:   createdAt,
	}
	require.NoError(t, db.Create(artwork).Error)
	return artwork
}

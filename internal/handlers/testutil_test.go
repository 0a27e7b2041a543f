package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/artisle/gallery-backend/internal/config"
	"github.com/artisle/gallery-backend/internal/database"
	"github.com/artisle/gallery-backend/internal/dto"
	"github.com/artisle/gallery-backend/internal/handlers"
	"github.com/artisle/gallery-backend/internal/models"
	"github.com/artisle/gallery-backend/internal/routes"
	"github.com/artisle/gallery-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestApp wires the real routes against an in-memory SQLite database.
func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
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

	database.DB = db
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	cfg := &config.Config{
		JWTSecret:        "test-secret-key",
		JWTAccessExpiry:  time.Hour,
		JWTRefreshExpiry: 24 * time.Hour,
	}

	locks := services.NewLockTable()
	authService := services.NewAuthService(db, cfg)
	artworkService := services.NewArtworkService(db, locks)
	moderationService := services.NewModerationService(db, locks)

	app := fiber.New()
	routes.Setup(app, cfg, db,
		handlers.NewAuthHandler(authService),
		handlers.NewHealthHandler(),
		handlers.NewArtworkHandler(artworkService, moderationService),
		handlers.NewModerationHandler(moderationService),
	)

	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

// registerUser creates an account through the API and returns its tokens.
func registerUser(t *testing.T, app *fiber.App, name string) dto.AuthResponse {
	t.Helper()

	resp := doJSON(t, app, fiber.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Name:     name,
		Email:    name + "@example.com",
		Password: "password123",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return decode[dto.AuthResponse](t, resp)
}

// registerAdmin creates an account, promotes it in the DB, and logs in again
// so the token claims carry the admin role.
func registerAdmin(t *testing.T, app *fiber.App, db *gorm.DB, name string) dto.AuthResponse {
	t.Helper()

	registerUser(t, app, name)
	require.NoError(t, db.Model(&models.User{}).
		Where("email = ?", name+"@example.com").
		Update("role", models.RoleAdmin).Error)

	resp := doJSON(t, app, fiber.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Email:    name + "@example.com",
		Password: "password123",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	return decode[dto.AuthResponse](t, resp)
}

func createArtworkViaAPI(t *testing.T, app *fiber.App, token, title string) models.Artwork {
	t.Helper()

	resp := doJSON(t, app, fiber.MethodPost, "/api/artworks", token, dto.CreateArtworkRequest{
		Title:       title,
		Description: "description of " + title,
		ImageURL:    "https://images.example.com/" + title + ".jpg",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return decode[models.Artwork](t, resp)
}

package routes

import (
	"time"

	"github.com/artisle/gallery-backend/internal/config"
	"github.com/artisle/gallery-backend/internal/handlers"
	"github.com/artisle/gallery-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	artworkHandler *handlers.ArtworkHandler,
	moderationHandler *handlers.ModerationHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter rate limit
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Get("/auth/profile", middleware.JWTProtected(cfg), authHandler.Profile)

	// Artworks — the public gallery shows approved work only; single reads
	// take an optional token so owners and admins can see their pending and
	// rejected pieces.
	api.Get("/artworks", artworkHandler.List)
	api.Get("/artworks/recommended", artworkHandler.ListRecommended)
	api.Get("/artworks/:id", middleware.JWTOptional(cfg), artworkHandler.Get)
	api.Post("/artworks", middleware.JWTProtected(cfg), artworkHandler.Create)
	api.Put("/artworks/:id", middleware.JWTProtected(cfg), artworkHandler.Update)
	api.Delete("/artworks/:id", middleware.JWTProtected(cfg), artworkHandler.Delete)
	api.Post("/artworks/:id/report", middleware.JWTProtected(cfg), artworkHandler.Report)

	// Admin moderation panel (protected + admin required)
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))
	admin.Get("/moderation/pending", moderationHandler.ListPending)
	admin.Put("/moderation/approve/:id", moderationHandler.Approve)
	admin.Put("/moderation/reject/:id", moderationHandler.Reject)
	admin.Get("/reports", moderationHandler.ListReported)
	admin.Put("/reports/resolve/:id", moderationHandler.Resolve)
	admin.Put("/recommend/:id", moderationHandler.Recommend)
	admin.Delete("/recommend/:id", moderationHandler.Unrecommend)
}

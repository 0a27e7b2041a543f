package handlers

import (
	"github.com/artisle/gallery-backend/internal/dto"
	"github.com/artisle/gallery-backend/internal/principal"
	"github.com/artisle/gallery-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ArtworkHandler struct {
	artworkService    *services.ArtworkService
	moderationService *services.ModerationService
}

func NewArtworkHandler(artworkService *services.ArtworkService, moderationService *services.ModerationService) *ArtworkHandler {
	return &ArtworkHandler{artworkService: artworkService, moderationService: moderationService}
}

// artworkID parses the :id path param. Malformed ids read as "not found"
// rather than a parse error so existence information stays consistent.
func artworkID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	return id, err == nil
}

func (h *ArtworkHandler) Create(c *fiber.Ctx) error {
	p, err := principal.FromContext(c)
	if err != nil {
		return respond(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.CreateArtworkRequest
	if err := c.BodyParser(&req); err != nil {
		return respond(c, fiber.StatusBadRequest, "Invalid request body")
	}

	artwork, err := h.artworkService.Create(c.Context(), p.ID, &req)
	if err != nil {
		return serviceError(c, err, "create_artwork")
	}

	return c.Status(fiber.StatusCreated).JSON(artwork)
}

func (h *ArtworkHandler) List(c *fiber.Ctx) error {
	var q dto.GalleryQuery
	if err := c.QueryParser(&q); err != nil {
		return respond(c, fiber.StatusBadRequest, "Invalid query parameters")
	}

	artworks, err := h.artworkService.List(c.Context(), q)
	if err != nil {
		return serviceError(c, err, "list_artworks")
	}

	return c.JSON(artworks)
}

func (h *ArtworkHandler) ListRecommended(c *fiber.Ctx) error {
	artworks, err := h.artworkService.ListRecommended(c.Context())
	if err != nil {
		return serviceError(c, err, "list_recommended")
	}

	return c.JSON(artworks)
}

func (h *ArtworkHandler) Get(c *fiber.Ctx) error {
	id, ok := artworkID(c)
	if !ok {
		return respond(c, fiber.StatusNotFound, "Artwork not found")
	}

	artwork, err := h.artworkService.Get(c.Context(), id, principal.FromContextOptional(c))
	if err != nil {
		return serviceError(c, err, "get_artwork")
	}

	return c.JSON(artwork)
}

func (h *ArtworkHandler) Update(c *fiber.Ctx) error {
	p, err := principal.FromContext(c)
	if err != nil {
		return respond(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	id, ok := artworkID(c)
	if !ok {
		return respond(c, fiber.StatusNotFound, "Artwork not found")
	}

	var req dto.UpdateArtworkRequest
	if err := c.BodyParser(&req); err != nil {
		return respond(c, fiber.StatusBadRequest, "Invalid request body")
	}

	artwork, err := h.artworkService.Update(c.Context(), id, p, &req)
	if err != nil {
		return serviceError(c, err, "update_artwork")
	}

	return c.JSON(artwork)
}

func (h *ArtworkHandler) Delete(c *fiber.Ctx) error {
	p, err := principal.FromContext(c)
	if err != nil {
		return respond(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	id, ok := artworkID(c)
	if !ok {
		return respond(c, fiber.StatusNotFound, "Artwork not found")
	}

	if err := h.artworkService.Delete(c.Context(), id, p); err != nil {
		return serviceError(c, err, "delete_artwork")
	}

	return c.JSON(dto.MessageResponse{Message: "Artwork removed"})
}

func (h *ArtworkHandler) Report(c *fiber.Ctx) error {
	p, err := principal.FromContext(c)
	if err != nil {
		return respond(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	id, ok := artworkID(c)
	if !ok {
		return respond(c, fiber.StatusNotFound, "Artwork not found")
	}

	var req dto.ReportRequest
	if err := c.BodyParser(&req); err != nil {
		return respond(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.moderationService.Report(c.Context(), id, p.ID, req.Reason); err != nil {
		return serviceError(c, err, "report_artwork")
	}

	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "Artwork reported successfully"})
}

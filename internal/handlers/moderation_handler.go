package handlers

import (
	"github.com/artisle/gallery-backend/internal/dto"
	"github.com/artisle/gallery-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// ModerationHandler is the admin surface: review queue, approve/reject,
// report resolution and recommendation. Authorization is enforced by the
// admin middleware on the route group, not here.
type ModerationHandler struct {
	moderationService *services.ModerationService
}

func NewModerationHandler(moderationService *services.ModerationService) *ModerationHandler {
	return &ModerationHandler{moderationService: moderationService}
}

func (h *ModerationHandler) ListPending(c *fiber.Ctx) error {
	artworks, err := h.moderationService.ListPending(c.Context())
	if err != nil {
		return serviceError(c, err, "list_pending")
	}

	return c.JSON(artworks)
}

func (h *ModerationHandler) Approve(c *fiber.Ctx) error {
	id, ok := artworkID(c)
	if !ok {
		return respond(c, fiber.StatusNotFound, "Artwork not found")
	}

	if err := h.moderationService.Approve(c.Context(), id); err != nil {
		return serviceError(c, err, "approve_artwork")
	}

	return c.JSON(dto.MessageResponse{Message: "Artwork approved"})
}

func (h *ModerationHandler) Reject(c *fiber.Ctx) error {
	id, ok := artworkID(c)
	if !ok {
		return respond(c, fiber.StatusNotFound, "Artwork not found")
	}

	// Body is optional; an empty reason is allowed.
	var req dto.RejectArtworkRequest
	_ = c.BodyParser(&req)

	if err := h.moderationService.Reject(c.Context(), id, req.Reason); err != nil {
		return serviceError(c, err, "reject_artwork")
	}

	return c.JSON(dto.MessageResponse{Message: "Artwork rejected"})
}

func (h *ModerationHandler) ListReported(c *fiber.Ctx) error {
	artworks, err := h.moderationService.ListReported(c.Context())
	if err != nil {
		return serviceError(c, err, "list_reported")
	}

	return c.JSON(artworks)
}

func (h *ModerationHandler) Resolve(c *fiber.Ctx) error {
	id, ok := artworkID(c)
	if !ok {
		return respond(c, fiber.StatusNotFound, "Artwork not found")
	}

	artwork, err := h.moderationService.Resolve(c.Context(), id)
	if err != nil {
		return serviceError(c, err, "resolve_reports")
	}

	return c.JSON(artwork)
}

func (h *ModerationHandler) Recommend(c *fiber.Ctx) error {
	id, ok := artworkID(c)
	if !ok {
		return respond(c, fiber.StatusNotFound, "Artwork not found")
	}

	if err := h.moderationService.SetRecommended(c.Context(), id, true); err != nil {
		return serviceError(c, err, "recommend_artwork")
	}

	return c.JSON(dto.MessageResponse{Message: "Artwork set as recommended"})
}

func (h *ModerationHandler) Unrecommend(c *fiber.Ctx) error {
	id, ok := artworkID(c)
	if !ok {
		return respond(c, fiber.StatusNotFound, "Artwork not found")
	}

	if err := h.moderationService.SetRecommended(c.Context(), id, false); err != nil {
		return serviceError(c, err, "unrecommend_artwork")
	}

	return c.JSON(dto.MessageResponse{Message: "Artwork recommendation removed"})
}

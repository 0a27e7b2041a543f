package handlers

import (
	"errors"
	"log/slog"

	"github.com/artisle/gallery-backend/internal/dto"
	"github.com/artisle/gallery-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// serviceError maps the service failure kinds to status codes in one place
// so every handler agrees on the taxonomy. Unknown errors are infrastructure
// failures: logged with detail, reported as a generic 500.
func serviceError(c *fiber.Ctx, err error, action string) error {
	var ve services.ValidationError

	switch {
	case errors.Is(err, services.ErrArtworkNotFound), errors.Is(err, services.ErrUserNotFound):
		return respond(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrNotAuthorized):
		return respond(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrAlreadyReported), errors.Is(err, services.ErrEmailTaken):
		return respond(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrInvalidToken):
		return respond(c, fiber.StatusUnauthorized, err.Error())
	case errors.As(err, &ve):
		return respond(c, fiber.StatusBadRequest, err.Error())
	}

	slog.Error("request failed", "action", action, "path", c.Path(), "error", err.Error())
	return respond(c, fiber.StatusInternalServerError, "Internal server error")
}

func respond(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: message})
}

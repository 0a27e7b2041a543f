// Package principal resolves the authenticated actor of a request from the
// JWT claims the auth middleware leaves in the Fiber context.
package principal

import (
	"errors"

	"github.com/artisle/gallery-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrNoPrincipal = errors.New("no authenticated principal in context")

// Principal is the authenticated actor attempting an operation. The zero
// value means "unauthenticated".
type Principal struct {
	ID   uuid.UUID
	Role string
}

func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}

func (p Principal) IsAnonymous() bool {
	return p.ID == uuid.Nil
}

// Owns reports whether the principal may mutate an artwork owned by ownerID.
// Admins own everything.
func (p Principal) Owns(ownerID uuid.UUID) bool {
	return p.IsAdmin() || p.ID == ownerID
}

// FromContext extracts the principal from JWT claims set by the auth
// middleware. Returns ErrNoPrincipal when the request carried no valid token.
func FromContext(c *fiber.Ctx) (Principal, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return Principal{}, ErrNoPrincipal
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Principal{}, ErrNoPrincipal
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return Principal{}, ErrNoPrincipal
	}

	id, err := uuid.Parse(sub)
	if err != nil {
		return Principal{}, ErrNoPrincipal
	}

	role, _ := claims["role"].(string)
	if role == "" {
		role = models.RoleUser
	}

	return Principal{ID: id, Role: role}, nil
}

// FromContextOptional is FromContext for routes where authentication is
// optional; it returns the zero Principal instead of an error.
func FromContextOptional(c *fiber.Ctx) Principal {
	p, err := FromContext(c)
	if err != nil {
		return Principal{}
	}
	return p
}

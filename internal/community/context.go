package community

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/community-hub/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// GetCommunityID extracts the community id from Fiber context locals.
func GetCommunityID(c *fiber.Ctx) string {
	if id, ok := c.Locals("community_id").(string); ok {
		return id
	}
	return ""
}

// GetUserID extracts the user UUID from JWT claims in context.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing sub claim")
	}

	return uuid.Parse(sub)
}

// GetViewer returns the viewer record loaded by the viewer middleware.
// Handlers behind that middleware can rely on it being present.
func GetViewer(c *fiber.Ctx) *models.User {
	if viewer, ok := c.Locals("viewer").(*models.User); ok {
		return viewer
	}
	return nil
}

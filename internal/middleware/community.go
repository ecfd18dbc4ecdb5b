package middleware

import (
	"strings"

	"github.com/ahmetcoskunkizilkaya/community-hub/internal/community"
	"github.com/ahmetcoskunkizilkaya/community-hub/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Paths that don't require community identification.
var communitySkipPaths = []string{
	"/api/health",
}

// CommunityMiddleware resolves the community from JWT claims, the
// X-Community-ID header, or a query param, in that order.
func CommunityMiddleware(registry *community.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()

		// Only API routes need a community. Static assets resolve to files
		// and the websocket endpoint derives its community from the token.
		if !strings.HasPrefix(path, "/api") {
			return c.Next()
		}

		for _, skip := range communitySkipPaths {
			if strings.HasPrefix(path, skip) {
				return c.Next()
			}
		}

		// 1. JWT claim (already authenticated)
		if token, ok := c.Locals("user").(*jwt.Token); ok {
			if claims, ok := token.Claims.(jwt.MapClaims); ok {
				if id, ok := claims["community_id"].(string); ok && id != "" {
					c.Locals("community_id", id)
					return c.Next()
				}
			}
		}

		// 2. X-Community-ID header
		id := c.Get("X-Community-ID")
		if id != "" {
			if !registry.Exists(id) {
				return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
					Error: "Invalid X-Community-ID: " + id,
				})
			}
			c.Locals("community_id", id)
			return c.Next()
		}

		// 3. Query param (browser convenience)
		id = c.Query("community_id")
		if id != "" {
			if !registry.Exists(id) {
				return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
					Error: "Invalid community_id: " + id,
				})
			}
			c.Locals("community_id", id)
			return c.Next()
		}

		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "X-Community-ID header is required",
		})
	}
}

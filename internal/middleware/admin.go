package middleware

import (
	"github.com/ahmetcoskunkizilkaya/community-hub/internal/authz"
	"github.com/ahmetcoskunkizilkaya/community-hub/internal/community"
	"github.com/ahmetcoskunkizilkaya/community-hub/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// AdminRequired gates the admin console. It relies on the viewer record
// loaded by ViewerRequired, so role changes take effect on the next request.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		viewer := community.GetViewer(c)
		if err := authz.Authorize(viewer, authz.ActionViewAdmin, nil); err != nil {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: "Admin access required",
			})
		}
		return c.Next()
	}
}

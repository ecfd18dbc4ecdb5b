package middleware

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/community-hub/internal/community"
	"github.com/ahmetcoskunkizilkaya/community-hub/internal/dto"
	"github.com/ahmetcoskunkizilkaya/community-hub/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ViewerRequired loads the caller's own user record and stores it in locals.
// It fails closed: a missing record denies with 401, a store error denies
// with 503. Banned viewers still load so the rule table can decide per
// action. Must run after JWTProtected and CommunityMiddleware.
func ViewerRequired(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		communityID := community.GetCommunityID(c)
		userID, err := community.GetUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: "Unauthorized",
			})
		}

		var viewer models.User
		if err := db.Scopes(community.Scoped(communityID)).First(&viewer, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
					Error: "User profile not found",
				})
			}
			slog.Error("viewer load failed", "error", err, "community_id", communityID, "user_id", userID.String())
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Error: "Service unavailable",
			})
		}

		c.Locals("viewer", &viewer)
		return c.Next()
	}
}

package handlers

import (
	"github.com/ahmetcoskunkizilkaya/community-hub/internal/community"
	"github.com/ahmetcoskunkizilkaya/community-hub/internal/dto"
	"github.com/ahmetcoskunkizilkaya/community-hub/internal/services"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// List is the public member directory.
func (h *UserHandler) List(c *fiber.Ctx) error {
	communityID := community.GetCommunityID(c)
	profiles, err := h.users.ListPublic(communityID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to fetch users"})
	}
	return c.JSON(profiles)
}

func (h *UserHandler) Me(c *fiber.Ctx) error {
	return c.JSON(community.GetViewer(c))
}

func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	communityID := community.GetCommunityID(c)
	viewer := community.GetViewer(c)

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	updated, err := h.users.UpdateProfile(communityID, viewer, &req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(updated)
}

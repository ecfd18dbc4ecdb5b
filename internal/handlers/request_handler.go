package handlers

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/community-hub/internal/authz"
	"github.com/ahmetcoskunkizilkaya/community-hub/internal/community"
	"github.com/ahmetcoskunkizilkaya/community-hub/internal/dto"
	"github.com/ahmetcoskunkizilkaya/community-hub/internal/services"
	"github.com/gofiber/fiber/v2"
)

type RequestHandler struct {
	requests *services.RequestService
}

func NewRequestHandler(requests *services.RequestService) *RequestHandler {
	return &RequestHandler{requests: requests}
}

func (h *RequestHandler) Create(c *fiber.Ctx) error {
	communityID := community.GetCommunityID(c)
	viewer := community.GetViewer(c)

	var req dto.CreateServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	request, err := h.requests.Create(communityID, viewer, req.Type, req.Description)
	if err != nil {
		if errors.Is(err, authz.ErrUnauthenticated) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(request)
}

func (h *RequestHandler) ListMine(c *fiber.Ctx) error {
	communityID := community.GetCommunityID(c)
	viewer := community.GetViewer(c)

	requests, err := h.requests.ListForUser(communityID, viewer.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to fetch requests"})
	}
	return c.JSON(requests)
}

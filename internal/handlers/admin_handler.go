package handlers

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/community-hub/internal/community"
	"github.com/ahmetcoskunkizilkaya/community-hub/internal/dto"
	"github.com/ahmetcoskunkizilkaya/community-hub/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// AdminHandler backs the admin console: user roster, service request queue,
// and content moderation. Every route it serves sits behind AdminRequired.
type AdminHandler struct {
	users    *services.UserService
	requests *services.RequestService
	chat     *services.ChatService
}

func NewAdminHandler(users *services.UserService, requests *services.RequestService, chat *services.ChatService) *AdminHandler {
	return &AdminHandler{users: users, requests: requests, chat: chat}
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	communityID := community.GetCommunityID(c)
	viewer := community.GetViewer(c)

	users, err := h.users.ListAll(communityID, viewer)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to fetch users"})
	}
	return c.JSON(users)
}

func (h *AdminHandler) SetRole(c *fiber.Ctx) error {
	communityID := community.GetCommunityID(c)
	viewer := community.GetViewer(c)

	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid user ID"})
	}

	var req dto.SetRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	user, err := h.users.SetRole(communityID, viewer, targetID, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: err.Error()})
		case errors.Is(err, services.ErrInvalidRole):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to update role"})
		}
	}
	return c.JSON(user)
}

func (h *AdminHandler) SetBan(c *fiber.Ctx) error {
	communityID := community.GetCommunityID(c)
	viewer := community.GetViewer(c)

	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid user ID"})
	}

	var req dto.SetBanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	user, err := h.users.SetBan(communityID, viewer, targetID, req.IsBanned)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to update ban state"})
	}
	return c.JSON(user)
}

func (h *AdminHandler) ListRequests(c *fiber.Ctx) error {
	communityID := community.GetCommunityID(c)
	viewer := community.GetViewer(c)

	requests, err := h.requests.ListAll(communityID, viewer, c.Query("status"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to fetch requests"})
	}
	return c.JSON(requests)
}

func (h *AdminHandler) SetRequestStatus(c *fiber.Ctx) error {
	communityID := community.GetCommunityID(c)
	viewer := community.GetViewer(c)

	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request ID"})
	}

	var req dto.SetRequestStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	request, err := h.requests.SetStatus(communityID, viewer, requestID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRequestNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: err.Error()})
		case errors.Is(err, services.ErrInvalidStatus):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to update request"})
		}
	}
	return c.JSON(request)
}

func (h *AdminHandler) DeleteChatMessage(c *fiber.Ctx) error {
	communityID := community.GetCommunityID(c)
	viewer := community.GetViewer(c)

	messageID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid message ID"})
	}

	if err := h.chat.DeleteMessage(communityID, viewer, messageID); err != nil {
		if errors.Is(err, services.ErrMessageNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to delete message"})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Message deleted"})
}

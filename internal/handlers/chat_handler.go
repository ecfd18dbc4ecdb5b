package handlers

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/community-hub/internal/authz"
	"github.com/ahmetcoskunkizilkaya/community-hub/internal/community"
	"github.com/ahmetcoskunkizilkaya/community-hub/internal/dto"
	"github.com/ahmetcoskunkizilkaya/community-hub/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ChatHandler struct {
	chat *services.ChatService
}

func NewChatHandler(chat *services.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

func (h *ChatHandler) List(c *fiber.Ctx) error {
	communityID := community.GetCommunityID(c)
	messages, err := h.chat.ListMessages(communityID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to fetch messages"})
	}
	return c.JSON(messages)
}

func (h *ChatHandler) Create(c *fiber.Ctx) error {
	communityID := community.GetCommunityID(c)
	viewer := community.GetViewer(c)

	var req dto.CreateChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	msg, err := h.chat.CreateMessage(communityID, viewer, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, authz.ErrBanned):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: "You are banned from chatting"})
		case errors.Is(err, authz.ErrUnauthenticated):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
		default:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(msg)
}

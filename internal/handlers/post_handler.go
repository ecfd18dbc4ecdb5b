package handlers

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/community-hub/internal/authz"
	"github.com/ahmetcoskunkizilkaya/community-hub/internal/community"
	"github.com/ahmetcoskunkizilkaya/community-hub/internal/dto"
	"github.com/ahmetcoskunkizilkaya/community-hub/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type PostHandler struct {
	feed *services.FeedService
}

func NewPostHandler(feed *services.FeedService) *PostHandler {
	return &PostHandler{feed: feed}
}

func (h *PostHandler) List(c *fiber.Ctx) error {
	communityID := community.GetCommunityID(c)
	posts, err := h.feed.ListPosts(communityID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to fetch posts"})
	}
	return c.JSON(posts)
}

func (h *PostHandler) Create(c *fiber.Ctx) error {
	communityID := community.GetCommunityID(c)
	viewer := community.GetViewer(c)

	var req dto.CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	post, err := h.feed.CreatePost(communityID, viewer, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, authz.ErrBanned):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: "You are banned from posting"})
		case errors.Is(err, authz.ErrUnauthenticated):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
		default:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

func (h *PostHandler) Delete(c *fiber.Ctx) error {
	communityID := community.GetCommunityID(c)
	viewer := community.GetViewer(c)

	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid post ID"})
	}

	if err := h.feed.DeletePost(communityID, viewer, postID); err != nil {
		switch {
		case errors.Is(err, services.ErrPostNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: err.Error()})
		case errors.Is(err, authz.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: "You can only delete your own posts"})
		case errors.Is(err, authz.ErrUnauthenticated):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to delete post"})
		}
	}

	return c.JSON(fiber.Map{"success": true, "message": "Post deleted"})
}

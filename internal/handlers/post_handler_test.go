package handlers

import (
	"fmt"
	"testing"

	"github.com/ahmetcoskunkizilkaya/community-hub/internal/dto"
	"github.com/ahmetcoskunkizilkaya/community-hub/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/community-hub/internal/models"
	"github.com/ahmetcoskunkizilkaya/community-hub/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func setupFeedApp(t *testing.T, db *gorm.DB, viewer *models.User) *fiber.App {
	t.Helper()

	handler := NewPostHandler(services.NewFeedService(db, services.NewModerationService(db), nil))

	app := setupTestApp()
	app.Use(mockCommunity())
	app.Get("/api/posts", handler.List)
	app.Post("/api/posts", mockViewer(viewer), handler.Create)
	app.Delete("/api/posts/:id", mockViewer(viewer), handler.Delete)
	return app
}

func TestPostCreateAndList(t *testing.T) {
	db := setupTestDB(t)
	jane := seedUser(t, db, "jane@example.com", models.RoleUser, false)
	app := setupFeedApp(t, db, jane)

	resp, err := app.Test(jsonRequest(t, "POST", "/api/posts", dto.CreatePostRequest{Content: "hello neighbors"}))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, "GET", "/api/posts", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var posts []models.Post
	decodeBody(t, resp, &posts)
	assert.Len(t, posts, 1)
	assert.Equal(t, "hello neighbors", posts[0].Content)
	assert.Equal(t, jane.ID, posts[0].UserID)
}

func TestPostCreateBanned(t *testing.T) {
	db := setupTestDB(t)
	banned := seedUser(t, db, "troll@example.com", models.RoleUser, true)
	app := setupFeedApp(t, db, banned)

	resp, err := app.Test(jsonRequest(t, "POST", "/api/posts", dto.CreatePostRequest{Content: "hi"}))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	var body dto.ErrorResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "You are banned from posting", body.Error)
}

func TestPostDeleteForbiddenForNonAuthor(t *testing.T) {
	db := setupTestDB(t)
	jane := seedUser(t, db, "jane@example.com", models.RoleUser, false)
	bob := seedUser(t, db, "bob@example.com", models.RoleUser, false)

	janeApp := setupFeedApp(t, db, jane)
	resp, err := janeApp.Test(jsonRequest(t, "POST", "/api/posts", dto.CreatePostRequest{Content: "mine"}))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var post models.Post
	decodeBody(t, resp, &post)

	bobApp := setupFeedApp(t, db, bob)
	resp, err = bobApp.Test(jsonRequest(t, "DELETE", fmt.Sprintf("/api/posts/%s", post.ID), nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	var body dto.ErrorResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "You can only delete your own posts", body.Error)
}

func TestPostDeleteByAdmin(t *testing.T) {
	db := setupTestDB(t)
	jane := seedUser(t, db, "jane@example.com", models.RoleUser, false)
	admin := seedUser(t, db, "admin@mywebsite.com", models.RoleAdmin, false)

	janeApp := setupFeedApp(t, db, jane)
	resp, err := janeApp.Test(jsonRequest(t, "POST", "/api/posts", dto.CreatePostRequest{Content: "gone soon"}))
	assert.NoError(t, err)

	var post models.Post
	decodeBody(t, resp, &post)

	adminApp := setupFeedApp(t, db, admin)
	resp, err = adminApp.Test(jsonRequest(t, "DELETE", fmt.Sprintf("/api/posts/%s", post.ID), nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = adminApp.Test(jsonRequest(t, "GET", "/api/posts", nil))
	assert.NoError(t, err)
	var posts []models.Post
	decodeBody(t, resp, &posts)
	assert.Empty(t, posts)
}

func TestPostDeleteNotFound(t *testing.T) {
	db := setupTestDB(t)
	admin := seedUser(t, db, "admin@mywebsite.com", models.RoleAdmin, false)
	app := setupFeedApp(t, db, admin)

	resp, err := app.Test(jsonRequest(t, "DELETE", "/api/posts/not-a-uuid", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAdminGroupRequiresAdmin(t *testing.T) {
	db := setupTestDB(t)
	member := seedUser(t, db, "jane@example.com", models.RoleUser, false)

	app := setupTestApp()
	app.Use(mockCommunity())
	admin := app.Group("/api/admin", mockViewer(member), middleware.AdminRequired())
	admin.Get("/users", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	resp, err := app.Test(jsonRequest(t, "GET", "/api/admin/users", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	var body dto.ErrorResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "Admin access required", body.Error)
}

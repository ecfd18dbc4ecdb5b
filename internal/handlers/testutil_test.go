package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ahmetcoskunkizilkaya/community-hub/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testCommunity = "neighborhood-hub"

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Post{},
		&models.ChatMessage{},
		&models.ServiceRequest{},
		&models.Report{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

func setupTestApp() *fiber.App {
	return fiber.New(fiber.Config{DisableStartupMessage: true})
}

// mockCommunity stands in for CommunityMiddleware in tests.
func mockCommunity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("community_id", testCommunity)
		return c.Next()
	}
}

// mockViewer stands in for JWTProtected + ViewerRequired, injecting the
// given user as the authenticated viewer.
func mockViewer(user *models.User) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("viewer", user)
		return c.Next()
	}
}

func seedUser(t *testing.T, db *gorm.DB, email, role string, banned bool) *models.User {
	t.Helper()

	user := models.User{
		ID:          uuid.New(),
		CommunityID: testCommunity,
		Email:       email,
		Password:    "x",
		Name:        email,
		Role:        role,
		IsBanned:    banned,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to seed user %s: %v", email, err)
	}
	return &user
}

func jsonRequest(t *testing.T, method, path string, body interface{}) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		t.Fatalf("Failed to decode response %q: %v", string(data), err)
	}
}

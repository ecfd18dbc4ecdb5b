package handlers

import (
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/community-hub/internal/community"
	"github.com/ahmetcoskunkizilkaya/community-hub/internal/config"
	"github.com/ahmetcoskunkizilkaya/community-hub/internal/dto"
	"github.com/ahmetcoskunkizilkaya/community-hub/internal/models"
	"github.com/ahmetcoskunkizilkaya/community-hub/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuthApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	return buildAuthApp(db), db
}

func buildAuthApp(db *gorm.DB) *fiber.App {
	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 24 * time.Hour,
	}
	registry := community.NewRegistry()
	registry.Register(&community.Config{
		CommunityID:         testCommunity,
		Name:                "Neighborhood Hub",
		BootstrapAdminEmail: "admin@mywebsite.com",
	})

	handler := NewAuthHandler(services.NewAuthService(db, cfg, registry))

	app := setupTestApp()
	app.Use(mockCommunity())
	app.Post("/api/auth/signup", handler.Signup)
	app.Post("/api/auth/login", handler.Login)
	return app
}

func TestSignupEndpoint(t *testing.T) {
	app, _ := setupAuthApp(t)

	resp, err := app.Test(jsonRequest(t, "POST", "/api/auth/signup", dto.SignupRequest{
		Email:    "jane@example.com",
		Password: "secret123",
		Name:     "Jane",
	}))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body dto.AuthResponse
	decodeBody(t, resp, &body)
	assert.NotEmpty(t, body.AccessToken)
	assert.Equal(t, "jane@example.com", body.User.Email)
}

func TestSignupDuplicateEmailEndpoint(t *testing.T) {
	app, _ := setupAuthApp(t)

	req := dto.SignupRequest{Email: "jane@example.com", Password: "secret123"}

	resp, err := app.Test(jsonRequest(t, "POST", "/api/auth/signup", req))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, "POST", "/api/auth/signup", req))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body dto.ErrorResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "Email already exists", body.Error)
}

func TestLoginEndpoint(t *testing.T) {
	app, _ := setupAuthApp(t)

	signup := dto.SignupRequest{Email: "jane@example.com", Password: "secret123"}
	resp, err := app.Test(jsonRequest(t, "POST", "/api/auth/signup", signup))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, "POST", "/api/auth/login", dto.LoginRequest{
		Email:    "jane@example.com",
		Password: "secret123",
	}))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, "POST", "/api/auth/login", dto.LoginRequest{
		Email:    "jane@example.com",
		Password: "wrong",
	}))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestSignupInvalidPayloadEndpoint(t *testing.T) {
	app, _ := setupAuthApp(t)

	resp, err := app.Test(jsonRequest(t, "POST", "/api/auth/signup", dto.SignupRequest{
		Email:    "jane@example.com",
		Password: "short",
	}))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSignupStoreFailureEndpoint(t *testing.T) {
	// An unmigrated store makes signup fail internally; that is a 500 with a
	// generic body, not a 400 leaking the store error.
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	assert.NoError(t, err)
	app := buildAuthApp(db)

	resp, err := app.Test(jsonRequest(t, "POST", "/api/auth/signup", dto.SignupRequest{
		Email:    "jane@example.com",
		Password: "secret123",
	}))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var body dto.ErrorResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "Internal server error", body.Error)
}

func TestSignupBootstrapAdminEndpoint(t *testing.T) {
	app, _ := setupAuthApp(t)

	resp, err := app.Test(jsonRequest(t, "POST", "/api/auth/signup", dto.SignupRequest{
		Email:    "admin@mywebsite.com",
		Password: "secret123",
	}))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body dto.AuthResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, models.RoleAdmin, body.User.Role)
}

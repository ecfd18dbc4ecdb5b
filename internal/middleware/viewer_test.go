package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/ahmetcoskunkizilkaya/community-hub/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openViewerDB(t *testing.T, migrate bool) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if migrate {
		if err := db.AutoMigrate(&models.User{}); err != nil {
			t.Fatalf("Failed to migrate test database: %v", err)
		}
	}
	return db
}

// viewerApp mounts ViewerRequired behind stand-ins for the community and JWT
// middleware, with the gated handler reporting whether it ran.
func viewerApp(db *gorm.DB, userID uuid.UUID, withToken bool) (*fiber.App, *bool) {
	ran := false

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("community_id", "neighborhood-hub")
		if withToken {
			c.Locals("user", jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
				"sub": userID.String(),
			}))
		}
		return c.Next()
	})
	app.Get("/gated", ViewerRequired(db), func(c *fiber.Ctx) error {
		ran = true
		return c.SendStatus(fiber.StatusOK)
	})
	return app, &ran
}

func TestViewerRequiredLoadsViewer(t *testing.T) {
	db := openViewerDB(t, true)
	user := models.User{
		ID:          uuid.New(),
		CommunityID: "neighborhood-hub",
		Email:       "jane@example.com",
		Password:    "x",
	}
	assert.NoError(t, db.Create(&user).Error)

	app, ran := viewerApp(db, user.ID, true)
	resp, err := app.Test(httptest.NewRequest("GET", "/gated", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, *ran)
}

func TestViewerRequiredMissingRecord(t *testing.T) {
	db := openViewerDB(t, true)

	app, ran := viewerApp(db, uuid.New(), true)
	resp, err := app.Test(httptest.NewRequest("GET", "/gated", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.False(t, *ran, "gated handler must not run without a viewer record")
}

func TestViewerRequiredStoreError(t *testing.T) {
	// No users table at all: the load fails with a store error, which must
	// deny rather than fall through to the handler.
	db := openViewerDB(t, false)

	app, ran := viewerApp(db, uuid.New(), true)
	resp, err := app.Test(httptest.NewRequest("GET", "/gated", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	assert.False(t, *ran, "gated handler must not run when the store is down")
}

func TestViewerRequiredMissingToken(t *testing.T) {
	db := openViewerDB(t, true)

	app, ran := viewerApp(db, uuid.New(), false)
	resp, err := app.Test(httptest.NewRequest("GET", "/gated", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.False(t, *ran)
}

func TestViewerRequiredLoadsBannedViewer(t *testing.T) {
	// Banned members still resolve; the per-action rules decide what they
	// may do, not the session layer.
	db := openViewerDB(t, true)
	user := models.User{
		ID:          uuid.New(),
		CommunityID: "neighborhood-hub",
		Email:       "troll@example.com",
		Password:    "x",
		IsBanned:    true,
	}
	assert.NoError(t, db.Create(&user).Error)

	app, ran := viewerApp(db, user.ID, true)
	resp, err := app.Test(httptest.NewRequest("GET", "/gated", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, *ran)
}

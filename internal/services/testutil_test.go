package services

import (
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/community-hub/internal/community"
	"github.com/ahmetcoskunkizilkaya/community-hub/internal/config"
	"github.com/ahmetcoskunkizilkaya/community-hub/internal/models"
	"github.com/ahmetcoskunkizilkaya/community-hub/internal/realtime"
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

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 24 * time.Hour,
	}
}

func testRegistry() *community.Registry {
	r := community.NewRegistry()
	r.Register(&community.Config{
		CommunityID:         testCommunity,
		Name:                "Neighborhood Hub",
		BootstrapAdminEmail: "admin@mywebsite.com",
	})
	return r
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

// capturePublisher records published events so tests can assert on fanout.
type capturePublisher struct {
	events []realtime.Event
}

func (p *capturePublisher) Publish(communityID string, event realtime.Event) {
	p.events = append(p.events, event)
}

func (p *capturePublisher) lastType() string {
	if len(p.events) == 0 {
		return ""
	}
	return p.events[len(p.events)-1].Type
}

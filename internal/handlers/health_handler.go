package handlers

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/community-hub/internal/community"
	"github.com/ahmetcoskunkizilkaya/community-hub/internal/database"
	"github.com/ahmetcoskunkizilkaya/community-hub/internal/dto"
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	registry *community.Registry
}

func NewHealthHandler(registry *community.Registry) *HealthHandler {
	return &HealthHandler{registry: registry}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "ok"
	if err := database.Ping(); err != nil {
		dbStatus = "unhealthy: " + err.Error()
	}

	return c.JSON(dto.HealthResponse{
		Status:         "ok",
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
		DB:             dbStatus,
		CommunityCount: len(h.registry.All()),
	})
}

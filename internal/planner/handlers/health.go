package handlers

import (
	"time"

	"floorplan-studio/internal/planner/service"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Health Check Handlers
// ============================================================

type HealthHandler struct {
	sessions  *service.SessionManager
	startedAt time.Time
}

func NewHealthHandler(sessions *service.SessionManager) *HealthHandler {
	return &HealthHandler{sessions: sessions, startedAt: time.Now()}
}

// Live: процесс отвечает.
func (h *HealthHandler) Live(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "alive"})
}

// Ready сообщает число открытых сессий и идущих генераций.
func (h *HealthHandler) Ready(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":     "ready",
		"sessions":   h.sessions.Len(),
		"generating": h.sessions.Generating(),
	})
}

func (h *HealthHandler) Startup(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":     "started",
		"started_at": h.startedAt.UTC().Format(time.RFC3339),
	})
}

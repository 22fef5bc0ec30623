package handlers

import (
	"floorplan-studio/internal/common/metrics"
	"floorplan-studio/internal/planner/service"
	"floorplan-studio/internal/planner/web"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
)

// Register вешает все маршруты студии на router.
func Register(router fiber.Router, sessions *service.SessionManager, m *metrics.Metrics) {
	studio := NewStudioHandler(sessions)
	health := NewHealthHandler(sessions)

	// ============================================================
	// Health Check Routes
	// ============================================================

	router.Get("/health/live", health.Live)
	router.Get("/health/ready", health.Ready)
	router.Get("/health/startup", health.Startup)

	if m != nil {
		router.Get("/metrics", adaptor.HTTPHandler(m.Handler()))
	}

	// ============================================================
	// Page & Assets
	// ============================================================

	router.Get("/", studio.Index)
	router.Get(web.PlaceholderURL, studio.Placeholder)
	router.Get("/docs", DocsPage)
	router.Get("/docs/openapi.yaml", DocsSpec)

	// ============================================================
	// Studio API
	// ============================================================

	api := router.Group("/api")
	api.Post("/sessions", studio.CreateSession)
	api.Get("/sessions/:id", studio.GetState)
	api.Put("/sessions/:id/fields/:field", studio.SetField)
	api.Post("/sessions/:id/generate", studio.Generate)
	api.Get("/sessions/:id/download", studio.Download)
}

package handlers

import (
	"floorplan-studio/internal/planner/web"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// API Docs
// ============================================================

// DocsSpec отдаёт описание API студии.
func DocsSpec(c fiber.Ctx) error {
	c.Type("yaml")
	return c.Send(web.OpenAPISpec())
}

func DocsPage(c fiber.Ctx) error {
	c.Type("html")
	return c.Send(web.DocsPage())
}

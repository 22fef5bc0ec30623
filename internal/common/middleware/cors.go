package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

// CORS открывает API для перечисленных источников ("*" в dev).
func CORS(origins []string) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowHeaders:  []string{"Content-Type"},
		AllowMethods:  []string{fiber.MethodGet, fiber.MethodPost, fiber.MethodPut},
		ExposeHeaders: []string{"Content-Disposition"},
	})
}

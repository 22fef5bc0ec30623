package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
)

// ============================================================
// Logger Middleware
// ============================================================

// Logger пишет строку на каждый запрос. Опрос состояния сессии идёт
// несколько раз в секунду, поэтому GET /api/sessions/:id не логируется.
func Logger() fiber.Handler {
	return logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path} ${error}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
		Next:       isStatePoll,
	})
}

func isStatePoll(c fiber.Ctx) bool {
	if c.Method() != fiber.MethodGet || !strings.HasPrefix(c.Path(), "/api/sessions/") {
		return false
	}
	return strings.Count(c.Path(), "/") == 3
}

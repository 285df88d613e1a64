package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"journalku_backend/internals/middlewares/logger"
)

// SetupMiddlewares wires the global middleware chain.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
}

package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Setup wires the base middleware chain. Order matters: recovery first so a
// panic anywhere below still produces a clean 500.
func Setup(app *fiber.App, log *zap.Logger) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(RequestLogger(log))
	app.Use(GlobalRateLimiter())
}

package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	adminController "confhub_backend/internals/features/admin/controller"
	"confhub_backend/internals/middlewares"
)

func AdminAuthRoutes(r fiber.Router, db *gorm.DB, log *zap.Logger, jwtSecret string) {
	h := adminController.NewAdminAuthController(db, log, jwtSecret)

	admin := r.Group("/admin")
	{
		admin.Post("/login", middlewares.LoginRateLimiter(), h.Login)
	}
}

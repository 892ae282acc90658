package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	registrationController "confhub_backend/internals/features/registrations/controller"
)

// AdminRegistrationRoutes mounts the review surface for confirmed delegates.
func AdminRegistrationRoutes(r fiber.Router, db *gorm.DB) {
	h := registrationController.NewRegistrationController(db)

	registrations := r.Group("/registrations")
	{
		registrations.Get("/", h.List)
		registrations.Get("/:id", h.GetByID)
		registrations.Patch("/:id/status", h.UpdateStatus)
	}
}

package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	abstractController "confhub_backend/internals/features/abstracts/controller"
)

func PublicAbstractRoutes(r fiber.Router, db *gorm.DB) {
	h := abstractController.NewAbstractController(db)

	abstracts := r.Group("/abstracts")
	{
		abstracts.Post("/", h.Submit)
		abstracts.Get("/:id", h.GetStatus)
	}
}

func AdminAbstractRoutes(r fiber.Router, db *gorm.DB) {
	h := abstractController.NewAbstractController(db)

	abstracts := r.Group("/abstracts")
	{
		abstracts.Get("/", h.List)
		abstracts.Patch("/:id/review", h.Review)
	}
}

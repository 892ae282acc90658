package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	sponsorshipController "confhub_backend/internals/features/sponsorships/controller"
)

// PublicSponsorshipRoutes serves the tier catalog for the sponsorship page.
func PublicSponsorshipRoutes(r fiber.Router, db *gorm.DB) {
	h := sponsorshipController.NewSponsorshipController(db)

	sponsorships := r.Group("/sponsorships")
	{
		sponsorships.Get("/packages", h.ListPackages)
	}
}

func AdminSponsorshipRoutes(r fiber.Router, db *gorm.DB) {
	h := sponsorshipController.NewSponsorshipController(db)

	sponsorships := r.Group("/sponsorships")
	{
		sponsorships.Get("/", h.List)
		sponsorships.Get("/:id", h.GetByID)
	}
}

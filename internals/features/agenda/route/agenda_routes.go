package route

import (
	"github.com/gofiber/fiber/v2"

	agendaController "confhub_backend/internals/features/agenda/controller"
)

func PublicAgendaRoutes(r fiber.Router, h *agendaController.AgendaController) {
	r.Get("/agenda", h.ListSessions)
	r.Get("/speakers", h.ListSpeakers)
}

func AdminAgendaRoutes(r fiber.Router, h *agendaController.AgendaController) {
	speakers := r.Group("/speakers")
	{
		speakers.Post("/", h.CreateSpeaker)
		speakers.Patch("/:id", h.UpdateSpeaker)
		speakers.Delete("/:id", h.DeleteSpeaker)
	}

	sessions := r.Group("/sessions")
	{
		sessions.Post("/", h.CreateSession)
		sessions.Delete("/:id", h.DeleteSession)
	}
}

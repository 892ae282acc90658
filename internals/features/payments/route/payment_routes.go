package route

import (
	"github.com/gofiber/fiber/v2"

	paymentController "confhub_backend/internals/features/payments/controller"
	"confhub_backend/internals/middlewares"
)

// PublicPaymentRoutes mounts the payment initiation/verify/webhook surface.
func PublicPaymentRoutes(r fiber.Router, h *paymentController.PaymentController) {
	payments := r.Group("/payments")
	{
		payments.Post("/", middlewares.PaymentRateLimiter(), h.CreatePayment)
		payments.Get("/", h.GetPaymentByReference)
		payments.Post("/verify", h.VerifyPayment)
		payments.Post("/webhook", h.Webhook)
	}
}

// AdminPaymentRoutes mounts the review surface; the caller wraps the group
// with admin JWT auth.
func AdminPaymentRoutes(r fiber.Router, h *paymentController.PaymentController) {
	payments := r.Group("/payments")
	{
		payments.Get("/", h.ListPayments)
		payments.Get("/:reference", h.GetPaymentDetail)
		payments.Post("/:reference/resolve", h.ResolveManualPayment)
	}
}

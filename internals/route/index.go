package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"confhub_backend/internals/configs"
	adminRoute "confhub_backend/internals/features/admin/route"
	abstractRoute "confhub_backend/internals/features/abstracts/route"
	agendaController "confhub_backend/internals/features/agenda/controller"
	agendaRoute "confhub_backend/internals/features/agenda/route"
	agendaService "confhub_backend/internals/features/agenda/service"
	paymentController "confhub_backend/internals/features/payments/controller"
	paymentRoute "confhub_backend/internals/features/payments/route"
	paymentService "confhub_backend/internals/features/payments/service"
	registrationRoute "confhub_backend/internals/features/registrations/route"
	sponsorshipRoute "confhub_backend/internals/features/sponsorships/route"
	authMiddleware "confhub_backend/internals/middlewares/auth"
)

// Deps carries everything constructed in main; no package-level state.
type Deps struct {
	Config     *configs.Config
	DB         *gorm.DB
	Redis      *redis.Client
	Log        *zap.Logger
	Gateway    *paymentService.Flutterwave
	Reconciler *paymentService.Reconciler
}

func SetupRoutes(app *fiber.App, d Deps) {
	api := app.Group("/api")

	// ===================== PUBLIC =====================
	payments := paymentController.NewPaymentController(d.DB, d.Gateway, d.Reconciler, d.Log, d.Config.BaseURL)
	paymentRoute.PublicPaymentRoutes(api, payments)

	abstractRoute.PublicAbstractRoutes(api, d.DB)
	sponsorshipRoute.PublicSponsorshipRoutes(api, d.DB)

	cache := agendaService.NewContentCache(d.Redis, d.Log)
	agenda := agendaController.NewAgendaController(d.DB, cache)
	agendaRoute.PublicAgendaRoutes(api, agenda)

	adminRoute.AdminAuthRoutes(api, d.DB, d.Log, d.Config.JWTSecret)

	// ===================== ADMIN =====================
	admin := app.Group("/api/a", authMiddleware.AdminJWT(d.Config.JWTSecret))

	paymentRoute.AdminPaymentRoutes(admin, payments)
	registrationRoute.AdminRegistrationRoutes(admin, d.DB)
	sponsorshipRoute.AdminSponsorshipRoutes(admin, d.DB)
	abstractRoute.AdminAbstractRoutes(admin, d.DB)
	agendaRoute.AdminAgendaRoutes(admin, agenda)
}

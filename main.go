package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"go.uber.org/zap"

	"confhub_backend/internals/configs"
	"confhub_backend/internals/databases"
	paymentScheduler "confhub_backend/internals/features/payments/scheduler"
	paymentService "confhub_backend/internals/features/payments/service"
	"confhub_backend/internals/middlewares"
	"confhub_backend/internals/observability"
	routes "confhub_backend/internals/route"
)

func main() {
	cfg := configs.Load()

	logger, err := observability.NewLogger(configs.GetEnv("APP_ENV", "production"))
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	// request timeout guard, aligned with statement_timeout in the DSN
	app.Use(func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	})

	middlewares.Setup(app, logger)

	db, err := databases.Open(cfg)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	rdb := databases.OpenRedis(cfg)
	if rdb == nil {
		logger.Info("redis not configured, content cache disabled")
	}

	gateway := paymentService.NewFlutterwave(cfg.FlwBaseURL, cfg.FlwSecretKey, cfg.FlwWebhookSecret)
	reconciler := paymentService.NewReconciler(db, logger)

	var sweeper *paymentScheduler.Sweeper
	if cfg.SweeperEnabled {
		sweeper = paymentScheduler.NewSweeper(db, gateway, reconciler, logger)
		if err := sweeper.Start(); err != nil {
			logger.Fatal("payment sweeper failed to start", zap.Error(err))
		}
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := databases.Ping(db); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).SendString("db down")
		}
		return c.SendString("ok")
	})

	routes.SetupRoutes(app, routes.Deps{
		Config:     cfg,
		DB:         db,
		Redis:      rdb,
		Log:        logger,
		Gateway:    gateway,
		Reconciler: reconciler,
	})

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	go func() {
		logger.Info("listening", zap.String("port", cfg.Port))
		if err := app.Listen("0.0.0.0:" + cfg.Port); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if sweeper != nil {
		sweeper.Stop()
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	_ = databases.Close(db)
}

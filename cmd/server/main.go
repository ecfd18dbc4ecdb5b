package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/ahmetcoskunkizilkaya/community-hub/internal/community"
	"github.com/ahmetcoskunkizilkaya/community-hub/internal/config"
	"github.com/ahmetcoskunkizilkaya/community-hub/internal/database"
	"github.com/ahmetcoskunkizilkaya/community-hub/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/community-hub/internal/logging"
	"github.com/ahmetcoskunkizilkaya/community-hub/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/community-hub/internal/realtime"
	"github.com/ahmetcoskunkizilkaya/community-hub/internal/routes"
	"github.com/ahmetcoskunkizilkaya/community-hub/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Community registry
	registry, err := community.LoadFromFile(cfg.CommunitiesConfigPath)
	if err != nil {
		slog.Error("failed to load community registry", "path", cfg.CommunitiesConfigPath, "error", err)
		os.Exit(1)
	}
	slog.Info("community registry loaded", "communities", len(registry.All()))

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		logging.StdoutHandler(),
		pgLogHandler,
	)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	// Realtime fanout: in-process hub plus a Redis bridge so events reach
	// sessions connected to other instances.
	hub := realtime.NewHub()
	go hub.Run()

	rdb := realtime.NewRedis(cfg)
	broadcaster := realtime.NewBroadcaster(hub, rdb)

	fanoutCtx, stopFanout := context.WithCancel(context.Background())
	go broadcaster.Run(fanoutCtx)

	// Services
	moderationService := services.NewModerationService(database.DB)
	authService := services.NewAuthService(database.DB, cfg, registry)
	feedService := services.NewFeedService(database.DB, moderationService, broadcaster)
	chatService := services.NewChatService(database.DB, moderationService, broadcaster)
	requestService := services.NewRequestService(database.DB, broadcaster)
	userService := services.NewUserService(database.DB, broadcaster)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	healthHandler := handlers.NewHealthHandler(registry)
	userHandler := handlers.NewUserHandler(userService)
	postHandler := handlers.NewPostHandler(feedService)
	chatHandler := handlers.NewChatHandler(chatService)
	requestHandler := handlers.NewRequestHandler(requestService)
	adminHandler := handlers.NewAdminHandler(userService, requestService, chatService)
	moderationHandler := handlers.NewModerationHandler(moderationService)
	wsHandler := handlers.NewWSHandler(hub, cfg)

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})
	app.Use(middleware.CommunityMiddleware(registry))

	// Routes
	routes.Setup(app, cfg, database.DB,
		authHandler, healthHandler, userHandler, postHandler, chatHandler,
		requestHandler, adminHandler, moderationHandler, wsHandler)

	// Static dashboard assets
	app.Static("/", cfg.StaticDir)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	stopFanout()
	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if err := rdb.Close(); err != nil {
		slog.Error("redis close error", "error", err)
	}

	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{"error": message})
}

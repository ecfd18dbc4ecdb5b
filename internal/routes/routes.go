package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/community-hub/internal/config"
	"github.com/ahmetcoskunkizilkaya/community-hub/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/community-hub/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	userHandler *handlers.UserHandler,
	postHandler *handlers.PostHandler,
	chatHandler *handlers.ChatHandler,
	requestHandler *handlers.RequestHandler,
	adminHandler *handlers.AdminHandler,
	moderationHandler *handlers.ModerationHandler,
	wsHandler *handlers.WSHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Health (no community required)
	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/signup", authHandler.Signup)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	// Public reads — anyone in the community can browse the feed, the chat
	// history, and the member directory without signing in.
	api.Get("/posts", postHandler.List)
	api.Get("/chat", chatHandler.List)
	api.Get("/users", userHandler.List)

	// Authenticated writes. ViewerRequired resolves the JWT subject to a user
	// record so the access rules can see roles and ban state.
	protected := api.Group("", middleware.JWTProtected(cfg), middleware.ViewerRequired(db))
	protected.Get("/me", userHandler.Me)
	protected.Put("/me", userHandler.UpdateMe)
	protected.Post("/posts", postHandler.Create)
	protected.Delete("/posts/:id", postHandler.Delete)
	protected.Post("/chat", chatHandler.Create)
	protected.Post("/requests", requestHandler.Create)
	protected.Get("/requests", requestHandler.ListMine)
	protected.Post("/reports", moderationHandler.CreateReport)

	// Admin panel
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.ViewerRequired(db), middleware.AdminRequired())
	admin.Get("/users", adminHandler.ListUsers)
	admin.Put("/users/:id/role", adminHandler.SetRole)
	admin.Put("/users/:id/ban", adminHandler.SetBan)
	admin.Get("/requests", adminHandler.ListRequests)
	admin.Put("/requests/:id/status", adminHandler.SetRequestStatus)
	admin.Delete("/posts/:id", postHandler.Delete)
	admin.Delete("/chat/:id", adminHandler.DeleteChatMessage)
	admin.Get("/reports", moderationHandler.ListReports)
	admin.Put("/reports/:id", moderationHandler.ActionReport)

	// Realtime event stream. Auth rides on the token query param because the
	// browser websocket API cannot set headers.
	app.Get("/ws", wsHandler.Upgrade, wsHandler.Serve())
}

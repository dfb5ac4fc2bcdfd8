package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ticketflow/tracker/internal/api/http/handlers"
	"github.com/ticketflow/tracker/internal/auth"
	"github.com/ticketflow/tracker/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Public         *handlers.PublicHandler
	Users          *handlers.UsersHandler
	Tickets        *handlers.TicketsHandler
	Comments       *handlers.CommentsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Get("/hello", cfg.Public.Hello)
	app.Get("/public", cfg.Public.Public)

	app.Post("/register", cfg.Users.Register)
	app.Post("/token", cfg.Users.Login)

	protected := app.Group("", cfg.AuthMiddleware.Handle)
	protected.Post("/logout", cfg.Users.Logout)

	protected.Get("/tickets", cfg.Tickets.List)
	protected.Post("/tickets", cfg.Tickets.Create)
	protected.Get("/tickets/:id", cfg.Tickets.Get)
	protected.Put("/tickets/:id", cfg.Tickets.Update)
	protected.Patch("/tickets/:id", cfg.Tickets.Update)
	protected.Post("/tickets/:id/comments", cfg.Comments.CreateForTicket)
	protected.Post("/comments", cfg.Comments.Create)

	protected.Get("/users", auth.RequireRole(domain.RoleAdmin), cfg.Users.List)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/yummy-admin/internal/api/http/handlers"
	"github.com/spec-kit/yummy-admin/internal/guard"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health     *handlers.HealthHandler
	Session    *handlers.SessionHandler
	Nav        *handlers.NavHandler
	Restaurant *handlers.RestaurantHandler
	Orders     *handlers.OrdersHandler
	Guard      *guard.Guard
}

// RegisterRoutes wires HTTP routes. Guarded groups reuse the dashboard
// route prefixes so API access mirrors page access.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Get("/session", cfg.Session.Current)
	authGroup.Post("/session/restore", cfg.Session.Restore)
	authGroup.Post("/logout", cfg.Session.Logout)

	navGroup := app.Group("/nav")
	navGroup.Get("/sidebar", cfg.Nav.Sidebar)
	navGroup.Get("/home", cfg.Nav.Home)
	navGroup.Get("/allowed", cfg.Nav.Allowed)

	restaurantGroup := app.Group("/restaurant", cfg.Guard.RequireRoute("/settings"))
	restaurantGroup.Get("", cfg.Restaurant.Current)
	restaurantGroup.Put("", cfg.Restaurant.Switch)

	ordersGroup := app.Group("/orders", cfg.Guard.RequireRoute("/orders"))
	ordersGroup.Get("/:id/full", cfg.Orders.FullContext)
}

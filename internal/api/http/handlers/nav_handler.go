package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/yummy-admin/internal/auth"
	"github.com/spec-kit/yummy-admin/internal/session"
)

// NavHandler serves navigation metadata for the caller's role set.
type NavHandler struct {
	sessions *session.Store
}

// NewNavHandler constructs handler.
func NewNavHandler(sessions *session.Store) *NavHandler {
	return &NavHandler{sessions: sessions}
}

// Sidebar handles GET /nav/sidebar.
func (h *NavHandler) Sidebar(c *fiber.Ctx) error {
	roles := h.sessions.Snapshot().Roles()
	items := auth.SidebarItemsForRoles(roles)
	payload := make([]fiber.Map, 0, len(items))
	for _, item := range items {
		payload = append(payload, fiber.Map{"label": item.Label, "path": item.Path})
	}
	return c.JSON(fiber.Map{"data": payload})
}

// Home handles GET /nav/home.
func (h *NavHandler) Home(c *fiber.Ctx) error {
	roles := h.sessions.Snapshot().Roles()
	return c.JSON(fiber.Map{
		"data": fiber.Map{"home_route": auth.HomeRoute(roles)},
	})
}

// Allowed handles GET /nav/allowed?path=. Used by the client as a prefetch
// probe before navigating.
func (h *NavHandler) Allowed(c *fiber.Ctx) error {
	path := c.Query("path")
	if path == "" {
		return fiber.NewError(http.StatusBadRequest, "path query parameter required")
	}
	roles := h.sessions.Snapshot().Roles()
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"path":    path,
			"allowed": auth.IsRouteAllowedAny(path, roles),
		},
	})
}

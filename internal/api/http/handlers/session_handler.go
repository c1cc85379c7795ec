package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/yummy-admin/internal/api/dto"
	"github.com/spec-kit/yummy-admin/internal/auth"
	"github.com/spec-kit/yummy-admin/internal/session"
)

// SessionHandler exposes session lifecycle endpoints.
type SessionHandler struct {
	sessions *session.Store
}

// NewSessionHandler constructs handler.
func NewSessionHandler(sessions *session.Store) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// Current handles GET /auth/session.
func (h *SessionHandler) Current(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"data": dto.NewSessionResponse(h.sessions.Snapshot()),
	})
}

// Restore handles POST /auth/session/restore. Concurrent calls collapse
// into the in-flight restore; the response reflects whatever state the
// store holds once this call returns.
func (h *SessionHandler) Restore(c *fiber.Ctx) error {
	if err := h.sessions.Restore(c.UserContext()); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": dto.NewSessionResponse(h.sessions.Snapshot()),
	})
}

// Logout handles POST /auth/logout. The store only mutates state; the
// landing redirect is returned for the client to navigate.
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	h.sessions.Clear(c.UserContext())
	return c.JSON(fiber.Map{
		"data": fiber.Map{"redirect_to": auth.RouteRoot},
	})
}

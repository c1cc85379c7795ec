package dto

import (
	"github.com/spec-kit/yummy-admin/internal/auth"
	"github.com/spec-kit/yummy-admin/internal/domain"
	"github.com/spec-kit/yummy-admin/internal/session"
)

// SessionResponse is the session snapshot returned to the dashboard.
type SessionResponse struct {
	Authenticated bool          `json:"authenticated"`
	Restoring     bool          `json:"restoring"`
	Redirecting   bool          `json:"redirecting"`
	User          *UserView     `json:"user,omitempty"`
	Roles         []domain.Role `json:"roles,omitempty"`
	HomeRoute     string        `json:"home_route"`
}

// UserView is the user snapshot without token material.
type UserView struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	PrimaryRole  string `json:"primary_role,omitempty"`
	RestaurantID int64  `json:"restaurant_id,omitempty"`
}

// NewSessionResponse projects a store snapshot into the wire shape.
func NewSessionResponse(snap session.Snapshot) SessionResponse {
	roles := snap.Roles()
	resp := SessionResponse{
		Authenticated: snap.User != nil,
		Restoring:     snap.Restoring,
		Redirecting:   snap.Redirecting,
		Roles:         roles,
		HomeRoute:     auth.HomeRoute(roles),
	}
	if snap.User != nil {
		resp.User = &UserView{
			ID:           snap.User.ID,
			Email:        snap.User.Email,
			Name:         snap.User.Name,
			PrimaryRole:  snap.User.PrimaryRole,
			RestaurantID: snap.User.RestaurantID,
		}
	}
	return resp
}

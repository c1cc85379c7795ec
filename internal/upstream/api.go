package upstream

import (
	"context"

	"github.com/spec-kit/yummy-admin/internal/domain"
)

// RefreshResult is the Auth API's answer to a refresh-token exchange.
type RefreshResult struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	User         domain.User `json:"user"`
}

// AuthAPI is the remote authentication collaborator.
type AuthAPI interface {
	RefreshSession(ctx context.Context, refreshToken string) (*RefreshResult, error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
}

// OrderAPI is the remote order engine collaborator.
type OrderAPI interface {
	GetOrderFull(ctx context.Context, orderID int64) (*domain.OrderFullContext, error)
	GetOrder(ctx context.Context, orderID int64) (*domain.Order, error)
	GetOrderEvents(ctx context.Context, orderID int64) ([]domain.OrderEvent, error)
}

// KOTAPI is the remote kitchen-ticket collaborator.
type KOTAPI interface {
	GetKotUpdatesByOrder(ctx context.Context, orderID int64) ([]domain.KOTUpdate, error)
}

// RestaurantAPI serves restaurant profile records.
type RestaurantAPI interface {
	GetRestaurant(ctx context.Context, id int64) (*domain.RestaurantProfile, error)
}

package dto

import "github.com/spec-kit/yummy-admin/internal/domain"

// OrderContextResponse is the aggregated order view plus its derived
// projections.
type OrderContextResponse struct {
	domain.OrderFullContext
	IsFullyPaid   bool `json:"is_fully_paid"`
	AllKotsServed bool `json:"all_kots_served"`
}

// NewOrderContextResponse attaches the projections to a context.
func NewOrderContextResponse(full *domain.OrderFullContext) OrderContextResponse {
	return OrderContextResponse{
		OrderFullContext: *full,
		IsFullyPaid:      full.IsFullyPaid(),
		AllKotsServed:    full.AllKotsServed(),
	}
}

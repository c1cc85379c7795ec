package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/yummy-admin/internal/api/dto"
	"github.com/spec-kit/yummy-admin/internal/orders"
)

// OrdersHandler serves aggregated order views.
type OrdersHandler struct {
	aggregator *orders.Aggregator
}

// NewOrdersHandler constructs handler.
func NewOrdersHandler(aggregator *orders.Aggregator) *OrdersHandler {
	return &OrdersHandler{aggregator: aggregator}
}

// FullContext handles GET /orders/:id/full.
func (h *OrdersHandler) FullContext(c *fiber.Ctx) error {
	orderID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || orderID <= 0 {
		return fiber.NewError(http.StatusBadRequest, "order id must be a positive integer")
	}

	full, err := h.aggregator.FetchContext(c.UserContext(), orderID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOrderContextResponse(full)})
}

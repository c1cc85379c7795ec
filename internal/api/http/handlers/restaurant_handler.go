package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/yummy-admin/internal/restaurant"
	apperrors "github.com/spec-kit/yummy-admin/pkg/util"
)

// RestaurantHandler exposes the active restaurant profile.
type RestaurantHandler struct {
	restaurants *restaurant.Store
}

// NewRestaurantHandler constructs handler.
func NewRestaurantHandler(restaurants *restaurant.Store) *RestaurantHandler {
	return &RestaurantHandler{restaurants: restaurants}
}

// Current handles GET /restaurant.
func (h *RestaurantHandler) Current(c *fiber.Ctx) error {
	profile := h.restaurants.Current()
	if profile == nil {
		return apperrors.NewNotFound("restaurant profile", nil)
	}
	return c.JSON(fiber.Map{"data": profile})
}

// Switch handles PUT /restaurant. The body names the restaurant id to make
// active; the profile is fetched from the backend and replaced wholesale.
func (h *RestaurantHandler) Switch(c *fiber.Ctx) error {
	var req struct {
		RestaurantID int64 `json:"restaurant_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.RestaurantID <= 0 {
		return fiber.NewError(http.StatusBadRequest, "restaurant_id must be a positive integer")
	}

	profile, err := h.restaurants.Switch(c.UserContext(), req.RestaurantID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": profile})
}

package guard

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/yummy-admin/pkg/util"
)

// RequireRoute returns middleware that gates an API group behind the
// permission rule of a dashboard route. Denials carry the redirect target
// and, for forbidden callers, the grace delay so the client can show the
// denial message before navigating.
func (g *Guard) RequireRoute(route string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		decision := g.Check(c.UserContext(), route)
		switch decision.State {
		case StateAllowed:
			return c.Next()
		case StateLoading:
			return apperrors.NewUnauthorized("session restore incomplete")
		default:
			switch decision.Reason {
			case ReasonAnonymous:
				return apperrors.NewDomainError("UNAUTHORIZED", "authentication required",
					fiber.StatusUnauthorized, map[string]any{"redirect_to": decision.Redirect})
			case ReasonInvalidSession:
				return apperrors.NewDomainError("INVALID_SESSION", "session roles are invalid",
					fiber.StatusUnauthorized, map[string]any{"redirect_to": decision.Redirect})
			default:
				return apperrors.NewForbidden("you do not have access to this page", map[string]any{
					"redirect_to":    decision.Redirect,
					"retry_after_ms": decision.RetryAfter.Milliseconds(),
				})
			}
		}
	}
}

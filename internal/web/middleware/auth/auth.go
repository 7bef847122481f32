package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/cleardesk/cleardesk/internal/auth"
)

// New creates a Fiber middleware that authenticates the request's bearer
// token and stores the loaded user and claims in fiber locals. Requests on
// public paths pass through anonymously; everything else requires a valid
// token.
func New(service *auth.Service, publicPaths ...string) fiber.Handler {
	public := make(map[string]struct{}, len(publicPaths))
	for _, p := range publicPaths {
		public[p] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		if _, ok := public[c.Path()]; ok {
			return c.Next()
		}

		currentUser, claims, err := service.Authenticate(c)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrMissingToken),
				errors.Is(err, auth.ErrInvalidToken),
				errors.Is(err, auth.ErrUserNotFound):
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
			case errors.Is(err, auth.ErrUserSuspended):
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "account suspended"})
			default:
				log.Error().Err(err).Msg("failed to authenticate request")

				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
			}
		}

		c.Locals(auth.LocalsUser, currentUser)
		c.Locals(auth.LocalsClaims, claims)

		return c.Next()
	}
}

package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/cleardesk/cleardesk/internal/acl"
)

// RequirementBuilder derives the permission requirement and resolution
// target of one request. Builders run after authentication, so route params
// are already present; a builder that cannot resolve its target returns a
// fiber error carrying the client status.
type RequirementBuilder func(c *fiber.Ctx) (acl.Requirement, acl.Target, error)

// Require creates Fiber middleware that authorizes the authenticated user
// against the requirement the builder derives for the request. Requests
// without a valid identity get 401, requests whose resolved permissions do
// not satisfy the requirement get 403.
func Require(build RequirementBuilder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		currentUser := CurrentUser(c)
		if currentUser == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
		}

		required, target, err := build(c)
		if err != nil {
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
			}

			log.Error().Err(err).Str("path", c.Path()).Msg("failed to build authorization target")

			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
		}

		if err := acl.Authorize(required, currentUser.RoleViews(), target); err != nil {
			log.Warn().
				Str("user_id", currentUser.ID).
				Str("path", c.Path()).
				Msg("user lacks required permission")

			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden"})
		}

		return c.Next()
	}
}

// RequireSecondFactor creates Fiber middleware that rejects tokens without
// second-factor attestation. A token that carries no second-factor claim is
// treated as not attested.
func RequireSecondFactor() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := CurrentClaims(c)
		if claims == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
		}

		if !claims.SecondFactor {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": ErrSecondFactorRequired.Error()})
		}

		return c.Next()
	}
}

package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/cleardesk/cleardesk/internal/db/controller/user"
	"github.com/cleardesk/cleardesk/internal/db/models"
)

const bearerPrefix = "Bearer "

// Locals keys under which the request middleware stores the authenticated
// identity.
const (
	LocalsUser   = "auth_user"
	LocalsClaims = "auth_claims"
)

// Service authenticates bearer tokens against the user store.
type Service struct {
	db     *gorm.DB
	secret string
}

// NewService creates a new auth service signing-verified by the given secret.
func NewService(db *gorm.DB, secret string) *Service {
	return &Service{db: db, secret: secret}
}

// Authenticate extracts and verifies the request's bearer token and loads
// the subject user with all role assignments.
func (s *Service) Authenticate(c *fiber.Ctx) (*models.User, *Claims, error) {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, bearerPrefix) {
		return nil, nil, ErrMissingToken
	}

	claims, err := ParseToken(strings.TrimPrefix(header, bearerPrefix), s.secret)
	if err != nil {
		return nil, nil, err
	}

	subject, err := user.GetByID(s.db, claims.Subject)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, nil, ErrUserNotFound
		}

		return nil, nil, err
	}

	if subject.Suspended {
		return nil, nil, ErrUserSuspended
	}

	return subject, claims, nil
}

// CurrentUser returns the authenticated user stored by the request
// middleware, or nil when the request is anonymous.
func CurrentUser(c *fiber.Ctx) *models.User {
	if u, ok := c.Locals(LocalsUser).(*models.User); ok {
		return u
	}

	return nil
}

// CurrentClaims returns the verified token claims stored by the request
// middleware, or nil when the request is anonymous.
func CurrentClaims(c *fiber.Ctx) *Claims {
	if claims, ok := c.Locals(LocalsClaims).(*Claims); ok {
		return claims
	}

	return nil
}

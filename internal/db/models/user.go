package models

import (
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog/log"

	"github.com/cleardesk/cleardesk/internal/acl"
)

// User represents an account on the platform. A user is affiliated with at
// most one organization, set at registration and read only afterwards;
// clearer operators have no organization. Permissions are never stored on
// the user: they are derived from role assignments at resolution time.
type User struct {
	// ID is the 24-hex identifier of the user.
	ID string `gorm:"primaryKey;size:24"`
	// Email is the unique login identifier.
	Email string `gorm:"unique;size:255;not null"`
	// Password is the Argon2id hashed password.
	Password string `gorm:"size:255"`
	// FirstName is the user's first or given name.
	FirstName string `gorm:"size:100"`
	// LastName is the user's last or family name.
	LastName string `gorm:"size:100"`
	// OrganizationID is the user's organization affiliation, nil for clearer operators.
	OrganizationID *string `gorm:"size:24;index"`
	// Roles are the user's role assignments (loaded via foreign key).
	Roles []RoleAssignment `gorm:"foreignKey:UserID"`
	// Suspended blocks the account without deleting it.
	Suspended bool `gorm:"not null;default:false"`
	// CreatedAt is the timestamp when the user was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the user was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the User model.
func (User) TableName() string {
	return "users"
}

// RoleViews materializes the user's loaded role assignments for the
// permission resolver. Role records must be preloaded; an assignment whose
// role was not loaded is skipped rather than resolved as an empty role.
func (u *User) RoleViews() []acl.RoleView {
	views := make([]acl.RoleView, 0, len(u.Roles))

	for i := range u.Roles {
		role := &u.Roles[i].Role
		if role.ID == "" {
			continue
		}

		views = append(views, role.View())
	}

	return views
}

// HashPassword hashes a plaintext password using the Argon2id algorithm with
// the default parameters.
func HashPassword(password string) string {
	hashedPassword, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		log.Fatal().Msgf("failed to hash password: %v", err)
	}

	return hashedPassword
}

// VerifyPassword verifies a plaintext password against the user's stored
// hash using constant-time comparison.
func (u *User) VerifyPassword(password string) bool {
	match, err := argon2id.ComparePasswordAndHash(password, u.Password)
	if err != nil {
		log.Error().Msgf("failed to verify password: %v", err)
		return false
	}

	return match
}

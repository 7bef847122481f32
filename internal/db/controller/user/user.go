// Package user provides user account creation and manager onboarding.
package user

import (
	"errors"

	"gorm.io/gorm"

	"github.com/cleardesk/cleardesk/internal/db/controller/role"
	"github.com/cleardesk/cleardesk/internal/db/models"
	"github.com/cleardesk/cleardesk/internal/db/pagination"
	"github.com/cleardesk/cleardesk/internal/objectid"
)

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailEmpty is returned when creating a user with an empty email.
	ErrEmailEmpty = errors.New("user email cannot be empty")
	// ErrEmailTaken is returned when the email is already registered.
	ErrEmailTaken = errors.New("user email is already registered")
)

// sortableFields maps exposed sort names to user columns.
var sortableFields = map[string]string{ //nolint:gochecknoglobals
	"email":     "email",
	"firstName": "first_name",
	"lastName":  "last_name",
	"createdAt": "created_at",
}

// CreateParams describes a user to be created. OrganizationID is nil for
// clearer operators and is fixed at creation time.
type CreateParams struct {
	Email          string
	Password       string
	FirstName      string
	LastName       string
	OrganizationID *string
}

// Create persists a new user with an argon2id hashed password.
func Create(db *gorm.DB, params CreateParams) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if params.Email == "" {
		return nil, ErrEmailEmpty
	}

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", params.Email).Count(&count).Error; err != nil {
		return nil, err
	}

	if count > 0 {
		return nil, ErrEmailTaken
	}

	newUser := &models.User{
		ID:             objectid.New(),
		Email:          params.Email,
		Password:       models.HashPassword(params.Password),
		FirstName:      params.FirstName,
		LastName:       params.LastName,
		OrganizationID: params.OrganizationID,
	}

	if err := db.Create(newUser).Error; err != nil {
		return nil, err
	}

	return newUser, nil
}

// CreateManager onboards an organization manager: the user is created
// affiliated with the organization and is granted the organization's default
// role, in one transaction.
func CreateManager(db *gorm.DB, organizationID string, params CreateParams, createdBy *models.User) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	params.OrganizationID = &organizationID

	var created *models.User

	err := db.Transaction(func(tx *gorm.DB) error {
		defaultRole, err := role.GetDefault(tx, organizationID)
		if err != nil {
			return err
		}

		created, err = Create(tx, params)
		if err != nil {
			return err
		}

		_, err = role.Grant(tx, created.ID, defaultRole.ID, createdBy)

		return err
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// GetByID retrieves a user with role assignments and their roles preloaded.
func GetByID(db *gorm.DB, id string) (*models.User, error) {
	return getOne(db, "id = ?", id)
}

// GetByEmail retrieves a user by email with role assignments and their
// roles preloaded.
func GetByEmail(db *gorm.DB, email string) (*models.User, error) {
	return getOne(db, "email = ?", email)
}

func getOne(db *gorm.DB, query string, arg any) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var found models.User

	result := db.Preload("Roles.Role").Where(query, arg).First(&found)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, result.Error
	}

	return &found, nil
}

// UpdateParams describes a user update. Nil fields are left untouched.
type UpdateParams struct {
	FirstName *string
	LastName  *string
	Suspended *bool
}

// Update applies a profile update or a suspension change to the user.
func Update(db *gorm.DB, target *models.User, params UpdateParams) error {
	if db == nil {
		return ErrDBNil
	}

	if params.FirstName != nil {
		target.FirstName = *params.FirstName
	}

	if params.LastName != nil {
		target.LastName = *params.LastName
	}

	if params.Suspended != nil {
		target.Suspended = *params.Suspended
	}

	return db.Save(target).Error
}

// List returns one page of users with free-text search over email and
// names. A non-empty organizationID restricts the page to that tenant.
func List(db *gorm.DB, organizationID string, req pagination.Request) (pagination.Page[models.User], error) {
	if db == nil {
		return pagination.Page[models.User]{}, ErrDBNil
	}

	query := db.Model(&models.User{})

	if organizationID != "" {
		query = query.Where("organization_id = ?", organizationID)
	}

	if req.Search != "" {
		pattern := "%" + req.Search + "%"
		query = query.Where("email LIKE ? OR first_name LIKE ? OR last_name LIKE ?", pattern, pattern, pattern)
	}

	return pagination.Find[models.User](query, req, sortableFields)
}

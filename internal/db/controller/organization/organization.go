// Package organization provides CRUD operations for organizations, including
// the default-role bootstrap performed at creation time.
package organization

import (
	"errors"

	"gorm.io/gorm"

	"github.com/cleardesk/cleardesk/internal/db/controller/role"
	"github.com/cleardesk/cleardesk/internal/db/models"
	"github.com/cleardesk/cleardesk/internal/db/pagination"
	"github.com/cleardesk/cleardesk/internal/objectid"
)

const idQueryPattern = "id = ?"

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
	// ErrOrganizationNotFound is returned when an organization is not found.
	ErrOrganizationNotFound = errors.New("organization not found")
	// ErrNameEmpty is returned when creating or renaming an organization with an empty name.
	ErrNameEmpty = errors.New("organization name cannot be empty")
	// ErrAccountNotFound is returned when a clearing account link is not found.
	ErrAccountNotFound = errors.New("clearing account not found")
)

// sortableFields maps exposed sort names to organization columns.
var sortableFields = map[string]string{ //nolint:gochecknoglobals
	"name":      "name",
	"country":   "country",
	"createdAt": "created_at",
}

// CreateParams describes an organization to be created.
type CreateParams struct {
	Name            string
	Street          string
	City            string
	Country         string
	CommissionRatio float64
}

// Create persists a new organization and bootstraps its default role,
// assigned to the creating user, in a single transaction. If the role
// bootstrap fails the organization is not created either: a tenant must
// never exist without an owning role.
func Create(db *gorm.DB, params CreateParams, creator *models.User) (*models.Organization, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if params.Name == "" {
		return nil, ErrNameEmpty
	}

	newOrganization := &models.Organization{
		ID:              objectid.New(),
		Name:            params.Name,
		Street:          params.Street,
		City:            params.City,
		Country:         params.Country,
		CommissionRatio: params.CommissionRatio,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(newOrganization).Error; err != nil {
			return err
		}

		_, err := role.CreateDefault(tx, newOrganization, creator)

		return err
	})
	if err != nil {
		return nil, err
	}

	return newOrganization, nil
}

// GetByID retrieves an organization with its clearing accounts.
func GetByID(db *gorm.DB, id string) (*models.Organization, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var found models.Organization

	result := db.Preload("ClearingAccounts").Where(idQueryPattern, id).First(&found)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}

		return nil, result.Error
	}

	return &found, nil
}

// UpdateParams carries the mutable organization fields; nil means keep.
type UpdateParams struct {
	Name            *string
	Street          *string
	City            *string
	Country         *string
	CommissionRatio *float64
}

// Update applies the given changes to an organization.
func Update(db *gorm.DB, target *models.Organization, params UpdateParams) error {
	if db == nil {
		return ErrDBNil
	}

	if params.Name != nil {
		if *params.Name == "" {
			return ErrNameEmpty
		}

		target.Name = *params.Name
	}

	if params.Street != nil {
		target.Street = *params.Street
	}

	if params.City != nil {
		target.City = *params.City
	}

	if params.Country != nil {
		target.Country = *params.Country
	}

	if params.CommissionRatio != nil {
		target.CommissionRatio = *params.CommissionRatio
	}

	return db.Save(target).Error
}

// List returns one page of organizations with free-text search over the name.
func List(db *gorm.DB, req pagination.Request) (pagination.Page[models.Organization], error) {
	if db == nil {
		return pagination.Page[models.Organization]{}, ErrDBNil
	}

	query := db.Model(&models.Organization{})

	if req.Search != "" {
		query = query.Where("name LIKE ?", "%"+req.Search+"%")
	}

	return pagination.Find[models.Organization](query, req, sortableFields)
}

// AddAccount links a clearing account to the organization.
func AddAccount(db *gorm.DB, organizationID, currency, accountID string) (*models.ClearingAccount, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if _, err := GetByID(db, organizationID); err != nil {
		return nil, err
	}

	account := &models.ClearingAccount{
		OrganizationID: organizationID,
		Currency:       currency,
		AccountID:      accountID,
	}

	if err := db.Create(account).Error; err != nil {
		return nil, err
	}

	return account, nil
}

// RemoveAccount unlinks a clearing account from the organization.
func RemoveAccount(db *gorm.DB, organizationID, accountID string) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Where("organization_id = ? AND account_id = ?", organizationID, accountID).
		Delete(&models.ClearingAccount{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}

	return nil
}

// Package desk provides CRUD operations for desks. Every desk belongs to
// exactly one organization and all lookups are tenant checked.
package desk

import (
	"errors"

	"gorm.io/gorm"

	"github.com/cleardesk/cleardesk/internal/db/models"
	"github.com/cleardesk/cleardesk/internal/db/pagination"
	"github.com/cleardesk/cleardesk/internal/objectid"
)

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
	// ErrDeskNotFound is returned when a desk is not found.
	ErrDeskNotFound = errors.New("desk not found")
	// ErrOrganizationNotFound is returned when the owning organization is not found.
	ErrOrganizationNotFound = errors.New("organization not found")
	// ErrNameEmpty is returned when creating or renaming a desk with an empty name.
	ErrNameEmpty = errors.New("desk name cannot be empty")
)

// sortableFields maps exposed sort names to desk columns.
var sortableFields = map[string]string{ //nolint:gochecknoglobals
	"name":      "name",
	"createdAt": "created_at",
}

// Create persists a new desk under the given organization.
func Create(db *gorm.DB, organizationID, name string) (*models.Desk, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if name == "" {
		return nil, ErrNameEmpty
	}

	var owner models.Organization
	if err := db.Where("id = ?", organizationID).First(&owner).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}

		return nil, err
	}

	newDesk := &models.Desk{
		ID:             objectid.New(),
		Name:           name,
		OrganizationID: organizationID,
	}

	if err := db.Create(newDesk).Error; err != nil {
		return nil, err
	}

	return newDesk, nil
}

// GetByID retrieves a desk with its organization preloaded.
func GetByID(db *gorm.DB, id string) (*models.Desk, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var found models.Desk

	result := db.Preload("Organization").Where("id = ?", id).First(&found)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrDeskNotFound
		}

		return nil, result.Error
	}

	return &found, nil
}

// GetForOrganization retrieves a desk scoped to one organization. A desk
// that exists under a different organization is reported as not found.
func GetForOrganization(db *gorm.DB, organizationID, id string) (*models.Desk, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var found models.Desk

	result := db.Where("id = ? AND organization_id = ?", id, organizationID).First(&found)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrDeskNotFound
		}

		return nil, result.Error
	}

	return &found, nil
}

// Update renames a desk.
func Update(db *gorm.DB, target *models.Desk, name string) error {
	if db == nil {
		return ErrDBNil
	}

	if name == "" {
		return ErrNameEmpty
	}

	target.Name = name

	return db.Save(target).Error
}

// List returns one page of an organization's desks with free-text search
// over the name.
func List(db *gorm.DB, organizationID string, req pagination.Request) (pagination.Page[models.Desk], error) {
	if db == nil {
		return pagination.Page[models.Desk]{}, ErrDBNil
	}

	query := db.Model(&models.Desk{}).Where("organization_id = ?", organizationID)

	if req.Search != "" {
		query = query.Where("name LIKE ?", "%"+req.Search+"%")
	}

	return pagination.Find[models.Desk](query, req, sortableFields)
}

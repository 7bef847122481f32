// Package role implements the role administration service: creation per
// scope with catalog and owner validation, default-role bootstrapping,
// updates, tenant-checked reads, paged listing and assignment grant/revoke.
package role

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/cleardesk/cleardesk/internal/acl"
	"github.com/cleardesk/cleardesk/internal/db/models"
	"github.com/cleardesk/cleardesk/internal/db/pagination"
	"github.com/cleardesk/cleardesk/internal/objectid"
)

const (
	// DefaultRoleName is the name of the automatically created organization role.
	DefaultRoleName = "Default"

	idQueryPattern = "id = ?"
)

// sortableFields maps exposed sort names to role columns for list calls.
var sortableFields = map[string]string{ //nolint:gochecknoglobals
	"name":      "name",
	"scope":     "scope",
	"disabled":  "disabled",
	"createdAt": "created_at",
}

// CreateParams describes a role to be created.
type CreateParams struct {
	Scope          acl.Scope
	Name           string
	OrganizationID string
	DeskID         string
	Permissions    []string
}

// Create validates and persists a new role. Every permission string is
// checked against the catalog of the target scope; invalid entries are all
// reported, never silently dropped. The owner resource must exist.
func Create(db *gorm.DB, params CreateParams, owner *models.User) (*models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if params.Name == "" {
		return nil, ErrRoleNameEmpty
	}

	if !params.Scope.Valid() {
		return nil, ErrScopeUnknown
	}

	if err := checkOwnerReference(db, params); err != nil {
		return nil, err
	}

	if err := checkPermissions(params.Scope, params.Permissions); err != nil {
		return nil, err
	}

	newRole := &models.Role{
		ID:          objectid.New(),
		Name:        params.Name,
		Scope:       params.Scope,
		Permissions: params.Permissions,
		OwnerID:     owner.ID,
	}

	if params.Scope.NeedsOrganization() {
		newRole.OrganizationID = &params.OrganizationID
	}

	if params.Scope.NeedsDesk() {
		newRole.DeskID = &params.DeskID
	}

	if err := db.Create(newRole).Error; err != nil {
		return nil, err
	}

	return newRole, nil
}

// CreateDefault creates the automatically granted full-permission role of a
// freshly created organization and assigns it to the creating user, as one
// transaction. A second default role for the same organization is rejected
// so a tenant can never end up with two owner roles.
func CreateDefault(db *gorm.DB, organization *models.Organization, creator *models.User) (*models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	newRole := &models.Role{
		ID:             objectid.New(),
		Name:           DefaultRoleName,
		Scope:          acl.ScopeOrganization,
		OrganizationID: &organization.ID,
		Permissions:    acl.Catalog(acl.ScopeOrganization),
		OwnerID:        creator.ID,
		Default:        true,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Role{}).
			Where("organization_id = ? AND `default` = ?", organization.ID, true).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return ErrDefaultRoleExists
		}

		if err := tx.Create(newRole).Error; err != nil {
			return err
		}

		return tx.Create(&models.RoleAssignment{
			UserID:       creator.ID,
			RoleID:       newRole.ID,
			AssignedByID: creator.ID,
			AssignedAt:   time.Now(),
		}).Error
	})
	if err != nil {
		return nil, err
	}

	return newRole, nil
}

// GetDefault retrieves the default role of an organization.
func GetDefault(db *gorm.DB, organizationID string) (*models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var found models.Role

	result := db.Where("organization_id = ? AND `default` = ?", organizationID, true).First(&found)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}

		return nil, result.Error
	}

	return &found, nil
}

// UpdateParams carries the mutable role fields; nil means keep.
type UpdateParams struct {
	Name        *string
	Permissions *[]string
	Disabled    *bool
}

// Update applies the given changes to a role. New permissions are validated
// against the catalog of the role's scope. Disabling keeps all assignment
// records and only zeroes the role's contribution to future resolutions.
func Update(db *gorm.DB, target *models.Role, params UpdateParams) error {
	if db == nil {
		return ErrDBNil
	}

	if params.Name != nil {
		if *params.Name == "" {
			return ErrRoleNameEmpty
		}

		target.Name = *params.Name
	}

	if params.Permissions != nil {
		if err := checkPermissions(target.Scope, *params.Permissions); err != nil {
			return err
		}

		target.Permissions = *params.Permissions
	}

	if params.Disabled != nil {
		target.Disabled = *params.Disabled
	}

	return db.Save(target).Error
}

// GetClearerByID retrieves a clearer role.
func GetClearerByID(db *gorm.DB, id string) (*models.Role, error) {
	return getScoped(db, id, "scope = ?", acl.ScopeClearer)
}

// GetOrganizationByID retrieves an organization role and verifies it is
// owned by the given organization. A role owned by another organization is
// reported as not found, never leaked.
func GetOrganizationByID(db *gorm.DB, id, organizationID string) (*models.Role, error) {
	return getScoped(db, id, "scope = ? AND organization_id = ?", acl.ScopeOrganization, organizationID)
}

// GetDeskByID retrieves a desk role and verifies it is owned by the given desk.
func GetDeskByID(db *gorm.DB, id, deskID string) (*models.Role, error) {
	return getScoped(db, id, "scope = ? AND desk_id = ?", acl.ScopeDesk, deskID)
}

// GetMultiByID retrieves a multi-desk role and verifies it is owned by the
// given organization.
func GetMultiByID(db *gorm.DB, id, organizationID string) (*models.Role, error) {
	return getScoped(db, id, "scope = ? AND organization_id = ?", acl.ScopeMultiDesk, organizationID)
}

func getScoped(db *gorm.DB, id, query string, args ...any) (*models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var found models.Role

	result := db.Where(idQueryPattern, id).Where(query, args...).First(&found)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}

		return nil, result.Error
	}

	return &found, nil
}

// ListFilter selects the roles of one scope and owner for List.
type ListFilter struct {
	Scope          acl.Scope
	OrganizationID string
	DeskID         string
}

// List returns one page of roles matching the filter, with free-text search
// over the role name and the total count alongside the page.
func List(db *gorm.DB, filter ListFilter, req pagination.Request) (pagination.Page[models.Role], error) {
	if db == nil {
		return pagination.Page[models.Role]{}, ErrDBNil
	}

	query := db.Model(&models.Role{}).Where("scope = ?", filter.Scope)

	if filter.OrganizationID != "" {
		query = query.Where("organization_id = ?", filter.OrganizationID)
	}

	if filter.DeskID != "" {
		query = query.Where("desk_id = ?", filter.DeskID)
	}

	if req.Search != "" {
		query = query.Where("name LIKE ?", "%"+req.Search+"%")
	}

	return pagination.Find[models.Role](query, req, sortableFields)
}

// Grant assigns a role to a user with assignment metadata. Granting a role
// the user already holds is rejected; assignments are unique per user/role.
func Grant(db *gorm.DB, userID, roleID string, grantedBy *models.User) (*models.RoleAssignment, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if err := db.Where(idQueryPattern, userID).First(&models.User{}).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	if err := db.Where(idQueryPattern, roleID).First(&models.Role{}).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}

		return nil, err
	}

	assignment := &models.RoleAssignment{
		UserID:       userID,
		RoleID:       roleID,
		AssignedByID: grantedBy.ID,
		AssignedAt:   time.Now(),
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.RoleAssignment{}).
			Where("user_id = ? AND role_id = ?", userID, roleID).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return ErrAlreadyAssigned
		}

		return tx.Create(assignment).Error
	})
	if err != nil {
		return nil, err
	}

	return assignment, nil
}

// Revoke removes a user's role assignment. The role record itself is never
// touched; history of other holders stays intact.
func Revoke(db *gorm.DB, userID, roleID string) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Where("user_id = ? AND role_id = ?", userID, roleID).
		Delete(&models.RoleAssignment{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrAssignmentNotFound
	}

	return nil
}

// ViewsForUser loads the user's role assignments with their role records and
// materializes them for the permission resolver. The role state and its
// disabled flag are read together, so a just-disabled role is never resolved
// as active.
func ViewsForUser(db *gorm.DB, userID string) ([]acl.RoleView, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var assigned []models.Role

	err := db.Model(&models.Role{}).
		Joins("JOIN role_assignments ON role_assignments.role_id = roles.id").
		Where("role_assignments.user_id = ?", userID).
		Find(&assigned).Error
	if err != nil {
		return nil, err
	}

	views := make([]acl.RoleView, 0, len(assigned))
	for i := range assigned {
		views = append(views, assigned[i].View())
	}

	return views, nil
}

// checkOwnerReference enforces the scope/owner invariant and verifies the
// owner resource exists before anything is persisted.
func checkOwnerReference(db *gorm.DB, params CreateParams) error {
	switch params.Scope {
	case acl.ScopeClearer:
		if params.OrganizationID != "" || params.DeskID != "" {
			return ErrScopeOwnerMismatch
		}
	case acl.ScopeOrganization, acl.ScopeMultiDesk:
		if params.OrganizationID == "" || params.DeskID != "" {
			return ErrScopeOwnerMismatch
		}

		if err := db.Where(idQueryPattern, params.OrganizationID).First(&models.Organization{}).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrganizationNotFound
			}

			return err
		}
	case acl.ScopeDesk:
		if params.DeskID == "" || params.OrganizationID != "" {
			return ErrScopeOwnerMismatch
		}

		if err := db.Where(idQueryPattern, params.DeskID).First(&models.Desk{}).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDeskNotFound
			}

			return err
		}
	}

	return nil
}

// checkPermissions validates perms against the catalog of scope, reporting
// every invalid entry at once.
func checkPermissions(scope acl.Scope, perms []string) error {
	if invalid := acl.InvalidPermissions(scope, perms); len(invalid) > 0 {
		return fmt.Errorf("%w %s: %s", ErrInvalidPermission, scope, strings.Join(invalid, ", "))
	}

	return nil
}

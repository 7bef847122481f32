package models

import (
	"time"

	"github.com/cleardesk/cleardesk/internal/acl"
)

// Role is a named, scoped bundle of permission strings. The scope determines
// which owner reference is populated: clearer roles have none, organization
// and multi-desk roles carry an organization, desk roles carry a desk.
//
// Roles are never physically deleted. Disabling is the only removal path so
// assignment history stays intact; a disabled role grants nothing.
type Role struct {
	// ID is the 24-hex identifier of the role.
	ID string `gorm:"primaryKey;size:24"`
	// Name is the display name of the role.
	Name string `gorm:"size:255;not null"`
	// Scope is the tier the role applies to (clearer, organization, desk, multidesk).
	Scope acl.Scope `gorm:"type:varchar(20);not null;index"`
	// OrganizationID is set for organization and multi-desk roles.
	OrganizationID *string `gorm:"size:24;index"`
	// DeskID is set for desk roles.
	DeskID *string `gorm:"size:24;index"`
	// Permissions are the catalog strings the role grants, stored as JSON.
	Permissions PermissionList `gorm:"type:text"`
	// OwnerID is the user who created the role.
	OwnerID string `gorm:"size:24;not null"`
	// Default marks the automatically created full-permission role of an
	// organization; at most one per organization.
	Default bool `gorm:"not null;default:false"`
	// Disabled zeroes the role's contribution to permission resolution while
	// keeping the record and its assignments.
	Disabled bool `gorm:"not null;default:false"`
	// CreatedAt is the timestamp when the role was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the role was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Role model.
func (Role) TableName() string {
	return "roles"
}

// View materializes the role for the permission resolver.
func (r *Role) View() acl.RoleView {
	view := acl.RoleView{
		Scope:       r.Scope,
		Disabled:    r.Disabled,
		Permissions: r.Permissions,
	}

	if r.OrganizationID != nil {
		view.OrganizationID = *r.OrganizationID
	}

	if r.DeskID != nil {
		view.DeskID = *r.DeskID
	}

	return view
}

package models

import "time"

// Desk is an operating sub-unit of an organization. Day-to-day operational
// roles are scoped to a desk; a desk belongs to exactly one organization.
type Desk struct {
	// ID is the 24-hex identifier of the desk.
	ID string `gorm:"primaryKey;size:24"`
	// Name is the display name of the desk.
	Name string `gorm:"size:255;not null"`
	// OrganizationID is the organization the desk belongs to. Immutable.
	OrganizationID string `gorm:"size:24;not null;index"`
	// Organization is the owning organization (loaded via foreign key).
	Organization Organization `gorm:"foreignKey:OrganizationID;constraint:OnDelete:RESTRICT"`
	// CreatedAt is the timestamp when the desk was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the desk was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Desk model.
func (Desk) TableName() string {
	return "desks"
}

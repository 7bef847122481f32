package models

import "time"

// Organization represents a tenant on the platform. Organizations own desks,
// roles and clearing accounts; a user belongs to at most one organization
// for its whole lifetime.
type Organization struct {
	// ID is the 24-hex identifier of the organization.
	ID string `gorm:"primaryKey;size:24"`
	// Name is the display name of the organization.
	Name string `gorm:"size:255;not null"`
	// Street is the registered street address.
	Street string `gorm:"size:255"`
	// City is the registered city.
	City string `gorm:"size:100"`
	// Country is the ISO country code of the registered address.
	Country string `gorm:"size:2"`
	// CommissionRatio is the clearing commission applied to the organization.
	CommissionRatio float64
	// ClearingAccounts are the clearing account references held by the organization.
	ClearingAccounts []ClearingAccount `gorm:"foreignKey:OrganizationID"`
	// CreatedAt is the timestamp when the organization was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the organization was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Organization model.
func (Organization) TableName() string {
	return "organizations"
}

// ClearingAccount links an organization to one of its clearing accounts in a
// given currency.
type ClearingAccount struct {
	// ID is the unique identifier for the link.
	ID uint `gorm:"primaryKey"`
	// OrganizationID is the owning organization.
	OrganizationID string `gorm:"size:24;not null;index"`
	// Currency is the ISO currency code the account clears in.
	Currency string `gorm:"size:3;not null"`
	// AccountID is the external identifier of the clearing account.
	AccountID string `gorm:"size:24;not null"`
	// CreatedAt is the timestamp when the link was created (managed by GORM).
	CreatedAt time.Time
}

// TableName specifies the database table name for the ClearingAccount model.
func (ClearingAccount) TableName() string {
	return "clearing_accounts"
}

package models

import "time"

// RoleAssignment links a user to a role together with grant metadata. The
// role is shared, not owned: its lifetime exceeds any single assignment.
// Assignments are created on user creation or explicit grant and removed
// only by explicit revoke.
type RoleAssignment struct {
	// ID is the unique identifier for the assignment.
	ID uint `gorm:"primaryKey"`
	// UserID is the user holding the role.
	UserID string `gorm:"size:24;not null;index:idx_assignment_user_role,unique"`
	// RoleID is the assigned role.
	RoleID string `gorm:"size:24;not null;index:idx_assignment_user_role,unique"`
	// Role is the assigned role record (loaded via foreign key).
	Role Role `gorm:"foreignKey:RoleID;constraint:OnDelete:RESTRICT"`
	// AssignedByID is the user who granted the role.
	AssignedByID string `gorm:"size:24;not null"`
	// AssignedAt is the timestamp of the grant.
	AssignedAt time.Time `gorm:"not null"`
}

// TableName specifies the database table name for the RoleAssignment model.
func (RoleAssignment) TableName() string {
	return "role_assignments"
}

package role

import "errors"

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")

	// ErrRoleNotFound is returned when a role does not exist, or exists but is
	// owned by a different tenant than the request path implies. The two cases
	// are indistinguishable to the caller.
	ErrRoleNotFound = errors.New("role not found")

	// ErrOrganizationNotFound is returned when the owning organization of a
	// role to be created does not exist.
	ErrOrganizationNotFound = errors.New("organization not found")

	// ErrDeskNotFound is returned when the owning desk of a role to be created
	// does not exist.
	ErrDeskNotFound = errors.New("desk not found")

	// ErrUserNotFound is returned when the user of a grant or revoke does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrScopeUnknown is returned when a role carries a scope outside the four
	// known tiers.
	ErrScopeUnknown = errors.New("unknown role scope")

	// ErrScopeOwnerMismatch is returned when the owner references do not match
	// the scope rule: clearer roles carry none, organization and multi-desk
	// roles carry an organization, desk roles carry a desk.
	ErrScopeOwnerMismatch = errors.New("role scope does not match its owner reference")

	// ErrInvalidPermission is returned when a permission string is not in the
	// catalog for the role's scope. The wrapped message lists every offender.
	ErrInvalidPermission = errors.New("permission not in catalog for scope")

	// ErrDefaultRoleExists is returned when a second default role is requested
	// for an organization that already has one.
	ErrDefaultRoleExists = errors.New("organization already has a default role")

	// ErrRoleNameEmpty is returned when creating or renaming a role with an empty name.
	ErrRoleNameEmpty = errors.New("role name cannot be empty")

	// ErrAlreadyAssigned is returned when granting a role the user already holds.
	ErrAlreadyAssigned = errors.New("role already assigned to user")

	// ErrAssignmentNotFound is returned when revoking a role the user does not hold.
	ErrAssignmentNotFound = errors.New("role assignment not found")
)

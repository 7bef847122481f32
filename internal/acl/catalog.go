package acl

import "strings"

// OwnerPlaceholder is the token embedded in multi-desk permission templates.
// It is replaced with the owning organization's identifier at resolution
// time, so a single multi-desk role covers every desk of its organization
// without per-desk duplication. The token is part of the catalog contract:
// renaming it is a breaking change for stored roles.
const OwnerPlaceholder = "#id#"

// Permission constants form the closed, versioned catalog of the system.
// Adding a constant is backward compatible; removing or renaming one breaks
// stored role documents and requires a migration.
//
// Clearer-scope permissions gate the platform operator surface.
const (
	// PermClearerRoleCreate allows creating clearer roles.
	PermClearerRoleCreate = "clearer.role.create"
	// PermClearerRoleRead allows reading clearer roles.
	PermClearerRoleRead = "clearer.role.read"
	// PermClearerRoleUpdate allows updating clearer roles.
	PermClearerRoleUpdate = "clearer.role.update"
	// PermClearerRoleAssign allows granting and revoking clearer roles.
	PermClearerRoleAssign = "clearer.role.assign"

	// PermClearerOrganizationCreate allows creating organizations.
	PermClearerOrganizationCreate = "clearer.organization.create"
	// PermClearerOrganizationRead allows reading any organization.
	PermClearerOrganizationRead = "clearer.organization.read"
	// PermClearerOrganizationUpdate allows updating any organization.
	PermClearerOrganizationUpdate = "clearer.organization.update"

	// PermClearerManagerCreate allows creating organization managers.
	PermClearerManagerCreate = "clearer.manager.create"
	// PermClearerManagerRead allows listing organization managers.
	PermClearerManagerRead = "clearer.manager.read"
	// PermClearerManagerUpdate allows updating organization managers.
	PermClearerManagerUpdate = "clearer.manager.update"

	// PermClearerAccountCreate allows creating clearing accounts.
	PermClearerAccountCreate = "clearer.account.create"
	// PermClearerAccountDelete allows removing clearing accounts.
	PermClearerAccountDelete = "clearer.account.delete"
)

// Organization-scope permissions gate a single organization's surface.
const (
	// PermOrganizationRead allows reading the owning organization.
	PermOrganizationRead = "organization.read"
	// PermOrganizationUpdate allows updating the owning organization.
	PermOrganizationUpdate = "organization.update"

	// PermOrganizationRoleCreate allows creating roles inside the organization,
	// including desk and multi-desk roles.
	PermOrganizationRoleCreate = "organization.role.create"
	// PermOrganizationRoleRead allows reading roles inside the organization.
	PermOrganizationRoleRead = "organization.role.read"
	// PermOrganizationRoleUpdate allows updating roles inside the organization.
	PermOrganizationRoleUpdate = "organization.role.update"
	// PermOrganizationRoleAssign allows granting and revoking roles inside the organization.
	PermOrganizationRoleAssign = "organization.role.assign"

	// PermOrganizationDeskCreate allows creating desks under the organization.
	PermOrganizationDeskCreate = "organization.desk.create"
	// PermOrganizationDeskRead allows reading desks of the organization.
	PermOrganizationDeskRead = "organization.desk.read"
	// PermOrganizationDeskUpdate allows updating desks of the organization.
	PermOrganizationDeskUpdate = "organization.desk.update"

	// PermOrganizationManagerCreate allows onboarding managers into the organization.
	PermOrganizationManagerCreate = "organization.manager.create"
	// PermOrganizationManagerRead allows listing the organization's managers.
	PermOrganizationManagerRead = "organization.manager.read"
	// PermOrganizationManagerUpdate allows updating the organization's managers.
	PermOrganizationManagerUpdate = "organization.manager.update"

	// PermOrganizationAccountRead allows reading the organization's clearing accounts.
	PermOrganizationAccountRead = "organization.account.read"
)

// Desk-scope permissions gate a single desk's surface.
const (
	// PermDeskRead allows reading the owning desk.
	PermDeskRead = "desk.read"
	// PermDeskUpdate allows updating the owning desk.
	PermDeskUpdate = "desk.update"

	// PermDeskRoleCreate allows creating roles on the desk.
	PermDeskRoleCreate = "desk.role.create"
	// PermDeskRoleRead allows reading the desk's roles.
	PermDeskRoleRead = "desk.role.read"
	// PermDeskRoleUpdate allows updating the desk's roles.
	PermDeskRoleUpdate = "desk.role.update"
	// PermDeskRoleAssign allows granting and revoking the desk's roles.
	PermDeskRoleAssign = "desk.role.assign"

	// PermDeskTransactionCreate allows submitting transaction requests on the desk.
	PermDeskTransactionCreate = "desk.transaction.create"
	// PermDeskTransactionRead allows reading the desk's transaction requests.
	PermDeskTransactionRead = "desk.transaction.read"
)

// Multi-desk permission templates mirror the desk catalog with the owner
// placeholder embedded. They are stored verbatim on multi-desk roles and
// substituted with the owning organization id by Resolve. A desk-scoped
// endpoint admits a multi-desk holder by requiring the substituted form
// alongside the plain desk permission.
const (
	// PermMultiDeskRead is the multi-desk template for desk.read.
	PermMultiDeskRead = "desk." + OwnerPlaceholder + ".read"
	// PermMultiDeskUpdate is the multi-desk template for desk.update.
	PermMultiDeskUpdate = "desk." + OwnerPlaceholder + ".update"

	// PermMultiDeskRoleCreate is the multi-desk template for desk.role.create.
	PermMultiDeskRoleCreate = "desk." + OwnerPlaceholder + ".role.create"
	// PermMultiDeskRoleRead is the multi-desk template for desk.role.read.
	PermMultiDeskRoleRead = "desk." + OwnerPlaceholder + ".role.read"
	// PermMultiDeskRoleUpdate is the multi-desk template for desk.role.update.
	PermMultiDeskRoleUpdate = "desk." + OwnerPlaceholder + ".role.update"
	// PermMultiDeskRoleAssign is the multi-desk template for desk.role.assign.
	PermMultiDeskRoleAssign = "desk." + OwnerPlaceholder + ".role.assign"

	// PermMultiDeskTransactionCreate is the multi-desk template for desk.transaction.create.
	PermMultiDeskTransactionCreate = "desk." + OwnerPlaceholder + ".transaction.create"
	// PermMultiDeskTransactionRead is the multi-desk template for desk.transaction.read.
	PermMultiDeskTransactionRead = "desk." + OwnerPlaceholder + ".transaction.read"
)

// catalogs maps each scope to its closed permission set.
var catalogs = map[Scope][]string{ //nolint:gochecknoglobals
	ScopeClearer: {
		PermClearerRoleCreate,
		PermClearerRoleRead,
		PermClearerRoleUpdate,
		PermClearerRoleAssign,
		PermClearerOrganizationCreate,
		PermClearerOrganizationRead,
		PermClearerOrganizationUpdate,
		PermClearerManagerCreate,
		PermClearerManagerRead,
		PermClearerManagerUpdate,
		PermClearerAccountCreate,
		PermClearerAccountDelete,
	},
	ScopeOrganization: {
		PermOrganizationRead,
		PermOrganizationUpdate,
		PermOrganizationRoleCreate,
		PermOrganizationRoleRead,
		PermOrganizationRoleUpdate,
		PermOrganizationRoleAssign,
		PermOrganizationDeskCreate,
		PermOrganizationDeskRead,
		PermOrganizationDeskUpdate,
		PermOrganizationManagerCreate,
		PermOrganizationManagerRead,
		PermOrganizationManagerUpdate,
		PermOrganizationAccountRead,
	},
	ScopeDesk: {
		PermDeskRead,
		PermDeskUpdate,
		PermDeskRoleCreate,
		PermDeskRoleRead,
		PermDeskRoleUpdate,
		PermDeskRoleAssign,
		PermDeskTransactionCreate,
		PermDeskTransactionRead,
	},
	ScopeMultiDesk: {
		PermMultiDeskRead,
		PermMultiDeskUpdate,
		PermMultiDeskRoleCreate,
		PermMultiDeskRoleRead,
		PermMultiDeskRoleUpdate,
		PermMultiDeskRoleAssign,
		PermMultiDeskTransactionCreate,
		PermMultiDeskTransactionRead,
	},
}

// Catalog returns the full permission set for a scope. The returned slice is
// a copy; callers may mutate it freely.
func Catalog(scope Scope) []string {
	src := catalogs[scope]
	out := make([]string, len(src))
	copy(out, src)

	return out
}

// ValidPermission reports whether perm belongs to the catalog of scope.
func ValidPermission(scope Scope, perm string) bool {
	for _, known := range catalogs[scope] {
		if known == perm {
			return true
		}
	}

	return false
}

// InvalidPermissions returns every entry of perms that is not in the catalog
// of scope, preserving input order. It returns all offenders rather than the
// first so a caller can report the complete list in one validation error.
func InvalidPermissions(scope Scope, perms []string) []string {
	var invalid []string

	for _, perm := range perms {
		if !ValidPermission(scope, perm) {
			invalid = append(invalid, perm)
		}
	}

	return invalid
}

// Substitute replaces every occurrence of OwnerPlaceholder in perm with
// ownerID. Permissions without the token pass through unchanged.
func Substitute(perm, ownerID string) string {
	return strings.ReplaceAll(perm, OwnerPlaceholder, ownerID)
}

package acl

// Scope identifies the tier of the organizational hierarchy a role applies to.
// It determines which owner reference a role carries and which catalog its
// permission strings are validated against.
type Scope string

const (
	// ScopeClearer is the platform-wide operator tier. Clearer roles have no
	// owning resource and apply to every request regardless of target.
	ScopeClearer Scope = "clearer"
	// ScopeOrganization roles are owned by exactly one organization.
	ScopeOrganization Scope = "organization"
	// ScopeDesk roles are owned by exactly one desk, which in turn belongs to
	// one organization.
	ScopeDesk Scope = "desk"
	// ScopeMultiDesk roles are owned by one organization and apply uniformly
	// across all of its desks via placeholder substitution.
	ScopeMultiDesk Scope = "multidesk"
)

// Valid reports whether s is one of the four known scopes.
func (s Scope) Valid() bool {
	switch s {
	case ScopeClearer, ScopeOrganization, ScopeDesk, ScopeMultiDesk:
		return true
	}

	return false
}

// NeedsOrganization reports whether a role of this scope must carry an
// organization reference.
func (s Scope) NeedsOrganization() bool {
	return s == ScopeOrganization || s == ScopeMultiDesk
}

// NeedsDesk reports whether a role of this scope must carry a desk reference.
func (s Scope) NeedsDesk() bool {
	return s == ScopeDesk
}

package acl

// RoleView is the materialized slice of a stored role the resolver needs:
// its scope, owner references, disabled flag and raw permission strings.
// Controllers build RoleViews from a user's role assignments; the resolver
// itself never touches storage.
type RoleView struct {
	Scope          Scope
	OrganizationID string
	DeskID         string
	Disabled       bool
	Permissions    []string
}

// Target describes the resource a request is aimed at. OrganizationID and
// DeskID are set as far as the request path provides them. DeskOrganizationID
// is the organization the target desk actually belongs to, loaded by the
// caller; the resolver uses it to fail closed on a desk/organization
// mismatch instead of trusting the path.
type Target struct {
	OrganizationID     string
	DeskID             string
	DeskOrganizationID string
}

// Set is an unordered collection of resolved permission strings.
type Set map[string]struct{}

// NewSet builds a Set from the given permissions.
func NewSet(perms ...string) Set {
	s := make(Set, len(perms))
	for _, perm := range perms {
		s[perm] = struct{}{}
	}

	return s
}

// Has reports whether perm is in the set.
func (s Set) Has(perm string) bool {
	_, ok := s[perm]
	return ok
}

// Values returns the set's members as a slice, in no particular order.
func (s Set) Values() []string {
	out := make([]string, 0, len(s))
	for perm := range s {
		out = append(out, perm)
	}

	return out
}

// Resolve computes the effective permission set a user holds against target,
// given the user's materialized role views. It is a pure function: no side
// effects, safe to call repeatedly and concurrently.
//
// Selection rules per role scope:
//   - clearer roles always contribute;
//   - organization roles contribute iff they are owned by the target organization;
//   - desk roles contribute iff they are owned by the target desk;
//   - multi-desk roles contribute iff they are owned by the target organization
//     and the target desk belongs to that same organization.
//
// Multi-desk permissions are substituted with the role's owning organization
// id before inclusion. Disabled roles contribute nothing.
//
// If the target names a desk that does not belong to the target organization,
// resolution fails closed and returns an empty set.
func Resolve(roles []RoleView, target Target) Set {
	resolved := make(Set)

	if target.DeskID != "" && target.DeskOrganizationID != target.OrganizationID {
		return resolved
	}

	for _, role := range roles {
		if role.Disabled {
			continue
		}

		switch role.Scope {
		case ScopeClearer:
			resolved.addAll(role.Permissions)
		case ScopeOrganization:
			if role.OrganizationID != "" && role.OrganizationID == target.OrganizationID {
				resolved.addAll(role.Permissions)
			}
		case ScopeDesk:
			if role.DeskID != "" && role.DeskID == target.DeskID {
				resolved.addAll(role.Permissions)
			}
		case ScopeMultiDesk:
			if role.OrganizationID == "" || role.OrganizationID != target.OrganizationID {
				continue
			}
			if target.DeskID == "" || target.DeskOrganizationID != role.OrganizationID {
				continue
			}
			for _, perm := range role.Permissions {
				resolved[Substitute(perm, role.OrganizationID)] = struct{}{}
			}
		}
	}

	return resolved
}

func (s Set) addAll(perms []string) {
	for _, perm := range perms {
		s[perm] = struct{}{}
	}
}

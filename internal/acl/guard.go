package acl

// Requirement is the permission demand an operation declares: an OR across
// groups where each group is an AND over its permissions. The common pattern
// is one group per admissible tier, e.g. a clearer group and an
// organization group guarding the same endpoint.
type Requirement [][]string

// Group builds a single-group requirement from perms (all must be held).
func Group(perms ...string) Requirement {
	return Requirement{perms}
}

// Or appends another AND-group as an alternative way to satisfy r.
func (r Requirement) Or(perms ...string) Requirement {
	return append(r, perms)
}

// Satisfied reports whether any group of r is fully contained in resolved.
// An empty requirement is never satisfied: an operation that declares no
// admissible permissions admits nobody.
func (r Requirement) Satisfied(resolved Set) bool {
	for _, group := range r {
		if len(group) == 0 {
			continue
		}

		all := true

		for _, perm := range group {
			if !resolved.Has(perm) {
				all = false
				break
			}
		}

		if all {
			return true
		}
	}

	return false
}

// Authorize is the single decision point callers invoke before executing a
// guarded operation. It resolves the caller's roles against the target and
// evaluates the requirement; ErrPermissionMissing means deny. The decision is
// made before any side effect of the guarded operation.
func Authorize(required Requirement, roles []RoleView, target Target) error {
	if !required.Satisfied(Resolve(roles, target)) {
		return ErrPermissionMissing
	}

	return nil
}

package acl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequirementSatisfied(t *testing.T) {
	required := Group("a", "b").Or("c")

	testCases := []struct {
		name     string
		resolved Set
		expected bool
	}{
		{name: "full first group", resolved: NewSet("a", "b"), expected: true},
		{name: "second group alone", resolved: NewSet("c"), expected: true},
		{name: "partial first group denied", resolved: NewSet("a"), expected: false},
		{name: "partial groups do not combine", resolved: NewSet("a", "x"), expected: false},
		{name: "superset allowed", resolved: NewSet("a", "b", "c", "d"), expected: true},
		{name: "empty resolved set denied", resolved: NewSet(), expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, required.Satisfied(tc.resolved))
		})
	}
}

func TestRequirementEmpty(t *testing.T) {
	assert.False(t, Requirement{}.Satisfied(NewSet("a")))
	assert.False(t, Requirement{{}}.Satisfied(NewSet("a")), "empty group admits nobody")
}

func TestAuthorize(t *testing.T) {
	roles := []RoleView{
		{Scope: ScopeOrganization, OrganizationID: org1, Permissions: []string{PermOrganizationRead}},
	}

	required := Group(PermClearerOrganizationRead).Or(PermOrganizationRead)

	assert.NoError(t, Authorize(required, roles, Target{OrganizationID: org1}))
	assert.ErrorIs(t, Authorize(required, roles, Target{OrganizationID: org2}), ErrPermissionMissing)
}

// An organization creator holding the default role may read its own
// organization but not a foreign one.
func TestAuthorizeDefaultRoleScenario(t *testing.T) {
	defaultRole := RoleView{
		Scope:          ScopeOrganization,
		OrganizationID: org1,
		Permissions:    Catalog(ScopeOrganization),
	}

	required := Group(PermClearerOrganizationRead).Or(PermOrganizationRead)

	assert.NoError(t, Authorize(required, []RoleView{defaultRole}, Target{OrganizationID: org1}))
	assert.ErrorIs(t,
		Authorize(required, []RoleView{defaultRole}, Target{OrganizationID: org2}),
		ErrPermissionMissing,
	)
}

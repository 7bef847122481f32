package acl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	org1  = "aaaaaaaaaaaaaaaaaaaaaaa1"
	org2  = "aaaaaaaaaaaaaaaaaaaaaaa2"
	desk1 = "bbbbbbbbbbbbbbbbbbbbbbb1"
	desk2 = "bbbbbbbbbbbbbbbbbbbbbbb2"
)

func TestResolve(t *testing.T) {
	testCases := []struct {
		name     string
		roles    []RoleView
		target   Target
		expected []string
	}{
		{
			name:     "no roles yields empty set",
			roles:    nil,
			target:   Target{OrganizationID: org1},
			expected: nil,
		},
		{
			name: "no role owned by target organization yields empty set",
			roles: []RoleView{
				{Scope: ScopeOrganization, OrganizationID: org2, Permissions: []string{PermOrganizationRead}},
			},
			target:   Target{OrganizationID: org1},
			expected: nil,
		},
		{
			name: "clearer role always contributes",
			roles: []RoleView{
				{Scope: ScopeClearer, Permissions: []string{PermClearerOrganizationRead}},
			},
			target:   Target{OrganizationID: org1},
			expected: []string{PermClearerOrganizationRead},
		},
		{
			name: "organization role contributes for its own organization",
			roles: []RoleView{
				{Scope: ScopeOrganization, OrganizationID: org1, Permissions: []string{PermOrganizationRead, PermOrganizationRoleRead}},
			},
			target:   Target{OrganizationID: org1},
			expected: []string{PermOrganizationRead, PermOrganizationRoleRead},
		},
		{
			name: "desk role contributes only for its own desk",
			roles: []RoleView{
				{Scope: ScopeDesk, DeskID: desk1, Permissions: []string{PermDeskRead}},
			},
			target:   Target{OrganizationID: org1, DeskID: desk2, DeskOrganizationID: org1},
			expected: nil,
		},
		{
			name: "multi-desk role substitutes the owning organization id",
			roles: []RoleView{
				{Scope: ScopeMultiDesk, OrganizationID: org1, Permissions: []string{PermMultiDeskRead}},
			},
			target:   Target{OrganizationID: org1, DeskID: desk1, DeskOrganizationID: org1},
			expected: []string{"desk." + org1 + ".read"},
		},
		{
			name: "multi-desk role never contributes to another organization",
			roles: []RoleView{
				{Scope: ScopeMultiDesk, OrganizationID: org2, Permissions: []string{PermMultiDeskRead}},
			},
			target:   Target{OrganizationID: org1, DeskID: desk1, DeskOrganizationID: org1},
			expected: nil,
		},
		{
			name: "multi-desk role needs a desk target",
			roles: []RoleView{
				{Scope: ScopeMultiDesk, OrganizationID: org1, Permissions: []string{PermMultiDeskRead}},
			},
			target:   Target{OrganizationID: org1},
			expected: nil,
		},
		{
			name: "disabled role contributes nothing",
			roles: []RoleView{
				{Scope: ScopeOrganization, OrganizationID: org1, Disabled: true, Permissions: []string{PermOrganizationRead}},
				{Scope: ScopeClearer, Disabled: true, Permissions: []string{PermClearerOrganizationRead}},
			},
			target:   Target{OrganizationID: org1},
			expected: nil,
		},
		{
			name: "desk not belonging to target organization fails closed",
			roles: []RoleView{
				{Scope: ScopeClearer, Permissions: []string{PermClearerOrganizationRead}},
				{Scope: ScopeDesk, DeskID: desk1, Permissions: []string{PermDeskRead}},
			},
			target:   Target{OrganizationID: org1, DeskID: desk1, DeskOrganizationID: org2},
			expected: nil,
		},
		{
			name: "duplicate permissions collapse",
			roles: []RoleView{
				{Scope: ScopeOrganization, OrganizationID: org1, Permissions: []string{PermOrganizationRead}},
				{Scope: ScopeOrganization, OrganizationID: org1, Permissions: []string{PermOrganizationRead, PermOrganizationUpdate}},
			},
			target:   Target{OrganizationID: org1},
			expected: []string{PermOrganizationRead, PermOrganizationUpdate},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resolved := Resolve(tc.roles, tc.target)
			assert.ElementsMatch(t, tc.expected, resolved.Values())
		})
	}
}

func TestResolveIdempotent(t *testing.T) {
	roles := []RoleView{
		{Scope: ScopeClearer, Permissions: []string{PermClearerRoleRead}},
		{Scope: ScopeOrganization, OrganizationID: org1, Permissions: []string{PermOrganizationRead}},
		{Scope: ScopeMultiDesk, OrganizationID: org1, Permissions: []string{PermMultiDeskRoleRead}},
	}
	target := Target{OrganizationID: org1, DeskID: desk1, DeskOrganizationID: org1}

	first := Resolve(roles, target)
	second := Resolve(roles, target)

	assert.Equal(t, first, second)
}

func TestResolveDisableAndReenable(t *testing.T) {
	roles := []RoleView{
		{Scope: ScopeOrganization, OrganizationID: org1, Permissions: []string{PermOrganizationRead}},
	}
	target := Target{OrganizationID: org1}

	require.True(t, Resolve(roles, target).Has(PermOrganizationRead))

	roles[0].Disabled = true
	assert.False(t, Resolve(roles, target).Has(PermOrganizationRead))

	roles[0].Disabled = false
	assert.True(t, Resolve(roles, target).Has(PermOrganizationRead))
}

// The substituted permission must carry the owning organization's id exactly,
// never the id of another organization the user happens to hold roles in.
func TestResolveMultiDeskExactSubstitution(t *testing.T) {
	roles := []RoleView{
		{Scope: ScopeMultiDesk, OrganizationID: org1, Permissions: []string{PermMultiDeskRead}},
		{Scope: ScopeOrganization, OrganizationID: org2, Permissions: []string{PermOrganizationRead}},
	}
	target := Target{OrganizationID: org1, DeskID: desk1, DeskOrganizationID: org1}

	resolved := Resolve(roles, target)

	assert.True(t, resolved.Has("desk."+org1+".read"))
	assert.False(t, resolved.Has("desk."+org2+".read"))
	assert.False(t, resolved.Has(PermMultiDeskRead), "template must not survive unsubstituted")
}

func TestSetValues(t *testing.T) {
	s := NewSet(PermDeskRead, PermDeskRead, PermDeskUpdate)

	assert.Len(t, s.Values(), 2)
	assert.True(t, s.Has(PermDeskRead))
	assert.False(t, s.Has(PermDeskRoleCreate))
}

package acl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidPermission(t *testing.T) {
	testCases := []struct {
		name     string
		scope    Scope
		perm     string
		expected bool
	}{
		{name: "clearer permission in clearer scope", scope: ScopeClearer, perm: PermClearerRoleCreate, expected: true},
		{name: "organization permission in clearer scope", scope: ScopeClearer, perm: PermOrganizationRead, expected: false},
		{name: "desk permission in desk scope", scope: ScopeDesk, perm: PermDeskRoleRead, expected: true},
		{name: "multi-desk template in desk scope", scope: ScopeDesk, perm: PermMultiDeskRoleRead, expected: false},
		{name: "multi-desk template in multi-desk scope", scope: ScopeMultiDesk, perm: PermMultiDeskRoleRead, expected: true},
		{name: "unknown string", scope: ScopeOrganization, perm: "organization.everything", expected: false},
		{name: "unknown scope", scope: Scope("galaxy"), perm: PermDeskRead, expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ValidPermission(tc.scope, tc.perm))
		})
	}
}

func TestInvalidPermissions(t *testing.T) {
	invalid := InvalidPermissions(ScopeOrganization, []string{
		PermOrganizationRead,
		"organization.destroy",
		PermOrganizationUpdate,
		PermDeskRead,
	})

	assert.Equal(t, []string{"organization.destroy", PermDeskRead}, invalid)
	assert.Nil(t, InvalidPermissions(ScopeClearer, Catalog(ScopeClearer)))
}

func TestSubstitute(t *testing.T) {
	assert.Equal(t, "desk."+org1+".read", Substitute(PermMultiDeskRead, org1))
	assert.Equal(t, PermDeskRead, Substitute(PermDeskRead, org1), "no token means no change")
}

// Every multi-desk template must carry the placeholder; no other scope's
// catalog may contain it.
func TestCatalogPlaceholderPartition(t *testing.T) {
	for _, perm := range Catalog(ScopeMultiDesk) {
		assert.Contains(t, perm, OwnerPlaceholder, perm)
	}

	for _, scope := range []Scope{ScopeClearer, ScopeOrganization, ScopeDesk} {
		for _, perm := range Catalog(scope) {
			assert.False(t, strings.Contains(perm, OwnerPlaceholder), perm)
		}
	}
}

func TestCatalogReturnsCopy(t *testing.T) {
	first := Catalog(ScopeDesk)
	first[0] = "tampered"

	assert.NotContains(t, Catalog(ScopeDesk), "tampered")
}

func TestScopeValid(t *testing.T) {
	assert.True(t, ScopeClearer.Valid())
	assert.True(t, ScopeMultiDesk.Valid())
	assert.False(t, Scope("").Valid())

	assert.True(t, ScopeOrganization.NeedsOrganization())
	assert.True(t, ScopeMultiDesk.NeedsOrganization())
	assert.False(t, ScopeDesk.NeedsOrganization())
	assert.True(t, ScopeDesk.NeedsDesk())
	assert.False(t, ScopeClearer.NeedsDesk())
}

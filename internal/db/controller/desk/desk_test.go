package desk

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cleardesk/cleardesk/internal/db/models"
	"github.com/cleardesk/cleardesk/internal/db/pagination"
	"github.com/cleardesk/cleardesk/internal/objectid"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(&models.Organization{}, &models.ClearingAccount{}, &models.Desk{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func seedOrganization(t *testing.T, db *gorm.DB, name string) *models.Organization {
	t.Helper()

	org := &models.Organization{ID: objectid.New(), Name: name}
	require.NoError(t, db.Create(org).Error)

	return org
}

func TestCreate(t *testing.T) {
	db := setupTestDB(t)
	org := seedOrganization(t, db, "Acme Clearing")

	created, err := Create(db, org.ID, "Trading")
	require.NoError(t, err)
	assert.True(t, objectid.Valid(created.ID))
	assert.Equal(t, org.ID, created.OrganizationID)

	_, err = Create(db, org.ID, "")
	assert.ErrorIs(t, err, ErrNameEmpty)

	_, err = Create(db, objectid.New(), "Orphan")
	assert.ErrorIs(t, err, ErrOrganizationNotFound)

	_, err = Create(nil, org.ID, "Trading")
	assert.ErrorIs(t, err, ErrDBNil)
}

func TestGetForOrganization(t *testing.T) {
	db := setupTestDB(t)
	org := seedOrganization(t, db, "Acme Clearing")
	other := seedOrganization(t, db, "Globex Markets")

	created, err := Create(db, org.ID, "Trading")
	require.NoError(t, err)

	found, err := GetForOrganization(db, org.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Trading", found.Name)

	// A desk of another tenant is indistinguishable from a missing one.
	_, err = GetForOrganization(db, other.ID, created.ID)
	assert.ErrorIs(t, err, ErrDeskNotFound)
}

func TestGetByID(t *testing.T) {
	db := setupTestDB(t)
	org := seedOrganization(t, db, "Acme Clearing")

	created, err := Create(db, org.ID, "Trading")
	require.NoError(t, err)

	found, err := GetByID(db, created.ID)
	require.NoError(t, err)
	assert.Equal(t, org.ID, found.Organization.ID, "owning organization is preloaded")

	_, err = GetByID(db, objectid.New())
	assert.ErrorIs(t, err, ErrDeskNotFound)
}

func TestUpdate(t *testing.T) {
	db := setupTestDB(t)
	org := seedOrganization(t, db, "Acme Clearing")

	created, err := Create(db, org.ID, "Trading")
	require.NoError(t, err)

	require.NoError(t, Update(db, created, "Settlement"))

	reloaded, err := GetForOrganization(db, org.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Settlement", reloaded.Name)

	assert.ErrorIs(t, Update(db, created, ""), ErrNameEmpty)
}

func TestList(t *testing.T) {
	db := setupTestDB(t)
	org := seedOrganization(t, db, "Acme Clearing")
	other := seedOrganization(t, db, "Globex Markets")

	for _, name := range []string{"Trading", "Settlement", "Treasury"} {
		_, err := Create(db, org.ID, name)
		require.NoError(t, err)
	}

	_, err := Create(db, other.ID, "Foreign")
	require.NoError(t, err)

	page, err := List(db, org.ID, pagination.Request{Limit: 2, Sort: pagination.ParseSort("name")})
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.TotalCount)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Settlement", page.Items[0].Name)

	page, err = List(db, org.ID, pagination.Request{Limit: 10, Search: "Tr"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.TotalCount)
}

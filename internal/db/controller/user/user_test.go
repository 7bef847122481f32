package user

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cleardesk/cleardesk/internal/acl"
	"github.com/cleardesk/cleardesk/internal/db/controller/organization"
	"github.com/cleardesk/cleardesk/internal/db/controller/role"
	"github.com/cleardesk/cleardesk/internal/db/models"
	"github.com/cleardesk/cleardesk/internal/db/pagination"
	"github.com/cleardesk/cleardesk/internal/objectid"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(
		&models.Organization{},
		&models.ClearingAccount{},
		&models.Desk{},
		&models.User{},
		&models.Role{},
		&models.RoleAssignment{},
	)
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func TestCreate(t *testing.T) {
	db := setupTestDB(t)

	created, err := Create(db, CreateParams{
		Email:     "alice@example.com",
		Password:  "correct horse battery staple",
		FirstName: "Alice",
		LastName:  "Austen",
	})
	require.NoError(t, err)
	assert.True(t, objectid.Valid(created.ID))
	assert.Nil(t, created.OrganizationID)
	assert.NotEqual(t, "correct horse battery staple", created.Password, "password must be stored hashed")
	assert.True(t, created.VerifyPassword("correct horse battery staple"))
	assert.False(t, created.VerifyPassword("wrong"))

	_, err = Create(db, CreateParams{Email: "alice@example.com", Password: "other"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = Create(db, CreateParams{})
	assert.ErrorIs(t, err, ErrEmailEmpty)

	_, err = Create(nil, CreateParams{Email: "bob@example.com"})
	assert.ErrorIs(t, err, ErrDBNil)
}

func TestCreateManager(t *testing.T) {
	db := setupTestDB(t)

	founder, err := Create(db, CreateParams{Email: "founder@example.com", Password: "secret"})
	require.NoError(t, err)

	org, err := organization.Create(db, organization.CreateParams{Name: "Acme Clearing"}, founder)
	require.NoError(t, err)

	manager, err := CreateManager(db, org.ID, CreateParams{
		Email:    "manager@example.com",
		Password: "secret",
	}, founder)
	require.NoError(t, err)
	require.NotNil(t, manager.OrganizationID)
	assert.Equal(t, org.ID, *manager.OrganizationID)

	// The manager holds the organization's default role right away.
	views, err := role.ViewsForUser(db, manager.ID)
	require.NoError(t, err)
	resolved := acl.Resolve(views, acl.Target{OrganizationID: org.ID})
	assert.True(t, resolved.Has(acl.PermOrganizationRoleAssign))

	loaded, err := GetByID(db, manager.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Roles, 1)
	assert.Equal(t, founder.ID, loaded.Roles[0].AssignedByID)

	t.Run("organization without default role", func(t *testing.T) {
		_, err := CreateManager(db, objectid.New(), CreateParams{
			Email:    "nobody@example.com",
			Password: "secret",
		}, founder)
		assert.ErrorIs(t, err, role.ErrRoleNotFound)

		_, err = GetByEmail(db, "nobody@example.com")
		assert.ErrorIs(t, err, ErrUserNotFound, "failed onboarding must not leave a user behind")
	})

	t.Run("duplicate manager email rolls back", func(t *testing.T) {
		_, err := CreateManager(db, org.ID, CreateParams{
			Email:    "manager@example.com",
			Password: "secret",
		}, founder)
		assert.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestGetPreloadsRoles(t *testing.T) {
	db := setupTestDB(t)

	founder, err := Create(db, CreateParams{Email: "founder@example.com", Password: "secret"})
	require.NoError(t, err)

	org, err := organization.Create(db, organization.CreateParams{Name: "Acme Clearing"}, founder)
	require.NoError(t, err)

	loaded, err := GetByEmail(db, "founder@example.com")
	require.NoError(t, err)
	require.Len(t, loaded.Roles, 1)
	assert.Equal(t, role.DefaultRoleName, loaded.Roles[0].Role.Name)

	views := loaded.RoleViews()
	resolved := acl.Resolve(views, acl.Target{OrganizationID: org.ID})
	assert.True(t, resolved.Has(acl.PermOrganizationRead))

	_, err = GetByID(db, objectid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdate(t *testing.T) {
	db := setupTestDB(t)

	created, err := Create(db, CreateParams{Email: "alice@example.com", Password: "secret", FirstName: "Alice"})
	require.NoError(t, err)

	t.Run("suspend", func(t *testing.T) {
		suspended := true
		require.NoError(t, Update(db, created, UpdateParams{Suspended: &suspended}))

		reloaded, err := GetByID(db, created.ID)
		require.NoError(t, err)
		assert.True(t, reloaded.Suspended)
		assert.Equal(t, "Alice", reloaded.FirstName)
	})

	t.Run("rename keeps suspension", func(t *testing.T) {
		lastName := "Smith"
		require.NoError(t, Update(db, created, UpdateParams{LastName: &lastName}))

		reloaded, err := GetByID(db, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Smith", reloaded.LastName)
		assert.True(t, reloaded.Suspended)
	})
}

func TestList(t *testing.T) {
	db := setupTestDB(t)

	founder, err := Create(db, CreateParams{Email: "founder@example.com", Password: "secret"})
	require.NoError(t, err)

	org, err := organization.Create(db, organization.CreateParams{Name: "Acme Clearing"}, founder)
	require.NoError(t, err)

	for _, email := range []string{"anna@example.com", "ben@example.com"} {
		_, err := CreateManager(db, org.ID, CreateParams{Email: email, Password: "secret"}, founder)
		require.NoError(t, err)
	}

	t.Run("tenant scoped", func(t *testing.T) {
		page, err := List(db, org.ID, pagination.Request{Limit: 10, Sort: pagination.ParseSort("email")})
		require.NoError(t, err)
		assert.EqualValues(t, 2, page.TotalCount)
		require.Len(t, page.Items, 2)
		assert.Equal(t, "anna@example.com", page.Items[0].Email)
	})

	t.Run("all users with search", func(t *testing.T) {
		page, err := List(db, "", pagination.Request{Limit: 10, Search: "founder"})
		require.NoError(t, err)
		assert.EqualValues(t, 1, page.TotalCount)
	})
}

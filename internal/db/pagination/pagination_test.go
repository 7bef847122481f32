package pagination

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type widget struct {
	ID   uint `gorm:"primaryKey"`
	Name string
	Rank int
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	require.NoError(t, db.AutoMigrate(&widget{}))

	for i := 1; i <= 9; i++ {
		name := "widget"
		if i%3 == 0 {
			name = "gadget"
		}

		require.NoError(t, db.Create(&widget{Name: name, Rank: 10 - i}).Error)
	}

	return db
}

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name     string
		request  Request
		expected Request
	}{
		{name: "zero limit gets default", request: Request{}, expected: Request{Limit: DefaultLimit}},
		{name: "negative skip clamps to zero", request: Request{Skip: -3, Limit: 10}, expected: Request{Limit: 10}},
		{name: "limit clamps to max", request: Request{Limit: 5000}, expected: Request{Limit: MaxLimit}},
		{name: "valid request unchanged", request: Request{Skip: 4, Limit: 2}, expected: Request{Skip: 4, Limit: 2}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.request.Normalize())
		})
	}
}

func TestParseSort(t *testing.T) {
	assert.Nil(t, ParseSort(""))
	assert.Equal(t, []SortField{{Field: "name"}}, ParseSort("name"))
	assert.Equal(t,
		[]SortField{{Field: "name", Desc: true}, {Field: "rank"}},
		ParseSort("name:desc, rank:asc"),
	)
}

func TestFind(t *testing.T) {
	db := setupTestDB(t)
	sortable := map[string]string{"name": "name", "rank": "rank"}

	t.Run("window with total", func(t *testing.T) {
		page, err := Find[widget](db.Model(&widget{}), Request{Skip: 6, Limit: 5}, sortable)
		require.NoError(t, err)

		assert.EqualValues(t, 9, page.TotalCount)
		assert.Len(t, page.Items, 3)
		assert.Equal(t, 6, page.Request.Skip)
	})

	t.Run("sort by declared field", func(t *testing.T) {
		page, err := Find[widget](db.Model(&widget{}), Request{Limit: 3, Sort: []SortField{{Field: "rank"}}}, sortable)
		require.NoError(t, err)

		require.Len(t, page.Items, 3)
		assert.Equal(t, 1, page.Items[0].Rank)
		assert.Equal(t, 2, page.Items[1].Rank)
	})

	t.Run("undeclared sort field is ignored", func(t *testing.T) {
		page, err := Find[widget](db.Model(&widget{}), Request{Sort: []SortField{{Field: "password"}}}, sortable)
		require.NoError(t, err)
		assert.EqualValues(t, 9, page.TotalCount)
	})

	t.Run("filters applied by caller reduce the total", func(t *testing.T) {
		query := db.Model(&widget{}).Where("name LIKE ?", "%gadget%")

		page, err := Find[widget](query, Request{}, sortable)
		require.NoError(t, err)

		assert.EqualValues(t, 3, page.TotalCount)
		assert.Len(t, page.Items, 3)
	})
}

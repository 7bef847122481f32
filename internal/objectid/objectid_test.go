package objectid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		id := New()
		require.True(t, Valid(id), id)
		require.False(t, seen[id], "duplicate id generated")
		seen[id] = true
	}
}

func TestValid(t *testing.T) {
	testCases := []struct {
		name     string
		id       string
		expected bool
	}{
		{name: "well formed", id: "507f1f77bcf86cd799439011", expected: true},
		{name: "empty", id: "", expected: false},
		{name: "too short", id: "507f1f77bcf86cd7994390", expected: false},
		{name: "too long", id: "507f1f77bcf86cd79943901122", expected: false},
		{name: "uppercase hex rejected", id: "507F1F77BCF86CD799439011", expected: false},
		{name: "non hex characters", id: "507f1f77bcf86cd79943901z", expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Valid(tc.id))
		})
	}
}

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateBookingIDShape(t *testing.T) {
	for i := 0; i < 200; i++ {
		id, err := GenerateBookingID()
		require.NoError(t, err)
		assert.Len(t, id, 6)
		assert.True(t, IsValidBookingID(id), "unexpected id %q", id)
	}
}

func TestGenerateBookingIDSpread(t *testing.T) {
	seen := map[string]struct{}{}
	for i := 0; i < 500; i++ {
		id, err := GenerateBookingID()
		require.NoError(t, err)
		seen[id] = struct{}{}
	}
	// 36^6 values; 500 draws colliding more than a couple of times means a broken source
	assert.Greater(t, len(seen), 495)
}

func TestIsValidBookingID(t *testing.T) {
	assert.True(t, IsValidBookingID("AB12CD"))
	assert.False(t, IsValidBookingID("ab12cd"))
	assert.False(t, IsValidBookingID("AB12C"))
	assert.False(t, IsValidBookingID("AB12CD7"))
	assert.False(t, IsValidBookingID("AB-2CD"))
}

func TestNormalizeBookingID(t *testing.T) {
	assert.Equal(t, "AB12CD", NormalizeBookingID("  ab12cd "))
}

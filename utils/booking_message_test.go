package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBookingMessage(t *testing.T) {
	msg := "New booking request\n" +
		"Check-in: 2025-03-01\n" +
		"Check-out: 2025-03-04\n" +
		"Room Type: Standard TZS 50,000/night\n" +
		"Number of Guests: 2\n" +
		"ID Document: passport\n" +
		"Origin: Arusha\n" +
		"Purpose of Stay: business\n" +
		"Special Requests: Late arrival: after 22:00\n"

	got := ParseBookingMessage(msg)
	assert.Equal(t, "2025-03-01", got.CheckIn)
	assert.Equal(t, "2025-03-04", got.CheckOut)
	assert.Equal(t, "Standard", got.RoomType)
	assert.Equal(t, 2, got.NumberOfGuests)
	assert.Equal(t, "passport", got.IDDocument)
	assert.Equal(t, "Arusha", got.Origin)
	assert.Equal(t, "business", got.PurposeOfStay)
	assert.Equal(t, "Late arrival: after 22:00", got.SpecialRequests)
}

func TestParseBookingMessageDefaults(t *testing.T) {
	got := ParseBookingMessage("Check-in: 2025-03-01\nNumber of Guests: many\nSpecial Requests: None")
	assert.Equal(t, 1, got.NumberOfGuests)
	assert.Equal(t, "national_id", got.IDDocument)
	assert.Equal(t, "leisure", got.PurposeOfStay)
	assert.Empty(t, got.SpecialRequests)
	assert.Empty(t, got.RoomType)
}

package utils

import (
	"strconv"
	"strings"
)

// BookingMessage is the structured form of the free-text booking body sent by
// the older website form, e.g.
//
//	Check-in: 2025-03-01
//	Check-out: 2025-03-04
//	Room Type: Standard TZS 50,000/night
//	Number of Guests: 2
type BookingMessage struct {
	CheckIn         string
	CheckOut        string
	RoomType        string
	NumberOfGuests  int
	IDDocument      string
	Origin          string
	PurposeOfStay   string
	SpecialRequests string
}

// ParseBookingMessage reads "Key: value" lines. Keys are matched case-insensitively
// with spaces and dashes folded to underscores. Unknown keys are ignored.
func ParseBookingMessage(message string) BookingMessage {
	fields := map[string]string{}
	for _, line := range strings.Split(message, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
		fields[key] = strings.TrimSpace(value)
	}

	out := BookingMessage{
		CheckIn:         fields["check_in"],
		CheckOut:        fields["check_out"],
		RoomType:        fields["room_type"],
		NumberOfGuests:  1,
		IDDocument:      fields["id_document"],
		Origin:          fields["origin"],
		PurposeOfStay:   fields["purpose_of_stay"],
		SpecialRequests: fields["special_requests"],
	}

	// "Standard TZS 50,000/night" -> "Standard"
	if idx := strings.Index(out.RoomType, "TZS"); idx >= 0 {
		out.RoomType = strings.TrimSpace(out.RoomType[:idx])
	}
	if n, err := strconv.Atoi(fields["number_of_guests"]); err == nil && n > 0 {
		out.NumberOfGuests = n
	}
	if out.IDDocument == "" {
		out.IDDocument = "national_id"
	}
	if out.PurposeOfStay == "" {
		out.PurposeOfStay = "leisure"
	}
	if strings.EqualFold(out.SpecialRequests, "none") {
		out.SpecialRequests = ""
	}
	return out
}

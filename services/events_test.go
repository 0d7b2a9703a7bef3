package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"lodge-backend/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventEmitterPublishesJSON(t *testing.T) {
	pub := &fakePublisher{}
	e := NewEventEmitter(pub)

	r := sampleReservation()
	r.ID = 7
	r.RoomTypeID = 2
	r.RoomID = uintPtr(5)
	r.Status = models.StatusWaitingCheckin
	r.TotalAmount = decimal.NewFromInt(240000)
	at := time.Date(2025, 2, 15, 9, 0, 0, 0, time.UTC)

	e.Emit(context.Background(), EventReservationConfirmed, r, at)

	require.Len(t, pub.messages, 1)
	assert.Equal(t, "lodge.reservations", pub.subjects[0])

	var ev ReservationEvent
	require.NoError(t, json.Unmarshal(pub.messages[0], &ev))
	assert.Equal(t, EventReservationConfirmed, ev.EventType)
	assert.Equal(t, uint(7), ev.ReservationID)
	assert.Equal(t, "AB12CD", ev.BookingID)
	assert.Equal(t, "waiting_checkin", ev.Status)
	assert.Equal(t, "2025-03-01", ev.CheckInDate)
	assert.Equal(t, "2025-03-04", ev.CheckOutDate)
	assert.Equal(t, "240000.00", ev.TotalAmount)
	require.NotNil(t, ev.RoomID)
	assert.Equal(t, uint(5), *ev.RoomID)
	assert.True(t, at.Equal(ev.OccurredAt))
}

func TestEventEmitterNilSafe(t *testing.T) {
	var e *EventEmitter
	assert.NotPanics(t, func() {
		e.Emit(context.Background(), EventReservationCreated, sampleReservation(), time.Now())
	})

	e = NewEventEmitter(nil)
	assert.IsType(t, NoopPublisher{}, e.Publisher)
	assert.NotPanics(t, func() {
		e.Emit(context.Background(), EventReservationCreated, sampleReservation(), time.Now())
	})
}

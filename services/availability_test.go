package services

import (
	"testing"

	"lodge-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRoomFreeHalfOpen(t *testing.T) {
	clock := FixedClock{At: day(2025, 2, 15)}
	db := newTestDB(t, clock)
	c := seedCatalog(t, db)
	a := NewAvailability(clock)

	held := insertReservation(t, db, c.Standard, &c.S1, models.StatusWaitingCheckin, day(2025, 3, 1), day(2025, 3, 4))

	tests := []struct {
		name    string
		in, out int
		free    bool
	}{
		{"ends on arrival day", 27, 1, true},
		{"starts on departure day", 4, 6, true},
		{"inside", 2, 3, false},
		{"covers", 27, 6, false},
		{"overlaps start", 28, 2, false},
		{"overlaps end", 3, 5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := day(2025, 3, tt.in)
			if tt.in > 20 {
				in = day(2025, 2, tt.in)
			}
			out := day(2025, 3, tt.out)
			free, err := a.IsRoomFree(db, c.S1, in, out, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.free, free)
		})
	}

	t.Run("excluded reservation", func(t *testing.T) {
		free, err := a.IsRoomFree(db, c.S1, day(2025, 3, 2), day(2025, 3, 3), held.ID)
		require.NoError(t, err)
		assert.True(t, free)
	})

	t.Run("other room", func(t *testing.T) {
		free, err := a.IsRoomFree(db, c.S2, day(2025, 3, 2), day(2025, 3, 3), 0)
		require.NoError(t, err)
		assert.True(t, free)
	})

	t.Run("inactive room", func(t *testing.T) {
		room := c.S2
		room.IsActive = false
		free, err := a.IsRoomFree(db, room, day(2025, 5, 1), day(2025, 5, 2), 0)
		require.NoError(t, err)
		assert.False(t, free)
	})
}

func TestIsRoomFreeDayUse(t *testing.T) {
	clock := FixedClock{At: day(2025, 2, 15)}
	db := newTestDB(t, clock)
	c := seedCatalog(t, db)
	a := NewAvailability(clock)

	insertReservation(t, db, c.Standard, &c.S1, models.StatusWaitingCheckin, day(2025, 3, 5), day(2025, 3, 5))
	insertReservation(t, db, c.Standard, &c.S2, models.StatusWaitingCheckin, day(2025, 3, 1), day(2025, 3, 4))

	tests := []struct {
		name    string
		room    models.Room
		in, out int
		free    bool
	}{
		{"same day use", c.S1, 5, 5, false},
		{"stay across it", c.S1, 4, 6, false},
		{"ends on its day", c.S1, 3, 5, true},
		{"starts the next day", c.S1, 6, 7, true},
		{"day use inside a stay", c.S2, 2, 2, false},
		{"day use on departure", c.S2, 4, 4, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			free, err := a.IsRoomFree(db, tt.room, day(2025, 3, tt.in), day(2025, 3, tt.out), 0)
			require.NoError(t, err)
			assert.Equal(t, tt.free, free)
		})
	}
}

func TestIsRoomFreeIgnoresNonOccupyingStatuses(t *testing.T) {
	clock := FixedClock{At: day(2025, 2, 15)}
	db := newTestDB(t, clock)
	c := seedCatalog(t, db)
	a := NewAvailability(clock)

	for _, s := range []models.ReservationStatus{models.StatusPending, models.StatusCancelled, models.StatusCheckedOut} {
		insertReservation(t, db, c.Standard, &c.S1, s, day(2025, 3, 1), day(2025, 3, 4))
	}
	free, err := a.IsRoomFree(db, c.S1, day(2025, 3, 1), day(2025, 3, 4), 0)
	require.NoError(t, err)
	assert.True(t, free)

	insertReservation(t, db, c.Standard, &c.S1, models.StatusConfirmed, day(2025, 3, 3), day(2025, 3, 5))
	free, err = a.IsRoomFree(db, c.S1, day(2025, 3, 1), day(2025, 3, 4), 0)
	require.NoError(t, err)
	assert.False(t, free, "legacy confirmed still holds the room")
}

func TestAvailableRoomsForDates(t *testing.T) {
	clock := FixedClock{At: day(2025, 2, 15)}
	db := newTestDB(t, clock)
	c := seedCatalog(t, db)
	a := NewAvailability(clock)

	insertReservation(t, db, c.Standard, &c.S2, models.StatusCheckedIn, day(2025, 2, 14), day(2025, 2, 18))

	rooms, err := a.AvailableRoomsForDates(db, c.Standard.ID, day(2025, 2, 15), day(2025, 2, 16), 0)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "S1", rooms[0].RoomName)
	assert.Equal(t, "Standard", rooms[0].RoomType.Name)

	rooms, err = a.AvailableRoomsForDates(db, c.Standard.ID, day(2025, 2, 18), day(2025, 2, 20), 0)
	require.NoError(t, err)
	assert.Len(t, rooms, 2)
}

func TestAvailableRoomsSnapshot(t *testing.T) {
	clock := FixedClock{At: day(2025, 2, 15)}
	db := newTestDB(t, clock)
	c := seedCatalog(t, db)
	a := NewAvailability(clock)

	n, err := a.AvailableRoomsSnapshot(db, c.Standard)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	insertReservation(t, db, c.Standard, &c.S1, models.StatusCheckedIn, day(2025, 2, 14), day(2025, 2, 16))
	insertReservation(t, db, c.Standard, nil, models.StatusPending, day(2025, 2, 20), day(2025, 2, 21))
	n, err = a.AvailableRoomsSnapshot(db, c.Standard)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "pending bookings do not count")

	insertReservation(t, db, c.Standard, &c.S2, models.StatusWaitingCheckin, day(2025, 3, 1), day(2025, 3, 2))
	insertReservation(t, db, c.Standard, &c.S2, models.StatusWaitingCheckin, day(2025, 3, 5), day(2025, 3, 6))
	n, err = a.AvailableRoomsSnapshot(db, c.Standard)
	require.NoError(t, err)
	assert.Equal(t, 0, n, "never below zero")
}

func TestRoomStatus(t *testing.T) {
	clock := FixedClock{At: day(2025, 2, 15)}
	db := newTestDB(t, clock)
	c := seedCatalog(t, db)
	a := NewAvailability(clock)

	status := func(room models.Room) string {
		s, err := a.RoomStatus(db, room)
		require.NoError(t, err)
		return s
	}

	assert.Equal(t, models.RoomStatusAvailable, status(c.S1))

	insertReservation(t, db, c.Standard, &c.S1, models.StatusWaitingCheckin, day(2025, 3, 1), day(2025, 3, 2))
	assert.Equal(t, models.RoomStatusReserved, status(c.S1))

	insertReservation(t, db, c.Standard, &c.S1, models.StatusCheckedIn, day(2025, 2, 14), day(2025, 2, 15))
	assert.Equal(t, models.RoomStatusCheckedIn, status(c.S1), "departure day still counts as occupied")

	inactive := c.D1
	inactive.IsActive = false
	assert.Equal(t, models.RoomStatusInactive, status(inactive))

	rooms, err := a.RoomsWithStatus(db, c.Standard.ID, true)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "S2", rooms[0].RoomName)

	rooms, err = a.RoomsWithStatus(db, c.Standard.ID, false)
	require.NoError(t, err)
	assert.Len(t, rooms, 2)
}

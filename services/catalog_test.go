package services

import (
	"context"
	"testing"

	"lodge-backend/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomTypeService(t *testing.T) {
	ctx := context.Background()
	clock := FixedClock{At: day(2025, 2, 15)}
	db := newTestDB(t, clock)
	c := seedCatalog(t, db)
	svc := NewRoomTypeService(db, clock)

	t.Run("create requires fields", func(t *testing.T) {
		_, err := svc.Create(ctx, RoomTypeInput{})
		assert.EqualError(t, err, "name is required")

		_, err = svc.Create(ctx, RoomTypeInput{Name: strPtr("Suite")})
		assert.EqualError(t, err, "price_per_day is required")

		price := decimal.NewFromInt(150000)
		_, err = svc.Create(ctx, RoomTypeInput{Name: strPtr("Suite"), PricePerDay: &price})
		assert.EqualError(t, err, "total_rooms is required")

		negative := decimal.NewFromInt(-1)
		_, err = svc.Create(ctx, RoomTypeInput{Name: strPtr("Suite"), PricePerDay: &negative, TotalRooms: intPtr(1)})
		assert.EqualError(t, err, "price_per_day must not be negative")

		_, err = svc.Create(ctx, RoomTypeInput{Name: strPtr("Suite"), PricePerDay: &price, TotalRooms: intPtr(101)})
		assert.EqualError(t, err, "total_rooms must be at most 100")
	})

	t.Run("create and duplicate", func(t *testing.T) {
		price := decimal.RequireFromString("150000.456")
		v, err := svc.Create(ctx, RoomTypeInput{Name: strPtr(" Suite "), PricePerDay: &price, TotalRooms: intPtr(1)})
		require.NoError(t, err)
		assert.Equal(t, "Suite", v.Name)
		assert.True(t, v.IsActive)
		assert.Equal(t, "150000.46", v.PricePerDay.StringFixed(2))
		assert.Equal(t, 1, v.AvailableRooms)

		_, err = svc.Create(ctx, RoomTypeInput{Name: strPtr("Suite"), PricePerDay: &price, TotalRooms: intPtr(1)})
		assert.EqualError(t, err, `Room type "Suite" already exists`)
	})

	t.Run("update and public list", func(t *testing.T) {
		v, err := svc.Update(ctx, c.Deluxe.ID, RoomTypeInput{IsActive: boolPtr(false), Description: strPtr("closed for works")})
		require.NoError(t, err)
		assert.False(t, v.IsActive)
		assert.Equal(t, "Deluxe", v.Name)
		assert.Equal(t, "closed for works", v.Description)

		public, err := svc.List(ctx, true)
		require.NoError(t, err)
		for _, rt := range public {
			assert.NotEqual(t, c.Deluxe.ID, rt.ID)
		}
		all, err := svc.List(ctx, false)
		require.NoError(t, err)
		assert.Len(t, all, len(public)+1)

		_, err = svc.Update(ctx, 9999, RoomTypeInput{})
		assert.True(t, IsNotFound(err))
	})

	t.Run("delete guarded by active reservations", func(t *testing.T) {
		insertReservation(t, db, c.Standard, nil, models.StatusPending, day(2025, 3, 1), day(2025, 3, 2))
		_, err := svc.Delete(ctx, c.Standard.ID)
		assert.EqualError(t, err, `Cannot delete room type "Standard" as it has active reservations`)
	})

	t.Run("delete cascades finished history", func(t *testing.T) {
		done := insertReservation(t, db, c.Deluxe, &c.D1, models.StatusCheckedOut, day(2025, 1, 1), day(2025, 1, 2))
		require.NoError(t, db.Create(&models.CheckIn{ReservationID: done.ID, CheckInTime: clock.Now()}).Error)

		name, err := svc.Delete(ctx, c.Deluxe.ID)
		require.NoError(t, err)
		assert.Equal(t, "Deluxe", name)

		var n int64
		db.Model(&models.Room{}).Where("room_type_id = ?", c.Deluxe.ID).Count(&n)
		assert.Zero(t, n)
		db.Model(&models.Reservation{}).Where("id = ?", done.ID).Count(&n)
		assert.Zero(t, n)
		db.Model(&models.CheckIn{}).Where("reservation_id = ?", done.ID).Count(&n)
		assert.Zero(t, n)

		_, err = svc.Get(ctx, c.Deluxe.ID)
		assert.True(t, IsNotFound(err))
	})
}

func TestRoomService(t *testing.T) {
	ctx := context.Background()
	clock := FixedClock{At: day(2025, 2, 15)}
	db := newTestDB(t, clock)
	c := seedCatalog(t, db)
	svc := NewRoomService(db, clock)

	t.Run("create", func(t *testing.T) {
		_, err := svc.Create(ctx, RoomInput{RoomTypeID: c.Standard.ID})
		assert.EqualError(t, err, "All fields are required")

		v, err := svc.Create(ctx, RoomInput{RoomTypeID: c.Standard.ID, RoomName: strPtr("S3")})
		require.NoError(t, err)
		assert.True(t, v.IsActive)
		assert.Equal(t, models.RoomStatusAvailable, v.Status)

		_, err = svc.Create(ctx, RoomInput{RoomTypeID: c.Standard.ID, RoomName: strPtr("S3")})
		assert.EqualError(t, err, `Room "S3" already exists for Standard`)

		// names are unique per type only
		_, err = svc.Create(ctx, RoomInput{RoomTypeID: c.Deluxe.ID, RoomName: strPtr("S3")})
		assert.NoError(t, err)

		_, err = svc.Create(ctx, RoomInput{RoomTypeID: 9999, RoomName: strPtr("X1")})
		assert.True(t, IsNotFound(err))
	})

	t.Run("update", func(t *testing.T) {
		_, err := svc.Update(ctx, c.S1.ID, RoomInput{RoomName: strPtr("S2")})
		assert.EqualError(t, err, `Room "S2" already exists for Standard`)

		v, err := svc.Update(ctx, c.S1.ID, RoomInput{IsActive: boolPtr(false)})
		require.NoError(t, err)
		assert.Equal(t, models.RoomStatusInactive, v.Status)
		assert.Equal(t, "S1", v.RoomName)
	})

	t.Run("list and rooms for type", func(t *testing.T) {
		rooms, err := svc.List(ctx, c.Standard.ID)
		require.NoError(t, err)
		assert.Len(t, rooms, 3)

		grouped, err := svc.RoomsForType(ctx, c.Standard.ID, true)
		require.NoError(t, err)
		assert.Equal(t, "Standard", grouped.RoomTypeName)
		for _, r := range grouped.Rooms {
			assert.NotEqual(t, "S1", r.RoomName, "inactive rooms are not listed")
		}

		_, err = svc.RoomsForType(ctx, 9999, false)
		assert.True(t, IsNotFound(err))
	})

	t.Run("delete", func(t *testing.T) {
		insertReservation(t, db, c.Standard, &c.S2, models.StatusWaitingCheckin, day(2025, 3, 1), day(2025, 3, 2))
		_, err := svc.Delete(ctx, c.S2.ID)
		assert.EqualError(t, err, `Cannot delete room "S2" as it has active reservations`)

		done := insertReservation(t, db, c.Deluxe, &c.D1, models.StatusCheckedOut, day(2025, 1, 1), day(2025, 1, 2))
		name, err := svc.Delete(ctx, c.D1.ID)
		require.NoError(t, err)
		assert.Equal(t, "D1", name)

		var kept models.Reservation
		require.NoError(t, db.First(&kept, done.ID).Error)
		assert.Nil(t, kept.RoomID)
		assert.True(t, kept.TotalAmount.Equal(done.TotalAmount))
	})
}

func TestCustomerService(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, day(2025, 2, 15))
	svc := NewCustomerService(f.DB)

	first := f.book(t, "regular@example.com", f.Catalog.Standard, day(2025, 3, 1), day(2025, 3, 2))
	f.book(t, "regular@example.com", f.Catalog.Deluxe, day(2025, 4, 1), day(2025, 4, 2))
	f.book(t, "once@example.com", f.Catalog.Standard, day(2025, 5, 1), day(2025, 5, 2))

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	found, err := svc.List(ctx, "REGULAR")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, 2, found[0].TotalReservations)
	assert.True(t, found[0].IsRegularGuest)

	one, err := svc.Get(ctx, first.CustomerID)
	require.NoError(t, err)
	assert.Equal(t, "regular@example.com", one.Email)
	require.Len(t, one.Reservations, 2)
	assert.NotEmpty(t, one.Reservations[0].RoomType.Name)

	_, err = svc.Get(ctx, 9999)
	assert.True(t, IsNotFound(err))
}

func TestRoomServiceReportsStatusFailure(t *testing.T) {
	ctx := context.Background()
	clock := FixedClock{At: day(2025, 2, 15)}
	db := newTestDB(t, clock)
	c := seedCatalog(t, db)
	svc := NewRoomService(db, clock)

	require.NoError(t, db.Migrator().DropTable(&models.CheckIn{}, &models.CheckOut{}, &models.Reservation{}))

	_, err := svc.Update(ctx, c.S1.ID, RoomInput{RoomName: strPtr("S1A")})
	assert.Error(t, err)

	_, err = svc.Create(ctx, RoomInput{RoomTypeID: c.Standard.ID, RoomName: strPtr("S9")})
	assert.Error(t, err)
}

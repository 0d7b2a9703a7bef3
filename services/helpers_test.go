package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"lodge-backend/config"
	"lodge-backend/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// newTestDB opens a private in-memory sqlite database whose gorm clock is
// the given clock, so created_at values line up with the fixed "today".
func newTestDB(t *testing.T, clock Clock) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		NowFunc:        func() time.Time { return clock.Now().UTC() },
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, config.Migrate(db))
	return db
}

type catalog struct {
	Standard models.RoomType
	Deluxe   models.RoomType
	S1, S2   models.Room
	D1       models.Room
}

// seedCatalog creates Standard (50000/day, rooms S1 S2) and Deluxe (80000/day, room D1).
func seedCatalog(t *testing.T, db *gorm.DB) catalog {
	t.Helper()
	var c catalog
	c.Standard = models.RoomType{Name: "Standard", PricePerDay: decimal.NewFromInt(50000), TotalRooms: 2, IsActive: true}
	c.Deluxe = models.RoomType{Name: "Deluxe", PricePerDay: decimal.NewFromInt(80000), TotalRooms: 1, IsActive: true}
	require.NoError(t, db.Omit("Rooms").Create(&c.Standard).Error)
	require.NoError(t, db.Omit("Rooms").Create(&c.Deluxe).Error)

	c.S1 = models.Room{RoomTypeID: c.Standard.ID, RoomName: "S1", IsActive: true}
	c.S2 = models.Room{RoomTypeID: c.Standard.ID, RoomName: "S2", IsActive: true}
	c.D1 = models.Room{RoomTypeID: c.Deluxe.ID, RoomName: "D1", IsActive: true}
	for _, r := range []*models.Room{&c.S1, &c.S2, &c.D1} {
		require.NoError(t, db.Omit("RoomType").Create(r).Error)
	}
	return c
}

var guestSeq atomic.Int64

// insertReservation writes a reservation directly, bypassing the workflows.
func insertReservation(t *testing.T, db *gorm.DB, rt models.RoomType, room *models.Room, status models.ReservationStatus, in, out time.Time) models.Reservation {
	t.Helper()
	n := guestSeq.Add(1)
	customer := models.Customer{
		Email:            fmt.Sprintf("guest%d@example.com", n),
		FullName:         "Direct Guest",
		PhoneNumber:      "0700000000",
		Nationality:      "Tanzania",
		IDType:           models.IDTypeNationalID,
		IDPassportNumber: fmt.Sprintf("ID%d", n),
	}
	require.NoError(t, db.Omit("Reservations").Create(&customer).Error)

	r := models.Reservation{
		CustomerID:     customer.ID,
		RoomTypeID:     rt.ID,
		RoomType:       rt,
		NumberOfGuests: 1,
		PurposeOfVisit: models.PurposeLeisure,
		Status:         status,
		PaymentStatus:  models.PaymentNotPaid,
	}
	r.SetStay(in, out)
	if room != nil {
		r.AssignRoom(room)
	}
	require.NoError(t, db.Omit("Customer", "RoomType", "Room", "CheckInRecord", "CheckOutRecord").Create(&r).Error)
	return r
}

type fakeNotifier struct {
	mu       sync.Mutex
	bookings []string
}

func (f *fakeNotifier) NotifyNewBooking(r *models.Reservation) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bookings = append(f.bookings, r.BookingID)
}

type fakePublisher struct {
	mu       sync.Mutex
	subjects []string
	messages [][]byte
	err      error
}

func (f *fakePublisher) Publish(ctx context.Context, subject string, msg []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subjects = append(f.subjects, subject)
	f.messages = append(f.messages, msg)
	return f.err
}

func (f *fakePublisher) Close() error { return nil }

type fixture struct {
	DB        *gorm.DB
	Clock     FixedClock
	Catalog   catalog
	Notifier  *fakeNotifier
	Publisher *fakePublisher
	Svc       *ReservationService
}

func newFixture(t *testing.T, today time.Time) *fixture {
	t.Helper()
	clock := FixedClock{At: today.Add(10 * time.Hour)}
	db := newTestDB(t, clock)
	f := &fixture{
		DB:        db,
		Clock:     clock,
		Catalog:   seedCatalog(t, db),
		Notifier:  &fakeNotifier{},
		Publisher: &fakePublisher{},
	}
	f.Svc = NewReservationService(db, clock, NewPhotoStore(t.TempDir()), f.Notifier, NewEventEmitter(f.Publisher))
	return f
}

func (f *fixture) book(t *testing.T, email string, rt models.RoomType, in, out time.Time) *models.Reservation {
	t.Helper()
	res, err := f.Svc.CreateBooking(context.Background(), BookingRequest{
		FullName:       "Asha Mushi",
		Email:          email,
		PhoneNumber:    "0712345678",
		RoomTypeID:     rt.ID,
		CheckInDate:    in,
		CheckOutDate:   out,
		NumberOfGuests: 2,
	})
	require.NoError(t, err)
	return res
}

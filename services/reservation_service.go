// services/reservation_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"lodge-backend/models"
	"lodge-backend/utils"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingNotifier is told about every new public booking.
type BookingNotifier interface {
	NotifyNewBooking(r *models.Reservation)
}

// ReservationService drives reservations through their lifecycle.
// Every front-desk action runs in one transaction; rooms are locked
// before the availability re-check so two desks cannot hand out the
// same room for overlapping stays.
type ReservationService struct {
	DB           *gorm.DB
	Clock        Clock
	Availability *Availability
	Photos       *PhotoStore
	Notifier     BookingNotifier
	Events       *EventEmitter

	DefaultNationality string
}

func NewReservationService(db *gorm.DB, clock Clock, photos *PhotoStore, notifier BookingNotifier, events *EventEmitter) *ReservationService {
	if events == nil {
		events = NewEventEmitter(nil)
	}
	return &ReservationService{
		DB:                 db,
		Clock:              clock,
		Availability:       NewAvailability(clock),
		Photos:             photos,
		Notifier:           notifier,
		Events:             events,
		DefaultNationality: "Tanzania",
	}
}

// ---------------------------------------------------------------------
// Commands
// ---------------------------------------------------------------------

// BookingRequest is a public booking. RoomTypeID wins over RoomTypeName.
type BookingRequest struct {
	FullName        string    `validate:"required,max=200"`
	Email           string    `validate:"required,email,max=191"`
	PhoneNumber     string    `validate:"required,max=20"`
	RoomTypeID      uint
	RoomTypeName    string    `validate:"required_without=RoomTypeID"`
	CheckInDate     time.Time `validate:"required"`
	CheckOutDate    time.Time `validate:"required"`
	NumberOfGuests  int       `validate:"min=1,max=10"`
	IDType          string    `validate:"omitempty,oneof=national_id passport other"`
	GuestOrigin     string    `validate:"max=200"`
	PurposeOfVisit  string    `validate:"omitempty,oneof=leisure business other"`
	SpecialRequests string
}

// CheckInUpdate carries the fields staff may correct while checking in an
// existing reservation. nil means "leave as is".
type CheckInUpdate struct {
	Email            *string `validate:"omitempty,email,max=191"`
	FullName         *string `validate:"omitempty,min=1,max=200"`
	PhoneNumber      *string `validate:"omitempty,max=20"`
	Nationality      *string `validate:"omitempty,max=100"`
	IDType           *string `validate:"omitempty,oneof=national_id passport other"`
	OtherIDName      *string `validate:"omitempty,max=100"`
	IDPassportNumber *string `validate:"omitempty,min=1,max=191"`
	IDPassportPhoto  string

	CheckInDate     *time.Time
	CheckOutDate    *time.Time
	NumberOfGuests  *int    `validate:"omitempty,min=1,max=10"`
	PurposeOfVisit  *string `validate:"omitempty,oneof=leisure business other"`
	SpecialRequests *string
	PaymentStatus   *string `validate:"omitempty,oneof=paid not_paid partial"`
	RoomID          *uint

	RoomKeyGiven     *bool
	WelcomePackGiven *bool
	AdditionalNotes  string
	CheckedInBy      string `validate:"max=100"`
}

// WalkInRequest creates a reservation directly in checked_in.
type WalkInRequest struct {
	Email            string `validate:"required,email,max=191"`
	FullName         string `validate:"required,max=200"`
	PhoneNumber      string `validate:"required,max=20"`
	Nationality      string `validate:"required,max=100"`
	IDType           string `validate:"required,oneof=national_id passport other"`
	OtherIDName      string `validate:"max=100"`
	IDPassportNumber string `validate:"required,max=191"`
	GuestOrigin      string `validate:"max=200"`
	IDPassportPhoto  string

	RoomID          uint      `validate:"required"`
	CheckInDate     time.Time `validate:"required"`
	CheckOutDate    time.Time `validate:"required"`
	NumberOfGuests  int       `validate:"required,min=1,max=10"`
	PurposeOfVisit  string    `validate:"omitempty,oneof=leisure business other"`
	SpecialRequests string
	PaymentStatus   string `validate:"omitempty,oneof=paid not_paid partial"`

	RoomKeyGiven     *bool
	WelcomePackGiven *bool
	AdditionalNotes  string
	CheckedInBy      string `validate:"max=100"`
}

// CheckoutRequest finalizes a stay. Zero values fall back to the desk defaults:
// key returned, room in good condition, no extra charges, paid cash.
type CheckoutRequest struct {
	RoomKeyReturned   *bool
	RoomCondition     string `validate:"omitempty,oneof=excellent good fair poor damaged"`
	AdditionalCharges decimal.Decimal
	PaymentMethod     string `validate:"omitempty,oneof=cash card bank_transfer mobile_money"`
	AdditionalNotes   string
	CheckedOutBy      string `validate:"max=100"`
}

// PurgeResult tells what the cancel-and-purge workflow removed.
type PurgeResult struct {
	BookingID       string `json:"booking_id"`
	CustomerDeleted bool   `json:"customer_deleted"`
}

// ReservationFilter narrows List.
type ReservationFilter struct {
	Statuses []string
	Search string
	Limit  int
	Offset int
}

// ---------------------------------------------------------------------
// Queries
// ---------------------------------------------------------------------

func withDetails(db *gorm.DB) *gorm.DB {
	return db.Preload("Customer").
		Preload("RoomType").
		Preload("Room").
		Preload("CheckInRecord").
		Preload("CheckOutRecord")
}

// Get loads a reservation with customer, room type, room and satellite records.
func (s *ReservationService) Get(ctx context.Context, id uint) (*models.Reservation, error) {
	var r models.Reservation
	if err := withDetails(s.DB.WithContext(ctx)).First(&r, id).Error; err != nil {
		return nil, lookupErr("Reservation", err)
	}
	return &r, nil
}

// GetByBookingID is Get keyed by the public booking reference (case-insensitive).
func (s *ReservationService) GetByBookingID(ctx context.Context, bookingID string) (*models.Reservation, error) {
	var r models.Reservation
	err := withDetails(s.DB.WithContext(ctx)).
		Where("booking_id = ?", utils.NormalizeBookingID(bookingID)).
		First(&r).Error
	if err != nil {
		return nil, lookupErr("Reservation", err)
	}
	return &r, nil
}

// List returns reservations newest first.
func (s *ReservationService) List(ctx context.Context, f ReservationFilter) ([]models.Reservation, int64, error) {
	q := s.DB.WithContext(ctx).Model(&models.Reservation{})
	if len(f.Statuses) > 0 {
		q = q.Where("reservations.status IN ?", f.Statuses)
	}
	if term := strings.TrimSpace(f.Search); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Joins("JOIN customers ON customers.id = reservations.customer_id").
			Where("LOWER(reservations.booking_id) LIKE ? OR LOWER(customers.full_name) LIKE ? OR LOWER(customers.email) LIKE ?",
				like, like, like)
	}

	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reservations: %w", err)
	}

	limit := f.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var out []models.Reservation
	err := withDetails(q).
		Order("reservations.created_at DESC").
		Order("reservations.id DESC").
		Limit(limit).
		Offset(f.Offset).
		Find(&out).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reservations: %w", err)
	}
	return out, total, nil
}

// AvailableRoomsFor lists the rooms of the reservation's type that are free for its stay.
func (s *ReservationService) AvailableRoomsFor(ctx context.Context, reservationID uint) (*models.Reservation, []models.Room, error) {
	r, err := s.Get(ctx, reservationID)
	if err != nil {
		return nil, nil, err
	}
	rooms, err := s.Availability.AvailableRoomsForDates(s.DB.WithContext(ctx), r.RoomTypeID, r.ArrivalDate(), r.DepartureDate(), r.ID)
	if err != nil {
		return nil, nil, err
	}
	return r, rooms, nil
}

// ---------------------------------------------------------------------
// Transitions
// ---------------------------------------------------------------------

// CreateBooking registers a public booking in pending. The customer is
// upserted by email. The admin SMS and the created event go out after commit
// and never fail the booking.
func (s *ReservationService) CreateBooking(ctx context.Context, req BookingRequest) (*models.Reservation, error) {
	if err := validateCommand(req); err != nil {
		return nil, err
	}
	if err := checkStay(req.CheckInDate, req.CheckOutDate); err != nil {
		return nil, err
	}

	var res models.Reservation
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rt, err := resolveRoomType(tx, req.RoomTypeID, req.RoomTypeName)
		if err != nil {
			return err
		}

		email := strings.TrimSpace(req.Email)
		customer, err := upsertCustomerByEmail(tx, email, func(c *models.Customer, created bool) {
			c.FullName = strings.TrimSpace(req.FullName)
			c.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
			c.GuestOrigin = strings.TrimSpace(req.GuestOrigin)
			if created {
				c.Nationality = s.nationality()
				c.IDType = orDefault(req.IDType, models.IDTypeNationalID)
				// replaced with the real document number at check-in
				c.IDPassportNumber = "TEMP_" + email
			}
		})
		if err != nil {
			return err
		}

		res = models.Reservation{
			CustomerID:      customer.ID,
			RoomTypeID:      rt.ID,
			RoomType:        rt,
			NumberOfGuests:  req.NumberOfGuests,
			PurposeOfVisit:  orDefault(req.PurposeOfVisit, models.PurposeLeisure),
			SpecialRequests: strings.TrimSpace(req.SpecialRequests),
			Status:          models.StatusPending,
			PaymentStatus:   models.PaymentNotPaid,
		}
		res.SetStay(req.CheckInDate, req.CheckOutDate)
		if err := tx.Omit(clause.Associations).Create(&res).Error; err != nil {
			return fmt.Errorf("failed to create reservation: %w", err)
		}
		res.Customer = customer
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("📝 New booking %s for %s (%s, %s → %s)", res.BookingID, res.Customer.FullName,
		res.RoomType.Name, utils.FormatDate(res.ArrivalDate()), utils.FormatDate(res.DepartureDate()))

	if s.Notifier != nil {
		s.Notifier.NotifyNewBooking(&res)
	}
	s.Events.Emit(ctx, EventReservationCreated, &res, s.Clock.Now())
	return &res, nil
}

// Confirm assigns a room to a pending reservation and moves it to
// waiting_checkin. The room must belong to the reservation's room type and be
// free for the whole stay.
func (s *ReservationService) Confirm(ctx context.Context, reservationID, roomID uint) (*models.Reservation, error) {
	if roomID == 0 {
		return nil, guard("Room ID is required")
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res, err := lockReservation(tx, "id = ?", reservationID)
		if err != nil {
			return err
		}
		if res.Status != models.StatusPending && res.Status != models.StatusConfirmed {
			return guard("Reservation cannot be confirmed. Current status: %s", res.Status)
		}

		room, err := s.claimRoom(tx, roomID, res)
		if err != nil {
			return err
		}

		now := s.Clock.Now()
		res.AssignRoom(&room)
		res.Status = models.StatusWaitingCheckin
		res.ConfirmedAt = &now
		return saveReservation(tx, res)
	})
	if err != nil {
		return nil, err
	}

	out, err := s.Get(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	log.Printf("✅ Reservation %s confirmed, room %s", out.BookingID, out.RoomName())
	s.Events.Emit(ctx, EventReservationConfirmed, out, s.Clock.Now())
	return out, nil
}

// CheckInExisting moves a waiting_checkin reservation to checked_in, applying
// any corrections from upd. A changed room or stay is re-checked for overlaps.
func (s *ReservationService) CheckInExisting(ctx context.Context, reservationID uint, upd CheckInUpdate) (*models.Reservation, error) {
	if err := validateCommand(upd); err != nil {
		return nil, err
	}

	var savedPhoto string
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res, err := lockReservation(tx, "id = ?", reservationID)
		if err != nil {
			return err
		}
		if res.Status != models.StatusWaitingCheckin {
			return guard("Reservation is not waiting for check-in. Current status: %s", res.Status)
		}

		var customer models.Customer
		if err := tx.First(&customer, res.CustomerID).Error; err != nil {
			return lookupErr("Customer", err)
		}
		if changed := applyCustomerUpdate(&customer, upd); changed || upd.IDPassportPhoto != "" {
			if upd.IDPassportPhoto != "" {
				path, err := s.savePhoto(upd.IDPassportPhoto)
				if err != nil {
					return err
				}
				savedPhoto = path
				customer.IDPassportPhoto = path
			}
			if err := tx.Omit(clause.Associations).Save(&customer).Error; err != nil {
				if isDuplicateKey(err) {
					return guard("Another customer already uses this email or ID/passport number")
				}
				return fmt.Errorf("failed to update customer: %w", err)
			}
		}

		in, out := res.ArrivalDate(), res.DepartureDate()
		if upd.CheckInDate != nil {
			in = utils.DateOnly(*upd.CheckInDate)
		}
		if upd.CheckOutDate != nil {
			out = utils.DateOnly(*upd.CheckOutDate)
		}
		stayChanged := !in.Equal(res.ArrivalDate()) || !out.Equal(res.DepartureDate())
		if stayChanged {
			if err := checkStay(in, out); err != nil {
				return err
			}
			res.SetStay(in, out)
		}

		switch {
		case upd.RoomID != nil && *upd.RoomID != 0:
			room, err := s.claimRoom(tx, *upd.RoomID, res)
			if err != nil {
				return err
			}
			res.AssignRoom(&room)
		default:
			roomID, ok := res.AssignedRoomID()
			if !ok {
				return guard("Room ID is required")
			}
			if stayChanged {
				room, err := s.claimRoom(tx, roomID, res)
				if err != nil {
					return err
				}
				res.AssignRoom(&room)
			}
		}

		if upd.NumberOfGuests != nil {
			res.NumberOfGuests = *upd.NumberOfGuests
		}
		if upd.PurposeOfVisit != nil {
			res.PurposeOfVisit = *upd.PurposeOfVisit
		}
		if upd.SpecialRequests != nil {
			res.SpecialRequests = strings.TrimSpace(*upd.SpecialRequests)
		}
		if upd.PaymentStatus != nil {
			res.PaymentStatus = *upd.PaymentStatus
		}
		res.Status = models.StatusCheckedIn
		if err := saveReservation(tx, res); err != nil {
			return err
		}

		return tx.Create(&models.CheckIn{
			ReservationID:    res.ID,
			CheckInTime:      s.Clock.Now(),
			RoomKeyGiven:     boolOr(upd.RoomKeyGiven, true),
			WelcomePackGiven: boolOr(upd.WelcomePackGiven, false),
			AdditionalNotes:  strings.TrimSpace(upd.AdditionalNotes),
			CheckedInBy:      orDefault(strings.TrimSpace(upd.CheckedInBy), "Front Desk"),
		}).Error
	})
	if err != nil {
		s.discardPhoto(savedPhoto)
		return nil, err
	}

	out, err := s.Get(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	log.Printf("🛎️  Reservation %s checked in, room %s", out.BookingID, out.RoomName())
	s.Events.Emit(ctx, EventReservationCheckedIn, out, s.Clock.Now())
	return out, nil
}

// WalkIn registers a guest at the desk and checks them straight in.
// The room must be free for the whole stay.
func (s *ReservationService) WalkIn(ctx context.Context, req WalkInRequest) (*models.Reservation, error) {
	if err := validateCommand(req); err != nil {
		return nil, err
	}
	if err := checkStay(req.CheckInDate, req.CheckOutDate); err != nil {
		return nil, err
	}

	photoPath := ""
	if req.IDPassportPhoto != "" {
		p, err := s.savePhoto(req.IDPassportPhoto)
		if err != nil {
			return nil, err
		}
		photoPath = p
	}

	var resID uint
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		customer, err := upsertCustomerByEmail(tx, req.Email, func(c *models.Customer, _ bool) {
			c.FullName = strings.TrimSpace(req.FullName)
			c.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
			c.Nationality = strings.TrimSpace(req.Nationality)
			c.IDType = req.IDType
			c.OtherIDName = strings.TrimSpace(req.OtherIDName)
			c.IDPassportNumber = strings.TrimSpace(req.IDPassportNumber)
			c.GuestOrigin = strings.TrimSpace(req.GuestOrigin)
			if photoPath != "" {
				c.IDPassportPhoto = photoPath
			}
		})
		if err != nil {
			return err
		}

		res := &models.Reservation{
			CustomerID:      customer.ID,
			NumberOfGuests:  req.NumberOfGuests,
			PurposeOfVisit:  orDefault(req.PurposeOfVisit, models.PurposeLeisure),
			SpecialRequests: strings.TrimSpace(req.SpecialRequests),
			Status:          models.StatusCheckedIn,
			PaymentStatus:   orDefault(req.PaymentStatus, models.PaymentNotPaid),
		}
		res.SetStay(req.CheckInDate, req.CheckOutDate)

		room, err := lockRoom(tx, req.RoomID)
		if err != nil {
			return err
		}
		res.RoomTypeID = room.RoomTypeID
		res.RoomType = room.RoomType
		if err := s.ensureRoomFree(tx, room, res); err != nil {
			return err
		}
		res.AssignRoom(&room)

		if err := tx.Omit(clause.Associations).Create(res).Error; err != nil {
			if isRoomOverlap(err) {
				return guard("%s is not available for the selected dates", room.RoomName)
			}
			return fmt.Errorf("failed to create reservation: %w", err)
		}
		resID = res.ID

		return tx.Create(&models.CheckIn{
			ReservationID:    res.ID,
			CheckInTime:      s.Clock.Now(),
			RoomKeyGiven:     boolOr(req.RoomKeyGiven, true),
			WelcomePackGiven: boolOr(req.WelcomePackGiven, false),
			AdditionalNotes:  strings.TrimSpace(req.AdditionalNotes),
			CheckedInBy:      orDefault(strings.TrimSpace(req.CheckedInBy), "Front Desk"),
		}).Error
	})
	if err != nil {
		s.discardPhoto(photoPath)
		return nil, err
	}

	out, err := s.Get(ctx, resID)
	if err != nil {
		return nil, err
	}
	log.Printf("🛎️  Walk-in %s checked in, room %s", out.BookingID, out.RoomName())
	s.Events.Emit(ctx, EventReservationCreated, out, s.Clock.Now())
	s.Events.Emit(ctx, EventReservationCheckedIn, out, s.Clock.Now())
	return out, nil
}

// Checkout closes a checked_in reservation by internal id.
func (s *ReservationService) Checkout(ctx context.Context, reservationID uint, req CheckoutRequest) (*models.Reservation, error) {
	return s.checkout(ctx, "id = ?", reservationID, req)
}

// CheckoutByBookingID closes a checked_in reservation by booking reference.
func (s *ReservationService) CheckoutByBookingID(ctx context.Context, bookingID string, req CheckoutRequest) (*models.Reservation, error) {
	return s.checkout(ctx, "booking_id = ?", utils.NormalizeBookingID(bookingID), req)
}

func (s *ReservationService) checkout(ctx context.Context, where string, key interface{}, req CheckoutRequest) (*models.Reservation, error) {
	if err := validateCommand(req); err != nil {
		return nil, err
	}
	if req.AdditionalCharges.IsNegative() {
		return nil, guard("additional_charges must not be negative")
	}

	var resID uint
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res, err := lockReservation(tx, where, key)
		if err != nil {
			return err
		}
		resID = res.ID
		if res.Status != models.StatusCheckedIn {
			return guard("Reservation is not checked in. Current status: %s", res.Status)
		}

		var existing int64
		if err := tx.Model(&models.CheckOut{}).Where("reservation_id = ?", res.ID).Count(&existing).Error; err != nil {
			return fmt.Errorf("failed to check checkout record: %w", err)
		}
		if existing > 0 {
			return guard("Reservation has already been checked out")
		}

		record := models.CheckOut{
			ReservationID:     res.ID,
			CheckOutTime:      s.Clock.Now(),
			RoomKeyReturned:   boolOr(req.RoomKeyReturned, true),
			RoomCondition:     orDefault(req.RoomCondition, models.ConditionGood),
			AdditionalCharges: req.AdditionalCharges,
			PaymentMethod:     orDefault(req.PaymentMethod, models.PaymentMethodCash),
			AdditionalNotes:   strings.TrimSpace(req.AdditionalNotes),
			CheckedOutBy:      orDefault(strings.TrimSpace(req.CheckedOutBy), "Front Desk"),
		}
		if err := tx.Create(&record).Error; err != nil {
			if isDuplicateKey(err) {
				return guard("Reservation has already been checked out")
			}
			return fmt.Errorf("failed to create checkout record: %w", err)
		}

		res.Status = models.StatusCheckedOut
		return saveReservation(tx, res)
	})
	if err != nil {
		return nil, err
	}

	out, err := s.Get(ctx, resID)
	if err != nil {
		return nil, err
	}
	log.Printf("👋 Reservation %s checked out", out.BookingID)
	s.Events.Emit(ctx, EventReservationCheckedOut, out, s.Clock.Now())
	return out, nil
}

// Cancel cancels a booking that has not started yet. A checked_in, checked_out
// or cancelled reservation is always refused, and so is one whose check-in
// date is today or earlier.
func (s *ReservationService) Cancel(ctx context.Context, bookingID string) (*models.Reservation, error) {
	var resID uint
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res, err := lockReservation(tx, "booking_id = ?", utils.NormalizeBookingID(bookingID))
		if err != nil {
			return err
		}
		resID = res.ID

		switch res.Status {
		case models.StatusCheckedIn, models.StatusCancelled, models.StatusCheckedOut:
			return guard("Cannot cancel reservation. Current status: %s", res.Status)
		}
		if !res.ArrivalDate().After(Today(s.Clock)) {
			return guard("Cannot cancel reservation. Check-in date has passed")
		}

		res.Status = models.StatusCancelled
		return saveReservation(tx, res)
	})
	if err != nil {
		return nil, err
	}

	out, err := s.Get(ctx, resID)
	if err != nil {
		return nil, err
	}
	log.Printf("🚫 Reservation %s cancelled", out.BookingID)
	s.Events.Emit(ctx, EventReservationCancelled, out, s.Clock.Now())
	return out, nil
}

// Purge hard-deletes a reservation and its check-in/out records, then deletes
// the customer when no other reservation references them.
func (s *ReservationService) Purge(ctx context.Context, reservationID uint) (PurgeResult, error) {
	var (
		result    PurgeResult
		snapshot  models.Reservation
		photoPath string
	)
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res, err := lockReservation(tx, "id = ?", reservationID)
		if err != nil {
			return err
		}
		snapshot = *res
		result.BookingID = res.BookingID

		if err := tx.Where("reservation_id = ?", res.ID).Delete(&models.CheckIn{}).Error; err != nil {
			return fmt.Errorf("failed to delete check-in record: %w", err)
		}
		if err := tx.Where("reservation_id = ?", res.ID).Delete(&models.CheckOut{}).Error; err != nil {
			return fmt.Errorf("failed to delete checkout record: %w", err)
		}
		if err := tx.Delete(&models.Reservation{}, res.ID).Error; err != nil {
			return fmt.Errorf("failed to delete reservation: %w", err)
		}

		var others int64
		if err := tx.Model(&models.Reservation{}).Where("customer_id = ?", res.CustomerID).Count(&others).Error; err != nil {
			return fmt.Errorf("failed to count customer reservations: %w", err)
		}
		if others > 0 {
			return nil
		}

		var customer models.Customer
		if err := tx.First(&customer, res.CustomerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return fmt.Errorf("failed to load customer: %w", err)
		}
		if err := tx.Delete(&customer).Error; err != nil {
			return fmt.Errorf("failed to delete customer: %w", err)
		}
		photoPath = customer.IDPassportPhoto
		result.CustomerDeleted = true
		return nil
	})
	if err != nil {
		return PurgeResult{}, err
	}

	s.discardPhoto(photoPath)
	log.Printf("🗑️  Reservation %s purged (customer deleted: %v)", result.BookingID, result.CustomerDeleted)
	s.Events.Emit(ctx, EventReservationPurged, &snapshot, s.Clock.Now())
	return result, nil
}

// ---------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------

func lockReservation(tx *gorm.DB, where string, key interface{}) (*models.Reservation, error) {
	var r models.Reservation
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where(where, key).First(&r).Error
	if err != nil {
		return nil, lookupErr("Reservation", err)
	}
	return &r, nil
}

func lockRoom(tx *gorm.DB, roomID uint) (models.Room, error) {
	var room models.Room
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, roomID).Error
	if err != nil {
		return models.Room{}, lookupErr("Room", err)
	}
	if err := tx.First(&room.RoomType, room.RoomTypeID).Error; err != nil {
		return models.Room{}, lookupErr("Room type", err)
	}
	return room, nil
}

// claimRoom locks the room and checks it can host res for res's current stay.
func (s *ReservationService) claimRoom(tx *gorm.DB, roomID uint, res *models.Reservation) (models.Room, error) {
	room, err := lockRoom(tx, roomID)
	if err != nil {
		return models.Room{}, err
	}
	if room.RoomTypeID != res.RoomTypeID {
		return models.Room{}, guard("%s does not belong to the reserved room type", room.RoomName)
	}
	if err := s.ensureRoomFree(tx, room, res); err != nil {
		return models.Room{}, err
	}
	return room, nil
}

func (s *ReservationService) ensureRoomFree(tx *gorm.DB, room models.Room, res *models.Reservation) error {
	if !room.IsActive {
		return guard("%s is not active", room.RoomName)
	}
	free, err := s.Availability.IsRoomFree(tx, room, res.ArrivalDate(), res.DepartureDate(), res.ID)
	if err != nil {
		return err
	}
	if !free {
		return guard("%s is not available for the selected dates", room.RoomName)
	}
	return nil
}

func saveReservation(tx *gorm.DB, r *models.Reservation) error {
	if err := tx.Omit(clause.Associations).Save(r).Error; err != nil {
		if isRoomOverlap(err) {
			return guard("Room is not available for the selected dates")
		}
		return fmt.Errorf("failed to save reservation: %w", err)
	}
	return nil
}

// resolveRoomType finds an active room type by id, or by name: an exact
// case-insensitive match first, then a unique partial match.
func resolveRoomType(tx *gorm.DB, id uint, name string) (models.RoomType, error) {
	var rt models.RoomType
	if id != 0 {
		if err := tx.First(&rt, id).Error; err != nil {
			return models.RoomType{}, lookupErr("Room type", err)
		}
		if !rt.IsActive {
			return models.RoomType{}, guard("Room type %s is not available for booking", rt.Name)
		}
		return rt, nil
	}

	name = strings.ToLower(strings.TrimSpace(name))
	err := tx.Where("LOWER(name) = ? AND is_active = ?", name, true).First(&rt).Error
	if err == nil {
		return rt, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.RoomType{}, fmt.Errorf("failed to load room type: %w", err)
	}

	var matches []models.RoomType
	if err := tx.Where("LOWER(name) LIKE ? AND is_active = ?", "%"+name+"%", true).Limit(2).Find(&matches).Error; err != nil {
		return models.RoomType{}, fmt.Errorf("failed to load room type: %w", err)
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return models.RoomType{}, guard("Room type %q is not available", name)
	default:
		return models.RoomType{}, guard("Room type %q matches more than one room type", name)
	}
}

func applyCustomerUpdate(c *models.Customer, upd CheckInUpdate) bool {
	changed := false
	set := func(dst *string, src *string) {
		if src == nil {
			return
		}
		v := strings.TrimSpace(*src)
		if *dst != v {
			*dst = v
			changed = true
		}
	}
	set(&c.Email, upd.Email)
	set(&c.FullName, upd.FullName)
	set(&c.PhoneNumber, upd.PhoneNumber)
	set(&c.Nationality, upd.Nationality)
	set(&c.IDType, upd.IDType)
	set(&c.OtherIDName, upd.OtherIDName)
	set(&c.IDPassportNumber, upd.IDPassportNumber)
	return changed
}

func (s *ReservationService) savePhoto(data string) (string, error) {
	if s.Photos == nil {
		return "", errors.New("photo storage is not configured")
	}
	path, err := s.Photos.SaveBase64Image(data, IDPhotoDir)
	if err != nil {
		return "", guard("Error processing ID photo: %v", err)
	}
	return path, nil
}

func (s *ReservationService) discardPhoto(path string) {
	if path == "" || s.Photos == nil {
		return
	}
	if err := s.Photos.Remove(path); err != nil {
		log.Printf("⚠️  failed to remove id photo %s: %v", path, err)
	}
}

func (s *ReservationService) nationality() string {
	if s.DefaultNationality == "" {
		return "Tanzania"
	}
	return s.DefaultNationality
}

// checkStay refuses stays that end before the day they start. A same-day
// stay is a day-use booking billed as one night.
func checkStay(in, out time.Time) error {
	if utils.DateOnly(out).Before(utils.DateOnly(in)) {
		return guard("check_out_date cannot be before check_in_date")
	}
	return nil
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

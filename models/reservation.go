package models

import (
	"errors"
	"fmt"
	"time"

	"lodge-backend/pricing"
	"lodge-backend/utils"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ReservationStatus string

const (
	StatusPending        ReservationStatus = "pending"
	StatusConfirmed      ReservationStatus = "confirmed" // legacy, no longer produced
	StatusWaitingCheckin ReservationStatus = "waiting_checkin"
	StatusCheckedIn      ReservationStatus = "checked_in"
	StatusCheckedOut     ReservationStatus = "checked_out"
	StatusCancelled      ReservationStatus = "cancelled"
)

// OccupyingStatuses hold a room for their date range.
var OccupyingStatuses = []ReservationStatus{StatusWaitingCheckin, StatusCheckedIn, StatusConfirmed}

// StatusMessages is the guest-facing text for each status.
var StatusMessages = map[ReservationStatus]string{
	StatusPending:        "Your booking is pending confirmation. We will contact you soon.",
	StatusConfirmed:      "Your booking has been confirmed!",
	StatusWaitingCheckin: "Your booking is confirmed and waiting for check-in.",
	StatusCheckedIn:      "You are currently checked in. Enjoy your stay!",
	StatusCheckedOut:     "You have checked out. Thank you for staying with us!",
	StatusCancelled:      "Your booking has been cancelled.",
}

// IsTerminal reports whether no further transition is possible.
func (s ReservationStatus) IsTerminal() bool {
	return s == StatusCheckedOut || s == StatusCancelled
}

const (
	PurposeLeisure  = "leisure"
	PurposeBusiness = "business"
	PurposeOther    = "other"

	PaymentPaid    = "paid"
	PaymentNotPaid = "not_paid"
	PaymentPartial = "partial"
)

const maxBookingIDAttempts = 50

type Reservation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BookingID  string `gorm:"column:booking_id;size:6;uniqueIndex;not null" json:"booking_id"`
	CustomerID uint   `gorm:"column:customer_id;index;not null" json:"customer_id"`
	RoomTypeID uint   `gorm:"column:room_type_id;index;not null" json:"room_type_id"`
	// nil until a room is assigned at confirmation or check-in
	RoomID *uint `gorm:"column:room_id;index" json:"room_id"`

	CheckInDate  datatypes.Date `gorm:"column:check_in_date;type:date;not null;index" json:"check_in_date"`
	CheckOutDate datatypes.Date `gorm:"column:check_out_date;type:date;not null;index" json:"check_out_date"`

	NumberOfGuests  int               `gorm:"not null" json:"number_of_guests"`
	PurposeOfVisit  string            `gorm:"size:20;not null" json:"purpose_of_visit"`
	SpecialRequests string            `gorm:"type:text" json:"special_requests"`
	Status          ReservationStatus `gorm:"size:20;index;not null" json:"status"`
	TotalAmount     decimal.Decimal   `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	PaymentStatus   string            `gorm:"size:20;not null" json:"payment_status"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ConfirmedAt *time.Time `json:"confirmed_at"`

	Customer Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	RoomType RoomType `gorm:"foreignKey:RoomTypeID" json:"room_type,omitempty"`
	Room     *Room    `gorm:"foreignKey:RoomID" json:"room,omitempty"`

	CheckInRecord  *CheckIn  `gorm:"foreignKey:ReservationID" json:"check_in,omitempty"`
	CheckOutRecord *CheckOut `gorm:"foreignKey:ReservationID" json:"check_out,omitempty"`
}

// ArrivalDate is the check-in day as a UTC midnight time.
func (r *Reservation) ArrivalDate() time.Time {
	return utils.DateOnly(time.Time(r.CheckInDate))
}

// DepartureDate is the check-out day as a UTC midnight time.
func (r *Reservation) DepartureDate() time.Time {
	return utils.DateOnly(time.Time(r.CheckOutDate))
}

// SetStay normalizes both dates to calendar days.
func (r *Reservation) SetStay(checkIn, checkOut time.Time) {
	r.CheckInDate = datatypes.Date(utils.DateOnly(checkIn))
	r.CheckOutDate = datatypes.Date(utils.DateOnly(checkOut))
}

// DurationDays is the number of nights, never less than zero.
func (r *Reservation) DurationDays() int {
	n := pricing.Nights(r.ArrivalDate(), r.DepartureDate())
	if n < 0 {
		return 0
	}
	return n
}

// AssignedRoomID returns the room id when a room has been assigned.
func (r *Reservation) AssignedRoomID() (uint, bool) {
	if r.RoomID == nil || *r.RoomID == 0 {
		return 0, false
	}
	return *r.RoomID, true
}

// AssignedRoom returns the preloaded room when one has been assigned.
func (r *Reservation) AssignedRoom() (Room, bool) {
	id, ok := r.AssignedRoomID()
	if !ok || r.Room == nil || r.Room.ID != id {
		return Room{}, false
	}
	return *r.Room, true
}

// AssignRoom sets the room, or clears it when room is nil.
func (r *Reservation) AssignRoom(room *Room) {
	if room == nil {
		r.RoomID = nil
		r.Room = nil
		return
	}
	id := room.ID
	r.RoomID = &id
	r.Room = room
}

// RoomName is "" when no room is assigned.
func (r *Reservation) RoomName() string {
	if room, ok := r.AssignedRoom(); ok {
		return room.RoomName
	}
	return ""
}

// BeforeSave recomputes the total from the room type price and the stay dates.
func (r *Reservation) BeforeSave(tx *gorm.DB) error {
	if r.RoomTypeID == 0 {
		return errors.New("reservation: room type is required")
	}
	if time.Time(r.CheckInDate).IsZero() || time.Time(r.CheckOutDate).IsZero() {
		return errors.New("reservation: check-in and check-out dates are required")
	}

	price := r.RoomType.PricePerDay
	if r.RoomType.ID != r.RoomTypeID {
		var rt RoomType
		err := tx.Session(&gorm.Session{NewDB: true}).
			Select("id", "price_per_day").
			First(&rt, r.RoomTypeID).Error
		if err != nil {
			return fmt.Errorf("reservation: load room type %d: %w", r.RoomTypeID, err)
		}
		price = rt.PricePerDay
	}

	r.TotalAmount = pricing.ComputeTotal(price, r.ArrivalDate(), r.DepartureDate())
	return nil
}

// BeforeCreate assigns a booking id once. Existing ids are never replaced.
func (r *Reservation) BeforeCreate(tx *gorm.DB) error {
	if r.BookingID != "" {
		return nil
	}
	db := tx.Session(&gorm.Session{NewDB: true})
	for attempt := 0; attempt < maxBookingIDAttempts; attempt++ {
		code, err := utils.GenerateBookingID()
		if err != nil {
			return fmt.Errorf("reservation: generate booking id: %w", err)
		}
		var count int64
		if err := db.Model(&Reservation{}).Where("booking_id = ?", code).Count(&count).Error; err != nil {
			return fmt.Errorf("reservation: check booking id: %w", err)
		}
		if count == 0 {
			r.BookingID = code
			return nil
		}
	}
	return errors.New("reservation: could not find a free booking id")
}

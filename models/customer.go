// models/customer.go
package models

import (
	"time"
)

// ID document types accepted at the front desk.
const (
	IDTypeNationalID = "national_id"
	IDTypePassport   = "passport"
	IDTypeOther      = "other"
)

type Customer struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Email            string `gorm:"size:191;uniqueIndex;not null" json:"email"`
	FullName         string `gorm:"size:200;not null" json:"full_name"`
	PhoneNumber      string `gorm:"size:20" json:"phone_number"`
	Nationality      string `gorm:"size:100" json:"nationality"`
	IDType           string `gorm:"column:id_type;size:20" json:"id_type"`
	OtherIDName      string `gorm:"column:other_id_name;size:100" json:"other_id_name,omitempty"`
	IDPassportNumber string `gorm:"column:id_passport_number;size:191;uniqueIndex;not null" json:"id_passport_number"`
	// relative path under the upload dir, e.g. "customers/id_photos/xxx.jpg"
	IDPassportPhoto string `gorm:"column:id_passport_photo;size:255" json:"id_passport_photo,omitempty"`
	GuestOrigin     string `gorm:"size:200" json:"guest_origin"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Reservations []Reservation `gorm:"foreignKey:CustomerID" json:"reservations,omitempty"`
}

// IsRegularGuest reports whether the customer has booked more than once.
// Reservations must be preloaded.
func (c *Customer) IsRegularGuest() bool {
	return len(c.Reservations) > 1
}

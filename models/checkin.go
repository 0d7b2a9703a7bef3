package models

import "time"

// CheckIn records the hand-over when a guest arrives.
type CheckIn struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	ReservationID uint `gorm:"uniqueIndex;not null" json:"reservation_id"`

	CheckInTime      time.Time `gorm:"not null" json:"check_in_time"`
	RoomKeyGiven     bool      `gorm:"not null" json:"room_key_given"`
	WelcomePackGiven bool      `gorm:"not null" json:"welcome_pack_given"`
	AdditionalNotes  string    `gorm:"type:text" json:"additional_notes"`
	CheckedInBy      string    `gorm:"size:100" json:"checked_in_by"`

	CreatedAt time.Time `json:"created_at"`
}

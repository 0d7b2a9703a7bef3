package models

import "time"

const (
	SMSStatusPending = "PENDING"
	SMSStatusSent    = "SENT"
	SMSStatusFailed  = "FAILED"
)

// SMSNotification tracks one admin SMS attempt.
type SMSNotification struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	BookingID string `gorm:"size:6;index" json:"booking_id"`
	Recipient string `gorm:"size:20;not null" json:"recipient"`
	Message   string `gorm:"type:text" json:"message"`
	Status    string `gorm:"size:20;not null;index" json:"status"`
	Error     string `gorm:"type:text" json:"error,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	SentAt    *time.Time `json:"sent_at,omitempty"`
}

package models

import (
	"time"
)

// Room status values as shown on the front desk.
const (
	RoomStatusInactive  = "inactive"
	RoomStatusCheckedIn = "checked_in"
	RoomStatusReserved  = "reserved"
	RoomStatusAvailable = "available"
)

type Room struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// room_name is unique per room type, not globally
	RoomTypeID uint   `gorm:"column:room_type_id;not null;uniqueIndex:idx_room_type_room_name" json:"room_type_id"`
	RoomName   string `gorm:"column:room_name;size:100;not null;uniqueIndex:idx_room_type_room_name" json:"room_name"`
	IsActive   bool   `gorm:"column:is_active;not null" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	RoomType RoomType `gorm:"foreignKey:RoomTypeID" json:"room_type,omitempty"`
}

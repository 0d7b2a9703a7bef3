package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RoomType is a bookable category sharing one nightly price.
type RoomType struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string          `gorm:"size:100;uniqueIndex;not null" json:"name"`
	PricePerDay decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price_per_day"`
	TotalRooms  int             `gorm:"not null" json:"total_rooms"`
	Description string          `gorm:"type:text" json:"description"`
	IsActive    bool            `gorm:"not null" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// One-To-Many Relation: RoomType -> Rooms
	Rooms []Room `gorm:"foreignKey:RoomTypeID" json:"rooms,omitempty"`
}

const (
	MinTotalRooms = 1
	MaxTotalRooms = 100
)

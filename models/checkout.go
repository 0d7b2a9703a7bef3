package models

import (
	"fmt"
	"time"

	"lodge-backend/pricing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	ConditionExcellent = "excellent"
	ConditionGood      = "good"
	ConditionFair      = "fair"
	ConditionPoor      = "poor"
	ConditionDamaged   = "damaged"

	PaymentMethodCash         = "cash"
	PaymentMethodCard         = "card"
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodMobileMoney  = "mobile_money"
)

// CheckOut is the finalization record of a stay. One per reservation.
type CheckOut struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	ReservationID uint `gorm:"uniqueIndex;not null" json:"reservation_id"`

	CheckOutTime      time.Time       `gorm:"not null" json:"check_out_time"`
	RoomKeyReturned   bool            `gorm:"not null" json:"room_key_returned"`
	RoomCondition     string          `gorm:"size:20;not null" json:"room_condition"`
	AdditionalCharges decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"additional_charges"`
	FinalAmount       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"final_amount"`
	PaymentMethod     string          `gorm:"size:20;not null" json:"payment_method"`
	AdditionalNotes   string          `gorm:"type:text" json:"additional_notes"`
	CheckedOutBy      string          `gorm:"size:100" json:"checked_out_by"`

	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate fixes the final amount from the reservation total.
// It is not recomputed on later saves.
func (c *CheckOut) BeforeCreate(tx *gorm.DB) error {
	var res Reservation
	err := tx.Session(&gorm.Session{NewDB: true}).
		Select("id", "total_amount").
		First(&res, c.ReservationID).Error
	if err != nil {
		return fmt.Errorf("checkout: load reservation total: %w", err)
	}
	c.FinalAmount = pricing.ComputeFinal(res.TotalAmount, c.AdditionalCharges)
	return nil
}

// Package pricing holds the stay price rules shared by the models and services.
package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

// Nights returns the whole-day difference between two dates.
// Both values are truncated to their calendar day first.
func Nights(checkIn, checkOut time.Time) int {
	in := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), 0, 0, 0, 0, time.UTC)
	out := time.Date(checkOut.Year(), checkOut.Month(), checkOut.Day(), 0, 0, 0, 0, time.UTC)
	return int(out.Sub(in).Hours() / 24)
}

// ComputeTotal charges pricePerDay for every night of the stay.
// A stay of zero or negative nights is charged as one night.
// Guest count never affects the price.
func ComputeTotal(pricePerDay decimal.Decimal, checkIn, checkOut time.Time) decimal.Decimal {
	nights := Nights(checkIn, checkOut)
	if nights <= 0 {
		return pricePerDay
	}
	return pricePerDay.Mul(decimal.NewFromInt(int64(nights)))
}

// ComputeFinal is the amount billed at checkout.
func ComputeFinal(total, additionalCharges decimal.Decimal) decimal.Decimal {
	return total.Add(additionalCharges)
}

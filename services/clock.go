package services

import (
	"log"
	"time"

	"lodge-backend/utils"
)

// Clock is the single source of "now" for the booking rules.
type Clock interface {
	Now() time.Time
}

// SystemClock reads wall time in the lodge's time zone.
type SystemClock struct {
	Location *time.Location
}

// NewSystemClock falls back to UTC when the zone cannot be loaded.
func NewSystemClock(zone string) SystemClock {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		log.Printf("⚠️  unknown time zone %q, using UTC: %v", zone, err)
		loc = time.UTC
	}
	return SystemClock{Location: loc}
}

func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now().UTC()
	}
	return time.Now().In(c.Location)
}

// FixedClock always returns the same instant.
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time { return c.At }

// Today is the current calendar day in the clock's zone, as UTC midnight.
func Today(c Clock) time.Time {
	return utils.DateOnly(c.Now())
}

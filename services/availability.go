package services

import (
	"fmt"
	"time"

	"lodge-backend/models"
	"lodge-backend/utils"

	"gorm.io/gorm"
)

// Availability answers room and room-type availability questions.
//
// Two variants exist. The interval variant (IsRoomFree, AvailableRoomsForDates)
// checks a concrete stay and gates every booking decision. The snapshot variant
// (AvailableRoomsSnapshot, RoomStatus) looks at "today" only and feeds display.
type Availability struct {
	Clock Clock
}

func NewAvailability(clock Clock) *Availability {
	return &Availability{Clock: clock}
}

// overlapping selects reservations holding a room for any day of [in, out).
// A day-use stay (out == in) holds its single day.
func overlapping(db *gorm.DB, in, out time.Time) *gorm.DB {
	in, out = occupiedDays(in, out)
	return db.Model(&models.Reservation{}).
		Where("status IN ?", models.OccupyingStatuses).
		Where("check_in_date < ?", out).
		Where("check_out_date > ? OR (check_out_date <= check_in_date AND check_in_date >= ?)", in, in)
}

// occupiedDays widens an empty stay to the one day it is billed for.
func occupiedDays(in, out time.Time) (time.Time, time.Time) {
	in, out = utils.DateOnly(in), utils.DateOnly(out)
	if !out.After(in) {
		out = in.AddDate(0, 0, 1)
	}
	return in, out
}

// IsRoomFree reports whether room is active and has no occupying reservation
// overlapping [in, out). excludeReservationID lets a reservation ignore itself
// when its own room or dates change; pass 0 to exclude nothing.
func (a *Availability) IsRoomFree(db *gorm.DB, room models.Room, in, out time.Time, excludeReservationID uint) (bool, error) {
	if !room.IsActive {
		return false, nil
	}
	q := overlapping(db, in, out).Where("room_id = ?", room.ID)
	if excludeReservationID != 0 {
		q = q.Where("id <> ?", excludeReservationID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check room availability: %w", err)
	}
	return count == 0, nil
}

// AvailableRoomsForDates lists active rooms of the type with no overlapping
// occupying reservation in [in, out).
func (a *Availability) AvailableRoomsForDates(db *gorm.DB, roomTypeID uint, in, out time.Time, excludeReservationID uint) ([]models.Room, error) {
	taken := overlapping(db, in, out).
		Select("room_id").
		Where("room_id IS NOT NULL")
	if excludeReservationID != 0 {
		taken = taken.Where("id <> ?", excludeReservationID)
	}

	var rooms []models.Room
	err := db.Preload("RoomType").
		Where("room_type_id = ? AND is_active = ?", roomTypeID, true).
		Where("id NOT IN (?)", taken).
		Order("room_name ASC").
		Find(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list available rooms: %w", err)
	}
	return rooms, nil
}

// AvailableRoomsSnapshot is total_rooms minus reservations of the type that
// are active today (waiting_checkin/checked_in) or start in the future
// (waiting_checkin/confirmed). Never below zero. Display only.
func (a *Availability) AvailableRoomsSnapshot(db *gorm.DB, rt models.RoomType) (int, error) {
	today := Today(a.Clock)

	var active int64
	err := db.Model(&models.Reservation{}).
		Where("room_type_id = ?", rt.ID).
		Where("check_in_date <= ? AND check_out_date >= ?", today, today).
		Where("status IN ?", []models.ReservationStatus{models.StatusWaitingCheckin, models.StatusCheckedIn}).
		Count(&active).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count active reservations: %w", err)
	}

	var future int64
	err = db.Model(&models.Reservation{}).
		Where("room_type_id = ?", rt.ID).
		Where("check_in_date > ?", today).
		Where("status IN ?", []models.ReservationStatus{models.StatusWaitingCheckin, models.StatusConfirmed}).
		Count(&future).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count future reservations: %w", err)
	}

	available := rt.TotalRooms - int(active) - int(future)
	if available < 0 {
		return 0, nil
	}
	return available, nil
}

// RoomStatus classifies a room as of today. First match wins:
// inactive, checked_in (checked-in stay covering today), reserved
// (waiting_checkin covering today, or a future waiting_checkin/confirmed stay),
// available.
func (a *Availability) RoomStatus(db *gorm.DB, room models.Room) (string, error) {
	if !room.IsActive {
		return models.RoomStatusInactive, nil
	}
	today := Today(a.Clock)

	exists := func(q *gorm.DB) (bool, error) {
		var count int64
		if err := q.Count(&count).Error; err != nil {
			return false, fmt.Errorf("failed to read room status: %w", err)
		}
		return count > 0, nil
	}
	coveringToday := func(status models.ReservationStatus) *gorm.DB {
		return db.Model(&models.Reservation{}).
			Where("room_id = ? AND status = ?", room.ID, status).
			Where("check_in_date <= ? AND check_out_date >= ?", today, today)
	}

	if ok, err := exists(coveringToday(models.StatusCheckedIn)); err != nil || ok {
		return models.RoomStatusCheckedIn, err
	}
	if ok, err := exists(coveringToday(models.StatusWaitingCheckin)); err != nil || ok {
		return models.RoomStatusReserved, err
	}
	future := db.Model(&models.Reservation{}).
		Where("room_id = ? AND check_in_date > ?", room.ID, today).
		Where("status IN ?", []models.ReservationStatus{models.StatusWaitingCheckin, models.StatusConfirmed})
	if ok, err := exists(future); err != nil || ok {
		return models.RoomStatusReserved, err
	}
	return models.RoomStatusAvailable, nil
}

// RoomWithStatus is a room plus its status for listings.
type RoomWithStatus struct {
	ID       uint   `json:"id"`
	RoomName string `json:"room_name"`
	Status   string `json:"status"`
}

// RoomsWithStatus lists the active rooms of a type with their status.
// With onlyAvailable set, rooms that are not "available" are left out.
func (a *Availability) RoomsWithStatus(db *gorm.DB, roomTypeID uint, onlyAvailable bool) ([]RoomWithStatus, error) {
	var rooms []models.Room
	err := db.Where("room_type_id = ? AND is_active = ?", roomTypeID, true).
		Order("room_name ASC").
		Find(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	out := make([]RoomWithStatus, 0, len(rooms))
	for _, room := range rooms {
		status, err := a.RoomStatus(db, room)
		if err != nil {
			return nil, err
		}
		if onlyAvailable && status != models.RoomStatusAvailable {
			continue
		}
		out = append(out, RoomWithStatus{ID: room.ID, RoomName: room.RoomName, Status: status})
	}
	return out, nil
}

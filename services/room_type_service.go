package services

import (
	"context"
	"fmt"
	"strings"

	"lodge-backend/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RoomTypeService struct {
	DB           *gorm.DB
	Availability *Availability
}

func NewRoomTypeService(db *gorm.DB, clock Clock) *RoomTypeService {
	return &RoomTypeService{DB: db, Availability: NewAvailability(clock)}
}

// RoomTypeInput creates or edits a room type. On update nil fields are kept.
type RoomTypeInput struct {
	Name        *string          `validate:"omitempty,min=1,max=100"`
	PricePerDay *decimal.Decimal
	TotalRooms  *int             `validate:"omitempty,min=1,max=100"`
	Description *string
	IsActive    *bool
}

// RoomTypeView is a room type plus its today-snapshot of free rooms.
type RoomTypeView struct {
	models.RoomType
	AvailableRooms int `json:"available_rooms"`
}

func (s *RoomTypeService) view(db *gorm.DB, rt models.RoomType) (RoomTypeView, error) {
	n, err := s.Availability.AvailableRoomsSnapshot(db, rt)
	if err != nil {
		return RoomTypeView{}, err
	}
	return RoomTypeView{RoomType: rt, AvailableRooms: n}, nil
}

// List returns room types ordered by name; activeOnly hides inactive ones.
func (s *RoomTypeService) List(ctx context.Context, activeOnly bool) ([]RoomTypeView, error) {
	db := s.DB.WithContext(ctx)
	q := db.Order("name ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var types []models.RoomType
	if err := q.Find(&types).Error; err != nil {
		return nil, fmt.Errorf("failed to list room types: %w", err)
	}
	out := make([]RoomTypeView, 0, len(types))
	for _, rt := range types {
		v, err := s.view(db, rt)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *RoomTypeService) Get(ctx context.Context, id uint) (RoomTypeView, error) {
	db := s.DB.WithContext(ctx)
	var rt models.RoomType
	if err := db.First(&rt, id).Error; err != nil {
		return RoomTypeView{}, lookupErr("Room type", err)
	}
	return s.view(db, rt)
}

func (s *RoomTypeService) Create(ctx context.Context, in RoomTypeInput) (RoomTypeView, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return RoomTypeView{}, guard("name is required")
	}
	if in.PricePerDay == nil {
		return RoomTypeView{}, guard("price_per_day is required")
	}
	if in.TotalRooms == nil {
		return RoomTypeView{}, guard("total_rooms is required")
	}
	rt := models.RoomType{IsActive: true}
	if err := applyRoomTypeInput(&rt, in); err != nil {
		return RoomTypeView{}, err
	}

	db := s.DB.WithContext(ctx)
	if err := db.Omit("Rooms").Create(&rt).Error; err != nil {
		if isDuplicateKey(err) {
			return RoomTypeView{}, guard("Room type %q already exists", rt.Name)
		}
		return RoomTypeView{}, fmt.Errorf("failed to create room type: %w", err)
	}
	return s.view(db, rt)
}

func (s *RoomTypeService) Update(ctx context.Context, id uint, in RoomTypeInput) (RoomTypeView, error) {
	db := s.DB.WithContext(ctx)
	var rt models.RoomType
	if err := db.First(&rt, id).Error; err != nil {
		return RoomTypeView{}, lookupErr("Room type", err)
	}
	if err := applyRoomTypeInput(&rt, in); err != nil {
		return RoomTypeView{}, err
	}
	if err := db.Omit("Rooms").Save(&rt).Error; err != nil {
		if isDuplicateKey(err) {
			return RoomTypeView{}, guard("Room type %q already exists", rt.Name)
		}
		return RoomTypeView{}, fmt.Errorf("failed to update room type: %w", err)
	}
	return s.view(db, rt)
}

// Delete removes a room type with its rooms and finished reservations.
// It is refused while any pending, confirmed, waiting_checkin or checked_in
// reservation references the type.
func (s *RoomTypeService) Delete(ctx context.Context, id uint) (string, error) {
	var name string
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rt models.RoomType
		if err := tx.First(&rt, id).Error; err != nil {
			return lookupErr("Room type", err)
		}
		name = rt.Name

		var active int64
		err := tx.Model(&models.Reservation{}).
			Where("room_type_id = ?", rt.ID).
			Where("status IN ?", []models.ReservationStatus{
				models.StatusPending, models.StatusConfirmed, models.StatusWaitingCheckin, models.StatusCheckedIn,
			}).
			Count(&active).Error
		if err != nil {
			return fmt.Errorf("failed to count reservations: %w", err)
		}
		if active > 0 {
			return guard("Cannot delete room type %q as it has active reservations", rt.Name)
		}

		finished := tx.Model(&models.Reservation{}).Select("id").Where("room_type_id = ?", rt.ID)
		if err := tx.Where("reservation_id IN (?)", finished).Delete(&models.CheckIn{}).Error; err != nil {
			return fmt.Errorf("failed to delete check-in records: %w", err)
		}
		if err := tx.Where("reservation_id IN (?)", finished).Delete(&models.CheckOut{}).Error; err != nil {
			return fmt.Errorf("failed to delete checkout records: %w", err)
		}
		if err := tx.Where("room_type_id = ?", rt.ID).Delete(&models.Reservation{}).Error; err != nil {
			return fmt.Errorf("failed to delete reservations: %w", err)
		}
		if err := tx.Where("room_type_id = ?", rt.ID).Delete(&models.Room{}).Error; err != nil {
			return fmt.Errorf("failed to delete rooms: %w", err)
		}
		if err := tx.Delete(&rt).Error; err != nil {
			return fmt.Errorf("failed to delete room type: %w", err)
		}
		return nil
	})
	return name, err
}

func applyRoomTypeInput(rt *models.RoomType, in RoomTypeInput) error {
	if err := validateCommand(in); err != nil {
		return err
	}
	if in.Name != nil {
		rt.Name = strings.TrimSpace(*in.Name)
		if rt.Name == "" {
			return guard("name is required")
		}
	}
	if in.PricePerDay != nil {
		if in.PricePerDay.IsNegative() {
			return guard("price_per_day must not be negative")
		}
		rt.PricePerDay = in.PricePerDay.Round(2)
	}
	if in.TotalRooms != nil {
		rt.TotalRooms = *in.TotalRooms
	}
	if in.Description != nil {
		rt.Description = strings.TrimSpace(*in.Description)
	}
	if in.IsActive != nil {
		rt.IsActive = *in.IsActive
	}
	return nil
}

package services

import (
	"context"
	"fmt"
	"strings"

	"lodge-backend/models"

	"gorm.io/gorm"
)

type RoomService struct {
	DB           *gorm.DB
	Availability *Availability
}

func NewRoomService(db *gorm.DB, clock Clock) *RoomService {
	return &RoomService{DB: db, Availability: NewAvailability(clock)}
}

// RoomInput creates or edits a room. RoomTypeID is only read on create.
type RoomInput struct {
	RoomTypeID uint
	RoomName   *string `validate:"omitempty,max=100"`
	IsActive   *bool
}

// RoomView is a room with its status as of today.
type RoomView struct {
	models.Room
	Status string `json:"status"`
}

// RoomTypeRooms groups a type's rooms for the front desk.
type RoomTypeRooms struct {
	RoomTypeID   uint             `json:"room_type_id"`
	RoomTypeName string           `json:"room_type"`
	Rooms        []RoomWithStatus `json:"rooms"`
}

// List returns every room, optionally only those of one room type.
func (s *RoomService) List(ctx context.Context, roomTypeID uint) ([]RoomView, error) {
	db := s.DB.WithContext(ctx)
	q := db.Preload("RoomType").Order("room_type_id ASC").Order("room_name ASC")
	if roomTypeID != 0 {
		q = q.Where("room_type_id = ?", roomTypeID)
	}
	var rooms []models.Room
	if err := q.Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	out := make([]RoomView, 0, len(rooms))
	for _, room := range rooms {
		status, err := s.Availability.RoomStatus(db, room)
		if err != nil {
			return nil, err
		}
		out = append(out, RoomView{Room: room, Status: status})
	}
	return out, nil
}

// RoomsForType lists the active rooms of a type with their status. With
// onlyAvailable set, only rooms whose status is "available" are returned.
func (s *RoomService) RoomsForType(ctx context.Context, roomTypeID uint, onlyAvailable bool) (RoomTypeRooms, error) {
	db := s.DB.WithContext(ctx)
	var rt models.RoomType
	if err := db.First(&rt, roomTypeID).Error; err != nil {
		return RoomTypeRooms{}, lookupErr("Room type", err)
	}
	rooms, err := s.Availability.RoomsWithStatus(db, rt.ID, onlyAvailable)
	if err != nil {
		return RoomTypeRooms{}, err
	}
	return RoomTypeRooms{RoomTypeID: rt.ID, RoomTypeName: rt.Name, Rooms: rooms}, nil
}

func (s *RoomService) Create(ctx context.Context, in RoomInput) (RoomView, error) {
	if err := validateCommand(in); err != nil {
		return RoomView{}, err
	}
	if in.RoomTypeID == 0 || in.RoomName == nil || strings.TrimSpace(*in.RoomName) == "" {
		return RoomView{}, guard("All fields are required")
	}
	name := strings.TrimSpace(*in.RoomName)

	var room models.Room
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rt models.RoomType
		if err := tx.First(&rt, in.RoomTypeID).Error; err != nil {
			return lookupErr("Room type", err)
		}
		if err := ensureUniqueRoomName(tx, rt, name, 0); err != nil {
			return err
		}
		room = models.Room{RoomTypeID: rt.ID, RoomName: name, IsActive: true, RoomType: rt}
		if in.IsActive != nil {
			room.IsActive = *in.IsActive
		}
		if err := tx.Omit("RoomType").Create(&room).Error; err != nil {
			if isDuplicateKey(err) {
				return guard("Room %q already exists for %s", name, rt.Name)
			}
			return fmt.Errorf("failed to create room: %w", err)
		}
		return nil
	})
	if err != nil {
		return RoomView{}, err
	}
	return s.view(ctx, room)
}

func (s *RoomService) Update(ctx context.Context, id uint, in RoomInput) (RoomView, error) {
	if err := validateCommand(in); err != nil {
		return RoomView{}, err
	}
	var room models.Room
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("RoomType").First(&room, id).Error; err != nil {
			return lookupErr("Room", err)
		}
		if in.RoomName != nil {
			name := strings.TrimSpace(*in.RoomName)
			if name == "" {
				return guard("Room name is required")
			}
			if err := ensureUniqueRoomName(tx, room.RoomType, name, room.ID); err != nil {
				return err
			}
			room.RoomName = name
		}
		if in.IsActive != nil {
			room.IsActive = *in.IsActive
		}
		if err := tx.Omit("RoomType").Save(&room).Error; err != nil {
			if isDuplicateKey(err) {
				return guard("Room %q already exists for %s", room.RoomName, room.RoomType.Name)
			}
			return fmt.Errorf("failed to update room: %w", err)
		}
		return nil
	})
	if err != nil {
		return RoomView{}, err
	}
	return s.view(ctx, room)
}

// Delete refuses rooms held by a confirmed, waiting_checkin or checked_in
// reservation. Finished reservations keep their history with no room attached.
func (s *RoomService) Delete(ctx context.Context, id uint) (string, error) {
	var name string
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.First(&room, id).Error; err != nil {
			return lookupErr("Room", err)
		}
		name = room.RoomName

		var active int64
		err := tx.Model(&models.Reservation{}).
			Where("room_id = ?", room.ID).
			Where("status IN ?", models.OccupyingStatuses).
			Count(&active).Error
		if err != nil {
			return fmt.Errorf("failed to count reservations: %w", err)
		}
		if active > 0 {
			return guard("Cannot delete room %q as it has active reservations", room.RoomName)
		}

		err = tx.Session(&gorm.Session{SkipHooks: true}).
			Model(&models.Reservation{}).
			Where("room_id = ?", room.ID).
			Update("room_id", nil).Error
		if err != nil {
			return fmt.Errorf("failed to detach reservations: %w", err)
		}
		if err := tx.Delete(&room).Error; err != nil {
			return fmt.Errorf("failed to delete room: %w", err)
		}
		return nil
	})
	return name, err
}

func ensureUniqueRoomName(tx *gorm.DB, rt models.RoomType, name string, excludeID uint) error {
	q := tx.Model(&models.Room{}).Where("room_type_id = ? AND room_name = ?", rt.ID, name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return fmt.Errorf("failed to check room name: %w", err)
	}
	if n > 0 {
		return guard("Room %q already exists for %s", name, rt.Name)
	}
	return nil
}

func (s *RoomService) view(ctx context.Context, room models.Room) (RoomView, error) {
	status, err := s.Availability.RoomStatus(s.DB.WithContext(ctx), room)
	if err != nil {
		return RoomView{}, err
	}
	return RoomView{Room: room, Status: status}, nil
}

package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"staytrack/internal/adapters/persistence/models"
	"staytrack/internal/adapters/persistence/repositories"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Room errors
var (
	ErrRoomNotFound     = errors.New("room not found")
	ErrRoomNumberTaken  = errors.New("room number already exists")
	ErrRoomOccupied     = errors.New("room is currently occupied")
	ErrInvalidRoomType  = errors.New("invalid room type")
	ErrInvalidRoomPrice = errors.New("room price must be greater than zero")
)

// RoomService handles room registry business logic
type RoomService struct {
	roomRepo *repositories.RoomRepository
	userRepo repositories.UserRepository
}

// NewRoomService creates a new room service
func NewRoomService(roomRepo *repositories.RoomRepository, userRepo repositories.UserRepository) *RoomService {
	return &RoomService{
		roomRepo: roomRepo,
		userRepo: userRepo,
	}
}

// CreateRoomInput represents room creation input
type CreateRoomInput struct {
	RoomNumber   string   `json:"room_number" validate:"required,max=20"`
	Type         string   `json:"type"`
	PriceMonthly float64  `json:"price_monthly" validate:"required,gt=0"`
	PriceDaily   float64  `json:"price_daily"`
	Capacity     int      `json:"capacity"`
	Facilities   []string `json:"facilities"`
}

// UpdateRoomInput represents room update input. Nil fields stay unchanged.
type UpdateRoomInput struct {
	Type         *string  `json:"type"`
	PriceMonthly *float64 `json:"price_monthly"`
	PriceDaily   *float64 `json:"price_daily"`
	Capacity     *int     `json:"capacity"`
	Facilities   []string `json:"facilities"`
	Status       *string  `json:"status"`
}

// CreateRoom registers a new room for the creator's owner
func (s *RoomService) CreateRoom(ctx context.Context, creatorID uint, input *CreateRoomInput) (*models.Room, error) {
	// 1. Room number must be unique
	exists, err := s.roomRepo.ExistsByNumber(ctx, input.RoomNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrRoomNumberTaken
	}

	// 2. Validate type and price
	roomType := input.Type
	if roomType == "" {
		roomType = models.RoomTypeStandard
	}
	if !validRoomType(roomType) {
		return nil, ErrInvalidRoomType
	}
	if input.PriceMonthly <= 0 {
		return nil, ErrInvalidRoomPrice
	}

	capacity := input.Capacity
	if capacity <= 0 {
		capacity = 1
	}

	facilities, err := marshalFacilities(input.Facilities)
	if err != nil {
		return nil, err
	}

	// 3. Attribute the room to the creator's owner. Admins roll up
	// to the owner that registered them.
	ownerID, err := s.resolveOwnerID(ctx, creatorID)
	if err != nil {
		return nil, err
	}

	// 4. Create room, Price mirroring PriceMonthly
	room := &models.Room{
		RoomNumber:   input.RoomNumber,
		Type:         roomType,
		Price:        input.PriceMonthly,
		PriceMonthly: input.PriceMonthly,
		PriceDaily:   input.PriceDaily,
		Capacity:     capacity,
		Facilities:   facilities,
		Status:       models.RoomAvailable,
		OwnerID:      &ownerID,
	}
	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, err
	}

	// 5. Bump the owner's room counter
	if err := s.userRepo.AdjustOwnerCounter(ctx, ownerID, "room_count", 1); err != nil {
		log.Printf("⚠️ Failed to update room count for owner %d: %v", ownerID, err)
	}

	log.Printf("✅ Room created: %s (ID: %d)", room.RoomNumber, room.ID)
	return room, nil
}

// GetRoom gets a room by ID
func (s *RoomService) GetRoom(ctx context.Context, id uint) (*models.Room, error) {
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return room, nil
}

// ListRooms lists all rooms
func (s *RoomService) ListRooms(ctx context.Context) ([]*models.Room, error) {
	return s.roomRepo.List(ctx)
}

// UpdateRoom updates mutable room fields
func (s *RoomService) UpdateRoom(ctx context.Context, id uint, input *UpdateRoomInput) (*models.Room, error) {
	room, err := s.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Type != nil {
		if !validRoomType(*input.Type) {
			return nil, ErrInvalidRoomType
		}
		room.Type = *input.Type
	}
	if input.PriceMonthly != nil {
		if *input.PriceMonthly <= 0 {
			return nil, ErrInvalidRoomPrice
		}
		room.PriceMonthly = *input.PriceMonthly
		room.Price = *input.PriceMonthly
	}
	if input.PriceDaily != nil {
		room.PriceDaily = *input.PriceDaily
	}
	if input.Capacity != nil && *input.Capacity > 0 {
		room.Capacity = *input.Capacity
	}
	if input.Facilities != nil {
		facilities, err := marshalFacilities(input.Facilities)
		if err != nil {
			return nil, err
		}
		room.Facilities = facilities
	}
	if input.Status != nil {
		// Occupancy transitions belong to the tenant lifecycle, not here
		if *input.Status != models.RoomAvailable && *input.Status != models.RoomMaintenance {
			return nil, errors.New("status must be available or maintenance")
		}
		if room.Status == models.RoomOccupied {
			return nil, ErrRoomOccupied
		}
		room.Status = *input.Status
	}

	if err := s.roomRepo.Update(ctx, room); err != nil {
		return nil, err
	}

	log.Printf("✅ Room updated: %s (ID: %d)", room.RoomNumber, room.ID)
	return room, nil
}

// DeleteRoom deletes a room unless it is occupied
func (s *RoomService) DeleteRoom(ctx context.Context, callerID, id uint) error {
	room, err := s.GetRoom(ctx, id)
	if err != nil {
		return err
	}

	if room.Status == models.RoomOccupied {
		return ErrRoomOccupied
	}

	if err := s.roomRepo.Delete(ctx, id); err != nil {
		return err
	}

	// Decrement the counter of the owner the room belongs to, not the
	// caller. Rooms created before owner stamping fall back to the caller.
	ownerID := callerID
	if room.OwnerID != nil {
		ownerID = *room.OwnerID
	} else if resolved, err := s.resolveOwnerID(ctx, callerID); err == nil {
		ownerID = resolved
	}
	if err := s.userRepo.AdjustOwnerCounter(ctx, ownerID, "room_count", -1); err != nil {
		log.Printf("⚠️ Failed to update room count for owner %d: %v", ownerID, err)
	}

	log.Printf("✅ Room deleted: %s (ID: %d)", room.RoomNumber, room.ID)
	return nil
}

// resolveOwnerID maps the acting user to the owner account the action
// is attributed to. Owners act for themselves, admins for their owner.
func (s *RoomService) resolveOwnerID(ctx context.Context, userID uint) (uint, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	if user.Role == models.RoleAdmin && user.OwnerID != nil {
		return *user.OwnerID, nil
	}
	return user.ID, nil
}

func validRoomType(t string) bool {
	switch t {
	case models.RoomTypeStandard, models.RoomTypePremium, models.RoomTypeVIP:
		return true
	}
	return false
}

func marshalFacilities(facilities []string) (datatypes.JSON, error) {
	if facilities == nil {
		facilities = []string{}
	}
	raw, err := json.Marshal(facilities)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

package repositories

import (
	"context"

	"staytrack/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// RoomRepository handles room data access
type RoomRepository struct {
	db *gorm.DB
}

// NewRoomRepository creates a new room repository
func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// Create creates a new room
func (r *RoomRepository) Create(ctx context.Context, room *models.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

// GetByID gets a room by ID with its current tenant
func (r *RoomRepository) GetByID(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	err := r.db.WithContext(ctx).
		Preload("CurrentTenant").
		First(&room, id).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// List lists all rooms ordered by room number, current tenants preloaded
func (r *RoomRepository) List(ctx context.Context) ([]*models.Room, error) {
	var rooms []*models.Room
	err := r.db.WithContext(ctx).
		Preload("CurrentTenant").
		Order("room_number ASC").
		Find(&rooms).Error
	return rooms, err
}

// Update updates a room
func (r *RoomRepository) Update(ctx context.Context, room *models.Room) error {
	return r.db.WithContext(ctx).Save(room).Error
}

// Delete deletes a room
func (r *RoomRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Room{}, id).Error
}

// ExistsByNumber checks if a room number is already registered
func (r *RoomRepository) ExistsByNumber(ctx context.Context, roomNumber string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Room{}).
		Where("room_number = ?", roomNumber).
		Count(&count).Error
	return count > 0, err
}

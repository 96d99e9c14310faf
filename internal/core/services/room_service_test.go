package services

import (
	"context"
	"testing"

	"staytrack/internal/adapters/persistence/models"
	"staytrack/internal/adapters/persistence/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newRoomService(db *gorm.DB) *RoomService {
	return NewRoomService(repositories.NewRoomRepository(db), repositories.NewUserRepository(db))
}

// createTestOwner inserts an owner with a profile
func createTestOwner(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	owner := &models.User{
		Name:     "Test Owner",
		Email:    email,
		Password: "not-a-real-hash",
		Role:     models.RoleOwner,
		IsActive: true,
	}
	require.NoError(t, db.Create(owner).Error)
	require.NoError(t, db.Create(&models.OwnerProfile{UserID: owner.ID}).Error)
	return owner
}

func TestCreateRoomMirrorsLegacyPrice(t *testing.T) {
	db := setupTestDB(t)
	svc := newRoomService(db)
	owner := createTestOwner(t, db, "owner@test.local")

	room, err := svc.CreateRoom(context.Background(), owner.ID, &CreateRoomInput{
		RoomNumber:   "A-101",
		Type:         models.RoomTypePremium,
		PriceMonthly: 2000000,
		PriceDaily:   100000,
		Capacity:     2,
		Facilities:   []string{"ac", "wifi"},
	})
	require.NoError(t, err)

	assert.Equal(t, 2000000.0, room.Price)
	assert.Equal(t, 2000000.0, room.PriceMonthly)
	assert.Equal(t, models.RoomAvailable, room.Status)
	assert.JSONEq(t, `["ac","wifi"]`, string(room.Facilities))

	var profile models.OwnerProfile
	require.NoError(t, db.Where("user_id = ?", owner.ID).First(&profile).Error)
	assert.EqualValues(t, 1, profile.RoomCount)
}

func TestCreateRoomByAdminRollsUpToOwner(t *testing.T) {
	db := setupTestDB(t)
	svc := newRoomService(db)
	owner := createTestOwner(t, db, "owner@test.local")

	admin := &models.User{
		Name:     "Helper",
		Email:    "helper@test.local",
		Password: "not-a-real-hash",
		Role:     models.RoleAdmin,
		IsActive: true,
		OwnerID:  &owner.ID,
	}
	require.NoError(t, db.Create(admin).Error)

	room, err := svc.CreateRoom(context.Background(), admin.ID, &CreateRoomInput{
		RoomNumber:   "A-102",
		PriceMonthly: 1000000,
	})
	require.NoError(t, err)
	require.NotNil(t, room.OwnerID)
	assert.Equal(t, owner.ID, *room.OwnerID)

	var profile models.OwnerProfile
	require.NoError(t, db.Where("user_id = ?", owner.ID).First(&profile).Error)
	assert.EqualValues(t, 1, profile.RoomCount)

	// Admin-initiated delete rolls the same owner's counter back down
	require.NoError(t, svc.DeleteRoom(context.Background(), admin.ID, room.ID))
	var after models.OwnerProfile
	require.NoError(t, db.Where("user_id = ?", owner.ID).First(&after).Error)
	assert.EqualValues(t, 0, after.RoomCount)
}

func TestCreateRoomRejectsDuplicateNumber(t *testing.T) {
	db := setupTestDB(t)
	svc := newRoomService(db)
	owner := createTestOwner(t, db, "owner@test.local")

	_, err := svc.CreateRoom(context.Background(), owner.ID, &CreateRoomInput{
		RoomNumber:   "B-201",
		PriceMonthly: 1000000,
	})
	require.NoError(t, err)

	_, err = svc.CreateRoom(context.Background(), owner.ID, &CreateRoomInput{
		RoomNumber:   "B-201",
		PriceMonthly: 1200000,
	})
	assert.ErrorIs(t, err, ErrRoomNumberTaken)
}

func TestCreateRoomValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := newRoomService(db)
	owner := createTestOwner(t, db, "owner@test.local")

	_, err := svc.CreateRoom(context.Background(), owner.ID, &CreateRoomInput{
		RoomNumber:   "C-301",
		Type:         "penthouse",
		PriceMonthly: 1000000,
	})
	assert.ErrorIs(t, err, ErrInvalidRoomType)

	_, err = svc.CreateRoom(context.Background(), owner.ID, &CreateRoomInput{
		RoomNumber:   "C-302",
		PriceMonthly: 0,
	})
	assert.ErrorIs(t, err, ErrInvalidRoomPrice)
}

func TestDeleteRoomBlocksOccupied(t *testing.T) {
	db := setupTestDB(t)
	svc := newRoomService(db)
	owner := createTestOwner(t, db, "owner@test.local")

	room, err := svc.CreateRoom(context.Background(), owner.ID, &CreateRoomInput{
		RoomNumber:   "D-401",
		PriceMonthly: 900000,
	})
	require.NoError(t, err)

	require.NoError(t, db.Model(room).Update("status", models.RoomOccupied).Error)

	err = svc.DeleteRoom(context.Background(), owner.ID, room.ID)
	assert.ErrorIs(t, err, ErrRoomOccupied)

	// Freed room deletes fine and the counter goes back down
	require.NoError(t, db.Model(room).Update("status", models.RoomAvailable).Error)
	require.NoError(t, svc.DeleteRoom(context.Background(), owner.ID, room.ID))

	var profile models.OwnerProfile
	require.NoError(t, db.Where("user_id = ?", owner.ID).First(&profile).Error)
	assert.EqualValues(t, 0, profile.RoomCount)
}

func TestUpdateRoomPriceKeepsMirrorInSync(t *testing.T) {
	db := setupTestDB(t)
	svc := newRoomService(db)
	owner := createTestOwner(t, db, "owner@test.local")

	room, err := svc.CreateRoom(context.Background(), owner.ID, &CreateRoomInput{
		RoomNumber:   "E-501",
		PriceMonthly: 800000,
	})
	require.NoError(t, err)

	newPrice := 850000.0
	updated, err := svc.UpdateRoom(context.Background(), room.ID, &UpdateRoomInput{
		PriceMonthly: &newPrice,
	})
	require.NoError(t, err)
	assert.Equal(t, newPrice, updated.PriceMonthly)
	assert.Equal(t, newPrice, updated.Price)
}

func TestUpdateRoomStatusGuards(t *testing.T) {
	db := setupTestDB(t)
	svc := newRoomService(db)
	owner := createTestOwner(t, db, "owner@test.local")

	room, err := svc.CreateRoom(context.Background(), owner.ID, &CreateRoomInput{
		RoomNumber:   "E-502",
		PriceMonthly: 800000,
	})
	require.NoError(t, err)

	// Available -> maintenance is allowed
	maintenance := models.RoomMaintenance
	updated, err := svc.UpdateRoom(context.Background(), room.ID, &UpdateRoomInput{
		Status: &maintenance,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoomMaintenance, updated.Status)

	// Setting occupied by hand is not allowed
	occupied := models.RoomOccupied
	_, err = svc.UpdateRoom(context.Background(), room.ID, &UpdateRoomInput{
		Status: &occupied,
	})
	assert.Error(t, err)
}

func TestGetRoomNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := newRoomService(db)

	_, err := svc.GetRoom(context.Background(), 12345)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

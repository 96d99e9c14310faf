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

func newTenantService(db *gorm.DB) *TenantService {
	return NewTenantService(db, repositories.NewTenantRepository(db), repositories.NewRoomRepository(db))
}

func TestCheckInClaimsRoomAndRecordsPayment(t *testing.T) {
	db := setupTestDB(t)
	svc := newTenantService(db)
	admin := createTestAdmin(t, db, "admin@test.local")
	room := createTestRoom(t, db, "A-101", 1000000, 75000)

	result, err := svc.CheckIn(context.Background(), admin.ID, &CheckInInput{
		Name:          "Ani",
		Phone:         "08123456789",
		IDNumber:      "3201010101010001",
		RentalType:    models.RentalMonthly,
		RoomID:        room.ID,
		PaymentMethod: models.MethodCash,
	})
	require.NoError(t, err)
	require.NotNil(t, result.Tenant)
	require.NotNil(t, result.Payment)

	assert.True(t, result.Tenant.IsActive)
	assert.Equal(t, room.ID, result.Tenant.RoomID)
	assert.Equal(t, admin.ID, result.Tenant.AdminID)

	// Payment amount falls back to the monthly price
	assert.Equal(t, models.PaymentCompleted, result.Payment.Status)
	assert.Equal(t, 1000000.0, result.Payment.Amount)

	var updated models.Room
	require.NoError(t, db.First(&updated, room.ID).Error)
	assert.Equal(t, models.RoomOccupied, updated.Status)
	require.NotNil(t, updated.CurrentTenantID)
	assert.Equal(t, result.Tenant.ID, *updated.CurrentTenantID)
}

func TestCheckInDailyRateUsesDailyPrice(t *testing.T) {
	db := setupTestDB(t)
	svc := newTenantService(db)
	admin := createTestAdmin(t, db, "admin@test.local")
	room := createTestRoom(t, db, "A-102", 1500000, 75000)

	result, err := svc.CheckIn(context.Background(), admin.ID, &CheckInInput{
		Name:          "Budi",
		Phone:         "08111111111",
		IDNumber:      "3201010101010002",
		RentalType:    models.RentalDaily,
		RoomID:        room.ID,
		PaymentMethod: models.MethodTransfer,
	})
	require.NoError(t, err)
	require.NotNil(t, result.Payment)
	assert.Equal(t, 75000.0, result.Payment.Amount)
}

func TestCheckInWithoutPaymentMethodSkipsPayment(t *testing.T) {
	db := setupTestDB(t)
	svc := newTenantService(db)
	admin := createTestAdmin(t, db, "admin@test.local")
	room := createTestRoom(t, db, "A-103", 1200000, 0)

	result, err := svc.CheckIn(context.Background(), admin.ID, &CheckInInput{
		Name:     "Citra",
		Phone:    "08122222222",
		IDNumber: "3201010101010003",
		RoomID:   room.ID,
	})
	require.NoError(t, err)
	assert.Nil(t, result.Payment)

	var count int64
	db.Model(&models.Payment{}).Count(&count)
	assert.Zero(t, count)
}

func TestCheckInRejectsDuplicateIDNumber(t *testing.T) {
	db := setupTestDB(t)
	svc := newTenantService(db)
	admin := createTestAdmin(t, db, "admin@test.local")
	roomA := createTestRoom(t, db, "B-201", 1000000, 0)
	roomB := createTestRoom(t, db, "B-202", 1000000, 0)

	_, err := svc.CheckIn(context.Background(), admin.ID, &CheckInInput{
		Name:     "Dewi",
		Phone:    "08133333333",
		IDNumber: "3201010101010004",
		RoomID:   roomA.ID,
	})
	require.NoError(t, err)

	_, err = svc.CheckIn(context.Background(), admin.ID, &CheckInInput{
		Name:     "Impostor",
		Phone:    "08144444444",
		IDNumber: "3201010101010004",
		RoomID:   roomB.ID,
	})
	assert.ErrorIs(t, err, ErrIDNumberTaken)

	// The rejected check-in left the second room untouched
	var untouched models.Room
	require.NoError(t, db.First(&untouched, roomB.ID).Error)
	assert.Equal(t, models.RoomAvailable, untouched.Status)

	var tenants int64
	db.Model(&models.Tenant{}).Count(&tenants)
	assert.EqualValues(t, 1, tenants)
}

func TestCheckInRejectsOccupiedRoom(t *testing.T) {
	db := setupTestDB(t)
	svc := newTenantService(db)
	admin := createTestAdmin(t, db, "admin@test.local")
	room := createTestRoom(t, db, "C-301", 900000, 0)

	_, err := svc.CheckIn(context.Background(), admin.ID, &CheckInInput{
		Name:     "Eka",
		Phone:    "08155555555",
		IDNumber: "3201010101010005",
		RoomID:   room.ID,
	})
	require.NoError(t, err)

	_, err = svc.CheckIn(context.Background(), admin.ID, &CheckInInput{
		Name:     "Fajar",
		Phone:    "08166666666",
		IDNumber: "3201010101010006",
		RoomID:   room.ID,
	})
	assert.ErrorIs(t, err, ErrRoomUnavailable)

	var tenants int64
	db.Model(&models.Tenant{}).Count(&tenants)
	assert.EqualValues(t, 1, tenants)
}

func TestCheckInRejectsMaintenanceRoom(t *testing.T) {
	db := setupTestDB(t)
	svc := newTenantService(db)
	admin := createTestAdmin(t, db, "admin@test.local")
	room := createTestRoom(t, db, "C-302", 900000, 0)
	require.NoError(t, db.Model(room).Update("status", models.RoomMaintenance).Error)

	_, err := svc.CheckIn(context.Background(), admin.ID, &CheckInInput{
		Name:     "Gita",
		Phone:    "08177777777",
		IDNumber: "3201010101010007",
		RoomID:   room.ID,
	})
	assert.ErrorIs(t, err, ErrRoomUnavailable)
}

func TestCheckInRejectsUnknownRentalType(t *testing.T) {
	db := setupTestDB(t)
	svc := newTenantService(db)
	admin := createTestAdmin(t, db, "admin@test.local")
	room := createTestRoom(t, db, "C-303", 900000, 0)

	_, err := svc.CheckIn(context.Background(), admin.ID, &CheckInInput{
		Name:       "Hadi",
		Phone:      "08188888888",
		IDNumber:   "3201010101010008",
		RentalType: "weekly",
		RoomID:     room.ID,
	})
	assert.ErrorIs(t, err, ErrInvalidRentalType)
}

func TestCheckOutFreesRoom(t *testing.T) {
	db := setupTestDB(t)
	svc := newTenantService(db)
	admin := createTestAdmin(t, db, "admin@test.local")
	room := createTestRoom(t, db, "D-401", 800000, 0)

	result, err := svc.CheckIn(context.Background(), admin.ID, &CheckInInput{
		Name:     "Indra",
		Phone:    "08199999999",
		IDNumber: "3201010101010009",
		RoomID:   room.ID,
	})
	require.NoError(t, err)

	tenant, err := svc.CheckOut(context.Background(), result.Tenant.ID)
	require.NoError(t, err)
	assert.False(t, tenant.IsActive)
	require.NotNil(t, tenant.CheckoutDate)

	var freed models.Room
	require.NoError(t, db.First(&freed, room.ID).Error)
	assert.Equal(t, models.RoomAvailable, freed.Status)
	assert.Nil(t, freed.CurrentTenantID)

	// Room can be rented again
	_, err = svc.CheckIn(context.Background(), admin.ID, &CheckInInput{
		Name:     "Joko",
		Phone:    "08100000000",
		IDNumber: "3201010101010010",
		RoomID:   room.ID,
	})
	assert.NoError(t, err)
}

func TestCheckOutTwiceIsRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := newTenantService(db)
	admin := createTestAdmin(t, db, "admin@test.local")
	room := createTestRoom(t, db, "D-402", 800000, 0)

	result, err := svc.CheckIn(context.Background(), admin.ID, &CheckInInput{
		Name:     "Kiki",
		Phone:    "08101010101",
		IDNumber: "3201010101010011",
		RoomID:   room.ID,
	})
	require.NoError(t, err)

	_, err = svc.CheckOut(context.Background(), result.Tenant.ID)
	require.NoError(t, err)

	_, err = svc.CheckOut(context.Background(), result.Tenant.ID)
	assert.ErrorIs(t, err, ErrTenantInactive)
}

func TestCheckOutUnknownTenant(t *testing.T) {
	db := setupTestDB(t)
	svc := newTenantService(db)

	_, err := svc.CheckOut(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrTenantNotFound)
}

func TestUpdateTenantRejectsTakenIDNumber(t *testing.T) {
	db := setupTestDB(t)
	svc := newTenantService(db)
	admin := createTestAdmin(t, db, "admin@test.local")
	roomA := createTestRoom(t, db, "E-501", 700000, 0)
	roomB := createTestRoom(t, db, "E-502", 700000, 0)

	first, err := svc.CheckIn(context.Background(), admin.ID, &CheckInInput{
		Name:     "Lina",
		Phone:    "08102020202",
		IDNumber: "3201010101010012",
		RoomID:   roomA.ID,
	})
	require.NoError(t, err)

	second, err := svc.CheckIn(context.Background(), admin.ID, &CheckInInput{
		Name:     "Mira",
		Phone:    "08103030303",
		IDNumber: "3201010101010013",
		RoomID:   roomB.ID,
	})
	require.NoError(t, err)

	taken := first.Tenant.IDNumber
	_, err = svc.UpdateTenant(context.Background(), second.Tenant.ID, &UpdateTenantInput{
		IDNumber: &taken,
	})
	assert.ErrorIs(t, err, ErrIDNumberTaken)

	// Updating other fields still works
	newPhone := "08104040404"
	updated, err := svc.UpdateTenant(context.Background(), second.Tenant.ID, &UpdateTenantInput{
		Phone: &newPhone,
	})
	require.NoError(t, err)
	assert.Equal(t, newPhone, updated.Phone)
}

func TestListActiveTenantsExcludesCheckedOut(t *testing.T) {
	db := setupTestDB(t)
	svc := newTenantService(db)
	admin := createTestAdmin(t, db, "admin@test.local")
	roomA := createTestRoom(t, db, "F-601", 600000, 0)
	roomB := createTestRoom(t, db, "F-602", 600000, 0)

	stayer, err := svc.CheckIn(context.Background(), admin.ID, &CheckInInput{
		Name:     "Nina",
		Phone:    "08105050505",
		IDNumber: "3201010101010014",
		RoomID:   roomA.ID,
	})
	require.NoError(t, err)

	leaver, err := svc.CheckIn(context.Background(), admin.ID, &CheckInInput{
		Name:     "Oscar",
		Phone:    "08106060606",
		IDNumber: "3201010101010015",
		RoomID:   roomB.ID,
	})
	require.NoError(t, err)

	_, err = svc.CheckOut(context.Background(), leaver.Tenant.ID)
	require.NoError(t, err)

	tenants, total, err := svc.ListActiveTenants(context.Background(), 0, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, tenants, 1)
	assert.Equal(t, stayer.Tenant.ID, tenants[0].ID)
	require.NotNil(t, tenants[0].Room)
	assert.Equal(t, "F-601", tenants[0].Room.RoomNumber)
}

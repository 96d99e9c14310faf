package services

import (
	"testing"

	"staytrack/internal/adapters/persistence/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	require.NoError(t, models.AutoMigrate(db))
	return db
}

// createTestRoom inserts an available room
func createTestRoom(t *testing.T, db *gorm.DB, number string, monthly, daily float64) *models.Room {
	t.Helper()

	room := &models.Room{
		RoomNumber:   number,
		Type:         models.RoomTypeStandard,
		Price:        monthly,
		PriceMonthly: monthly,
		PriceDaily:   daily,
		Capacity:     1,
		Status:       models.RoomAvailable,
	}
	require.NoError(t, db.Create(room).Error)
	return room
}

// createTestAdmin inserts an active admin user
func createTestAdmin(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	admin := &models.User{
		Name:     "Test Admin",
		Email:    email,
		Password: "not-a-real-hash",
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	require.NoError(t, db.Create(admin).Error)
	return admin
}

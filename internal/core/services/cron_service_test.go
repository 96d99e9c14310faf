package services

import (
	"context"
	"testing"
	"time"

	"staytrack/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurgeStaleTokens(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCronService(db)
	admin := createTestAdmin(t, db, "admin@test.local")

	now := time.Now()
	revokedAt := now.Add(-time.Hour)
	tokens := []models.RefreshToken{
		{UserID: admin.ID, TokenHash: "live", ExpiresAt: now.Add(24 * time.Hour)},
		{UserID: admin.ID, TokenHash: "expired", ExpiresAt: now.Add(-24 * time.Hour)},
		{UserID: admin.ID, TokenHash: "revoked", ExpiresAt: now.Add(24 * time.Hour), RevokedAt: &revokedAt},
	}
	for i := range tokens {
		require.NoError(t, db.Create(&tokens[i]).Error)
	}

	require.NoError(t, svc.PurgeStaleTokens(context.Background()))

	var remaining []models.RefreshToken
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, "live", remaining[0].TokenHash)
}

func TestRecomputeOwnerRollups(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCronService(db)

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

	room := createTestRoom(t, db, "Z-901", 1000000, 0)
	require.NoError(t, db.Model(room).Update("owner_id", owner.ID).Error)

	// A room with no owner attribution stays out of every rollup
	createTestRoom(t, db, "Z-902", 800000, 0)

	tenant := &models.Tenant{
		Name:     "Ani",
		Phone:    "0812",
		IDNumber: "3201010101017001",
		RoomID:   room.ID,
		AdminID:  admin.ID,
		IsActive: true,
	}
	require.NoError(t, db.Create(tenant).Error)

	payments := []models.Payment{
		{TenantID: tenant.ID, RoomID: room.ID, AdminID: &admin.ID, Method: models.MethodCash, Amount: 1000000, Status: models.PaymentCompleted},
		{TenantID: tenant.ID, RoomID: room.ID, AdminID: &owner.ID, Method: models.MethodQR, Amount: 500000, Status: "paid"},
		{TenantID: tenant.ID, RoomID: room.ID, AdminID: &admin.ID, Method: models.MethodCash, Amount: 999999, Status: models.PaymentPending},
	}
	for i := range payments {
		require.NoError(t, db.Create(&payments[i]).Error)
	}

	require.NoError(t, svc.RecomputeOwnerRollups(context.Background()))

	var profile models.OwnerProfile
	require.NoError(t, db.Where("user_id = ?", owner.ID).First(&profile).Error)
	assert.EqualValues(t, 1, profile.AdminCount)
	assert.EqualValues(t, 1, profile.RoomCount)
	assert.Equal(t, 1500000.0, profile.TotalRevenue)
}

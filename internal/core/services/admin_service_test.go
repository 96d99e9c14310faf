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

func newAdminService(db *gorm.DB) *AdminService {
	return NewAdminService(
		repositories.NewUserRepository(db),
		repositories.NewRefreshTokenRepository(db),
	)
}

// registerOwnerWithAdmin wires an owner and one admin through the auth service
func registerOwnerWithAdmin(t *testing.T, db *gorm.DB) (ownerID, adminID uint) {
	t.Helper()

	authSvc := newAuthService(db)
	owner, err := authSvc.RegisterOwner(context.Background(), &RegisterOwnerInput{
		Name:     "Bu Sari",
		Email:    "sari@kos.local",
		Password: "rahasia1",
	})
	require.NoError(t, err)

	admin, err := authSvc.RegisterAdmin(context.Background(), owner.User.ID, &RegisterAdminInput{
		Name:     "Pak Budi",
		Email:    "budi@kos.local",
		Password: "rahasia1",
	})
	require.NoError(t, err)

	return owner.User.ID, admin.ID
}

func TestListAdminsScopedToOwner(t *testing.T) {
	db := setupTestDB(t)
	svc := newAdminService(db)
	ownerID, adminID := registerOwnerWithAdmin(t, db)

	// Another owner with their own admin
	authSvc := newAuthService(db)
	other, err := authSvc.RegisterOwner(context.Background(), &RegisterOwnerInput{
		Name:     "Pak Joko",
		Email:    "joko@kos.local",
		Password: "rahasia1",
	})
	require.NoError(t, err)
	_, err = authSvc.RegisterAdmin(context.Background(), other.User.ID, &RegisterAdminInput{
		Name:     "Mbak Rina",
		Email:    "rina@kos.local",
		Password: "rahasia1",
	})
	require.NoError(t, err)

	admins, err := svc.ListAdmins(context.Background(), ownerID)
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, adminID, admins[0].ID)
}

func TestDeleteAdminUpdatesCountAndRevokesSessions(t *testing.T) {
	db := setupTestDB(t)
	svc := newAdminService(db)
	ownerID, adminID := registerOwnerWithAdmin(t, db)

	// Give the admin a live session
	authSvc := newAuthService(db)
	session, err := authSvc.Login(context.Background(), &LoginInput{
		Email:    "budi@kos.local",
		Password: "rahasia1",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAdmin(context.Background(), ownerID, adminID))

	var profile models.OwnerProfile
	require.NoError(t, db.Where("user_id = ?", ownerID).First(&profile).Error)
	assert.Zero(t, profile.AdminCount)

	_, err = authSvc.RefreshToken(context.Background(), session.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)

	// Deleted admin is gone from the listing
	admins, err := svc.ListAdmins(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Empty(t, admins)
}

func TestDeleteAdminRejectsForeignOwner(t *testing.T) {
	db := setupTestDB(t)
	svc := newAdminService(db)
	_, adminID := registerOwnerWithAdmin(t, db)

	authSvc := newAuthService(db)
	other, err := authSvc.RegisterOwner(context.Background(), &RegisterOwnerInput{
		Name:     "Pak Joko",
		Email:    "joko@kos.local",
		Password: "rahasia1",
	})
	require.NoError(t, err)

	err = svc.DeleteAdmin(context.Background(), other.User.ID, adminID)
	assert.ErrorIs(t, err, ErrNotYourAdmin)
}

func TestResetAdminPasswordInvalidatesOldCredentials(t *testing.T) {
	db := setupTestDB(t)
	svc := newAdminService(db)
	ownerID, adminID := registerOwnerWithAdmin(t, db)

	err := svc.ResetAdminPassword(context.Background(), ownerID, adminID, &ResetPasswordInput{
		NewPassword: "barubanget",
	})
	require.NoError(t, err)

	authSvc := newAuthService(db)
	_, err = authSvc.Login(context.Background(), &LoginInput{
		Email:    "budi@kos.local",
		Password: "rahasia1",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = authSvc.Login(context.Background(), &LoginInput{
		Email:    "budi@kos.local",
		Password: "barubanget",
	})
	assert.NoError(t, err)
}

func TestGetAdminNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := newAdminService(db)
	ownerID, _ := registerOwnerWithAdmin(t, db)

	_, err := svc.GetAdmin(context.Background(), ownerID, 9999)
	assert.ErrorIs(t, err, ErrAdminNotFound)

	// An owner ID is not an admin ID
	_, err = svc.GetAdmin(context.Background(), ownerID, ownerID)
	assert.ErrorIs(t, err, ErrAdminNotFound)
}

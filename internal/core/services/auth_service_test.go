package services

import (
	"context"
	"testing"

	"staytrack/internal/adapters/persistence/models"
	"staytrack/internal/adapters/persistence/repositories"
	"staytrack/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:           "test-access-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}
}

func newAuthService(db *gorm.DB) *AuthService {
	return NewAuthService(
		repositories.NewUserRepository(db),
		repositories.NewRefreshTokenRepository(db),
		testConfig(),
	)
}

func TestRegisterOwnerCreatesProfile(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	result, err := svc.RegisterOwner(context.Background(), &RegisterOwnerInput{
		Name:     "Bu Sari",
		Email:    "sari@kos.local",
		Password: "rahasia1",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleOwner, result.User.Role)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)

	var profile models.OwnerProfile
	require.NoError(t, db.Where("user_id = ?", result.User.ID).First(&profile).Error)
	assert.Zero(t, profile.AdminCount)
}

func TestRegisterOwnerRejectsDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	_, err := svc.RegisterOwner(context.Background(), &RegisterOwnerInput{
		Name:     "Bu Sari",
		Email:    "sari@kos.local",
		Password: "rahasia1",
	})
	require.NoError(t, err)

	_, err = svc.RegisterOwner(context.Background(), &RegisterOwnerInput{
		Name:     "Imitator",
		Email:    "sari@kos.local",
		Password: "rahasia2",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterAdminLinksOwnerAndBumpsCount(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	owner, err := svc.RegisterOwner(context.Background(), &RegisterOwnerInput{
		Name:     "Bu Sari",
		Email:    "sari@kos.local",
		Password: "rahasia1",
	})
	require.NoError(t, err)

	admin, err := svc.RegisterAdmin(context.Background(), owner.User.ID, &RegisterAdminInput{
		Name:     "Pak Budi",
		Email:    "budi@kos.local",
		Password: "rahasia1",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	require.NotNil(t, admin.OwnerID)
	assert.Equal(t, owner.User.ID, *admin.OwnerID)

	var profile models.OwnerProfile
	require.NoError(t, db.Where("user_id = ?", owner.User.ID).First(&profile).Error)
	assert.EqualValues(t, 1, profile.AdminCount)
}

func TestRegisterAdminRequiresOwnerRole(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)
	admin := createTestAdmin(t, db, "plain-admin@kos.local")

	_, err := svc.RegisterAdmin(context.Background(), admin.ID, &RegisterAdminInput{
		Name:     "Nested",
		Email:    "nested@kos.local",
		Password: "rahasia1",
	})
	assert.ErrorIs(t, err, ErrOwnerNotFound)
}

func TestLoginAndTokenRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	_, err := svc.RegisterOwner(context.Background(), &RegisterOwnerInput{
		Name:     "Bu Sari",
		Email:    "sari@kos.local",
		Password: "rahasia1",
	})
	require.NoError(t, err)

	result, err := svc.Login(context.Background(), &LoginInput{
		Email:    "sari@kos.local",
		Password: "rahasia1",
	})
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserID)
	assert.Equal(t, models.RoleOwner, claims.Role)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	_, err := svc.RegisterOwner(context.Background(), &RegisterOwnerInput{
		Name:     "Bu Sari",
		Email:    "sari@kos.local",
		Password: "rahasia1",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &LoginInput{
		Email:    "sari@kos.local",
		Password: "salah123",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &LoginInput{
		Email:    "nobody@kos.local",
		Password: "rahasia1",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRejectsInactiveUser(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	owner, err := svc.RegisterOwner(context.Background(), &RegisterOwnerInput{
		Name:     "Bu Sari",
		Email:    "sari@kos.local",
		Password: "rahasia1",
	})
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.User{}).
		Where("id = ?", owner.User.ID).
		Update("is_active", false).Error)

	_, err = svc.Login(context.Background(), &LoginInput{
		Email:    "sari@kos.local",
		Password: "rahasia1",
	})
	assert.ErrorIs(t, err, ErrUserInactive)
}

func TestRefreshRotatesToken(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	owner, err := svc.RegisterOwner(context.Background(), &RegisterOwnerInput{
		Name:     "Bu Sari",
		Email:    "sari@kos.local",
		Password: "rahasia1",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), owner.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, owner.RefreshToken, refreshed.RefreshToken)

	// The old token was revoked by the rotation
	_, err = svc.RefreshToken(context.Background(), owner.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)

	// The new one still works
	_, err = svc.RefreshToken(context.Background(), refreshed.RefreshToken)
	assert.NoError(t, err)
}

func TestLogoutRevokesToken(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	owner, err := svc.RegisterOwner(context.Background(), &RegisterOwnerInput{
		Name:     "Bu Sari",
		Email:    "sari@kos.local",
		Password: "rahasia1",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), owner.RefreshToken))

	_, err = svc.RefreshToken(context.Background(), owner.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestLogoutAllRevokesEverySession(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	owner, err := svc.RegisterOwner(context.Background(), &RegisterOwnerInput{
		Name:     "Bu Sari",
		Email:    "sari@kos.local",
		Password: "rahasia1",
	})
	require.NoError(t, err)

	second, err := svc.Login(context.Background(), &LoginInput{
		Email:    "sari@kos.local",
		Password: "rahasia1",
	})
	require.NoError(t, err)

	require.NoError(t, svc.LogoutAll(context.Background(), owner.User.ID))

	_, err = svc.RefreshToken(context.Background(), owner.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
	_, err = svc.RefreshToken(context.Background(), second.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestRefreshRejectsGarbageToken(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	_, err := svc.RefreshToken(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

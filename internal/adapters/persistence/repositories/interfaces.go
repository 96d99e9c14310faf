package repositories

import (
	"context"

	"staytrack/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	ListAdminsByOwner(ctx context.Context, ownerID uint) ([]*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	GetOwnerProfile(ctx context.Context, userID uint) (*models.OwnerProfile, error)
	CreateOwnerProfile(ctx context.Context, profile *models.OwnerProfile) error
	AdjustOwnerCounter(ctx context.Context, ownerID uint, column string, delta int) error
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) (int64, error)
}

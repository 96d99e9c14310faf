package repositories

import (
	"context"

	"staytrack/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// userRepository implements UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetByID gets a user by ID
func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail gets a user by email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update updates a user
func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// Delete soft deletes a user
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.User{}, id).Error
}

// ListAdminsByOwner lists admin accounts belonging to an owner
func (r *userRepository) ListAdminsByOwner(ctx context.Context, ownerID uint) ([]*models.User, error) {
	var admins []*models.User
	err := r.db.WithContext(ctx).
		Where("role = ? AND owner_id = ?", models.RoleAdmin, ownerID).
		Order("created_at DESC").
		Find(&admins).Error
	return admins, err
}

// ExistsByEmail checks if email exists
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// GetOwnerProfile gets the owner profile for a user
func (r *userRepository) GetOwnerProfile(ctx context.Context, userID uint) (*models.OwnerProfile, error) {
	var profile models.OwnerProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// CreateOwnerProfile creates an owner profile
func (r *userRepository) CreateOwnerProfile(ctx context.Context, profile *models.OwnerProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

// AdjustOwnerCounter increments or decrements a rollup counter on the owner profile
func (r *userRepository) AdjustOwnerCounter(ctx context.Context, ownerID uint, column string, delta int) error {
	return r.db.WithContext(ctx).
		Model(&models.OwnerProfile{}).
		Where("user_id = ?", ownerID).
		Update(column, gorm.Expr(column+" + ?", delta)).Error
}

package repositories

import (
	"context"

	"staytrack/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// TenantRepository handles tenant data access
type TenantRepository struct {
	db *gorm.DB
}

// NewTenantRepository creates a new tenant repository
func NewTenantRepository(db *gorm.DB) *TenantRepository {
	return &TenantRepository{db: db}
}

// GetByID gets a tenant by ID with its room
func (r *TenantRepository) GetByID(ctx context.Context, id uint) (*models.Tenant, error) {
	var tenant models.Tenant
	err := r.db.WithContext(ctx).
		Preload("Room").
		First(&tenant, id).Error
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

// ListActive lists active tenants with pagination, rooms preloaded
func (r *TenantRepository) ListActive(ctx context.Context, offset, limit int) ([]*models.Tenant, int64, error) {
	var tenants []*models.Tenant
	var total int64

	if err := r.db.WithContext(ctx).
		Model(&models.Tenant{}).
		Where("is_active = ?", true).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("Room").
		Where("is_active = ?", true).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&tenants).Error

	return tenants, total, err
}

// Update updates a tenant
func (r *TenantRepository) Update(ctx context.Context, tenant *models.Tenant) error {
	return r.db.WithContext(ctx).Save(tenant).Error
}

// ExistsByIDNumberExcluding checks whether an identity document number is
// registered to a tenant other than the given one, across any status.
// Check-in does its own duplicate count inside its transaction.
func (r *TenantRepository) ExistsByIDNumberExcluding(ctx context.Context, idNumber string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Tenant{}).
		Where("id_number = ? AND id <> ?", idNumber, excludeID).
		Count(&count).Error
	return count > 0, err
}

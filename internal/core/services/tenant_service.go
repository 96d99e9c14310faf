package services

import (
	"context"
	"errors"
	"log"
	"time"

	"staytrack/internal/adapters/persistence/models"
	"staytrack/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// Tenant errors
var (
	ErrTenantNotFound    = errors.New("tenant not found")
	ErrTenantInactive    = errors.New("tenant is already checked out")
	ErrIDNumberTaken     = errors.New("identity number already registered")
	ErrRoomUnavailable   = errors.New("room is not available")
	ErrInvalidRentalType = errors.New("invalid rental type")
)

// TenantService handles the tenant lifecycle. Check-in and checkout
// mutate tenant, room and payment records together, so both run inside
// a single database transaction.
type TenantService struct {
	db         *gorm.DB
	tenantRepo *repositories.TenantRepository
	roomRepo   *repositories.RoomRepository
}

// NewTenantService creates a new tenant service
func NewTenantService(db *gorm.DB, tenantRepo *repositories.TenantRepository, roomRepo *repositories.RoomRepository) *TenantService {
	return &TenantService{
		db:         db,
		tenantRepo: tenantRepo,
		roomRepo:   roomRepo,
	}
}

// CheckInInput represents tenant check-in input
type CheckInInput struct {
	Name          string  `json:"name" validate:"required,min=2,max=100"`
	Phone         string  `json:"phone" validate:"required"`
	IDNumber      string  `json:"id_number" validate:"required,max=50"`
	RentalType    string  `json:"rental_type"`
	RoomID        uint    `json:"room_id" validate:"required"`
	PaymentMethod string  `json:"payment_method"`
	PaymentAmount float64 `json:"payment_amount"`
	DueDate       string  `json:"due_date"`
}

// UpdateTenantInput represents tenant update input. Nil fields stay unchanged.
type UpdateTenantInput struct {
	Name                   *string `json:"name"`
	Phone                  *string `json:"phone"`
	IDNumber               *string `json:"id_number"`
	PreferredPaymentMethod *string `json:"preferred_payment_method"`
	DueDate                *string `json:"due_date"`
}

// CheckInResult bundles the records created by a check-in
type CheckInResult struct {
	Tenant  *models.Tenant  `json:"tenant"`
	Room    *models.Room    `json:"room"`
	Payment *models.Payment `json:"payment,omitempty"`
}

// CheckIn registers a tenant into a room. The whole operation is one
// transaction: if any step fails nothing is persisted. The room is
// claimed with a conditional update so two concurrent check-ins on the
// same room cannot both succeed.
func (s *TenantService) CheckIn(ctx context.Context, adminID uint, input *CheckInInput) (*CheckInResult, error) {
	rentalType := input.RentalType
	if rentalType == "" {
		rentalType = models.RentalMonthly
	}
	if rentalType != models.RentalMonthly && rentalType != models.RentalDaily {
		return nil, ErrInvalidRentalType
	}
	if input.PaymentMethod != "" && !validPaymentMethod(input.PaymentMethod) {
		return nil, ErrInvalidMethod
	}

	result := &CheckInResult{}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Identity number must be unique across tenants of any status
		var dup int64
		if err := tx.Model(&models.Tenant{}).
			Where("id_number = ?", input.IDNumber).
			Count(&dup).Error; err != nil {
			return err
		}
		if dup > 0 {
			return ErrIDNumberTaken
		}

		// 2. Claim the room. The WHERE on status is the concurrency
		// guard: only one transaction can flip available to occupied.
		claim := tx.Model(&models.Room{}).
			Where("id = ? AND status = ?", input.RoomID, models.RoomAvailable).
			Update("status", models.RoomOccupied)
		if claim.Error != nil {
			return claim.Error
		}
		if claim.RowsAffected == 0 {
			return ErrRoomUnavailable
		}

		var room models.Room
		if err := tx.First(&room, input.RoomID).Error; err != nil {
			return err
		}

		// 3. Create the tenant
		tenant := &models.Tenant{
			Name:                   input.Name,
			Phone:                  input.Phone,
			IDNumber:               input.IDNumber,
			RentalType:             rentalType,
			RoomID:                 room.ID,
			AdminID:                adminID,
			IsActive:               true,
			PreferredPaymentMethod: input.PaymentMethod,
			DueDate:                input.DueDate,
		}
		if err := tx.Create(tenant).Error; err != nil {
			return err
		}

		// 4. Link the room back to its tenant
		if err := tx.Model(&room).Update("current_tenant_id", tenant.ID).Error; err != nil {
			return err
		}
		room.CurrentTenantID = &tenant.ID

		// 5. Record the first payment when a method was supplied
		if input.PaymentMethod != "" {
			amount := input.PaymentAmount
			if amount <= 0 {
				amount = room.PriceFor(rentalType)
			}
			payment := &models.Payment{
				TenantID:   tenant.ID,
				RoomID:     room.ID,
				AdminID:    &adminID,
				RentalType: rentalType,
				Method:     input.PaymentMethod,
				Amount:     amount,
				Status:     models.PaymentCompleted,
			}
			if err := tx.Create(payment).Error; err != nil {
				return err
			}
			result.Payment = payment
		}

		result.Tenant = tenant
		result.Room = &room
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Tenant checked in: %s → room %s", result.Tenant.Name, result.Room.RoomNumber)
	return result, nil
}

// CheckOut ends a tenancy: marks the tenant inactive, stamps the
// checkout date and frees the room, all in one transaction. Checking
// out an already inactive tenant is rejected without touching state.
func (s *TenantService) CheckOut(ctx context.Context, id uint) (*models.Tenant, error) {
	var tenant models.Tenant

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&tenant, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTenantNotFound
			}
			return err
		}

		if !tenant.IsActive {
			return ErrTenantInactive
		}

		now := time.Now()
		tenant.IsActive = false
		tenant.CheckoutDate = &now
		if err := tx.Save(&tenant).Error; err != nil {
			return err
		}

		return tx.Model(&models.Room{}).
			Where("id = ?", tenant.RoomID).
			Updates(map[string]interface{}{
				"status":            models.RoomAvailable,
				"current_tenant_id": nil,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Tenant checked out: %s (ID: %d)", tenant.Name, tenant.ID)
	return &tenant, nil
}

// GetTenant gets a tenant by ID
func (s *TenantService) GetTenant(ctx context.Context, id uint) (*models.Tenant, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}
	return tenant, nil
}

// ListActiveTenants lists active tenants with pagination
func (s *TenantService) ListActiveTenants(ctx context.Context, offset, limit int) ([]*models.Tenant, int64, error) {
	return s.tenantRepo.ListActive(ctx, offset, limit)
}

// UpdateTenant updates mutable tenant fields
func (s *TenantService) UpdateTenant(ctx context.Context, id uint, input *UpdateTenantInput) (*models.Tenant, error) {
	tenant, err := s.GetTenant(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.IDNumber != nil && *input.IDNumber != tenant.IDNumber {
		taken, err := s.tenantRepo.ExistsByIDNumberExcluding(ctx, *input.IDNumber, tenant.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrIDNumberTaken
		}
		tenant.IDNumber = *input.IDNumber
	}
	if input.Name != nil {
		tenant.Name = *input.Name
	}
	if input.Phone != nil {
		tenant.Phone = *input.Phone
	}
	if input.PreferredPaymentMethod != nil {
		tenant.PreferredPaymentMethod = *input.PreferredPaymentMethod
	}
	if input.DueDate != nil {
		tenant.DueDate = *input.DueDate
	}

	if err := s.tenantRepo.Update(ctx, tenant); err != nil {
		return nil, err
	}

	log.Printf("✅ Tenant updated: %s (ID: %d)", tenant.Name, tenant.ID)
	return tenant, nil
}

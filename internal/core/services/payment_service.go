package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"staytrack/internal/adapters/persistence/models"
	"staytrack/internal/adapters/persistence/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment errors
var (
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrInvalidAmount      = errors.New("amount must not be negative")
	ErrInvalidMethod      = errors.New("invalid payment method")
	ErrUnsupportedImage   = errors.New("unsupported image type")
	ErrProofImageTooLarge = errors.New("proof image exceeds size limit")
)

// allowed proof image extensions
var proofImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

const maxProofImageSize = 5 << 20 // 5 MB

// PaymentService handles the payment ledger
type PaymentService struct {
	paymentRepo *repositories.PaymentRepository
	tenantRepo  *repositories.TenantRepository
	roomRepo    *repositories.RoomRepository
	uploadDir   string
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	paymentRepo *repositories.PaymentRepository,
	tenantRepo *repositories.TenantRepository,
	roomRepo *repositories.RoomRepository,
	uploadDir string,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		tenantRepo:  tenantRepo,
		roomRepo:    roomRepo,
		uploadDir:   uploadDir,
	}
}

// CreatePaymentInput represents manual payment input
type CreatePaymentInput struct {
	TenantID uint    `json:"tenant_id" validate:"required"`
	RoomID   uint    `json:"room_id" validate:"required"`
	Method   string  `json:"method" validate:"required"`
	Amount   float64 `json:"amount"`
	Note     string  `json:"note"`
	Status   string  `json:"status"`
}

// CreatePayment appends a manual payment to the ledger
func (s *PaymentService) CreatePayment(ctx context.Context, adminID uint, input *CreatePaymentInput) (*models.Payment, error) {
	// 1. Tenant and room must exist
	tenant, err := s.tenantRepo.GetByID(ctx, input.TenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}
	room, err := s.roomRepo.GetByID(ctx, input.RoomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	// 2. Validate method and amount
	if !validPaymentMethod(input.Method) {
		return nil, ErrInvalidMethod
	}
	if input.Amount < 0 {
		return nil, ErrInvalidAmount
	}
	amount := input.Amount
	if amount == 0 {
		amount = room.PriceFor(tenant.RentalType)
	}

	status := input.Status
	if status == "" {
		status = models.PaymentCompleted
	}
	if status != models.PaymentCompleted && status != models.PaymentPending && status != models.PaymentFailed {
		return nil, errors.New("invalid payment status")
	}

	// 3. Create payment
	payment := &models.Payment{
		TenantID:   tenant.ID,
		RoomID:     room.ID,
		AdminID:    &adminID,
		RentalType: tenant.RentalType,
		Method:     input.Method,
		Amount:     amount,
		Note:       input.Note,
		Status:     status,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	log.Printf("✅ Payment recorded: tenant %d, room %s, amount %.2f", tenant.ID, room.RoomNumber, amount)
	return payment, nil
}

// GetPayment gets a payment by ID
func (s *PaymentService) GetPayment(ctx context.Context, id uint) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return payment, nil
}

// ListPayments lists payments with pagination
func (s *PaymentService) ListPayments(ctx context.Context, offset, limit int) ([]*models.Payment, int64, error) {
	return s.paymentRepo.List(ctx, offset, limit)
}

// AttachProof stores an uploaded proof image and links it to the payment
func (s *PaymentService) AttachProof(ctx context.Context, id uint, file *multipart.FileHeader, save func(*multipart.FileHeader, string) error) (*models.Payment, error) {
	payment, err := s.GetPayment(ctx, id)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !proofImageExts[ext] {
		return nil, ErrUnsupportedImage
	}
	if file.Size > maxProofImageSize {
		return nil, ErrProofImageTooLarge
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("proof-%s%s", uuid.New().String(), ext)
	dst := filepath.Join(s.uploadDir, filename)
	if err := save(file, dst); err != nil {
		return nil, err
	}

	payment.ProofImage = "/uploads/" + filename
	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		// keep the directory clean when the DB update fails
		os.Remove(dst)
		return nil, err
	}

	log.Printf("✅ Proof attached to payment %d: %s", payment.ID, filename)
	return payment, nil
}

func validPaymentMethod(m string) bool {
	switch m {
	case models.MethodCash, models.MethodTransfer, models.MethodQR:
		return true
	}
	return false
}

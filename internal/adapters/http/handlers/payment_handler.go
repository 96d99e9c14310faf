package handlers

import (
	"errors"

	"staytrack/internal/core/services"
	"staytrack/internal/pkg/pagination"
	"staytrack/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PaymentHandler handles payment ledger endpoints
type PaymentHandler struct {
	paymentService *services.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// CreatePaymentRequest represents manual payment body
type CreatePaymentRequest struct {
	TenantID uint    `json:"tenant_id"`
	RoomID   uint    `json:"room_id"`
	Method   string  `json:"method"`
	Amount   float64 `json:"amount"`
	Note     string  `json:"note"`
	Status   string  `json:"status"`
}

// CreatePayment records a manual payment
// @Summary Create payment
// @Description Record a rent payment for a tenant
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreatePaymentRequest true "Payment data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/payments/create [post]
func (h *PaymentHandler) CreatePayment(c *fiber.Ctx) error {
	adminID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.TenantID == 0 {
		return response.BadRequest(c, "Tenant ID is required")
	}
	if req.RoomID == 0 {
		return response.BadRequest(c, "Room ID is required")
	}
	if req.Method == "" {
		return response.BadRequest(c, "Payment method is required")
	}

	input := &services.CreatePaymentInput{
		TenantID: req.TenantID,
		RoomID:   req.RoomID,
		Method:   req.Method,
		Amount:   req.Amount,
		Note:     req.Note,
		Status:   req.Status,
	}

	payment, err := h.paymentService.CreatePayment(c.Context(), adminID, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTenantNotFound):
			return response.NotFound(c, "Tenant not found")
		case errors.Is(err, services.ErrRoomNotFound):
			return response.NotFound(c, "Room not found")
		case errors.Is(err, services.ErrInvalidMethod):
			return response.BadRequest(c, "Payment method must be cash, transfer or qr")
		case errors.Is(err, services.ErrInvalidAmount):
			return response.BadRequest(c, "Amount must not be negative")
		default:
			return response.BadRequest(c, err.Error())
		}
	}

	return response.Created(c, "Payment recorded successfully", fiber.Map{
		"payment": payment,
	})
}

// ListPayments lists payments
// @Summary List payments
// @Description List payments newest first, paginated
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /admin/payments [get]
func (h *PaymentHandler) ListPayments(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	payments, total, err := h.paymentService.ListPayments(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list payments")
	}

	return response.Success(c, "Payments retrieved successfully", fiber.Map{
		"payments":   payments,
		"pagination": pagination.GetMeta(params, total),
	})
}

// UploadProof attaches a proof image to a payment
// @Summary Upload payment proof
// @Description Attach a transfer proof image to a payment
// @Tags Payments
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Payment ID"
// @Param proof formData file true "Proof image"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/payments/{id}/proof [post]
func (h *PaymentHandler) UploadProof(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid payment ID")
	}

	file, err := c.FormFile("proof")
	if err != nil {
		return response.BadRequest(c, "Proof image is required")
	}

	payment, err := h.paymentService.AttachProof(c.Context(), uint(id), file, c.SaveFile)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPaymentNotFound):
			return response.NotFound(c, "Payment not found")
		case errors.Is(err, services.ErrUnsupportedImage):
			return response.BadRequest(c, "Proof must be a jpg, png or webp image")
		case errors.Is(err, services.ErrProofImageTooLarge):
			return response.BadRequest(c, "Proof image exceeds the 5 MB limit")
		default:
			return response.InternalServerError(c, "Failed to upload proof")
		}
	}

	return response.Success(c, "Proof uploaded successfully", fiber.Map{
		"payment": payment,
	})
}

package handlers

import (
	"errors"
	"strings"

	"staytrack/internal/core/services"
	"staytrack/internal/pkg/pagination"
	"staytrack/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// TenantHandler handles tenant lifecycle endpoints
type TenantHandler struct {
	tenantService *services.TenantService
}

// NewTenantHandler creates a new tenant handler
func NewTenantHandler(tenantService *services.TenantService) *TenantHandler {
	return &TenantHandler{tenantService: tenantService}
}

// CheckInRequest represents tenant check-in body
type CheckInRequest struct {
	Name          string  `json:"name"`
	Phone         string  `json:"phone"`
	IDNumber      string  `json:"id_number"`
	RentalType    string  `json:"rental_type"`
	RoomID        uint    `json:"room_id"`
	PaymentMethod string  `json:"payment_method"`
	PaymentAmount float64 `json:"payment_amount"`
	DueDate       string  `json:"due_date"`
}

// CheckIn registers a tenant into a room
// @Summary Check in tenant
// @Description Register a tenant, claim the room and optionally record the first payment, atomically
// @Tags Tenants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CheckInRequest true "Check-in data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/tenants/create [post]
func (h *TenantHandler) CheckIn(c *fiber.Ctx) error {
	adminID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req CheckInRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.Name = strings.TrimSpace(req.Name)
	req.IDNumber = strings.TrimSpace(req.IDNumber)

	if req.Name == "" {
		return response.BadRequest(c, "Tenant name is required")
	}
	if req.Phone == "" {
		return response.BadRequest(c, "Phone is required")
	}
	if req.IDNumber == "" {
		return response.BadRequest(c, "Identity number is required")
	}
	if req.RoomID == 0 {
		return response.BadRequest(c, "Room ID is required")
	}

	input := &services.CheckInInput{
		Name:          req.Name,
		Phone:         req.Phone,
		IDNumber:      req.IDNumber,
		RentalType:    req.RentalType,
		RoomID:        req.RoomID,
		PaymentMethod: req.PaymentMethod,
		PaymentAmount: req.PaymentAmount,
		DueDate:       req.DueDate,
	}

	result, err := h.tenantService.CheckIn(c.Context(), adminID, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrIDNumberTaken):
			return response.Conflict(c, "Identity number already registered")
		case errors.Is(err, services.ErrRoomUnavailable):
			return response.BadRequest(c, "Room is not available")
		case errors.Is(err, services.ErrInvalidRentalType):
			return response.BadRequest(c, "Rental type must be monthly or daily")
		case errors.Is(err, services.ErrInvalidMethod):
			return response.BadRequest(c, "Payment method must be cash, transfer or qr")
		default:
			return response.InternalServerError(c, "Failed to check in tenant")
		}
	}

	return response.Created(c, "Tenant checked in successfully", result)
}

// CheckOut ends a tenancy
// @Summary Check out tenant
// @Description Mark the tenant inactive and free the room, atomically
// @Tags Tenants
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tenant ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/tenants/checkout/{id} [put]
func (h *TenantHandler) CheckOut(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid tenant ID")
	}

	tenant, err := h.tenantService.CheckOut(c.Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTenantNotFound):
			return response.NotFound(c, "Tenant not found")
		case errors.Is(err, services.ErrTenantInactive):
			return response.BadRequest(c, "Tenant is already checked out")
		default:
			return response.InternalServerError(c, "Failed to check out tenant")
		}
	}

	return response.Success(c, "Tenant checked out successfully", fiber.Map{
		"tenant": tenant,
	})
}

// ListTenants lists active tenants
// @Summary List active tenants
// @Description List active tenants with their rooms, paginated
// @Tags Tenants
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /admin/tenants [get]
func (h *TenantHandler) ListTenants(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	tenants, total, err := h.tenantService.ListActiveTenants(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list tenants")
	}

	return response.Success(c, "Tenants retrieved successfully", fiber.Map{
		"tenants":    tenants,
		"pagination": pagination.GetMeta(params, total),
	})
}

// GetTenant gets one tenant
// @Summary Get tenant
// @Description Get a tenant with its room
// @Tags Tenants
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tenant ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/tenants/{id} [get]
func (h *TenantHandler) GetTenant(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid tenant ID")
	}

	tenant, err := h.tenantService.GetTenant(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrTenantNotFound) {
			return response.NotFound(c, "Tenant not found")
		}
		return response.InternalServerError(c, "Failed to get tenant")
	}

	return response.Success(c, "Tenant retrieved successfully", fiber.Map{
		"tenant": tenant,
	})
}

// UpdateTenant updates tenant details
// @Summary Update tenant
// @Description Update tenant contact details or identity number
// @Tags Tenants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tenant ID"
// @Param body body services.UpdateTenantInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/tenants/{id} [put]
func (h *TenantHandler) UpdateTenant(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid tenant ID")
	}

	var input services.UpdateTenantInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	tenant, err := h.tenantService.UpdateTenant(c.Context(), uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTenantNotFound):
			return response.NotFound(c, "Tenant not found")
		case errors.Is(err, services.ErrIDNumberTaken):
			return response.Conflict(c, "Identity number already registered")
		default:
			return response.InternalServerError(c, "Failed to update tenant")
		}
	}

	return response.Success(c, "Tenant updated successfully", fiber.Map{
		"tenant": tenant,
	})
}

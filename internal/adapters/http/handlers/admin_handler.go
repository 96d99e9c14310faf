package handlers

import (
	"errors"

	"staytrack/internal/core/services"
	"staytrack/internal/pkg/password"
	"staytrack/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles owner-side admin management endpoints
type AdminHandler struct {
	adminService *services.AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// ResetPasswordRequest represents admin password reset body
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password"`
}

// ListAdmins lists the owner's admins
// @Summary List admins
// @Description List all admin accounts belonging to the authenticated owner
// @Tags Admins
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /admin/list [get]
func (h *AdminHandler) ListAdmins(c *fiber.Ctx) error {
	ownerID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	admins, err := h.adminService.ListAdmins(c.Context(), ownerID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list admins")
	}

	return response.Success(c, "Admins retrieved successfully", fiber.Map{
		"admins": admins,
		"count":  len(admins),
	})
}

// GetAdmin gets one admin
// @Summary Get admin
// @Description Get one admin account belonging to the authenticated owner
// @Tags Admins
// @Produce json
// @Security BearerAuth
// @Param id path int true "Admin ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/{id} [get]
func (h *AdminHandler) GetAdmin(c *fiber.Ctx) error {
	ownerID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	adminID, err := c.ParamsInt("id")
	if err != nil || adminID <= 0 {
		return response.BadRequest(c, "Invalid admin ID")
	}

	admin, err := h.adminService.GetAdmin(c.Context(), ownerID, uint(adminID))
	if err != nil {
		return h.mapAdminError(c, err, "Failed to get admin")
	}

	return response.Success(c, "Admin retrieved successfully", fiber.Map{
		"admin": admin,
	})
}

// DeleteAdmin deletes an admin account
// @Summary Delete admin
// @Description Delete an admin account belonging to the authenticated owner
// @Tags Admins
// @Produce json
// @Security BearerAuth
// @Param id path int true "Admin ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/{id} [delete]
func (h *AdminHandler) DeleteAdmin(c *fiber.Ctx) error {
	ownerID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	adminID, err := c.ParamsInt("id")
	if err != nil || adminID <= 0 {
		return response.BadRequest(c, "Invalid admin ID")
	}

	if err := h.adminService.DeleteAdmin(c.Context(), ownerID, uint(adminID)); err != nil {
		return h.mapAdminError(c, err, "Failed to delete admin")
	}

	return response.Success(c, "Admin deleted successfully", nil)
}

// ResetAdminPassword resets an admin's password
// @Summary Reset admin password
// @Description Set a new password for an admin and revoke its sessions
// @Tags Admins
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Admin ID"
// @Param body body ResetPasswordRequest true "New password"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/{id}/reset-password [put]
func (h *AdminHandler) ResetAdminPassword(c *fiber.Ctx) error {
	ownerID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	adminID, err := c.ParamsInt("id")
	if err != nil || adminID <= 0 {
		return response.BadRequest(c, "Invalid admin ID")
	}

	var req ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.NewPassword == "" {
		return response.BadRequest(c, "New password is required")
	}

	input := &services.ResetPasswordInput{NewPassword: req.NewPassword}
	if err := h.adminService.ResetAdminPassword(c.Context(), ownerID, uint(adminID), input); err != nil {
		if errors.Is(err, password.ErrTooShort) {
			return response.BadRequest(c, "Password must be at least 6 characters")
		}
		return h.mapAdminError(c, err, "Failed to reset password")
	}

	return response.Success(c, "Password reset successfully", nil)
}

func (h *AdminHandler) mapAdminError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	// Another owner's admin reads as not found, nothing is leaked
	case errors.Is(err, services.ErrAdminNotFound), errors.Is(err, services.ErrNotYourAdmin):
		return response.NotFound(c, "Admin not found")
	default:
		return response.InternalServerError(c, fallback)
	}
}

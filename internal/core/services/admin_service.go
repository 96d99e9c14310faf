package services

import (
	"context"
	"errors"
	"log"

	"staytrack/internal/adapters/persistence/models"
	"staytrack/internal/adapters/persistence/repositories"
	"staytrack/internal/pkg/password"

	"gorm.io/gorm"
)

// Admin management errors
var (
	ErrAdminNotFound = errors.New("admin not found")
	ErrNotYourAdmin  = errors.New("admin belongs to another owner")
)

// AdminService handles owner-side admin account management
type AdminService struct {
	userRepo         repositories.UserRepository
	refreshTokenRepo repositories.RefreshTokenRepository
}

// NewAdminService creates a new admin service
func NewAdminService(
	userRepo repositories.UserRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
) *AdminService {
	return &AdminService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
	}
}

// ResetPasswordInput represents admin password reset input
type ResetPasswordInput struct {
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// ListAdmins lists all admins belonging to the owner
func (s *AdminService) ListAdmins(ctx context.Context, ownerID uint) ([]*models.UserResponse, error) {
	admins, err := s.userRepo.ListAdminsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.UserResponse, 0, len(admins))
	for _, admin := range admins {
		responses = append(responses, admin.ToResponse())
	}
	return responses, nil
}

// GetAdmin gets one admin, verifying it belongs to the owner
func (s *AdminService) GetAdmin(ctx context.Context, ownerID, adminID uint) (*models.UserResponse, error) {
	admin, err := s.getOwnedAdmin(ctx, ownerID, adminID)
	if err != nil {
		return nil, err
	}
	return admin.ToResponse(), nil
}

// DeleteAdmin soft deletes an admin and revokes its sessions
func (s *AdminService) DeleteAdmin(ctx context.Context, ownerID, adminID uint) error {
	admin, err := s.getOwnedAdmin(ctx, ownerID, adminID)
	if err != nil {
		return err
	}

	// Revoke sessions first so a deleted admin cannot refresh
	if err := s.refreshTokenRepo.RevokeAllByUserID(ctx, admin.ID); err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, admin.ID); err != nil {
		return err
	}

	if err := s.userRepo.AdjustOwnerCounter(ctx, ownerID, "admin_count", -1); err != nil {
		log.Printf("⚠️ Failed to update admin count for owner %d: %v", ownerID, err)
	}

	log.Printf("✅ Admin deleted: %s (ID: %d)", admin.Email, admin.ID)
	return nil
}

// ResetAdminPassword sets a new password for an admin and revokes its sessions
func (s *AdminService) ResetAdminPassword(ctx context.Context, ownerID, adminID uint, input *ResetPasswordInput) error {
	admin, err := s.getOwnedAdmin(ctx, ownerID, adminID)
	if err != nil {
		return err
	}

	if err := password.Validate(input.NewPassword); err != nil {
		return err
	}
	hashedPassword, err := password.Hash(input.NewPassword)
	if err != nil {
		return err
	}

	admin.Password = hashedPassword
	if err := s.userRepo.Update(ctx, admin); err != nil {
		return err
	}

	// Old sessions die with the old password
	if err := s.refreshTokenRepo.RevokeAllByUserID(ctx, admin.ID); err != nil {
		return err
	}

	log.Printf("✅ Password reset for admin: %s (ID: %d)", admin.Email, admin.ID)
	return nil
}

// getOwnedAdmin loads an admin and checks the owner relationship
func (s *AdminService) getOwnedAdmin(ctx context.Context, ownerID, adminID uint) (*models.User, error) {
	admin, err := s.userRepo.GetByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}

	if admin.Role != models.RoleAdmin {
		return nil, ErrAdminNotFound
	}
	if admin.OwnerID == nil || *admin.OwnerID != ownerID {
		return nil, ErrNotYourAdmin
	}
	return admin, nil
}

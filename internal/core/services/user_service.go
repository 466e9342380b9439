package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"campushub/internal/adapters/persistence/models"
	"campushub/internal/adapters/persistence/repositories"
	"campushub/internal/core/domain"
	"campushub/internal/core/policy"
	"campushub/internal/pkg/password"

	"gorm.io/gorm"
)

// UserService handles user profile and administration logic
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// UpdateProfileInput represents profile update input
type UpdateProfileInput struct {
	Name           string `json:"name" validate:"omitempty,min=2,max=100"`
	DepartmentName string `json:"department_name" validate:"max=100"`
}

// ChangePasswordInput represents password change input
type ChangePasswordInput struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// CreateAdminInput represents admin account creation input
type CreateAdminInput struct {
	Name           string `json:"name" validate:"required,min=2,max=100"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=8"`
	DepartmentName string `json:"department_name" validate:"required,max=100"`
}

// UpdateUserInput represents admin-side user update input
type UpdateUserInput struct {
	Name           *string `json:"name" validate:"omitempty,min=2,max=100"`
	DepartmentName *string `json:"department_name" validate:"omitempty,max=100"`
	IsActive       *bool   `json:"is_active"`
}

// GetProfile returns the user's own record
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile updates the user's own name/department
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, input *UpdateProfileInput) (*models.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		user.Name = strings.TrimSpace(input.Name)
	}
	if input.DepartmentName != "" {
		user.DepartmentName = strings.TrimSpace(input.DepartmentName)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword verifies the old password and stores a new hash
func (s *UserService) ChangePassword(ctx context.Context, userID uint, input *ChangePasswordInput) error {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return err
	}

	if !password.Verify(input.OldPassword, user.Password) {
		return domain.ErrInvalidPassword
	}

	hashed, err := password.Hash(input.NewPassword)
	if err != nil {
		return err
	}

	user.Password = hashed
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	log.Printf("✅ Password changed for user ID: %d", userID)
	return nil
}

// CreateAdmin creates an ADMIN account. Super admin only.
func (s *UserService) CreateAdmin(ctx context.Context, actorID uint, input *CreateAdminInput) (*models.User, error) {
	actor, err := s.GetProfile(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !policy.CanCreateAdmin(actor) {
		return nil, domain.ErrForbidden
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUserAlreadyExists
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	admin := &models.User{
		Name:           strings.TrimSpace(input.Name),
		Email:          strings.ToLower(strings.TrimSpace(input.Email)),
		Password:       hashed,
		Role:           models.RoleAdmin,
		DepartmentName: strings.TrimSpace(input.DepartmentName),
		IsActive:       true,
	}

	if err := s.userRepo.Create(ctx, admin); err != nil {
		return nil, err
	}

	log.Printf("✅ Admin created: %s [%s]", admin.Email, admin.DepartmentName)
	return admin, nil
}

// ListUsers lists users for administration. Admins only see their own
// department; the super admin sees everyone.
func (s *UserService) ListUsers(ctx context.Context, actorID uint, filter repositories.UserFilter, offset, limit int) ([]*models.User, int64, error) {
	actor, err := s.GetProfile(ctx, actorID)
	if err != nil {
		return nil, 0, err
	}

	switch actor.Role {
	case models.RoleSuperAdmin:
		// No forced scope
	case models.RoleAdmin:
		filter.DepartmentName = actor.DepartmentName
	default:
		return nil, 0, domain.ErrForbidden
	}

	return s.userRepo.List(ctx, filter, offset, limit)
}

// GetUser returns a user record for administration
func (s *UserService) GetUser(ctx context.Context, actorID, targetID uint) (*models.User, error) {
	actor, err := s.GetProfile(ctx, actorID)
	if err != nil {
		return nil, err
	}

	target, err := s.GetProfile(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if !policy.CanManageUser(actor, target) {
		return nil, domain.ErrForbidden
	}
	return target, nil
}

// UpdateUser updates a user record for administration
func (s *UserService) UpdateUser(ctx context.Context, actorID, targetID uint, input *UpdateUserInput) (*models.User, error) {
	target, err := s.GetUser(ctx, actorID, targetID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		target.Name = strings.TrimSpace(*input.Name)
	}
	if input.DepartmentName != nil {
		target.DepartmentName = strings.TrimSpace(*input.DepartmentName)
	}
	if input.IsActive != nil {
		target.IsActive = *input.IsActive
	}

	if err := s.userRepo.Update(ctx, target); err != nil {
		return nil, err
	}
	return target, nil
}

// DeleteUser soft deletes a user record
func (s *UserService) DeleteUser(ctx context.Context, actorID, targetID uint) error {
	if _, err := s.GetUser(ctx, actorID, targetID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, targetID)
}

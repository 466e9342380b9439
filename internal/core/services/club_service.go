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

	"gorm.io/gorm"
)

// Manager assignment precondition errors. Each maps to a 400 with a
// message naming the precondition that failed.
var (
	ErrTargetNoDepartment  = errors.New("target user has no department")
	ErrAlreadyManagingClub = errors.New("target user already manages another club")
	ErrDepartmentMismatch  = errors.New("target user's department does not match the club's department")
)

// ClubService handles club business logic
type ClubService struct {
	clubRepo repositories.ClubRepository
	userRepo repositories.UserRepository
}

// NewClubService creates a new club service
func NewClubService(clubRepo repositories.ClubRepository, userRepo repositories.UserRepository) *ClubService {
	return &ClubService{
		clubRepo: clubRepo,
		userRepo: userRepo,
	}
}

// CreateClubInput represents club creation input
type CreateClubInput struct {
	Name           string `json:"name" validate:"required,min=2,max=100"`
	Description    string `json:"description"`
	Type           string `json:"type" validate:"max=50"`
	DepartmentName string `json:"department_name" validate:"required,max=100"`
}

// UpdateClubInput represents club update input
type UpdateClubInput struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=100"`
	Description *string `json:"description"`
	Type        *string `json:"type" validate:"omitempty,max=50"`
}

// Create creates a new club. Admins may only create clubs in their own
// department; the super admin may create anywhere.
func (s *ClubService) Create(ctx context.Context, actorID uint, input *CreateClubInput) (*models.Club, error) {
	actor, err := s.getUser(ctx, actorID)
	if err != nil {
		return nil, err
	}

	if !policy.CanManageDepartment(actor, input.DepartmentName) {
		return nil, domain.ErrForbidden
	}

	exists, err := s.clubRepo.ExistsByName(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrClubAlreadyExists
	}

	club := &models.Club{
		Name:           strings.TrimSpace(input.Name),
		Description:    input.Description,
		Type:           input.Type,
		DepartmentName: strings.TrimSpace(input.DepartmentName),
	}

	if err := s.clubRepo.Create(ctx, club); err != nil {
		return nil, err
	}

	log.Printf("✅ Club created: %s [%s]", club.Name, club.DepartmentName)
	return club, nil
}

// GetByID gets a club with member count
func (s *ClubService) GetByID(ctx context.Context, id uint) (*models.ClubResponse, error) {
	club, err := s.getClub(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := club.ToResponse()
	if count, err := s.clubRepo.CountApprovedMembers(ctx, id); err == nil {
		resp.MemberCount = count
	}
	return resp, nil
}

// List lists clubs, optionally filtered by department
func (s *ClubService) List(ctx context.Context, departmentName string, offset, limit int) ([]*models.Club, int64, error) {
	return s.clubRepo.List(ctx, departmentName, offset, limit)
}

// Update updates a club. Allowed for the club's manager, a same-department
// admin, or the super admin.
func (s *ClubService) Update(ctx context.Context, actorID, clubID uint, input *UpdateClubInput) (*models.Club, error) {
	actor, err := s.getUser(ctx, actorID)
	if err != nil {
		return nil, err
	}

	club, err := s.getClub(ctx, clubID)
	if err != nil {
		return nil, err
	}

	if !policy.CanManageClub(actor, club) {
		return nil, domain.ErrForbidden
	}

	if input.Name != nil {
		club.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		club.Description = *input.Description
	}
	if input.Type != nil {
		club.Type = *input.Type
	}

	if err := s.clubRepo.Update(ctx, club); err != nil {
		return nil, err
	}
	return club, nil
}

// Delete deletes a club. Department-scoped admin action.
func (s *ClubService) Delete(ctx context.Context, actorID, clubID uint) error {
	actor, err := s.getUser(ctx, actorID)
	if err != nil {
		return err
	}

	club, err := s.getClub(ctx, clubID)
	if err != nil {
		return err
	}

	if !policy.CanManageDepartment(actor, club.DepartmentName) {
		return domain.ErrForbidden
	}

	return s.clubRepo.Delete(ctx, clubID)
}

// AssignManager promotes a user to manage a club.
// Preconditions, each reported separately:
//  1. the target user has a department
//  2. the club has no manager yet
//  3. the target user manages no other club
//  4. the target user's department equals the club's department
//
// The actual promotion is one guarded transaction, so a concurrent second
// assignment fails without mutating either record.
func (s *ClubService) AssignManager(ctx context.Context, actorID, clubID, userID uint) (*models.Club, error) {
	actor, err := s.getUser(ctx, actorID)
	if err != nil {
		return nil, err
	}

	club, err := s.getClub(ctx, clubID)
	if err != nil {
		return nil, err
	}

	if !policy.CanManageDepartment(actor, club.DepartmentName) {
		return nil, domain.ErrForbidden
	}

	target, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if target.DepartmentName == "" {
		return nil, ErrTargetNoDepartment
	}
	if club.ManagerID != nil {
		return nil, domain.ErrClubHasManager
	}
	if target.ManagedClubID != nil {
		return nil, ErrAlreadyManagingClub
	}
	if target.DepartmentName != club.DepartmentName {
		return nil, ErrDepartmentMismatch
	}

	if err := s.clubRepo.AssignManager(ctx, clubID, userID); err != nil {
		return nil, err
	}

	log.Printf("✅ Club manager assigned: user %d -> club %d", userID, clubID)
	return s.getClub(ctx, clubID)
}

func (s *ClubService) getUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *ClubService) getClub(ctx context.Context, id uint) (*models.Club, error) {
	club, err := s.clubRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrClubNotFound
		}
		return nil, err
	}
	return club, nil
}

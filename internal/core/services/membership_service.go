package services

import (
	"context"
	"errors"
	"log"
	"time"

	"campushub/internal/adapters/persistence/models"
	"campushub/internal/adapters/persistence/repositories"
	"campushub/internal/core/domain"
	"campushub/internal/core/policy"

	"gorm.io/gorm"
)

// MembershipService handles the club join workflow
type MembershipService struct {
	memberRepo repositories.ClubMemberRepository
	clubRepo   repositories.ClubRepository
	userRepo   repositories.UserRepository
}

// NewMembershipService creates a new membership service
func NewMembershipService(
	memberRepo repositories.ClubMemberRepository,
	clubRepo repositories.ClubRepository,
	userRepo repositories.UserRepository,
) *MembershipService {
	return &MembershipService{
		memberRepo: memberRepo,
		clubRepo:   clubRepo,
		userRepo:   userRepo,
	}
}

// HandleRequestInput represents the manager's decision on a join request
type HandleRequestInput struct {
	Status string `json:"status" validate:"required,oneof=APPROVED REJECTED"`
	Role   string `json:"role" validate:"omitempty,oneof=CORE_MEMBER GENERAL_MEMBER"`
}

// RequestJoin files a PENDING join record for (club, user).
// A record for the pair, whatever its status, blocks a new request.
func (s *MembershipService) RequestJoin(ctx context.Context, clubID, userID uint) (*models.ClubMember, error) {
	if _, err := s.clubRepo.GetByID(ctx, clubID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrClubNotFound
		}
		return nil, err
	}

	existing, err := s.memberRepo.GetByClubAndUser(ctx, clubID, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrAlreadyRequested
	}

	member := &models.ClubMember{
		ClubID: clubID,
		UserID: userID,
		Role:   models.MemberRoleGeneral,
		Status: models.MemberStatusPending,
	}

	if err := s.memberRepo.Create(ctx, member); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrAlreadyRequested
		}
		return nil, err
	}

	log.Printf("✅ Join request filed: user %d -> club %d", userID, clubID)
	return member, nil
}

// HandleRequest lets the club's manager approve or reject a pending join
// request. APPROVED also sets the member role (default GENERAL_MEMBER) and
// stamps the approver. PENDING is the only state that can transition.
func (s *MembershipService) HandleRequest(ctx context.Context, actorID, memberID uint, input *HandleRequestInput) (*models.ClubMember, error) {
	member, club, err := s.loadMemberAndClub(ctx, memberID)
	if err != nil {
		return nil, err
	}

	actor, err := s.getActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !s.canModerate(actor, club) {
		return nil, domain.ErrForbidden
	}

	if !member.IsPending() {
		return nil, domain.ErrRequestNotPending
	}

	switch input.Status {
	case models.MemberStatusApproved:
		member.Status = models.MemberStatusApproved
		member.Role = models.MemberRoleGeneral
		if input.Role != "" {
			member.Role = input.Role
		}
		now := time.Now()
		member.ApprovedBy = &actorID
		member.ApprovedAt = &now
	case models.MemberStatusRejected:
		member.Status = models.MemberStatusRejected
	default:
		return nil, domain.ErrInvalidMemberStatus
	}

	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, err
	}

	log.Printf("✅ Join request %d handled: %s", member.ID, member.Status)
	return member, nil
}

// UpdateMemberRole changes an approved member's role. Manager only.
func (s *MembershipService) UpdateMemberRole(ctx context.Context, actorID, memberID uint, role string) (*models.ClubMember, error) {
	if role != models.MemberRoleCore && role != models.MemberRoleGeneral {
		return nil, domain.ErrInvalidMemberRole
	}

	member, club, err := s.loadMemberAndClub(ctx, memberID)
	if err != nil {
		return nil, err
	}

	actor, err := s.getActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !s.canModerate(actor, club) {
		return nil, domain.ErrForbidden
	}

	member.Role = role
	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// RemoveMember deletes a join record. Manager only.
func (s *MembershipService) RemoveMember(ctx context.Context, actorID, memberID uint) error {
	member, club, err := s.loadMemberAndClub(ctx, memberID)
	if err != nil {
		return err
	}

	actor, err := s.getActor(ctx, actorID)
	if err != nil {
		return err
	}
	if !s.canModerate(actor, club) {
		return domain.ErrForbidden
	}

	return s.memberRepo.Delete(ctx, member.ID)
}

// ListMembers lists a club's join records for its manager or admins
func (s *MembershipService) ListMembers(ctx context.Context, actorID, clubID uint, status string) ([]*models.ClubMember, error) {
	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrClubNotFound
		}
		return nil, err
	}

	actor, err := s.getActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !policy.CanViewMembers(actor, club) {
		return nil, domain.ErrForbidden
	}

	return s.memberRepo.ListByClub(ctx, clubID, status)
}

// ListMyMemberships lists the caller's join records across clubs
func (s *MembershipService) ListMyMemberships(ctx context.Context, userID uint) ([]*models.ClubMember, error) {
	return s.memberRepo.ListByUser(ctx, userID)
}

// canModerate reports whether the actor may decide on the club's join
// records: the club's own manager, or the super admin.
func (s *MembershipService) canModerate(actor *models.User, club *models.Club) bool {
	if actor.Role == models.RoleSuperAdmin {
		return true
	}
	return club.ManagerID != nil && *club.ManagerID == actor.ID
}

func (s *MembershipService) loadMemberAndClub(ctx context.Context, memberID uint) (*models.ClubMember, *models.Club, error) {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, domain.ErrMemberNotFound
		}
		return nil, nil, err
	}

	club, err := s.clubRepo.GetByID(ctx, member.ClubID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, domain.ErrClubNotFound
		}
		return nil, nil, err
	}

	return member, club, nil
}

func (s *MembershipService) getActor(ctx context.Context, id uint) (*models.User, error) {
	actor, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return actor, nil
}

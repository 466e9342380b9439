package services

import (
	"context"
	"errors"

	"campushub/internal/adapters/persistence/models"
	"campushub/internal/adapters/persistence/repositories"
	"campushub/internal/core/domain"
	"campushub/internal/core/policy"

	"gorm.io/gorm"
)

// ContentService handles club achievements and resources
type ContentService struct {
	achievementRepo repositories.AchievementRepository
	resourceRepo    repositories.ResourceRepository
	clubRepo        repositories.ClubRepository
	memberRepo      repositories.ClubMemberRepository
	userRepo        repositories.UserRepository
}

// NewContentService creates a new content service
func NewContentService(
	achievementRepo repositories.AchievementRepository,
	resourceRepo repositories.ResourceRepository,
	clubRepo repositories.ClubRepository,
	memberRepo repositories.ClubMemberRepository,
	userRepo repositories.UserRepository,
) *ContentService {
	return &ContentService{
		achievementRepo: achievementRepo,
		resourceRepo:    resourceRepo,
		clubRepo:        clubRepo,
		memberRepo:      memberRepo,
		userRepo:        userRepo,
	}
}

// AchievementInput represents achievement create/update input
type AchievementInput struct {
	Title       string `json:"title" validate:"required,min=2,max=200"`
	Description string `json:"description"`
	AccessLevel string `json:"access_level" validate:"omitempty,oneof=PUBLIC MEMBERS_ONLY CORE_MEMBERS_ONLY"`
}

// ResourceInput represents resource create/update input
type ResourceInput struct {
	Title       string `json:"title" validate:"required,min=2,max=200"`
	URL         string `json:"url" validate:"omitempty,url,max=500"`
	Description string `json:"description"`
	AccessLevel string `json:"access_level" validate:"omitempty,oneof=PUBLIC MEMBERS_ONLY CORE_MEMBERS_ONLY"`
}

// CreateAchievement creates an achievement on a club
func (s *ContentService) CreateAchievement(ctx context.Context, actorID, clubID uint, input *AchievementInput) (*models.ClubAchievement, error) {
	club, err := s.requireClubManagement(ctx, actorID, clubID)
	if err != nil {
		return nil, err
	}

	achievement := &models.ClubAchievement{
		ClubID:      club.ID,
		Title:       input.Title,
		Description: input.Description,
		AccessLevel: accessOrPublic(input.AccessLevel),
	}

	if err := s.achievementRepo.Create(ctx, achievement); err != nil {
		return nil, err
	}
	return achievement, nil
}

// UpdateAchievement updates an achievement
func (s *ContentService) UpdateAchievement(ctx context.Context, actorID, achievementID uint, input *AchievementInput) (*models.ClubAchievement, error) {
	achievement, err := s.achievementRepo.GetByID(ctx, achievementID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if _, err := s.requireClubManagement(ctx, actorID, achievement.ClubID); err != nil {
		return nil, err
	}

	achievement.Title = input.Title
	achievement.Description = input.Description
	achievement.AccessLevel = accessOrPublic(input.AccessLevel)

	if err := s.achievementRepo.Update(ctx, achievement); err != nil {
		return nil, err
	}
	return achievement, nil
}

// DeleteAchievement deletes an achievement
func (s *ContentService) DeleteAchievement(ctx context.Context, actorID, achievementID uint) error {
	achievement, err := s.achievementRepo.GetByID(ctx, achievementID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}

	if _, err := s.requireClubManagement(ctx, actorID, achievement.ClubID); err != nil {
		return err
	}

	return s.achievementRepo.Delete(ctx, achievementID)
}

// ListAchievements lists a club's achievements the viewer may see.
// viewerID 0 means anonymous; only PUBLIC items come back.
func (s *ContentService) ListAchievements(ctx context.Context, viewerID, clubID uint) ([]*models.ClubAchievement, error) {
	club, viewer, membership, err := s.loadViewerContext(ctx, viewerID, clubID)
	if err != nil {
		return nil, err
	}

	all, err := s.achievementRepo.ListByClub(ctx, clubID)
	if err != nil {
		return nil, err
	}

	visible := make([]*models.ClubAchievement, 0, len(all))
	for _, a := range all {
		if viewer == nil {
			if a.AccessLevel == models.AccessPublic {
				visible = append(visible, a)
			}
			continue
		}
		if policy.CanAccessContent(viewer, club, a.AccessLevel, membership) {
			visible = append(visible, a)
		}
	}
	return visible, nil
}

// CreateResource creates a resource on a club
func (s *ContentService) CreateResource(ctx context.Context, actorID, clubID uint, input *ResourceInput) (*models.ClubResource, error) {
	club, err := s.requireClubManagement(ctx, actorID, clubID)
	if err != nil {
		return nil, err
	}

	resource := &models.ClubResource{
		ClubID:      club.ID,
		Title:       input.Title,
		URL:         input.URL,
		Description: input.Description,
		AccessLevel: accessOrPublic(input.AccessLevel),
	}

	if err := s.resourceRepo.Create(ctx, resource); err != nil {
		return nil, err
	}
	return resource, nil
}

// UpdateResource updates a resource
func (s *ContentService) UpdateResource(ctx context.Context, actorID, resourceID uint, input *ResourceInput) (*models.ClubResource, error) {
	resource, err := s.resourceRepo.GetByID(ctx, resourceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if _, err := s.requireClubManagement(ctx, actorID, resource.ClubID); err != nil {
		return nil, err
	}

	resource.Title = input.Title
	resource.URL = input.URL
	resource.Description = input.Description
	resource.AccessLevel = accessOrPublic(input.AccessLevel)

	if err := s.resourceRepo.Update(ctx, resource); err != nil {
		return nil, err
	}
	return resource, nil
}

// DeleteResource deletes a resource
func (s *ContentService) DeleteResource(ctx context.Context, actorID, resourceID uint) error {
	resource, err := s.resourceRepo.GetByID(ctx, resourceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}

	if _, err := s.requireClubManagement(ctx, actorID, resource.ClubID); err != nil {
		return err
	}

	return s.resourceRepo.Delete(ctx, resourceID)
}

// ListResources lists a club's resources the viewer may see.
// viewerID 0 means anonymous; only PUBLIC items come back.
func (s *ContentService) ListResources(ctx context.Context, viewerID, clubID uint) ([]*models.ClubResource, error) {
	club, viewer, membership, err := s.loadViewerContext(ctx, viewerID, clubID)
	if err != nil {
		return nil, err
	}

	all, err := s.resourceRepo.ListByClub(ctx, clubID)
	if err != nil {
		return nil, err
	}

	visible := make([]*models.ClubResource, 0, len(all))
	for _, r := range all {
		if viewer == nil {
			if r.AccessLevel == models.AccessPublic {
				visible = append(visible, r)
			}
			continue
		}
		if policy.CanAccessContent(viewer, club, r.AccessLevel, membership) {
			visible = append(visible, r)
		}
	}
	return visible, nil
}

// requireClubManagement loads the club and checks the actor may manage it
func (s *ContentService) requireClubManagement(ctx context.Context, actorID, clubID uint) (*models.Club, error) {
	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrClubNotFound
		}
		return nil, err
	}

	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	if !policy.CanManageClub(actor, club) {
		return nil, domain.ErrForbidden
	}
	return club, nil
}

// loadViewerContext loads the club plus the viewer and their join record.
// A zero viewerID yields a nil viewer (anonymous browsing).
func (s *ContentService) loadViewerContext(ctx context.Context, viewerID, clubID uint) (*models.Club, *models.User, *models.ClubMember, error) {
	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil, domain.ErrClubNotFound
		}
		return nil, nil, nil, err
	}

	if viewerID == 0 {
		return club, nil, nil, nil
	}

	viewer, err := s.userRepo.GetByID(ctx, viewerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil, domain.ErrUserNotFound
		}
		return nil, nil, nil, err
	}

	membership, err := s.memberRepo.GetByClubAndUser(ctx, clubID, viewerID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, nil, err
	}

	return club, viewer, membership, nil
}

func accessOrPublic(level string) string {
	if level == "" {
		return models.AccessPublic
	}
	return level
}

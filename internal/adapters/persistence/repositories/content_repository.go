package repositories

import (
	"context"

	"campushub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// achievementRepository implements AchievementRepository interface
type achievementRepository struct {
	db *gorm.DB
}

// NewAchievementRepository creates a new achievement repository
func NewAchievementRepository(db *gorm.DB) AchievementRepository {
	return &achievementRepository{db: db}
}

func (r *achievementRepository) Create(ctx context.Context, achievement *models.ClubAchievement) error {
	return r.db.WithContext(ctx).Create(achievement).Error
}

func (r *achievementRepository) GetByID(ctx context.Context, id uint) (*models.ClubAchievement, error) {
	var achievement models.ClubAchievement
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&achievement).Error
	if err != nil {
		return nil, err
	}
	return &achievement, nil
}

func (r *achievementRepository) Update(ctx context.Context, achievement *models.ClubAchievement) error {
	return r.db.WithContext(ctx).Save(achievement).Error
}

func (r *achievementRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.ClubAchievement{}, id).Error
}

func (r *achievementRepository) ListByClub(ctx context.Context, clubID uint) ([]*models.ClubAchievement, error) {
	var achievements []*models.ClubAchievement
	err := r.db.WithContext(ctx).
		Where("club_id = ?", clubID).
		Order("id").
		Find(&achievements).Error
	if err != nil {
		return nil, err
	}
	return achievements, nil
}

// resourceRepository implements ResourceRepository interface
type resourceRepository struct {
	db *gorm.DB
}

// NewResourceRepository creates a new resource repository
func NewResourceRepository(db *gorm.DB) ResourceRepository {
	return &resourceRepository{db: db}
}

func (r *resourceRepository) Create(ctx context.Context, resource *models.ClubResource) error {
	return r.db.WithContext(ctx).Create(resource).Error
}

func (r *resourceRepository) GetByID(ctx context.Context, id uint) (*models.ClubResource, error) {
	var resource models.ClubResource
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&resource).Error
	if err != nil {
		return nil, err
	}
	return &resource, nil
}

func (r *resourceRepository) Update(ctx context.Context, resource *models.ClubResource) error {
	return r.db.WithContext(ctx).Save(resource).Error
}

func (r *resourceRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.ClubResource{}, id).Error
}

func (r *resourceRepository) ListByClub(ctx context.Context, clubID uint) ([]*models.ClubResource, error) {
	var resources []*models.ClubResource
	err := r.db.WithContext(ctx).
		Where("club_id = ?", clubID).
		Order("id").
		Find(&resources).Error
	if err != nil {
		return nil, err
	}
	return resources, nil
}

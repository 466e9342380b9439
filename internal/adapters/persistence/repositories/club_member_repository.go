package repositories

import (
	"context"

	"campushub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// clubMemberRepository implements ClubMemberRepository interface
type clubMemberRepository struct {
	db *gorm.DB
}

// NewClubMemberRepository creates a new club member repository
func NewClubMemberRepository(db *gorm.DB) ClubMemberRepository {
	return &clubMemberRepository{db: db}
}

// Create creates a new join record
func (r *clubMemberRepository) Create(ctx context.Context, member *models.ClubMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

// GetByID gets a join record by ID with user and club preloaded
func (r *clubMemberRepository) GetByID(ctx context.Context, id uint) (*models.ClubMember, error) {
	var member models.ClubMember
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Club").
		Where("id = ?", id).
		First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// GetByClubAndUser gets the join record for a (club, user) pair
func (r *clubMemberRepository) GetByClubAndUser(ctx context.Context, clubID, userID uint) (*models.ClubMember, error) {
	var member models.ClubMember
	err := r.db.WithContext(ctx).
		Where("club_id = ? AND user_id = ?", clubID, userID).
		First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// Update updates a join record
func (r *clubMemberRepository) Update(ctx context.Context, member *models.ClubMember) error {
	return r.db.WithContext(ctx).Save(member).Error
}

// Delete removes a join record ("remove member")
func (r *clubMemberRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.ClubMember{}, id).Error
}

// ListByClub lists join records for a club, optionally filtered by status
func (r *clubMemberRepository) ListByClub(ctx context.Context, clubID uint, status string) ([]*models.ClubMember, error) {
	var members []*models.ClubMember
	query := r.db.WithContext(ctx).
		Preload("User").
		Where("club_id = ?", clubID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("id").Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

// ListByUser lists a user's join records across clubs
func (r *clubMemberRepository) ListByUser(ctx context.Context, userID uint) ([]*models.ClubMember, error) {
	var members []*models.ClubMember
	err := r.db.WithContext(ctx).
		Preload("Club").
		Where("user_id = ?", userID).
		Order("id").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

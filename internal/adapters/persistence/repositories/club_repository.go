package repositories

import (
	"context"

	"campushub/internal/adapters/persistence/models"
	"campushub/internal/core/domain"

	"gorm.io/gorm"
)

// clubRepository implements ClubRepository interface
type clubRepository struct {
	db *gorm.DB
}

// NewClubRepository creates a new club repository
func NewClubRepository(db *gorm.DB) ClubRepository {
	return &clubRepository{db: db}
}

// Create creates a new club
func (r *clubRepository) Create(ctx context.Context, club *models.Club) error {
	return r.db.WithContext(ctx).Create(club).Error
}

// GetByID gets a club by ID with its manager preloaded
func (r *clubRepository) GetByID(ctx context.Context, id uint) (*models.Club, error) {
	var club models.Club
	err := r.db.WithContext(ctx).
		Preload("Manager").
		Where("id = ?", id).
		First(&club).Error
	if err != nil {
		return nil, err
	}
	return &club, nil
}

// Update updates a club
func (r *clubRepository) Update(ctx context.Context, club *models.Club) error {
	return r.db.WithContext(ctx).Save(club).Error
}

// Delete soft deletes a club
func (r *clubRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Club{}, id).Error
}

// List lists clubs, optionally filtered by department, with pagination
func (r *clubRepository) List(ctx context.Context, departmentName string, offset, limit int) ([]*models.Club, int64, error) {
	var clubs []*models.Club
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Club{})
	if departmentName != "" {
		query = query.Where("department_name = ?", departmentName)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("Manager").Offset(offset).Limit(limit).Order("id").Find(&clubs).Error; err != nil {
		return nil, 0, err
	}

	return clubs, total, nil
}

// ExistsByName checks if a club name is taken
func (r *clubRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Club{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

// CountApprovedMembers counts approved members of a club
func (r *clubRepository) CountApprovedMembers(ctx context.Context, clubID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ClubMember{}).
		Where("club_id = ?", clubID).
		Where("status = ?", models.MemberStatusApproved).
		Count(&count).Error
	return count, err
}

// AssignManager promotes the user and claims the club in a single
// transaction. The club update is guarded by `manager_id IS NULL`, so two
// concurrent assignments cannot both succeed; the loser sees zero rows
// affected and nothing is mutated.
func (r *clubRepository) AssignManager(ctx context.Context, clubID, userID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Club{}).
			Where("id = ? AND manager_id IS NULL", clubID).
			Update("manager_id", userID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrClubHasManager
		}

		return tx.Model(&models.User{}).
			Where("id = ?", userID).
			Updates(map[string]interface{}{
				"role":            models.RoleClubManager,
				"managed_club_id": clubID,
			}).Error
	})
}

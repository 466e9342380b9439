package repositories

import (
	"context"

	"campushub/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter UserFilter, offset, limit int) ([]*models.User, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateLastLogin(ctx context.Context, id uint) error
}

// UserFilter narrows user listings
type UserFilter struct {
	Role           string
	DepartmentName string
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// ClubRepository defines club repository interface
type ClubRepository interface {
	Create(ctx context.Context, club *models.Club) error
	GetByID(ctx context.Context, id uint) (*models.Club, error)
	Update(ctx context.Context, club *models.Club) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, departmentName string, offset, limit int) ([]*models.Club, int64, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	CountApprovedMembers(ctx context.Context, clubID uint) (int64, error)
	// AssignManager atomically promotes the user and claims the club.
	// Fails with domain.ErrClubHasManager when the club is already claimed.
	AssignManager(ctx context.Context, clubID, userID uint) error
}

// ClubMemberRepository defines club member repository interface
type ClubMemberRepository interface {
	Create(ctx context.Context, member *models.ClubMember) error
	GetByID(ctx context.Context, id uint) (*models.ClubMember, error)
	GetByClubAndUser(ctx context.Context, clubID, userID uint) (*models.ClubMember, error)
	Update(ctx context.Context, member *models.ClubMember) error
	Delete(ctx context.Context, id uint) error
	ListByClub(ctx context.Context, clubID uint, status string) ([]*models.ClubMember, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.ClubMember, error)
}

// EventRepository defines event repository interface
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id uint) (*models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter EventFilter, offset, limit int) ([]*models.Event, int64, error)
	GetRegistration(ctx context.Context, eventID, userID uint) (*models.EventRegistration, error)
	ListRegistrations(ctx context.Context, eventID uint) ([]*models.EventRegistration, error)
	ListRegisteredEvents(ctx context.Context, userID uint) ([]*models.Event, error)
	// Register appends the user in one transaction: the seat increment is
	// guarded by `registered_count < capacity`, so concurrent registrations
	// can never overfill the event. Fails with domain.ErrEventFull or
	// domain.ErrAlreadyRegistered.
	Register(ctx context.Context, eventID, userID uint) error
	// Cancel removes the user's registration and releases the seat in one
	// transaction. Fails with domain.ErrNotRegistered.
	Cancel(ctx context.Context, eventID, userID uint) error
}

// EventFilter narrows event listings
type EventFilter struct {
	Category     string
	ClubID       uint
	UpcomingOnly bool
}

// AchievementRepository defines club achievement repository interface
type AchievementRepository interface {
	Create(ctx context.Context, achievement *models.ClubAchievement) error
	GetByID(ctx context.Context, id uint) (*models.ClubAchievement, error)
	Update(ctx context.Context, achievement *models.ClubAchievement) error
	Delete(ctx context.Context, id uint) error
	ListByClub(ctx context.Context, clubID uint) ([]*models.ClubAchievement, error)
}

// ResourceRepository defines club resource repository interface
type ResourceRepository interface {
	Create(ctx context.Context, resource *models.ClubResource) error
	GetByID(ctx context.Context, id uint) (*models.ClubResource, error)
	Update(ctx context.Context, resource *models.ClubResource) error
	Delete(ctx context.Context, id uint) error
	ListByClub(ctx context.Context, clubID uint) ([]*models.ClubResource, error)
}

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

// EventService handles event business logic
type EventService struct {
	eventRepo repositories.EventRepository
	clubRepo  repositories.ClubRepository
	userRepo  repositories.UserRepository
}

// NewEventService creates a new event service
func NewEventService(
	eventRepo repositories.EventRepository,
	clubRepo repositories.ClubRepository,
	userRepo repositories.UserRepository,
) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		clubRepo:  clubRepo,
		userRepo:  userRepo,
	}
}

// CreateEventInput represents event creation input
type CreateEventInput struct {
	Title                string    `json:"title" validate:"required,min=2,max=200"`
	Description          string    `json:"description"`
	Date                 time.Time `json:"date" validate:"required"`
	Venue                string    `json:"venue" validate:"max=200"`
	Capacity             int       `json:"capacity" validate:"required,gt=0"`
	RegistrationDeadline time.Time `json:"registration_deadline" validate:"required"`
	Category             string    `json:"category" validate:"max=50"`
	ClubID               uint      `json:"club_id" validate:"required"`
}

// UpdateEventInput represents event update input
type UpdateEventInput struct {
	Title                *string    `json:"title" validate:"omitempty,min=2,max=200"`
	Description          *string    `json:"description"`
	Date                 *time.Time `json:"date"`
	Venue                *string    `json:"venue" validate:"omitempty,max=200"`
	Capacity             *int       `json:"capacity" validate:"omitempty,gt=0"`
	RegistrationDeadline *time.Time `json:"registration_deadline"`
	Category             *string    `json:"category" validate:"omitempty,max=50"`
}

// Create creates an event under a club. Allowed for the club's manager,
// a same-department admin, or the super admin.
func (s *EventService) Create(ctx context.Context, actorID uint, input *CreateEventInput) (*models.Event, error) {
	actor, err := s.getActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	club, err := s.getClub(ctx, input.ClubID)
	if err != nil {
		return nil, err
	}

	if !policy.CanManageClub(actor, club) {
		return nil, domain.ErrForbidden
	}

	if input.RegistrationDeadline.After(input.Date) {
		return nil, domain.ErrDeadlineAfterEvent
	}

	event := &models.Event{
		Title:                input.Title,
		Description:          input.Description,
		Date:                 input.Date,
		Venue:                input.Venue,
		Capacity:             input.Capacity,
		RegistrationDeadline: input.RegistrationDeadline,
		Category:             input.Category,
		ClubID:               input.ClubID,
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	log.Printf("✅ Event created: %s (club %d)", event.Title, event.ClubID)
	return event, nil
}

// GetByID gets an event
func (s *EventService) GetByID(ctx context.Context, id uint) (*models.Event, error) {
	return s.getEvent(ctx, id)
}

// List lists events with optional filters
func (s *EventService) List(ctx context.Context, filter repositories.EventFilter, offset, limit int) ([]*models.Event, int64, error) {
	return s.eventRepo.List(ctx, filter, offset, limit)
}

// Update updates an event. Capacity can never drop below the number of
// seats already taken.
func (s *EventService) Update(ctx context.Context, actorID, eventID uint, input *UpdateEventInput) (*models.Event, error) {
	event, club, err := s.loadEventAndClub(ctx, eventID)
	if err != nil {
		return nil, err
	}

	actor, err := s.getActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !policy.CanManageEvent(actor, club) {
		return nil, domain.ErrForbidden
	}

	if input.Title != nil {
		event.Title = *input.Title
	}
	if input.Description != nil {
		event.Description = *input.Description
	}
	if input.Date != nil {
		event.Date = *input.Date
	}
	if input.Venue != nil {
		event.Venue = *input.Venue
	}
	if input.Capacity != nil {
		if *input.Capacity < event.RegisteredCount {
			return nil, domain.ErrCapacityBelowRegistered
		}
		event.Capacity = *input.Capacity
	}
	if input.RegistrationDeadline != nil {
		event.RegistrationDeadline = *input.RegistrationDeadline
	}
	if input.Category != nil {
		event.Category = *input.Category
	}

	if event.RegistrationDeadline.After(event.Date) {
		return nil, domain.ErrDeadlineAfterEvent
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// Delete deletes an event
func (s *EventService) Delete(ctx context.Context, actorID, eventID uint) error {
	_, club, err := s.loadEventAndClub(ctx, eventID)
	if err != nil {
		return err
	}

	actor, err := s.getActor(ctx, actorID)
	if err != nil {
		return err
	}
	if !policy.CanManageEvent(actor, club) {
		return domain.ErrForbidden
	}

	return s.eventRepo.Delete(ctx, eventID)
}

// Register registers the user for an event.
// The cheap checks run first for friendly errors; the repository's guarded
// transaction is what actually decides under concurrency.
func (s *EventService) Register(ctx context.Context, eventID, userID uint) error {
	// 1. Load event
	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return err
	}

	// 2. Deadline check
	if event.RegistrationClosed(time.Now()) {
		return domain.ErrRegistrationClosed
	}

	// 3. Duplicate check
	existing, err := s.eventRepo.GetRegistration(ctx, eventID, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if existing != nil {
		return domain.ErrAlreadyRegistered
	}

	// 4. Capacity check
	if event.IsFull() {
		return domain.ErrEventFull
	}

	// 5. Atomic registration; the transaction re-checks capacity and the
	// unique (event, user) index, so races resolve to the same errors.
	if err := s.eventRepo.Register(ctx, eventID, userID); err != nil {
		return err
	}

	log.Printf("✅ Registration: user %d -> event %d", userID, eventID)
	return nil
}

// Cancel removes the user's registration and frees the seat
func (s *EventService) Cancel(ctx context.Context, eventID, userID uint) error {
	if _, err := s.getEvent(ctx, eventID); err != nil {
		return err
	}

	if err := s.eventRepo.Cancel(ctx, eventID, userID); err != nil {
		return err
	}

	log.Printf("✅ Registration cancelled: user %d -> event %d", userID, eventID)
	return nil
}

// ListRegistrations lists an event's registrations for its organizers
func (s *EventService) ListRegistrations(ctx context.Context, actorID, eventID uint) ([]*models.EventRegistration, error) {
	_, club, err := s.loadEventAndClub(ctx, eventID)
	if err != nil {
		return nil, err
	}

	actor, err := s.getActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !policy.CanManageEvent(actor, club) {
		return nil, domain.ErrForbidden
	}

	return s.eventRepo.ListRegistrations(ctx, eventID)
}

// ListMyEvents lists the events the user is registered for
func (s *EventService) ListMyEvents(ctx context.Context, userID uint) ([]*models.Event, error) {
	return s.eventRepo.ListRegisteredEvents(ctx, userID)
}

func (s *EventService) loadEventAndClub(ctx context.Context, eventID uint) (*models.Event, *models.Club, error) {
	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return nil, nil, err
	}

	club, err := s.getClub(ctx, event.ClubID)
	if err != nil {
		return nil, nil, err
	}

	return event, club, nil
}

func (s *EventService) getEvent(ctx context.Context, id uint) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

func (s *EventService) getClub(ctx context.Context, id uint) (*models.Club, error) {
	club, err := s.clubRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrClubNotFound
		}
		return nil, err
	}
	return club, nil
}

func (s *EventService) getActor(ctx context.Context, id uint) (*models.User, error) {
	actor, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return actor, nil
}

package repositories

import (
	"context"
	"errors"
	"time"

	"campushub/internal/adapters/persistence/models"
	"campushub/internal/core/domain"

	"gorm.io/gorm"
)

// eventRepository implements EventRepository interface
type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

// Create creates a new event
func (r *eventRepository) Create(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// GetByID gets an event by ID with its club preloaded
func (r *eventRepository) GetByID(ctx context.Context, id uint) (*models.Event, error) {
	var event models.Event
	err := r.db.WithContext(ctx).
		Preload("Club").
		Where("id = ?", id).
		First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// Update updates an event
func (r *eventRepository) Update(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

// Delete soft deletes an event
func (r *eventRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Event{}, id).Error
}

// List lists events with filters and pagination
func (r *eventRepository) List(ctx context.Context, filter EventFilter, offset, limit int) ([]*models.Event, int64, error) {
	var events []*models.Event
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Event{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.ClubID != 0 {
		query = query.Where("club_id = ?", filter.ClubID)
	}
	if filter.UpcomingOnly {
		query = query.Where("date >= ?", time.Now())
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("Club").Offset(offset).Limit(limit).Order("date").Find(&events).Error; err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

// GetRegistration gets the registration for an (event, user) pair
func (r *eventRepository) GetRegistration(ctx context.Context, eventID, userID uint) (*models.EventRegistration, error) {
	var reg models.EventRegistration
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&reg).Error
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// ListRegistrations lists all registrations of an event
func (r *eventRepository) ListRegistrations(ctx context.Context, eventID uint) ([]*models.EventRegistration, error) {
	var regs []*models.EventRegistration
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("event_id = ?", eventID).
		Order("id").
		Find(&regs).Error
	if err != nil {
		return nil, err
	}
	return regs, nil
}

// ListRegisteredEvents lists events a user is registered for
func (r *eventRepository) ListRegisteredEvents(ctx context.Context, userID uint) ([]*models.Event, error) {
	var events []*models.Event
	err := r.db.WithContext(ctx).
		Preload("Club").
		Joins("JOIN event_registrations ON event_registrations.event_id = events.id").
		Where("event_registrations.user_id = ?", userID).
		Order("events.date").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// Register claims a seat and records the registration in one transaction.
// The increment only lands when a seat is free, so two concurrent
// registrations for the last seat cannot both pass; the unique
// (event_id, user_id) index rejects double registration and rolls the
// seat back.
func (r *eventRepository) Register(ctx context.Context, eventID, userID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Event{}).
			Where("id = ? AND registered_count < capacity", eventID).
			UpdateColumn("registered_count", gorm.Expr("registered_count + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrEventFull
		}

		reg := &models.EventRegistration{EventID: eventID, UserID: userID}
		if err := tx.Create(reg).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrAlreadyRegistered
			}
			return err
		}
		return nil
	})
}

// Cancel removes the registration and releases the seat in one transaction.
func (r *eventRepository) Cancel(ctx context.Context, eventID, userID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("event_id = ? AND user_id = ?", eventID, userID).
			Delete(&models.EventRegistration{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotRegistered
		}

		return tx.Model(&models.Event{}).
			Where("id = ? AND registered_count > 0", eventID).
			UpdateColumn("registered_count", gorm.Expr("registered_count - 1")).Error
	})
}

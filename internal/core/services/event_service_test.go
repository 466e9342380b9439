package services

import (
	"context"
	"testing"
	"time"

	"campushub/internal/adapters/persistence/models"
	"campushub/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEventServiceFixture() (*EventService, *mockUserRepo, *mockClubRepo, *mockEventRepo) {
	userRepo := newMockUserRepo()
	clubRepo := newMockClubRepo(userRepo)
	eventRepo := newMockEventRepo()
	return NewEventService(eventRepo, clubRepo, userRepo), userRepo, clubRepo, eventRepo
}

func TestCreateEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("manager creates event for own club", func(t *testing.T) {
		svc, userRepo, clubRepo, _ := newEventServiceFixture()
		manager := userRepo.addUser("Manager", "m@campus.edu", models.RoleClubManager, "Engineering")
		club := clubRepo.addClub("Robotics Club", "Engineering")
		club.ManagerID = &manager.ID
		manager.ManagedClubID = &club.ID

		event, err := svc.Create(ctx, manager.ID, &CreateEventInput{
			Title:                "Tech Talk",
			Date:                 time.Now().Add(48 * time.Hour),
			Capacity:             50,
			RegistrationDeadline: time.Now().Add(24 * time.Hour),
			ClubID:               club.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, "Tech Talk", event.Title)
		assert.Equal(t, 0, event.RegisteredCount)
	})

	t.Run("deadline after event date is rejected", func(t *testing.T) {
		svc, userRepo, clubRepo, _ := newEventServiceFixture()
		super := userRepo.addUser("Root", "root@campus.edu", models.RoleSuperAdmin, "")
		club := clubRepo.addClub("Robotics Club", "Engineering")

		_, err := svc.Create(ctx, super.ID, &CreateEventInput{
			Title:                "Tech Talk",
			Date:                 time.Now().Add(24 * time.Hour),
			Capacity:             50,
			RegistrationDeadline: time.Now().Add(48 * time.Hour),
			ClubID:               club.ID,
		})
		assert.ErrorIs(t, err, domain.ErrDeadlineAfterEvent)
	})

	t.Run("student cannot create events", func(t *testing.T) {
		svc, userRepo, clubRepo, _ := newEventServiceFixture()
		student := userRepo.addUser("Student", "s@campus.edu", models.RoleStudent, "Engineering")
		club := clubRepo.addClub("Robotics Club", "Engineering")

		_, err := svc.Create(ctx, student.ID, &CreateEventInput{
			Title:                "Tech Talk",
			Date:                 time.Now().Add(48 * time.Hour),
			Capacity:             50,
			RegistrationDeadline: time.Now().Add(24 * time.Hour),
			ClubID:               club.ID,
		})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestEventRegistration(t *testing.T) {
	ctx := context.Background()

	t.Run("register and cancel", func(t *testing.T) {
		svc, userRepo, clubRepo, eventRepo := newEventServiceFixture()
		student := userRepo.addUser("Student", "s@campus.edu", models.RoleStudent, "Engineering")
		club := clubRepo.addClub("Robotics Club", "Engineering")
		event := eventRepo.addEvent(club.ID, 10, time.Now().Add(24*time.Hour), time.Now().Add(48*time.Hour))

		require.NoError(t, svc.Register(ctx, event.ID, student.ID))
		assert.Equal(t, 1, event.RegisteredCount)

		require.NoError(t, svc.Cancel(ctx, event.ID, student.ID))
		assert.Equal(t, 0, event.RegisteredCount)
	})

	t.Run("duplicate registration is rejected", func(t *testing.T) {
		svc, userRepo, clubRepo, eventRepo := newEventServiceFixture()
		student := userRepo.addUser("Student", "s@campus.edu", models.RoleStudent, "Engineering")
		club := clubRepo.addClub("Robotics Club", "Engineering")
		event := eventRepo.addEvent(club.ID, 10, time.Now().Add(24*time.Hour), time.Now().Add(48*time.Hour))

		require.NoError(t, svc.Register(ctx, event.ID, student.ID))
		err := svc.Register(ctx, event.ID, student.ID)
		assert.ErrorIs(t, err, domain.ErrAlreadyRegistered)
		assert.Equal(t, 1, event.RegisteredCount)
	})

	t.Run("past deadline is rejected", func(t *testing.T) {
		svc, userRepo, clubRepo, eventRepo := newEventServiceFixture()
		student := userRepo.addUser("Student", "s@campus.edu", models.RoleStudent, "Engineering")
		club := clubRepo.addClub("Robotics Club", "Engineering")
		event := eventRepo.addEvent(club.ID, 10, time.Now().Add(-1*time.Hour), time.Now().Add(48*time.Hour))

		err := svc.Register(ctx, event.ID, student.ID)
		assert.ErrorIs(t, err, domain.ErrRegistrationClosed)
		assert.Equal(t, 0, event.RegisteredCount)
	})

	t.Run("last seat goes to exactly one of two registrants", func(t *testing.T) {
		svc, userRepo, clubRepo, eventRepo := newEventServiceFixture()
		alice := userRepo.addUser("Alice", "a@campus.edu", models.RoleStudent, "Engineering")
		bob := userRepo.addUser("Bob", "b@campus.edu", models.RoleStudent, "Engineering")
		club := clubRepo.addClub("Robotics Club", "Engineering")
		event := eventRepo.addEvent(club.ID, 1, time.Now().Add(24*time.Hour), time.Now().Add(48*time.Hour))

		require.NoError(t, svc.Register(ctx, event.ID, alice.ID))

		err := svc.Register(ctx, event.ID, bob.ID)
		assert.ErrorIs(t, err, domain.ErrEventFull)

		// registered_count never exceeds capacity
		assert.Equal(t, 1, event.RegisteredCount)
		assert.LessOrEqual(t, event.RegisteredCount, event.Capacity)
	})

	t.Run("cancel without registration", func(t *testing.T) {
		svc, userRepo, clubRepo, eventRepo := newEventServiceFixture()
		student := userRepo.addUser("Student", "s@campus.edu", models.RoleStudent, "Engineering")
		club := clubRepo.addClub("Robotics Club", "Engineering")
		event := eventRepo.addEvent(club.ID, 10, time.Now().Add(24*time.Hour), time.Now().Add(48*time.Hour))

		err := svc.Cancel(ctx, event.ID, student.ID)
		assert.ErrorIs(t, err, domain.ErrNotRegistered)
	})

	t.Run("cancel frees a seat for the next registrant", func(t *testing.T) {
		svc, userRepo, clubRepo, eventRepo := newEventServiceFixture()
		alice := userRepo.addUser("Alice", "a@campus.edu", models.RoleStudent, "Engineering")
		bob := userRepo.addUser("Bob", "b@campus.edu", models.RoleStudent, "Engineering")
		club := clubRepo.addClub("Robotics Club", "Engineering")
		event := eventRepo.addEvent(club.ID, 1, time.Now().Add(24*time.Hour), time.Now().Add(48*time.Hour))

		require.NoError(t, svc.Register(ctx, event.ID, alice.ID))
		require.NoError(t, svc.Cancel(ctx, event.ID, alice.ID))
		require.NoError(t, svc.Register(ctx, event.ID, bob.ID))
		assert.Equal(t, 1, event.RegisteredCount)
	})
}

func TestUpdateEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("capacity cannot drop below registrations", func(t *testing.T) {
		svc, userRepo, clubRepo, eventRepo := newEventServiceFixture()
		super := userRepo.addUser("Root", "root@campus.edu", models.RoleSuperAdmin, "")
		alice := userRepo.addUser("Alice", "a@campus.edu", models.RoleStudent, "Engineering")
		bob := userRepo.addUser("Bob", "b@campus.edu", models.RoleStudent, "Engineering")
		club := clubRepo.addClub("Robotics Club", "Engineering")
		event := eventRepo.addEvent(club.ID, 10, time.Now().Add(24*time.Hour), time.Now().Add(48*time.Hour))

		require.NoError(t, svc.Register(ctx, event.ID, alice.ID))
		require.NoError(t, svc.Register(ctx, event.ID, bob.ID))

		capacity := 1
		_, err := svc.Update(ctx, super.ID, event.ID, &UpdateEventInput{Capacity: &capacity})
		assert.ErrorIs(t, err, domain.ErrCapacityBelowRegistered)
	})

	t.Run("manager of another club is forbidden", func(t *testing.T) {
		svc, userRepo, clubRepo, eventRepo := newEventServiceFixture()
		manager := userRepo.addUser("Manager", "m@campus.edu", models.RoleClubManager, "Engineering")
		own := clubRepo.addClub("AI Club", "Engineering")
		manager.ManagedClubID = &own.ID
		other := clubRepo.addClub("Robotics Club", "Engineering")
		event := eventRepo.addEvent(other.ID, 10, time.Now().Add(24*time.Hour), time.Now().Add(48*time.Hour))

		title := "Hijacked"
		_, err := svc.Update(ctx, manager.ID, event.ID, &UpdateEventInput{Title: &title})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestListRegistrations(t *testing.T) {
	ctx := context.Background()

	svc, userRepo, clubRepo, eventRepo := newEventServiceFixture()
	manager := userRepo.addUser("Manager", "m@campus.edu", models.RoleClubManager, "Engineering")
	student := userRepo.addUser("Student", "s@campus.edu", models.RoleStudent, "Engineering")
	club := clubRepo.addClub("Robotics Club", "Engineering")
	club.ManagerID = &manager.ID
	manager.ManagedClubID = &club.ID
	event := eventRepo.addEvent(club.ID, 10, time.Now().Add(24*time.Hour), time.Now().Add(48*time.Hour))

	require.NoError(t, svc.Register(ctx, event.ID, student.ID))

	regs, err := svc.ListRegistrations(ctx, manager.ID, event.ID)
	require.NoError(t, err)
	require.Len(t, regs, 1)
	assert.Equal(t, student.ID, regs[0].UserID)

	_, err = svc.ListRegistrations(ctx, student.ID, event.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

package services

import (
	"context"
	"testing"

	"campushub/internal/adapters/persistence/models"
	"campushub/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contentFixture struct {
	svc        *ContentService
	userRepo   *mockUserRepo
	clubRepo   *mockClubRepo
	memberRepo *mockMemberRepo
}

func newContentServiceFixture() *contentFixture {
	userRepo := newMockUserRepo()
	clubRepo := newMockClubRepo(userRepo)
	memberRepo := newMockMemberRepo()
	svc := NewContentService(
		newMockAchievementRepo(),
		newMockResourceRepo(),
		clubRepo,
		memberRepo,
		userRepo,
	)
	return &contentFixture{svc: svc, userRepo: userRepo, clubRepo: clubRepo, memberRepo: memberRepo}
}

func TestCreateAchievement(t *testing.T) {
	ctx := context.Background()

	t.Run("manager creates achievement, default level is public", func(t *testing.T) {
		f := newContentServiceFixture()
		manager := f.userRepo.addUser("Manager", "m@campus.edu", models.RoleClubManager, "Engineering")
		club := f.clubRepo.addClub("Robotics Club", "Engineering")
		club.ManagerID = &manager.ID
		manager.ManagedClubID = &club.ID

		achievement, err := f.svc.CreateAchievement(ctx, manager.ID, club.ID, &AchievementInput{
			Title: "National Champions",
		})
		require.NoError(t, err)
		assert.Equal(t, models.AccessPublic, achievement.AccessLevel)
	})

	t.Run("student cannot create content", func(t *testing.T) {
		f := newContentServiceFixture()
		student := f.userRepo.addUser("Student", "s@campus.edu", models.RoleStudent, "Engineering")
		club := f.clubRepo.addClub("Robotics Club", "Engineering")

		_, err := f.svc.CreateAchievement(ctx, student.ID, club.ID, &AchievementInput{Title: "Nope"})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("unknown club", func(t *testing.T) {
		f := newContentServiceFixture()
		super := f.userRepo.addUser("Root", "root@campus.edu", models.RoleSuperAdmin, "")

		_, err := f.svc.CreateAchievement(ctx, super.ID, 99, &AchievementInput{Title: "Ghost"})
		assert.ErrorIs(t, err, domain.ErrClubNotFound)
	})
}

func TestListAchievementsVisibility(t *testing.T) {
	ctx := context.Background()

	seed := func(f *contentFixture, managerID uint, clubID uint) {
		for _, level := range []string{models.AccessPublic, models.AccessMembers, models.AccessCoreOnly} {
			_, err := f.svc.CreateAchievement(ctx, managerID, clubID, &AchievementInput{
				Title:       "Item " + level,
				AccessLevel: level,
			})
			if err != nil {
				panic(err)
			}
		}
	}

	setup := func() (*contentFixture, *models.User, *models.Club) {
		f := newContentServiceFixture()
		manager := f.userRepo.addUser("Manager", "m@campus.edu", models.RoleClubManager, "Engineering")
		club := f.clubRepo.addClub("Robotics Club", "Engineering")
		club.ManagerID = &manager.ID
		manager.ManagedClubID = &club.ID
		seed(f, manager.ID, club.ID)
		return f, manager, club
	}

	t.Run("anonymous viewer sees public only", func(t *testing.T) {
		f, _, club := setup()

		visible, err := f.svc.ListAchievements(ctx, 0, club.ID)
		require.NoError(t, err)
		require.Len(t, visible, 1)
		assert.Equal(t, models.AccessPublic, visible[0].AccessLevel)
	})

	t.Run("non-member sees public only", func(t *testing.T) {
		f, _, club := setup()
		outsider := f.userRepo.addUser("Outsider", "o@campus.edu", models.RoleStudent, "Arts")

		visible, err := f.svc.ListAchievements(ctx, outsider.ID, club.ID)
		require.NoError(t, err)
		assert.Len(t, visible, 1)
	})

	t.Run("general member sees public and members-only", func(t *testing.T) {
		f, _, club := setup()
		member := f.userRepo.addUser("Member", "gm@campus.edu", models.RoleStudent, "Engineering")
		require.NoError(t, f.memberRepo.Create(ctx, &models.ClubMember{
			ClubID: club.ID, UserID: member.ID,
			Status: models.MemberStatusApproved, Role: models.MemberRoleGeneral,
		}))

		visible, err := f.svc.ListAchievements(ctx, member.ID, club.ID)
		require.NoError(t, err)
		assert.Len(t, visible, 2)
	})

	t.Run("core member sees everything", func(t *testing.T) {
		f, _, club := setup()
		core := f.userRepo.addUser("Core", "c@campus.edu", models.RoleStudent, "Engineering")
		require.NoError(t, f.memberRepo.Create(ctx, &models.ClubMember{
			ClubID: club.ID, UserID: core.ID,
			Status: models.MemberStatusApproved, Role: models.MemberRoleCore,
		}))

		visible, err := f.svc.ListAchievements(ctx, core.ID, club.ID)
		require.NoError(t, err)
		assert.Len(t, visible, 3)
	})

	t.Run("pending member sees public only", func(t *testing.T) {
		f, _, club := setup()
		pending := f.userRepo.addUser("Pending", "p@campus.edu", models.RoleStudent, "Engineering")
		require.NoError(t, f.memberRepo.Create(ctx, &models.ClubMember{
			ClubID: club.ID, UserID: pending.ID,
			Status: models.MemberStatusPending, Role: models.MemberRoleGeneral,
		}))

		visible, err := f.svc.ListAchievements(ctx, pending.ID, club.ID)
		require.NoError(t, err)
		assert.Len(t, visible, 1)
	})

	t.Run("manager sees everything", func(t *testing.T) {
		f, manager, club := setup()

		visible, err := f.svc.ListAchievements(ctx, manager.ID, club.ID)
		require.NoError(t, err)
		assert.Len(t, visible, 3)
	})
}

func TestResources(t *testing.T) {
	ctx := context.Background()

	t.Run("create, update and delete by the manager", func(t *testing.T) {
		f := newContentServiceFixture()
		manager := f.userRepo.addUser("Manager", "m@campus.edu", models.RoleClubManager, "Engineering")
		club := f.clubRepo.addClub("Robotics Club", "Engineering")
		club.ManagerID = &manager.ID
		manager.ManagedClubID = &club.ID

		resource, err := f.svc.CreateResource(ctx, manager.ID, club.ID, &ResourceInput{
			Title:       "Getting Started",
			URL:         "https://example.com/guide",
			AccessLevel: models.AccessMembers,
		})
		require.NoError(t, err)

		updated, err := f.svc.UpdateResource(ctx, manager.ID, resource.ID, &ResourceInput{
			Title:       "Getting Started v2",
			URL:         resource.URL,
			AccessLevel: models.AccessMembers,
		})
		require.NoError(t, err)
		assert.Equal(t, "Getting Started v2", updated.Title)

		require.NoError(t, f.svc.DeleteResource(ctx, manager.ID, resource.ID))

		err = f.svc.DeleteResource(ctx, manager.ID, resource.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("manager of another club cannot touch resources", func(t *testing.T) {
		f := newContentServiceFixture()
		manager := f.userRepo.addUser("Manager", "m@campus.edu", models.RoleClubManager, "Engineering")
		own := f.clubRepo.addClub("AI Club", "Engineering")
		own.ManagerID = &manager.ID
		manager.ManagedClubID = &own.ID

		other := f.clubRepo.addClub("Robotics Club", "Engineering")
		super := f.userRepo.addUser("Root", "root@campus.edu", models.RoleSuperAdmin, "")
		resource, err := f.svc.CreateResource(ctx, super.ID, other.ID, &ResourceInput{Title: "Doc"})
		require.NoError(t, err)

		_, err = f.svc.UpdateResource(ctx, manager.ID, resource.ID, &ResourceInput{Title: "Hijacked"})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

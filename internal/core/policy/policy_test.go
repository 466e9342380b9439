package policy

import (
	"testing"

	"campushub/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
)

func user(id uint, role, department string) *models.User {
	return &models.User{
		ID:             id,
		Role:           role,
		DepartmentName: department,
	}
}

func TestCanManageDepartment(t *testing.T) {
	tests := []struct {
		name       string
		principal  *models.User
		department string
		want       bool
	}{
		{"super admin any department", user(1, models.RoleSuperAdmin, ""), "Engineering", true},
		{"admin own department", user(2, models.RoleAdmin, "Engineering"), "Engineering", true},
		{"admin other department", user(2, models.RoleAdmin, "Engineering"), "Arts", false},
		{"admin without department", user(2, models.RoleAdmin, ""), "", false},
		{"club manager", user(3, models.RoleClubManager, "Engineering"), "Engineering", false},
		{"student", user(4, models.RoleStudent, "Engineering"), "Engineering", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanManageDepartment(tt.principal, tt.department))
		})
	}
}

func TestCanManageClub(t *testing.T) {
	managerID := uint(3)
	club := &models.Club{
		ID:             10,
		DepartmentName: "Engineering",
		ManagerID:      &managerID,
	}
	unmanaged := &models.Club{
		ID:             11,
		DepartmentName: "Engineering",
	}

	tests := []struct {
		name      string
		principal *models.User
		club      *models.Club
		want      bool
	}{
		{"super admin", user(1, models.RoleSuperAdmin, ""), club, true},
		{"same-department admin", user(2, models.RoleAdmin, "Engineering"), club, true},
		{"other-department admin", user(2, models.RoleAdmin, "Arts"), club, false},
		{"own manager", user(3, models.RoleClubManager, "Engineering"), club, true},
		{"other manager", user(5, models.RoleClubManager, "Engineering"), club, false},
		{"manager of unmanaged club", user(3, models.RoleClubManager, "Engineering"), unmanaged, false},
		{"student", user(4, models.RoleStudent, "Engineering"), club, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanManageClub(tt.principal, tt.club))
		})
	}
}

func TestCanManageUser(t *testing.T) {
	tests := []struct {
		name      string
		principal *models.User
		target    *models.User
		want      bool
	}{
		{"super admin", user(1, models.RoleSuperAdmin, ""), user(4, models.RoleStudent, "Arts"), true},
		{"admin same department", user(2, models.RoleAdmin, "Engineering"), user(4, models.RoleStudent, "Engineering"), true},
		{"admin other department", user(2, models.RoleAdmin, "Engineering"), user(4, models.RoleStudent, "Arts"), false},
		{"admin vs departmentless target", user(2, models.RoleAdmin, "Engineering"), user(4, models.RoleStudent, ""), false},
		{"manager", user(3, models.RoleClubManager, "Engineering"), user(4, models.RoleStudent, "Engineering"), false},
		{"student", user(4, models.RoleStudent, "Engineering"), user(5, models.RoleStudent, "Engineering"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanManageUser(tt.principal, tt.target))
		})
	}
}

func TestCanCreateAdmin(t *testing.T) {
	assert.True(t, CanCreateAdmin(user(1, models.RoleSuperAdmin, "")))
	assert.False(t, CanCreateAdmin(user(2, models.RoleAdmin, "Engineering")))
	assert.False(t, CanCreateAdmin(user(3, models.RoleClubManager, "Engineering")))
	assert.False(t, CanCreateAdmin(user(4, models.RoleStudent, "Engineering")))
}

func TestCanAccessContent(t *testing.T) {
	managerID := uint(3)
	club := &models.Club{
		ID:             10,
		DepartmentName: "Engineering",
		ManagerID:      &managerID,
	}

	membership := func(status, role string) *models.ClubMember {
		return &models.ClubMember{ClubID: club.ID, Status: status, Role: role}
	}

	student := user(4, models.RoleStudent, "Engineering")

	tests := []struct {
		name        string
		principal   *models.User
		accessLevel string
		membership  *models.ClubMember
		want        bool
	}{
		{"public without membership", student, models.AccessPublic, nil, true},
		{"members-only without membership", student, models.AccessMembers, nil, false},
		{"members-only pending member", student, models.AccessMembers, membership(models.MemberStatusPending, models.MemberRoleGeneral), false},
		{"members-only rejected member", student, models.AccessMembers, membership(models.MemberStatusRejected, models.MemberRoleGeneral), false},
		{"members-only approved member", student, models.AccessMembers, membership(models.MemberStatusApproved, models.MemberRoleGeneral), true},
		{"core-only general member", student, models.AccessCoreOnly, membership(models.MemberStatusApproved, models.MemberRoleGeneral), false},
		{"core-only core member", student, models.AccessCoreOnly, membership(models.MemberStatusApproved, models.MemberRoleCore), true},
		{"core-only club manager", user(3, models.RoleClubManager, "Engineering"), models.AccessCoreOnly, nil, true},
		{"core-only department admin", user(2, models.RoleAdmin, "Engineering"), models.AccessCoreOnly, nil, true},
		{"core-only other-department admin", user(2, models.RoleAdmin, "Arts"), models.AccessCoreOnly, nil, false},
		{"core-only super admin", user(1, models.RoleSuperAdmin, ""), models.AccessCoreOnly, nil, true},
		{"unknown level non-member", student, "SECRET", membership(models.MemberStatusApproved, models.MemberRoleCore), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanAccessContent(tt.principal, club, tt.accessLevel, tt.membership))
		})
	}
}

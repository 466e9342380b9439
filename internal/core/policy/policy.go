package policy

import (
	"campushub/internal/adapters/persistence/models"
)

// Pure authorization decisions over loaded records. Role gates live in the
// HTTP middleware; these functions answer the scoping questions (department,
// club ownership, membership access levels) once the resources are in hand.

// CanManageDepartment reports whether the principal may mutate resources
// belonging to the given department.
func CanManageDepartment(principal *models.User, departmentName string) bool {
	switch principal.Role {
	case models.RoleSuperAdmin:
		return true
	case models.RoleAdmin:
		return principal.DepartmentName != "" && principal.DepartmentName == departmentName
	default:
		return false
	}
}

// CanManageClub reports whether the principal may mutate the club:
// the super admin, a same-department admin, or the club's own manager.
func CanManageClub(principal *models.User, club *models.Club) bool {
	if CanManageDepartment(principal, club.DepartmentName) {
		return true
	}
	if principal.Role == models.RoleClubManager {
		return club.ManagerID != nil && *club.ManagerID == principal.ID
	}
	return false
}

// CanManageEvent reports whether the principal may mutate an event.
// Event authority follows the owning club.
func CanManageEvent(principal *models.User, club *models.Club) bool {
	return CanManageClub(principal, club)
}

// CanManageUser reports whether the principal may mutate a user record.
// Admins are scoped to users of their own department.
func CanManageUser(principal *models.User, target *models.User) bool {
	switch principal.Role {
	case models.RoleSuperAdmin:
		return true
	case models.RoleAdmin:
		return target.DepartmentName != "" && target.DepartmentName == principal.DepartmentName
	default:
		return false
	}
}

// CanCreateAdmin reports whether the principal may create an ADMIN account.
func CanCreateAdmin(principal *models.User) bool {
	return principal.Role == models.RoleSuperAdmin
}

// CanViewMembers reports whether the principal may list a club's join records.
func CanViewMembers(principal *models.User, club *models.Club) bool {
	return CanManageClub(principal, club)
}

// CanAccessContent reports whether the principal may read club content
// (achievements, resources) gated by accessLevel. membership is the
// principal's join record for the club, nil when there is none.
func CanAccessContent(principal *models.User, club *models.Club, accessLevel string, membership *models.ClubMember) bool {
	if accessLevel == models.AccessPublic {
		return true
	}
	// Club manager, department admin and super admin see everything.
	if CanManageClub(principal, club) {
		return true
	}
	if membership == nil || membership.Status != models.MemberStatusApproved {
		return false
	}
	switch accessLevel {
	case models.AccessMembers:
		return true
	case models.AccessCoreOnly:
		return membership.Role == models.MemberRoleCore
	default:
		return false
	}
}

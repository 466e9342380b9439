package handlers

import (
	"campushub/internal/adapters/persistence/models"
	"campushub/internal/core/services"
	"campushub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
	userService      *services.UserService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService, userService *services.UserService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		userService:      userService,
	}
}

// AdminDashboard returns the admin dashboard
// @Summary Admin dashboard
// @Description Department-scoped analytics for admins, campus-wide for the super admin
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /dashboard/admin [get]
func (h *DashboardHandler) AdminDashboard(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	role := c.Locals("role").(string)

	departmentName := ""
	if role == models.RoleAdmin {
		actor, err := h.userService.GetProfile(c.Context(), userID)
		if err != nil {
			return response.InternalServerError(c, "Failed to load dashboard")
		}
		departmentName = actor.DepartmentName
	}

	data, err := h.dashboardService.GetAdminDashboard(c.Context(), departmentName)
	if err != nil {
		return response.InternalServerError(c, "Failed to load dashboard")
	}

	return response.Success(c, "Dashboard retrieved successfully", data)
}

// ManagerDashboard returns the club manager dashboard
// @Summary Manager dashboard
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /dashboard/manager [get]
func (h *DashboardHandler) ManagerDashboard(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	actor, err := h.userService.GetProfile(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to load dashboard")
	}
	if actor.ManagedClubID == nil {
		return response.Forbidden(c, "You don't manage a club")
	}

	data, err := h.dashboardService.GetManagerDashboard(c.Context(), *actor.ManagedClubID)
	if err != nil {
		return response.InternalServerError(c, "Failed to load dashboard")
	}

	return response.Success(c, "Dashboard retrieved successfully", data)
}

// StudentDashboard returns the student dashboard
// @Summary Student dashboard
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /dashboard/student [get]
func (h *DashboardHandler) StudentDashboard(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	data, err := h.dashboardService.GetStudentDashboard(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to load dashboard")
	}

	return response.Success(c, "Dashboard retrieved successfully", data)
}

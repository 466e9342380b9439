package handlers

import (
	"errors"

	"campushub/internal/core/domain"
	"campushub/internal/core/services"
	"campushub/internal/pkg/response"
	"campushub/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles administrative endpoints
type AdminHandler struct {
	userService *services.UserService
	clubService *services.ClubService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(userService *services.UserService, clubService *services.ClubService) *AdminHandler {
	return &AdminHandler{
		userService: userService,
		clubService: clubService,
	}
}

// CreateAdmin creates a department admin account
// @Summary Create admin account
// @Description Create an ADMIN account bound to a department. Super admin only.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/admins [post]
func (h *AdminHandler) CreateAdmin(c *fiber.Ctx) error {
	actorID := c.Locals("userID").(uint)

	var input services.CreateAdminInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if errs := validation.Struct(&input); errs != nil {
		return response.ValidationError(c, "Validation failed", errs)
	}

	admin, err := h.userService.CreateAdmin(c.Context(), actorID, &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "Only the super admin may create admin accounts")
		case errors.Is(err, domain.ErrUserAlreadyExists):
			return response.Conflict(c, "Email already registered")
		default:
			return response.InternalServerError(c, "Failed to create admin")
		}
	}

	return response.Created(c, "Admin created successfully", admin.ToResponse())
}

// AssignManagerRequest represents the assign-manager request body
type AssignManagerRequest struct {
	UserID uint `json:"user_id" validate:"required"`
}

// AssignClubManager promotes a user to manage a club
// @Summary Assign club manager
// @Description Promote a user to CLUB_MANAGER of a club in the admin's department
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/clubs/{id}/manager [post]
func (h *AdminHandler) AssignClubManager(c *fiber.Ctx) error {
	actorID := c.Locals("userID").(uint)
	clubID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid club ID")
	}

	var req AssignManagerRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if errs := validation.Struct(&req); errs != nil {
		return response.ValidationError(c, "Validation failed", errs)
	}

	club, err := h.clubService.AssignManager(c.Context(), actorID, clubID, req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrClubNotFound):
			return response.NotFound(c, "Club not found")
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "You don't have permission to manage this club")
		case errors.Is(err, services.ErrTargetNoDepartment):
			return response.BadRequest(c, "Target user has no department")
		case errors.Is(err, domain.ErrClubHasManager):
			return response.BadRequest(c, "Club already has a manager")
		case errors.Is(err, services.ErrAlreadyManagingClub):
			return response.BadRequest(c, "User already manages another club")
		case errors.Is(err, services.ErrDepartmentMismatch):
			return response.BadRequest(c, "User's department does not match the club's department")
		default:
			return response.InternalServerError(c, "Failed to assign club manager")
		}
	}

	return response.Success(c, "Club manager assigned successfully", club.ToResponse())
}

package handlers

import (
	"errors"

	"campushub/internal/adapters/persistence/models"
	"campushub/internal/core/domain"
	"campushub/internal/core/services"
	"campushub/internal/pkg/response"
	"campushub/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// ClubMemberHandler handles the club membership workflow endpoints
type ClubMemberHandler struct {
	membershipService *services.MembershipService
}

// NewClubMemberHandler creates a new club member handler
func NewClubMemberHandler(membershipService *services.MembershipService) *ClubMemberHandler {
	return &ClubMemberHandler{membershipService: membershipService}
}

// RequestJoin files a join request for the caller
// @Summary Request to join a club
// @Tags Memberships
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /clubs/{id}/join [post]
func (h *ClubMemberHandler) RequestJoin(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	clubID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid club ID")
	}

	member, err := h.membershipService.RequestJoin(c.Context(), clubID, userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrClubNotFound):
			return response.NotFound(c, "Club not found")
		case errors.Is(err, domain.ErrAlreadyRequested):
			return response.Conflict(c, "A join request already exists for this club")
		default:
			return response.InternalServerError(c, "Failed to file join request")
		}
	}

	return response.Created(c, "Join request filed successfully", member.ToResponse())
}

// ListMembers lists a club's join records
// @Summary List club members
// @Tags Memberships
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Param status query string false "Filter by status (PENDING, APPROVED, REJECTED)"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /clubs/{id}/members [get]
func (h *ClubMemberHandler) ListMembers(c *fiber.Ctx) error {
	actorID := c.Locals("userID").(uint)
	clubID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid club ID")
	}

	members, err := h.membershipService.ListMembers(c.Context(), actorID, clubID, c.Query("status"))
	if err != nil {
		return mapMemberError(c, err)
	}

	out := make([]*models.ClubMemberResponse, len(members))
	for i, m := range members {
		out[i] = m.ToResponse()
	}

	return response.Success(c, "Members retrieved successfully", out)
}

// HandleRequest approves or rejects a pending join request
// @Summary Handle join request
// @Tags Memberships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member record ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /members/{id} [patch]
func (h *ClubMemberHandler) HandleRequest(c *fiber.Ctx) error {
	actorID := c.Locals("userID").(uint)
	memberID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	var input services.HandleRequestInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if errs := validation.Struct(&input); errs != nil {
		return response.ValidationError(c, "Validation failed", errs)
	}

	member, err := h.membershipService.HandleRequest(c.Context(), actorID, memberID, &input)
	if err != nil {
		return mapMemberError(c, err)
	}

	return response.Success(c, "Join request handled successfully", member.ToResponse())
}

// UpdateRoleRequest represents the member role update body
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=CORE_MEMBER GENERAL_MEMBER"`
}

// UpdateRole changes a member's role
// @Summary Update member role
// @Tags Memberships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member record ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id}/role [put]
func (h *ClubMemberHandler) UpdateRole(c *fiber.Ctx) error {
	actorID := c.Locals("userID").(uint)
	memberID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	var req UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if errs := validation.Struct(&req); errs != nil {
		return response.ValidationError(c, "Validation failed", errs)
	}

	member, err := h.membershipService.UpdateMemberRole(c.Context(), actorID, memberID, req.Role)
	if err != nil {
		return mapMemberError(c, err)
	}

	return response.Success(c, "Member role updated successfully", member.ToResponse())
}

// RemoveMember removes a join record
// @Summary Remove member
// @Tags Memberships
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member record ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id} [delete]
func (h *ClubMemberHandler) RemoveMember(c *fiber.Ctx) error {
	actorID := c.Locals("userID").(uint)
	memberID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	if err := h.membershipService.RemoveMember(c.Context(), actorID, memberID); err != nil {
		return mapMemberError(c, err)
	}

	return response.Success(c, "Member removed successfully", nil)
}

// ListMyMemberships lists the caller's memberships
// @Summary List own memberships
// @Tags Memberships
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /users/me/memberships [get]
func (h *ClubMemberHandler) ListMyMemberships(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	members, err := h.membershipService.ListMyMemberships(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list memberships")
	}

	out := make([]*models.ClubMemberResponse, len(members))
	for i, m := range members {
		out[i] = m.ToResponse()
	}

	return response.Success(c, "Memberships retrieved successfully", out)
}

func mapMemberError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrMemberNotFound):
		return response.NotFound(c, "Member record not found")
	case errors.Is(err, domain.ErrClubNotFound):
		return response.NotFound(c, "Club not found")
	case errors.Is(err, domain.ErrForbidden):
		return response.Forbidden(c, "You don't have permission to manage this club's members")
	case errors.Is(err, domain.ErrRequestNotPending):
		return response.Conflict(c, "Join request has already been handled")
	case errors.Is(err, domain.ErrInvalidMemberRole):
		return response.BadRequest(c, "Invalid member role")
	case errors.Is(err, domain.ErrInvalidMemberStatus):
		return response.BadRequest(c, "Invalid member status")
	default:
		return response.InternalServerError(c, "Failed to process membership request")
	}
}

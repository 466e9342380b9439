package handlers

import (
	"errors"

	"campushub/internal/adapters/persistence/models"
	"campushub/internal/core/domain"
	"campushub/internal/core/services"
	"campushub/internal/pkg/pagination"
	"campushub/internal/pkg/response"
	"campushub/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// ClubHandler handles club endpoints
type ClubHandler struct {
	clubService *services.ClubService
}

// NewClubHandler creates a new club handler
func NewClubHandler(clubService *services.ClubService) *ClubHandler {
	return &ClubHandler{clubService: clubService}
}

// Create creates a new club
// @Summary Create club
// @Tags Clubs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /clubs [post]
func (h *ClubHandler) Create(c *fiber.Ctx) error {
	actorID := c.Locals("userID").(uint)

	var input services.CreateClubInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if errs := validation.Struct(&input); errs != nil {
		return response.ValidationError(c, "Validation failed", errs)
	}

	club, err := h.clubService.Create(c.Context(), actorID, &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "You don't have permission to create clubs in this department")
		case errors.Is(err, domain.ErrClubAlreadyExists):
			return response.Conflict(c, "A club with this name already exists")
		default:
			return response.InternalServerError(c, "Failed to create club")
		}
	}

	return response.Created(c, "Club created successfully", club.ToResponse())
}

// Get returns a club
// @Summary Get club
// @Tags Clubs
// @Produce json
// @Param id path int true "Club ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /clubs/{id} [get]
func (h *ClubHandler) Get(c *fiber.Ctx) error {
	clubID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid club ID")
	}

	club, err := h.clubService.GetByID(c.Context(), clubID)
	if err != nil {
		if errors.Is(err, domain.ErrClubNotFound) {
			return response.NotFound(c, "Club not found")
		}
		return response.InternalServerError(c, "Failed to retrieve club")
	}

	return response.Success(c, "Club retrieved successfully", club)
}

// List lists clubs
// @Summary List clubs
// @Tags Clubs
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Param department query string false "Filter by department"
// @Success 200 {object} response.Response
// @Router /clubs [get]
func (h *ClubHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	clubs, total, err := h.clubService.List(c.Context(), c.Query("department"), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list clubs")
	}

	out := make([]*models.ClubResponse, len(clubs))
	for i, club := range clubs {
		out[i] = club.ToResponse()
	}

	return response.Success(c, "Clubs retrieved successfully", pagination.NewResponse(out, params, total))
}

// Update updates a club
// @Summary Update club
// @Tags Clubs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /clubs/{id} [put]
func (h *ClubHandler) Update(c *fiber.Ctx) error {
	actorID := c.Locals("userID").(uint)
	clubID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid club ID")
	}

	var input services.UpdateClubInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if errs := validation.Struct(&input); errs != nil {
		return response.ValidationError(c, "Validation failed", errs)
	}

	club, err := h.clubService.Update(c.Context(), actorID, clubID, &input)
	if err != nil {
		return mapClubError(c, err)
	}

	return response.Success(c, "Club updated successfully", club.ToResponse())
}

// Delete deletes a club
// @Summary Delete club
// @Tags Clubs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /clubs/{id} [delete]
func (h *ClubHandler) Delete(c *fiber.Ctx) error {
	actorID := c.Locals("userID").(uint)
	clubID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid club ID")
	}

	if err := h.clubService.Delete(c.Context(), actorID, clubID); err != nil {
		return mapClubError(c, err)
	}

	return response.Success(c, "Club deleted successfully", nil)
}

func mapClubError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrClubNotFound):
		return response.NotFound(c, "Club not found")
	case errors.Is(err, domain.ErrUserNotFound):
		return response.NotFound(c, "User not found")
	case errors.Is(err, domain.ErrForbidden):
		return response.Forbidden(c, "You don't have permission to manage this club")
	default:
		return response.InternalServerError(c, "Failed to process club request")
	}
}

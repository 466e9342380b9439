package handlers

import (
	"errors"

	"campushub/internal/core/domain"
	"campushub/internal/core/services"
	"campushub/internal/pkg/response"
	"campushub/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// ContentHandler handles club achievement and resource endpoints
type ContentHandler struct {
	contentService *services.ContentService
}

// NewContentHandler creates a new content handler
func NewContentHandler(contentService *services.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

// viewerID returns the caller's user ID, or 0 for anonymous requests
func viewerID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("userID").(uint); ok {
		return id
	}
	return 0
}

// CreateAchievement creates an achievement on a club
// @Summary Create club achievement
// @Tags Content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 201 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /clubs/{id}/achievements [post]
func (h *ContentHandler) CreateAchievement(c *fiber.Ctx) error {
	actorID := c.Locals("userID").(uint)
	clubID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid club ID")
	}

	var input services.AchievementInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if errs := validation.Struct(&input); errs != nil {
		return response.ValidationError(c, "Validation failed", errs)
	}

	achievement, err := h.contentService.CreateAchievement(c.Context(), actorID, clubID, &input)
	if err != nil {
		return mapContentError(c, err)
	}

	return response.Created(c, "Achievement created successfully", achievement)
}

// ListAchievements lists a club's visible achievements
// @Summary List club achievements
// @Tags Content
// @Produce json
// @Param id path int true "Club ID"
// @Success 200 {object} response.Response
// @Router /clubs/{id}/achievements [get]
func (h *ContentHandler) ListAchievements(c *fiber.Ctx) error {
	clubID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid club ID")
	}

	achievements, err := h.contentService.ListAchievements(c.Context(), viewerID(c), clubID)
	if err != nil {
		return mapContentError(c, err)
	}

	return response.Success(c, "Achievements retrieved successfully", achievements)
}

// UpdateAchievement updates an achievement
// @Summary Update club achievement
// @Tags Content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Achievement ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /achievements/{id} [put]
func (h *ContentHandler) UpdateAchievement(c *fiber.Ctx) error {
	actorID := c.Locals("userID").(uint)
	achievementID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid achievement ID")
	}

	var input services.AchievementInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if errs := validation.Struct(&input); errs != nil {
		return response.ValidationError(c, "Validation failed", errs)
	}

	achievement, err := h.contentService.UpdateAchievement(c.Context(), actorID, achievementID, &input)
	if err != nil {
		return mapContentError(c, err)
	}

	return response.Success(c, "Achievement updated successfully", achievement)
}

// DeleteAchievement deletes an achievement
// @Summary Delete club achievement
// @Tags Content
// @Produce json
// @Security BearerAuth
// @Param id path int true "Achievement ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /achievements/{id} [delete]
func (h *ContentHandler) DeleteAchievement(c *fiber.Ctx) error {
	actorID := c.Locals("userID").(uint)
	achievementID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid achievement ID")
	}

	if err := h.contentService.DeleteAchievement(c.Context(), actorID, achievementID); err != nil {
		return mapContentError(c, err)
	}

	return response.Success(c, "Achievement deleted successfully", nil)
}

// CreateResource creates a resource on a club
// @Summary Create club resource
// @Tags Content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 201 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /clubs/{id}/resources [post]
func (h *ContentHandler) CreateResource(c *fiber.Ctx) error {
	actorID := c.Locals("userID").(uint)
	clubID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid club ID")
	}

	var input services.ResourceInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if errs := validation.Struct(&input); errs != nil {
		return response.ValidationError(c, "Validation failed", errs)
	}

	resource, err := h.contentService.CreateResource(c.Context(), actorID, clubID, &input)
	if err != nil {
		return mapContentError(c, err)
	}

	return response.Created(c, "Resource created successfully", resource)
}

// ListResources lists a club's visible resources
// @Summary List club resources
// @Tags Content
// @Produce json
// @Param id path int true "Club ID"
// @Success 200 {object} response.Response
// @Router /clubs/{id}/resources [get]
func (h *ContentHandler) ListResources(c *fiber.Ctx) error {
	clubID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid club ID")
	}

	resources, err := h.contentService.ListResources(c.Context(), viewerID(c), clubID)
	if err != nil {
		return mapContentError(c, err)
	}

	return response.Success(c, "Resources retrieved successfully", resources)
}

// UpdateResource updates a resource
// @Summary Update club resource
// @Tags Content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Resource ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /resources/{id} [put]
func (h *ContentHandler) UpdateResource(c *fiber.Ctx) error {
	actorID := c.Locals("userID").(uint)
	resourceID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid resource ID")
	}

	var input services.ResourceInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if errs := validation.Struct(&input); errs != nil {
		return response.ValidationError(c, "Validation failed", errs)
	}

	resource, err := h.contentService.UpdateResource(c.Context(), actorID, resourceID, &input)
	if err != nil {
		return mapContentError(c, err)
	}

	return response.Success(c, "Resource updated successfully", resource)
}

// DeleteResource deletes a resource
// @Summary Delete club resource
// @Tags Content
// @Produce json
// @Security BearerAuth
// @Param id path int true "Resource ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /resources/{id} [delete]
func (h *ContentHandler) DeleteResource(c *fiber.Ctx) error {
	actorID := c.Locals("userID").(uint)
	resourceID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid resource ID")
	}

	if err := h.contentService.DeleteResource(c.Context(), actorID, resourceID); err != nil {
		return mapContentError(c, err)
	}

	return response.Success(c, "Resource deleted successfully", nil)
}

func mapContentError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrClubNotFound):
		return response.NotFound(c, "Club not found")
	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, "Content not found")
	case errors.Is(err, domain.ErrForbidden):
		return response.Forbidden(c, "You don't have permission to manage this club's content")
	default:
		return response.InternalServerError(c, "Failed to process content request")
	}
}

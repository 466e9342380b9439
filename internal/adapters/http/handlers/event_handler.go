package handlers

import (
	"errors"
	"strconv"

	"campushub/internal/adapters/persistence/models"
	"campushub/internal/adapters/persistence/repositories"
	"campushub/internal/core/domain"
	"campushub/internal/core/services"
	"campushub/internal/pkg/pagination"
	"campushub/internal/pkg/response"
	"campushub/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// EventHandler handles event endpoints
type EventHandler struct {
	eventService *services.EventService
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// Create creates a new event
// @Summary Create event
// @Tags Events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /events [post]
func (h *EventHandler) Create(c *fiber.Ctx) error {
	actorID := c.Locals("userID").(uint)

	var input services.CreateEventInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if errs := validation.Struct(&input); errs != nil {
		return response.ValidationError(c, "Validation failed", errs)
	}

	event, err := h.eventService.Create(c.Context(), actorID, &input)
	if err != nil {
		return mapEventError(c, err)
	}

	return response.Created(c, "Event created successfully", event.ToResponse())
}

// Get returns an event
// @Summary Get event
// @Tags Events
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /events/{id} [get]
func (h *EventHandler) Get(c *fiber.Ctx) error {
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid event ID")
	}

	event, err := h.eventService.GetByID(c.Context(), eventID)
	if err != nil {
		return mapEventError(c, err)
	}

	return response.Success(c, "Event retrieved successfully", event.ToResponse())
}

// List lists events
// @Summary List events
// @Tags Events
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Param category query string false "Filter by category"
// @Param club_id query int false "Filter by club"
// @Param upcoming query bool false "Only upcoming events"
// @Success 200 {object} response.Response
// @Router /events [get]
func (h *EventHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	clubID, _ := strconv.ParseUint(c.Query("club_id", "0"), 10, 32)
	upcoming, _ := strconv.ParseBool(c.Query("upcoming", "false"))

	filter := repositories.EventFilter{
		Category:     c.Query("category"),
		ClubID:       uint(clubID),
		UpcomingOnly: upcoming,
	}

	events, total, err := h.eventService.List(c.Context(), filter, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list events")
	}

	out := make([]*models.EventResponse, len(events))
	for i, e := range events {
		out[i] = e.ToResponse()
	}

	return response.Success(c, "Events retrieved successfully", pagination.NewResponse(out, params, total))
}

// Update updates an event
// @Summary Update event
// @Tags Events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /events/{id} [put]
func (h *EventHandler) Update(c *fiber.Ctx) error {
	actorID := c.Locals("userID").(uint)
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid event ID")
	}

	var input services.UpdateEventInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if errs := validation.Struct(&input); errs != nil {
		return response.ValidationError(c, "Validation failed", errs)
	}

	event, err := h.eventService.Update(c.Context(), actorID, eventID, &input)
	if err != nil {
		return mapEventError(c, err)
	}

	return response.Success(c, "Event updated successfully", event.ToResponse())
}

// Delete deletes an event
// @Summary Delete event
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /events/{id} [delete]
func (h *EventHandler) Delete(c *fiber.Ctx) error {
	actorID := c.Locals("userID").(uint)
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid event ID")
	}

	if err := h.eventService.Delete(c.Context(), actorID, eventID); err != nil {
		return mapEventError(c, err)
	}

	return response.Success(c, "Event deleted successfully", nil)
}

// Register registers the caller for an event
// @Summary Register for event
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /events/{id}/register [post]
func (h *EventHandler) Register(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid event ID")
	}

	if err := h.eventService.Register(c.Context(), eventID, userID); err != nil {
		return mapEventError(c, err)
	}

	return response.Created(c, "Registered for event successfully", nil)
}

// Cancel cancels the caller's event registration
// @Summary Cancel event registration
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /events/{id}/register [delete]
func (h *EventHandler) Cancel(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid event ID")
	}

	if err := h.eventService.Cancel(c.Context(), eventID, userID); err != nil {
		return mapEventError(c, err)
	}

	return response.Success(c, "Registration cancelled successfully", nil)
}

// ListRegistrations lists an event's registrations
// @Summary List event registrations
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /events/{id}/registrations [get]
func (h *EventHandler) ListRegistrations(c *fiber.Ctx) error {
	actorID := c.Locals("userID").(uint)
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid event ID")
	}

	regs, err := h.eventService.ListRegistrations(c.Context(), actorID, eventID)
	if err != nil {
		return mapEventError(c, err)
	}

	return response.Success(c, "Registrations retrieved successfully", regs)
}

// ListMyEvents lists the caller's registered events
// @Summary List own registered events
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /users/me/events [get]
func (h *EventHandler) ListMyEvents(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	events, err := h.eventService.ListMyEvents(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list registered events")
	}

	out := make([]*models.EventResponse, len(events))
	for i, e := range events {
		out[i] = e.ToResponse()
	}

	return response.Success(c, "Registered events retrieved successfully", out)
}

func mapEventError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrEventNotFound):
		return response.NotFound(c, "Event not found")
	case errors.Is(err, domain.ErrClubNotFound):
		return response.NotFound(c, "Club not found")
	case errors.Is(err, domain.ErrForbidden):
		return response.Forbidden(c, "You don't have permission to manage this event")
	case errors.Is(err, domain.ErrEventFull):
		return response.Conflict(c, "Event is full")
	case errors.Is(err, domain.ErrAlreadyRegistered):
		return response.Conflict(c, "Already registered for this event")
	case errors.Is(err, domain.ErrRegistrationClosed):
		return response.BadRequest(c, "Registration deadline has passed")
	case errors.Is(err, domain.ErrNotRegistered):
		return response.BadRequest(c, "Not registered for this event")
	case errors.Is(err, domain.ErrDeadlineAfterEvent):
		return response.BadRequest(c, "Registration deadline must not be after the event date")
	case errors.Is(err, domain.ErrCapacityBelowRegistered):
		return response.BadRequest(c, "Capacity cannot drop below current registrations")
	default:
		return response.InternalServerError(c, "Failed to process event request")
	}
}

package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"eventhub_backend/internals/features/events/dto"
	"eventhub_backend/internals/features/events/model"
	helper "eventhub_backend/internals/helpers"
	authHelper "eventhub_backend/internals/helpers/auth"
)

type EventController struct {
	DB *gorm.DB
}

func NewEventController(db *gorm.DB) *EventController {
	return &EventController{DB: db}
}

// GET /api/events?status=&category=&search=
func (ctrl *EventController) GetAllEvents(c *fiber.Ctx) error {
	q := ctrl.DB.Model(&model.EventModel{})

	if status := strings.TrimSpace(c.Query("status")); status != "" {
		q = q.Where("event_status = ?", status)
	}
	if category := strings.TrimSpace(c.Query("category")); category != "" {
		q = q.Where("event_category = ?", category)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + search + "%"
		q = q.Where("event_title ILIKE ? OR event_description ILIKE ?", like, like)
	}

	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Printf("[ERROR] Count events: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count events")
	}

	var events []model.EventModel
	if err := q.
		Order("event_date ASC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&events).Error; err != nil {
		log.Printf("[ERROR] Fetch events: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch events")
	}

	pagination := helper.BuildPagination(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "ok", dto.ToEventResponseList(events), &pagination)
}

// GET /api/events/upcoming
func (ctrl *EventController) GetUpcomingEvents(c *fiber.Ctx) error {
	var events []model.EventModel
	if err := ctrl.DB.
		Where("event_status = ? AND event_date >= ?", model.StatusUpcoming, time.Now()).
		Order("event_date ASC").
		Find(&events).Error; err != nil {
		log.Printf("[ERROR] Fetch upcoming events: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch events")
	}
	return helper.JsonList(c, "ok", dto.ToEventResponseList(events), nil)
}

// GET /api/events/past
func (ctrl *EventController) GetPastEvents(c *fiber.Ctx) error {
	var events []model.EventModel
	if err := ctrl.DB.
		Where("event_status = ?", model.StatusCompleted).
		Order("event_date DESC").
		Find(&events).Error; err != nil {
		log.Printf("[ERROR] Fetch past events: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch events")
	}
	return helper.JsonList(c, "ok", dto.ToEventResponseList(events), nil)
}

// GET /api/events/:id
func (ctrl *EventController) GetEventByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Event not found")
	}

	var ev model.EventModel
	if err := ctrl.DB.First(&ev, "event_id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Event not found")
	}
	return helper.JsonOK(c, "ok", dto.ToEventResponse(&ev))
}

// POST /api/events (organizer)
func (ctrl *EventController) CreateEvent(c *fiber.Ctx) error {
	userID, err := authHelper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.EventRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return helper.JsonValidationError(c, err)
	}

	ev := req.ToModel(userID)
	if err := ctrl.DB.Create(ev).Error; err != nil {
		log.Printf("[ERROR] Failed to create event: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create event")
	}
	return helper.JsonCreated(c, "Event created", dto.ToEventResponse(ev))
}

// PUT /api/events/:id (owner or admin)
func (ctrl *EventController) UpdateEvent(c *fiber.Ctx) error {
	ev, err := ctrl.loadOwnedEvent(c)
	if err != nil {
		return jsonOwnedEventError(c, err)
	}

	var req dto.EventUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	updates := buildEventUpdates(&req)
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "No fields to update")
	}

	if err := ctrl.DB.Model(ev).Updates(updates).Error; err != nil {
		log.Printf("[ERROR] Failed to update event: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update event")
	}
	if err := ctrl.DB.First(ev, "event_id = ?", ev.EventID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to reload event")
	}
	return helper.JsonUpdated(c, "Event updated", dto.ToEventResponse(ev))
}

// DELETE /api/events/:id (owner or admin)
func (ctrl *EventController) DeleteEvent(c *fiber.Ctx) error {
	ev, err := ctrl.loadOwnedEvent(c)
	if err != nil {
		return jsonOwnedEventError(c, err)
	}

	if err := ctrl.DB.Delete(ev).Error; err != nil {
		log.Printf("[ERROR] Failed to delete event: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete event")
	}
	return helper.JsonDeleted(c, "Event removed", nil)
}

// loadOwnedEvent fetches the event and enforces the owner-or-admin policy.
// Failures come back as *fiber.Error values; nothing is written to the
// response here, callers map the error themselves.
func (ctrl *EventController) loadOwnedEvent(c *fiber.Ctx) (*model.EventModel, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Event not found")
	}

	var ev model.EventModel
	if err := ctrl.DB.First(&ev, "event_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Event not found")
		}
		log.Printf("[ERROR] Fetch event: %v", err)
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch event")
	}

	userID, err := authHelper.GetUserIDFromToken(c)
	if err != nil {
		return nil, err
	}
	role, err := authHelper.GetUserRoleFromToken(c)
	if err != nil {
		return nil, err
	}
	if !authHelper.CanManageEvent(userID, role, &ev) {
		return nil, fiber.NewError(fiber.StatusForbidden, "Not authorized")
	}
	return &ev, nil
}

// jsonOwnedEventError renders a loadOwnedEvent failure in the standard
// envelope.
func jsonOwnedEventError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return helper.JsonError(c, fe.Code, fe.Message)
	}
	return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch event")
}

func buildEventUpdates(req *dto.EventUpdateRequest) map[string]interface{} {
	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["event_title"] = *req.Title
	}
	if req.Description != nil {
		updates["event_description"] = *req.Description
	}
	if req.Category != nil {
		updates["event_category"] = *req.Category
	}
	if req.Date != nil {
		updates["event_date"] = *req.Date
	}
	if req.EndDate != nil {
		updates["event_end_date"] = *req.EndDate
	}
	if req.Venue != nil {
		updates["event_venue"] = *req.Venue
	}
	if req.RegistrationFee != nil {
		updates["event_registration_fee"] = *req.RegistrationFee
	}
	if req.MaxParticipants != nil {
		updates["event_max_participants"] = *req.MaxParticipants
	}
	if req.Status != nil {
		updates["event_status"] = *req.Status
	}
	if req.Image != nil {
		updates["event_image"] = *req.Image
	}
	if req.Rules != nil {
		updates["event_rules"] = pq.StringArray(*req.Rules)
	}
	if req.Prizes != nil {
		updates["event_prizes"] = pq.StringArray(*req.Prizes)
	}
	if req.Requirements != nil {
		updates["event_requirements"] = pq.StringArray(*req.Requirements)
	}
	if req.Tags != nil {
		updates["event_tags"] = pq.StringArray(*req.Tags)
	}
	if req.IsRegistrationOpen != nil {
		updates["event_is_registration_open"] = *req.IsRegistrationOpen
	}
	if req.RegistrationDeadline != nil {
		updates["event_registration_deadline"] = *req.RegistrationDeadline
	}
	return updates
}

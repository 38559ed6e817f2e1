package controller

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	eventModel "eventhub_backend/internals/features/events/model"
	"eventhub_backend/internals/features/registrations/dto"
	"eventhub_backend/internals/features/registrations/model"
	"eventhub_backend/internals/features/registrations/service"
	helper "eventhub_backend/internals/helpers"
	authHelper "eventhub_backend/internals/helpers/auth"
)

type RegistrationController struct {
	DB *gorm.DB
}

func NewRegistrationController(db *gorm.DB) *RegistrationController {
	return &RegistrationController{DB: db}
}

// POST /api/registrations (student)
func (ctrl *RegistrationController) CreateRegistration(c *fiber.Ctx) error {
	userID, err := authHelper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.RegistrationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.EventID == uuid.Nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "event_id is required")
	}

	reg, err := service.CreateRegistration(ctrl.DB, service.CreateRegistrationInput{
		StudentID:   userID,
		EventID:     req.EventID,
		TeamName:    req.TeamName,
		TeamMembers: req.TeamMembers,
		Extra:       req.Extra,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, "Event not found")
		case errors.Is(err, service.ErrRegistrationClosed):
			return helper.JsonError(c, fiber.StatusConflict, "Registration is closed for this event")
		case errors.Is(err, service.ErrCapacityReached):
			return helper.JsonError(c, fiber.StatusConflict, "Event is full")
		case errors.Is(err, service.ErrDuplicateRegistration):
			return helper.JsonError(c, fiber.StatusConflict, "Already registered for this event")
		default:
			log.Printf("[ERROR] Create registration: %v", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to register")
		}
	}
	return helper.JsonCreated(c, "Registered successfully", dto.ToRegistrationResponse(reg))
}

// GET /api/registrations/me
//
// Students get their own records; organizer and admin tokens get every
// record.
func (ctrl *RegistrationController) GetMyRegistrations(c *fiber.Ctx) error {
	userID, err := authHelper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	role, err := authHelper.GetUserRoleFromToken(c)
	if err != nil {
		return err
	}

	q := ctrl.DB.Order("registration_created_at DESC")
	if !authHelper.CanSeeAllRegistrations(role) {
		q = q.Where("registration_student_id = ?", userID)
	}

	var regs []model.RegistrationModel
	if err := q.Find(&regs).Error; err != nil {
		log.Printf("[ERROR] Fetch my registrations: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch registrations")
	}
	return helper.JsonList(c, "ok", dto.ToRegistrationResponseList(regs), nil)
}

// GET /api/registrations/event/:eventId (organizer)
//
// Before returning the list, stale "registered" entries of an already
// finished event are swept to "absent" so organizers always see settled
// attendance.
func (ctrl *RegistrationController) GetEventRegistrations(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("eventId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Event not found")
	}

	var ev eventModel.EventModel
	if err := ctrl.DB.First(&ev, "event_id = ?", eventID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Event not found")
	}

	role, err := authHelper.GetUserRoleFromToken(c)
	if err != nil {
		return err
	}
	userID, err := authHelper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	if !authHelper.CanManageEvent(userID, role, &ev) {
		return helper.JsonError(c, fiber.StatusForbidden, "Not authorized")
	}

	if n, err := service.SweepExpired(ctrl.DB, &ev, time.Now()); err != nil {
		log.Printf("[ERROR] Sweep registrations for event %s: %v", ev.EventID, err)
	} else if n > 0 {
		log.Printf("[INFO] Marked %d registrations absent for event %s", n, ev.EventID)
	}

	var regs []model.RegistrationModel
	if err := ctrl.DB.
		Where("registration_event_id = ?", eventID).
		Order("registration_created_at ASC").
		Find(&regs).Error; err != nil {
		log.Printf("[ERROR] Fetch event registrations: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch registrations")
	}
	return helper.JsonList(c, "ok", dto.ToRegistrationResponseList(regs), nil)
}

// POST /api/registrations/:id/attendance (organizer)
func (ctrl *RegistrationController) UpdateAttendance(c *fiber.Ctx) error {
	regID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Registration not found")
	}

	var req dto.AttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Status != model.StatusAttended && req.Status != model.StatusAbsent {
		return helper.JsonError(c, fiber.StatusBadRequest, "Status must be attended or absent")
	}

	var reg model.RegistrationModel
	if err := ctrl.DB.First(&reg, "registration_id = ?", regID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Registration not found")
	}

	var ev eventModel.EventModel
	if err := ctrl.DB.First(&ev, "event_id = ?", reg.RegistrationEventID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Event not found")
	}

	userID, err := authHelper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	role, err := authHelper.GetUserRoleFromToken(c)
	if err != nil {
		return err
	}
	if !authHelper.CanManageEvent(userID, role, &ev) {
		return helper.JsonError(c, fiber.StatusForbidden, "Not authorized")
	}

	if err := ctrl.DB.Model(&reg).Update("registration_status", req.Status).Error; err != nil {
		log.Printf("[ERROR] Update attendance: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update attendance")
	}
	reg.RegistrationStatus = req.Status
	return helper.JsonUpdated(c, "Attendance updated", dto.ToRegistrationResponse(&reg))
}

// POST /api/registrations/:id/auto-absent (organizer)
//
// Applies the no-show transition to a single registration: registered ->
// absent, only once the event's effective end has passed. A no-op otherwise.
func (ctrl *RegistrationController) AutoAbsentOne(c *fiber.Ctx) error {
	regID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Registration not found")
	}

	var reg model.RegistrationModel
	if err := ctrl.DB.First(&reg, "registration_id = ?", regID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Registration not found")
	}

	var ev eventModel.EventModel
	if err := ctrl.DB.First(&ev, "event_id = ?", reg.RegistrationEventID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Event not found")
	}

	userID, err := authHelper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	role, err := authHelper.GetUserRoleFromToken(c)
	if err != nil {
		return err
	}
	if !authHelper.CanManageEvent(userID, role, &ev) {
		return helper.JsonError(c, fiber.StatusForbidden, "Not authorized")
	}

	if err := service.SweepOne(ctrl.DB, &reg, &ev, time.Now()); err != nil {
		log.Printf("[ERROR] Auto-absent: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update registration")
	}
	return helper.JsonOK(c, "ok", dto.ToRegistrationResponse(&reg))
}

package controller

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	eventModel "eventhub_backend/internals/features/events/model"
	regModel "eventhub_backend/internals/features/registrations/model"
	"eventhub_backend/internals/features/results/dto"
	"eventhub_backend/internals/features/results/model"
	"eventhub_backend/internals/features/results/service"
	userModel "eventhub_backend/internals/features/users/model"
	helper "eventhub_backend/internals/helpers"
	authHelper "eventhub_backend/internals/helpers/auth"
)

type ResultController struct {
	DB *gorm.DB
}

func NewResultController(db *gorm.DB) *ResultController {
	return &ResultController{DB: db}
}

// POST /api/results/mark (organizer)
func (ctrl *ResultController) MarkWinner(c *fiber.Ctx) error {
	var req dto.MarkWinnerRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.RegistrationID == uuid.Nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "registration_id is required")
	}
	// Rank is stored as given; organizers resubmit to correct a slip.

	var reg regModel.RegistrationModel
	if err := ctrl.DB.First(&reg, "registration_id = ?", req.RegistrationID).Error; err != nil {
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

	result, err := service.MarkWinner(ctrl.DB, service.MarkWinnerInput{
		RegistrationID: req.RegistrationID,
		Rank:           req.Rank,
		Category:       req.Category,
		Prize:          req.Prize,
		AnnouncedBy:    userID,
	})
	if err != nil {
		if errors.Is(err, service.ErrRegistrationNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Registration not found")
		}
		log.Printf("[ERROR] Mark winner: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to mark winner")
	}
	return helper.JsonOK(c, "Winner marked", dto.ToResultResponse(result))
}

// GET /api/results/event/:eventId (public)
func (ctrl *ResultController) GetEventResults(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("eventId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Event not found")
	}

	var results []model.ResultModel
	if err := ctrl.DB.
		Where("result_event_id = ?", eventID).
		Order("result_rank ASC").
		Find(&results).Error; err != nil {
		log.Printf("[ERROR] Fetch event results: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch results")
	}

	responses := dto.ToResultResponseList(results)
	for i := range responses {
		var student userModel.UserModel
		if err := ctrl.DB.Select("user_name").First(&student, "id = ?", responses[i].StudentID).Error; err == nil {
			responses[i].StudentName = student.UserName
		}
	}
	return helper.JsonList(c, "ok", responses, nil)
}

// GET /api/results/certificate/:registrationId
//
// Streams the PDF inline. The route is public; the eligibility gate
// (winner + paid + attended) is the only guard, as winners share their
// certificate links.
func (ctrl *ResultController) DownloadCertificate(c *fiber.Ctx) error {
	regID, err := uuid.Parse(c.Params("registrationId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Registration not found")
	}

	var reg regModel.RegistrationModel
	if err := ctrl.DB.First(&reg, "registration_id = ?", regID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Registration not found")
	}

	if !service.CertificateEligible(&reg) {
		return helper.JsonError(c, fiber.StatusForbidden, "Certificate not available yet")
	}

	var student userModel.UserModel
	if err := ctrl.DB.First(&student, "id = ?", reg.RegistrationStudentID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load student")
	}
	var ev eventModel.EventModel
	if err := ctrl.DB.First(&ev, "event_id = ?", reg.RegistrationEventID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load event")
	}

	rank := 1
	if reg.RegistrationRank != nil {
		rank = *reg.RegistrationRank
	}

	pdfBytes, err := service.RenderCertificate(service.CertificateData{
		StudentName: student.UserName,
		EventTitle:  ev.EventTitle,
		Rank:        rank,
		EventDate:   ev.EventDate,
		IssuedAt:    time.Now(),
	})
	if err != nil {
		log.Printf("[ERROR] Render certificate: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to generate certificate")
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf("inline; filename=certificate-%s.pdf", reg.RegistrationID))
	return c.Send(pdfBytes)
}

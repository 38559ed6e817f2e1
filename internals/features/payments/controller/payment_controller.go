package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"eventhub_backend/internals/features/payments/dto"
	"eventhub_backend/internals/features/payments/service"
	helper "eventhub_backend/internals/helpers"
	authHelper "eventhub_backend/internals/helpers/auth"
)

type PaymentController struct {
	DB *gorm.DB
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{DB: db}
}

// POST /api/payments/dummy
func (ctrl *PaymentController) ProcessDummyPayment(c *fiber.Ctx) error {
	userID, err := authHelper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	role, err := authHelper.GetUserRoleFromToken(c)
	if err != nil {
		return err
	}

	var req dto.DummyPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.RegistrationID == uuid.Nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "registration_id is required")
	}

	payment, err := service.ProcessDummyPayment(ctrl.DB, userID, role, req.RegistrationID, req.TransactionID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRegistrationNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, "Registration not found")
		case errors.Is(err, service.ErrNotYourRegistration):
			return helper.JsonError(c, fiber.StatusForbidden, "Not authorized")
		default:
			log.Printf("[ERROR] Dummy payment: %v", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Payment failed")
		}
	}
	return helper.JsonOK(c, "Payment marked as completed", dto.ToPaymentResponse(payment))
}

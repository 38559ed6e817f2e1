package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"eventhub_backend/internals/features/payments/controller"
	authMiddleware "eventhub_backend/internals/middlewares/auth"
)

func PaymentRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewPaymentController(db)

	payments := api.Group("/payments", authMiddleware.AuthMiddleware())
	payments.Post("/dummy", ctrl.ProcessDummyPayment)
}

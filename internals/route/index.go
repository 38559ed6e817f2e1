package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	eventRoute "eventhub_backend/internals/features/events/route"
	paymentRoute "eventhub_backend/internals/features/payments/route"
	registrationRoute "eventhub_backend/internals/features/registrations/route"
	resultRoute "eventhub_backend/internals/features/results/route"
	authRoute "eventhub_backend/internals/features/users/route"
)

// SetupRoutes mounts every feature router under /api.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group("/api")

	authRoute.AuthRoutes(api, db)
	eventRoute.EventRoutes(api, db)
	registrationRoute.RegistrationRoutes(api, db)
	paymentRoute.PaymentRoutes(api, db)
	resultRoute.ResultRoutes(api, db)
}

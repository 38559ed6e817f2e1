package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"eventhub_backend/internals/constants"
	"eventhub_backend/internals/features/registrations/controller"
	authMiddleware "eventhub_backend/internals/middlewares/auth"
)

func RegistrationRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewRegistrationController(db)

	registrations := api.Group("/registrations", authMiddleware.AuthMiddleware())

	registrations.Post("/", ctrl.CreateRegistration)
	registrations.Get("/me", ctrl.GetMyRegistrations)

	organizer := registrations.Group("",
		authMiddleware.OnlyRoles(constants.RoleErrorOrganizer("registrations"), constants.OrganizerAndAbove...),
	)
	organizer.Get("/event/:eventId", ctrl.GetEventRegistrations)
	organizer.Post("/:id/attendance", ctrl.UpdateAttendance)
	organizer.Post("/:id/auto-absent", ctrl.AutoAbsentOne)
}

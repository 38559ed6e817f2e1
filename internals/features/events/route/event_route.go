package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"eventhub_backend/internals/constants"
	"eventhub_backend/internals/features/events/controller"
	authMiddleware "eventhub_backend/internals/middlewares/auth"
)

func EventRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewEventController(db)

	events := api.Group("/events")

	// Public reads. /upcoming and /past must be mounted before /:id.
	events.Get("/", ctrl.GetAllEvents)
	events.Get("/upcoming", ctrl.GetUpcomingEvents)
	events.Get("/past", ctrl.GetPastEvents)
	events.Get("/:id", ctrl.GetEventByID)

	// Organizer mutations
	organizer := events.Group("",
		authMiddleware.AuthMiddleware(),
		authMiddleware.OnlyRoles(constants.RoleErrorOrganizer("events"), constants.OrganizerAndAbove...),
	)
	organizer.Post("/", ctrl.CreateEvent)
	organizer.Put("/:id", ctrl.UpdateEvent)
	organizer.Delete("/:id", ctrl.DeleteEvent)
}

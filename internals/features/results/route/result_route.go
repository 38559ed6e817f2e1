package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"eventhub_backend/internals/constants"
	"eventhub_backend/internals/features/results/controller"
	authMiddleware "eventhub_backend/internals/middlewares/auth"
)

func ResultRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewResultController(db)

	results := api.Group("/results")

	// Public: leaderboard and eligibility-gated certificate download.
	results.Get("/event/:eventId", ctrl.GetEventResults)
	results.Get("/certificate/:registrationId", ctrl.DownloadCertificate)

	results.Post("/mark",
		authMiddleware.AuthMiddleware(),
		authMiddleware.OnlyRoles(constants.RoleErrorOrganizer("results"), constants.OrganizerAndAbove...),
		ctrl.MarkWinner,
	)
}

package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"eventhub_backend/internals/features/users/controller"
	"eventhub_backend/internals/middlewares"
	authMiddleware "eventhub_backend/internals/middlewares/auth"
)

func AuthRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAuthController(db)

	auth := api.Group("/auth")
	auth.Post("/register", middlewares.RegisterRateLimiter(), ctrl.Register)
	auth.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	auth.Post("/google", middlewares.LoginRateLimiter(), ctrl.LoginGoogle)
	auth.Get("/user", authMiddleware.AuthMiddleware(), ctrl.GetMe)
}

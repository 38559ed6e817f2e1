package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"eventhub_backend/internals/features/users/service"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// POST /api/auth/register
func (ctrl *AuthController) Register(c *fiber.Ctx) error {
	return service.Register(ctrl.DB, c)
}

// POST /api/auth/login
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	return service.Login(ctrl.DB, c)
}

// POST /api/auth/google
func (ctrl *AuthController) LoginGoogle(c *fiber.Ctx) error {
	return service.LoginGoogle(ctrl.DB, c)
}

// GET /api/auth/user
func (ctrl *AuthController) GetMe(c *fiber.Ctx) error {
	return service.GetMe(ctrl.DB, c)
}

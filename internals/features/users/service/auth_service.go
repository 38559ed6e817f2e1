package service

import (
	"log"
	"strings"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"eventhub_backend/internals/configs"
	"eventhub_backend/internals/constants"
	"eventhub_backend/internals/features/users/dto"
	userModel "eventhub_backend/internals/features/users/model"
	helper "eventhub_backend/internals/helpers"
	authHelper "eventhub_backend/internals/helpers/auth"
)

/* ==========================
   REGISTER
========================== */

func Register(db *gorm.DB, c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	input := req.ToModel()
	if err := input.Validate(); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	passwordHash, err := HashPassword(input.Password)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Password hashing failed")
	}
	input.Password = passwordHash

	if err := db.Create(input).Error; err != nil {
		low := strings.ToLower(err.Error())
		if strings.Contains(low, "duplicate key") || strings.Contains(low, "unique") {
			return helper.JsonError(c, fiber.StatusConflict, "User already exists")
		}
		log.Printf("[ERROR] Failed to create user: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	return issueTokenResponse(c, input, fiber.StatusCreated, "Registration successful")
}

/* ==========================
   LOGIN
========================== */

func Login(db *gorm.DB, c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Email and password are required")
	}

	// Unknown email and wrong password get the same rejection so the
	// response never leaks whether an account exists.
	var user userModel.UserModel
	if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid credentials")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Account is deactivated")
	}
	if err := CheckPasswordHash(user.Password, req.Password); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	return issueTokenResponse(c, &user, fiber.StatusOK, "Login successful")
}

/* ==========================
   LOGIN GOOGLE
========================== */

func LoginGoogle(db *gorm.DB, c *fiber.Ctx) error {
	var req dto.GoogleLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(req.IDToken) == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Missing id_token")
	}
	if configs.GoogleClientID == "" {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Google login not configured")
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(req.IDToken, []string{configs.GoogleClientID}); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Google authentication failed")
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(req.IDToken)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Google authentication failed")
	}

	email := strings.ToLower(strings.TrimSpace(claimSet.Email))
	name := claimSet.Name
	if name == "" {
		name = email
	}
	googleID := claimSet.Sub

	var user userModel.UserModel
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		// First login via Google: provision a student account with a random
		// throwaway password.
		hash, herr := HashPassword(uuid.NewString())
		if herr != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create user")
		}
		user = userModel.UserModel{
			UserName: name,
			Email:    email,
			Password: hash,
			Role:     constants.RoleStudent,
			Phone:    "0000000000",
			GoogleID: &googleID,
			IsActive: true,
		}
		if err := db.Create(&user).Error; err != nil {
			log.Printf("[ERROR] Failed to create Google user: %v", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create user")
		}
	}

	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Account is deactivated")
	}

	return issueTokenResponse(c, &user, fiber.StatusOK, "Login successful")
}

/* ==========================
   ME
========================== */

func GetMe(db *gorm.DB, c *fiber.Ctx) error {
	userID, err := authHelper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var user userModel.UserModel
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "User not found")
	}
	return helper.JsonOK(c, "ok", dto.ToUserResponse(&user))
}

func issueTokenResponse(c *fiber.Ctx, user *userModel.UserModel, status int, message string) error {
	token, err := IssueToken(user.ID, user.Role)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to sign token")
	}
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data": fiber.Map{
			"token": token,
			"user":  dto.ToUserResponse(user),
		},
	})
}

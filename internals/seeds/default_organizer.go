package seeds

import (
	"errors"
	"log"
	"os"
	"strings"

	"gorm.io/gorm"

	"eventhub_backend/internals/constants"
	userModel "eventhub_backend/internals/features/users/model"
	userService "eventhub_backend/internals/features/users/service"
)

// EnsureDefaultOrganizer creates the bootstrap organizer account when
// DEFAULT_ORG_EMAIL / DEFAULT_ORG_PASSWORD are set and no user with that
// email exists yet. Idempotent across restarts.
func EnsureDefaultOrganizer(db *gorm.DB) {
	email := strings.ToLower(strings.TrimSpace(os.Getenv("DEFAULT_ORG_EMAIL")))
	password := os.Getenv("DEFAULT_ORG_PASSWORD")
	if email == "" || password == "" {
		log.Println("[INFO] Default organizer seed skipped (DEFAULT_ORG_EMAIL / DEFAULT_ORG_PASSWORD not set)")
		return
	}

	var existing userModel.UserModel
	err := db.First(&existing, "email = ?", email).Error
	if err == nil {
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[ERROR] Default organizer lookup failed: %v", err)
		return
	}

	hashed, err := userService.HashPassword(password)
	if err != nil {
		log.Printf("[ERROR] Default organizer password hash failed: %v", err)
		return
	}

	organizer := userModel.UserModel{
		UserName: "Default Organizer",
		Email:    email,
		Password: hashed,
		Role:     constants.RoleOrganizer,
		Phone:    "0000000000",
		IsActive: true,
	}
	if err := db.Create(&organizer).Error; err != nil {
		log.Printf("[ERROR] Default organizer seed failed: %v", err)
		return
	}
	log.Printf("[INFO] Default organizer seeded: %s", email)
}

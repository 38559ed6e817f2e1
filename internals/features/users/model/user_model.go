package model

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Validator instance
var validate = validator.New()

// UserModel represents the users table.
type UserModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserName string    `gorm:"size:100;not null" json:"name" validate:"required,min=2,max=100"`
	Email    string    `gorm:"size:255;unique;not null" json:"email" validate:"required,email"`
	Password string    `gorm:"not null" json:"-" validate:"required,min=6"`
	Role     string    `gorm:"type:varchar(20);not null;default:'student'" json:"role" validate:"required,oneof=student organizer admin"`
	Phone    string    `gorm:"size:20;not null" json:"phone" validate:"required"`
	GoogleID *string   `gorm:"size:255;unique" json:"google_id,omitempty"`

	// Student-only profile fields
	StudentID  string `gorm:"size:50" json:"student_id,omitempty"`
	Department string `gorm:"size:100" json:"department,omitempty"`
	Year       int    `json:"year,omitempty"`

	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	return nil
}

// SetDefaultValues fills defaults before validation.
func (u *UserModel) SetDefaultValues() {
	if u.Role == "" {
		u.Role = "student"
	}
}

// Validate checks the struct against the declared rules. Students must carry
// their student profile fields.
func (u *UserModel) Validate() error {
	u.SetDefaultValues()

	if err := validate.Struct(u); err != nil {
		return formatValidationError(err)
	}
	if u.Role == "student" {
		if u.StudentID == "" || u.Department == "" || u.Year == 0 {
			return errors.New("Missing student details")
		}
	}
	return nil
}

func formatValidationError(err error) error {
	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		var sb strings.Builder
		for _, fieldErr := range validationErrs {
			if sb.Len() > 0 {
				sb.WriteString("; ")
			}
			switch fieldErr.Tag() {
			case "required":
				sb.WriteString(fieldErr.Field() + " is required")
			case "email":
				sb.WriteString("invalid email format")
			case "min":
				sb.WriteString(fieldErr.Field() + " must be at least " + fieldErr.Param() + " characters")
			case "max":
				sb.WriteString(fieldErr.Field() + " must be at most " + fieldErr.Param() + " characters")
			case "oneof":
				sb.WriteString(fieldErr.Field() + " must be one of " + fieldErr.Param())
			default:
				sb.WriteString(fieldErr.Field() + " has an invalid format")
			}
		}
		return errors.New(sb.String())
	}
	return err
}

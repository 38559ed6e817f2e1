package dto

import (
	"github.com/google/uuid"

	"eventhub_backend/internals/features/users/model"
)

type RegisterRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	Phone      string `json:"phone"`
	StudentID  string `json:"student_id"`
	Department string `json:"department"`
	Year       int    `json:"year"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"id_token"`
}

// UserResponse is the profile block returned next to the token.
type UserResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	Phone      string    `json:"phone,omitempty"`
	StudentID  string    `json:"student_id,omitempty"`
	Department string    `json:"department,omitempty"`
	Year       int       `json:"year,omitempty"`
}

func (r *RegisterRequest) ToModel() *model.UserModel {
	return &model.UserModel{
		UserName:   r.Name,
		Email:      r.Email,
		Password:   r.Password,
		Role:       r.Role,
		Phone:      r.Phone,
		StudentID:  r.StudentID,
		Department: r.Department,
		Year:       r.Year,
		IsActive:   true,
	}
}

func ToUserResponse(u *model.UserModel) *UserResponse {
	return &UserResponse{
		ID:         u.ID,
		Name:       u.UserName,
		Email:      u.Email,
		Role:       u.Role,
		Phone:      u.Phone,
		StudentID:  u.StudentID,
		Department: u.Department,
		Year:       u.Year,
	}
}

package dto

import (
	"time"

	"pacho/internal/entity"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token       string       `json:"token"`
	ExpiresIn   int64        `json:"expires_in"`
	Destination string       `json:"destination"`
	Message     string       `json:"message,omitempty"`
	User        UserResponse `json:"user"`
}

type PasswordForgotRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type PasswordForgotResponse struct {
	Message string `json:"message"`
}

type PasswordResetRequest struct {
	Token           string `json:"token" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

type UserResponse struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	FullName     string     `json:"full_name"`
	Role         string     `json:"role"`
	Status       int        `json:"status"`
	LastAccessAt *time.Time `json:"last_access_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func UserResponseFromEntity(user *entity.User) UserResponse {
	return UserResponse{
		ID:           user.ID.String(),
		Email:        user.Email,
		FullName:     user.FullName(),
		Role:         string(user.Role),
		Status:       int(user.Status),
		LastAccessAt: user.LastAccessAt,
		CreatedAt:    user.CreatedAt,
	}
}

package service

import (
	"time"

	"pacho/internal/entity"

	"github.com/google/uuid"
)

type LoginInput struct {
	Email     string
	Password  string
	IPAddress *string
	UserAgent *string
}

type LoginResult struct {
	Token       string
	ExpiresIn   int64
	SessionID   uuid.UUID
	Destination Destination
	Message     string
	User        *entity.User
}

type ResetPasswordInput struct {
	Token           string
	NewPassword     string
	ConfirmPassword string
}

type TestResult struct {
	State      entity.TestState
	Grade      float64
	ApprovedAt *time.Time
}

type SubmitTestResult struct {
	Grade   float64
	Correct int
	Total   int
	State   entity.TestState
}

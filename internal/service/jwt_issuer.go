package service

import (
	"time"

	"pacho/internal/entity"
	"pacho/internal/utils"

	"github.com/google/uuid"
)

type JWTTokenIssuer struct {
	Manager *utils.JWTManager
}

func (j JWTTokenIssuer) Issue(user *entity.User, expert *entity.Expert, sessionID uuid.UUID) (string, time.Duration, error) {
	if j.Manager == nil {
		return "", 0, ErrInvalidToken
	}
	claims := utils.AccessClaims{
		UserID:    user.ID.String(),
		Email:     user.Email,
		FullName:  user.FullName(),
		Role:      string(user.Role),
		Status:    int(user.Status),
		SessionID: sessionID.String(),
	}
	if expert != nil {
		claims.TestState = string(expert.TestState)
		claims.TestGrade = expert.TestGrade
	}
	return j.Manager.IssueToken(claims)
}

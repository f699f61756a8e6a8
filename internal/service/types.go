package service

import (
	"context"
	"time"

	"pacho/internal/entity"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthConfig struct {
	SessionTTL    time.Duration
	ResetTokenTTL time.Duration
}

// EmailSender delivers notifications. A failed delivery never rolls back
// the state that triggered it; callers log and move on.
type EmailSender interface {
	SendPasswordResetEmail(ctx context.Context, email string, rawToken string) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash string, password string) bool
}

// TokenIssuer mints the signed claim set attached to a session. Expert
// test state and grade are snapshotted from the login-time rows.
type TokenIssuer interface {
	Issue(user *entity.User, expert *entity.Expert, sessionID uuid.UUID) (string, time.Duration, error)
}

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now().UTC()
}

type BcryptPasswordHasher struct {
	Cost int
}

func (h BcryptPasswordHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func (h BcryptPasswordHasher) Verify(hash string, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

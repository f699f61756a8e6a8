package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"pacho/internal/entity"
	"pacho/internal/repository"
	"pacho/internal/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

const dummyPasswordHash = "$2a$10$CwTycUXWue0Thq9StjUM0uJ8yQbWc1x9uxw2sQ2sXUNx5x9xJ9F2S"

const resetTokenBytes = 32

type AuthService struct {
	users    repository.UserRepository
	experts  repository.ExpertRepository
	sessions repository.SessionRepository
	audit    repository.AuditLogRepository

	emailSender EmailSender
	hasher      PasswordHasher
	tokens      TokenIssuer
	clock       Clock
	config      AuthConfig
	log         logrus.FieldLogger
}

func NewAuthService(
	users repository.UserRepository,
	experts repository.ExpertRepository,
	sessions repository.SessionRepository,
	audit repository.AuditLogRepository,
	emailSender EmailSender,
	hasher PasswordHasher,
	tokens TokenIssuer,
	clock Clock,
	config AuthConfig,
	log logrus.FieldLogger,
) *AuthService {
	return &AuthService{
		users:       users,
		experts:     experts,
		sessions:    sessions,
		audit:       audit,
		emailSender: emailSender,
		hasher:      hasher,
		tokens:      tokens,
		clock:       clock,
		config:      config,
		log:         log,
	}
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	if strings.TrimSpace(input.Email) == "" || strings.TrimSpace(input.Password) == "" {
		return nil, ErrInvalidInput
	}

	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		_ = s.hasher.Verify(dummyPasswordHash, input.Password)
		_ = s.logAudit(ctx, nil, input.IPAddress, entity.AuditLoginFailed, map[string]any{"email": input.Email})
		return nil, ErrInvalidCredentials
	}

	if !s.hasher.Verify(user.PasswordHash, input.Password) {
		_ = s.logAudit(ctx, &user.ID, input.IPAddress, entity.AuditLoginFailed, map[string]any{"email": input.Email})
		return nil, ErrInvalidCredentials
	}

	var expert *entity.Expert
	if user.Role == entity.UserRoleExpert {
		expert, err = s.experts.FindByUserID(ctx, user.ID)
		if err != nil {
			return nil, err
		}
	}

	now := s.now()
	session := &entity.Session{
		UserID:    user.ID,
		IPAddress: input.IPAddress,
		UserAgent: input.UserAgent,
		ExpiresAt: now.Add(s.sessionTTL()),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	token, ttl, err := s.tokens.Issue(user, expert, session.ID)
	if err != nil {
		return nil, err
	}

	if err := s.users.UpdateLastAccess(ctx, user.ID, now); err != nil {
		return nil, err
	}

	_ = s.logAudit(ctx, &user.ID, input.IPAddress, entity.AuditLoginSuccess, nil)

	result := &LoginResult{
		Token:       token,
		ExpiresIn:   int64(ttl.Seconds()),
		SessionID:   session.ID,
		Destination: DestinationFor(user.Role, expert),
		User:        user,
	}
	if expert != nil && expert.TestState == entity.TestStateRejected {
		result.Message = "aptitude test not approved"
	}
	return result, nil
}

func (s *AuthService) Logout(ctx context.Context, sessionID uuid.UUID, userID *uuid.UUID, ipAddress *string) error {
	if err := s.sessions.Revoke(ctx, sessionID); err != nil {
		return err
	}
	_ = s.logAudit(ctx, userID, ipAddress, entity.AuditLogout, nil)
	return nil
}

// RequestPasswordReset always reports success to the caller so the
// response never reveals whether the address is registered.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	if strings.TrimSpace(email) == "" {
		return ErrInvalidInput
	}

	user, err := s.users.FindActiveByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	rawToken, err := utils.GenerateRandomToken(resetTokenBytes)
	if err != nil {
		return err
	}
	tokenHash := utils.HashToken(rawToken)
	expiresAt := s.now().Add(s.resetTokenTTL())

	user.RecoveryTokenHash = &tokenHash
	user.RecoveryTokenExpiresAt = &expiresAt
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	// The stored digest stays valid even if this delivery attempt fails.
	if s.emailSender != nil {
		if err := s.emailSender.SendPasswordResetEmail(ctx, user.Email, rawToken); err != nil {
			s.log.WithError(err).WithField("user_id", user.ID).Warn("password reset email delivery failed")
		}
	}

	_ = s.logAudit(ctx, &user.ID, nil, entity.AuditPasswordReset, map[string]any{"step": "requested"})
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, input ResetPasswordInput) error {
	if strings.TrimSpace(input.Token) == "" {
		return ErrInvalidInput
	}
	if input.NewPassword != input.ConfirmPassword {
		return ErrPasswordMismatch
	}
	if len(input.NewPassword) < 8 {
		return ErrPasswordTooShort
	}

	user, err := s.users.FindByRecoveryTokenHash(ctx, utils.HashToken(input.Token), s.now())
	if err != nil {
		return err
	}
	if user == nil {
		return ErrInvalidToken
	}

	hash, err := s.hasher.Hash(input.NewPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash

	// Clearing both fields makes the token single-use.
	user.RecoveryTokenHash = nil
	user.RecoveryTokenExpiresAt = nil
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	_ = s.sessions.RevokeAllByUser(ctx, user.ID)
	_ = s.logAudit(ctx, &user.ID, nil, entity.AuditPasswordReset, map[string]any{"step": "completed"})
	return nil
}

func (s *AuthService) logAudit(
	ctx context.Context,
	userID *uuid.UUID,
	ipAddress *string,
	action entity.AuditAction,
	metadata map[string]any,
) error {
	if s.audit == nil {
		return nil
	}
	var payload datatypes.JSON
	if metadata != nil {
		bytes, err := json.Marshal(metadata)
		if err != nil {
			return err
		}
		payload = datatypes.JSON(bytes)
	}
	return s.audit.Log(ctx, &entity.AuditLog{
		UserID:    userID,
		IPAddress: ipAddress,
		Action:    action,
		Metadata:  payload,
	})
}

func (s *AuthService) now() time.Time {
	if s.clock == nil {
		return time.Now().UTC()
	}
	return s.clock.Now()
}

func (s *AuthService) sessionTTL() time.Duration {
	if s.config.SessionTTL > 0 {
		return s.config.SessionTTL
	}
	return 30 * time.Minute
}

func (s *AuthService) resetTokenTTL() time.Duration {
	if s.config.ResetTokenTTL > 0 {
		return s.config.ResetTokenTTL
	}
	return 30 * time.Minute
}

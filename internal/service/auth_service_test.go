package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"pacho/internal/entity"

	"github.com/sirupsen/logrus"
)

func discardLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type authFixture struct {
	registry *fakeRegistry
	sessions *fakeSessionRepo
	audit    *fakeAuditRepo
	email    *fakeEmailSender
	clock    *fakeClock
	service  *AuthService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	registry := newFakeRegistry()
	sessions := newFakeSessionRepo()
	audit := &fakeAuditRepo{}
	email := &fakeEmailSender{}
	clock := &fakeClock{now: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)}

	svc := NewAuthService(
		registry.users,
		registry.experts,
		sessions,
		audit,
		email,
		plainHasher{},
		fakeTokenIssuer{},
		clock,
		AuthConfig{SessionTTL: 30 * time.Minute, ResetTokenTTL: 30 * time.Minute},
		discardLogger(),
	)
	return &authFixture{
		registry: registry,
		sessions: sessions,
		audit:    audit,
		email:    email,
		clock:    clock,
		service:  svc,
	}
}

func (f *authFixture) addUser(t *testing.T, email string, password string, role entity.UserRole, status entity.UserStatus) *entity.User {
	t.Helper()
	user := &entity.User{
		Email:        email,
		PasswordHash: "hash:" + password,
		FirstName:    "Maria",
		LastName:     "Lopez",
		Role:         role,
		Status:       status,
	}
	if err := f.registry.users.Create(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func (f *authFixture) addExpert(t *testing.T, user *entity.User, state entity.TestState) *entity.Expert {
	t.Helper()
	expert := &entity.Expert{UserID: user.ID, TestState: state}
	if err := f.registry.experts.Create(context.Background(), expert); err != nil {
		t.Fatalf("create expert: %v", err)
	}
	return expert
}

func TestAuthService_LoginUnknownEmail(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.service.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "whatever1"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if len(f.audit.entries) != 1 || f.audit.entries[0].Action != entity.AuditLoginFailed {
		t.Fatalf("expected a login_failed audit entry, got %v", f.audit.actions())
	}
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	f := newAuthFixture(t)
	f.addUser(t, "maria@example.com", "correcthorse", entity.UserRoleUser, entity.StatusActive)

	_, err := f.service.Login(context.Background(), LoginInput{Email: "maria@example.com", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_LoginCreatesSessionAndRoutes(t *testing.T) {
	f := newAuthFixture(t)
	user := f.addUser(t, "admin@example.com", "adminpass1", entity.UserRoleSuperAdmin, entity.StatusActive)

	result, err := f.service.Login(context.Background(), LoginInput{Email: "admin@example.com", Password: "adminpass1"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Destination != DestPendingExperts {
		t.Fatalf("expected destination %s, got %s", DestPendingExperts, result.Destination)
	}
	if result.Token == "" || result.ExpiresIn != int64((30 * time.Minute).Seconds()) {
		t.Fatalf("unexpected token %q / expiry %d", result.Token, result.ExpiresIn)
	}

	session, err := f.sessions.FindValid(context.Background(), result.SessionID, f.clock.now)
	if err != nil || session == nil {
		t.Fatalf("expected a valid session, got %v %v", session, err)
	}
	if !session.ExpiresAt.Equal(f.clock.now.Add(30 * time.Minute)) {
		t.Fatalf("session expiry %v, want %v", session.ExpiresAt, f.clock.now.Add(30*time.Minute))
	}

	stored, _ := f.registry.users.FindByID(context.Background(), user.ID)
	if stored.LastAccessAt == nil || !stored.LastAccessAt.Equal(f.clock.now) {
		t.Fatalf("expected last access %v, got %v", f.clock.now, stored.LastAccessAt)
	}
}

func TestAuthService_LoginExpertDestinations(t *testing.T) {
	cases := []struct {
		name        string
		state       entity.TestState
		destination Destination
		message     string
	}{
		{"enabled goes to the test", entity.TestStateEnabled, DestTakeTest, ""},
		{"approved goes to treatments", entity.TestStateApproved, DestTreatments, ""},
		{"rejected is denied with a message", entity.TestStateRejected, DestAccessDenied, "aptitude test not approved"},
		{"pending is denied", entity.TestStatePending, DestAccessDenied, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newAuthFixture(t)
			user := f.addUser(t, "experto@example.com", "expertpass", entity.UserRoleExpert, entity.StatusPending)
			f.addExpert(t, user, tc.state)

			result, err := f.service.Login(context.Background(), LoginInput{Email: "experto@example.com", Password: "expertpass"})
			if err != nil {
				t.Fatalf("login: %v", err)
			}
			if result.Destination != tc.destination {
				t.Fatalf("expected destination %s, got %s", tc.destination, result.Destination)
			}
			if result.Message != tc.message {
				t.Fatalf("expected message %q, got %q", tc.message, result.Message)
			}
		})
	}
}

func TestAuthService_LoginExpertWithoutRowIsDenied(t *testing.T) {
	f := newAuthFixture(t)
	f.addUser(t, "orphan@example.com", "expertpass", entity.UserRoleExpert, entity.StatusPending)

	result, err := f.service.Login(context.Background(), LoginInput{Email: "orphan@example.com", Password: "expertpass"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Destination != DestAccessDenied {
		t.Fatalf("expected %s, got %s", DestAccessDenied, result.Destination)
	}
}

func TestAuthService_LogoutRevokesSession(t *testing.T) {
	f := newAuthFixture(t)
	user := f.addUser(t, "maria@example.com", "correcthorse", entity.UserRoleUser, entity.StatusActive)

	result, err := f.service.Login(context.Background(), LoginInput{Email: "maria@example.com", Password: "correcthorse"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := f.service.Logout(context.Background(), result.SessionID, &user.ID, nil); err != nil {
		t.Fatalf("logout: %v", err)
	}

	session, _ := f.sessions.FindValid(context.Background(), result.SessionID, f.clock.now)
	if session != nil {
		t.Fatal("expected the session to be revoked")
	}
}

func TestAuthService_RequestPasswordResetUnknownEmail(t *testing.T) {
	f := newAuthFixture(t)

	if err := f.service.RequestPasswordReset(context.Background(), "nobody@example.com"); err != nil {
		t.Fatalf("expected silent success, got %v", err)
	}
	if len(f.email.sent) != 0 {
		t.Fatalf("expected no email, got %d", len(f.email.sent))
	}
}

func TestAuthService_RequestPasswordResetSkipsInactiveAccounts(t *testing.T) {
	f := newAuthFixture(t)
	f.addUser(t, "blocked@example.com", "correcthorse", entity.UserRoleUser, entity.StatusInactive)

	if err := f.service.RequestPasswordReset(context.Background(), "blocked@example.com"); err != nil {
		t.Fatalf("expected silent success, got %v", err)
	}
	if len(f.email.sent) != 0 {
		t.Fatalf("expected no email for inactive account, got %d", len(f.email.sent))
	}
}

func TestAuthService_PasswordResetRoundTrip(t *testing.T) {
	f := newAuthFixture(t)
	user := f.addUser(t, "maria@example.com", "oldpassword", entity.UserRoleUser, entity.StatusActive)

	if err := f.service.RequestPasswordReset(context.Background(), "maria@example.com"); err != nil {
		t.Fatalf("request reset: %v", err)
	}
	if len(f.email.sent) != 1 {
		t.Fatalf("expected one email, got %d", len(f.email.sent))
	}
	rawToken := f.email.sent[0].token

	stored, _ := f.registry.users.FindByID(context.Background(), user.ID)
	if stored.RecoveryTokenHash == nil || *stored.RecoveryTokenHash == rawToken {
		t.Fatal("expected a stored digest distinct from the raw token")
	}

	err := f.service.ResetPassword(context.Background(), ResetPasswordInput{
		Token:           rawToken,
		NewPassword:     "newpassword1",
		ConfirmPassword: "newpassword1",
	})
	if err != nil {
		t.Fatalf("reset: %v", err)
	}

	stored, _ = f.registry.users.FindByID(context.Background(), user.ID)
	if !(plainHasher{}).Verify(stored.PasswordHash, "newpassword1") {
		t.Fatal("password was not updated")
	}
	if stored.RecoveryTokenHash != nil || stored.RecoveryTokenExpiresAt != nil {
		t.Fatal("expected the recovery token to be cleared")
	}

	// The token is single-use.
	err = f.service.ResetPassword(context.Background(), ResetPasswordInput{
		Token:           rawToken,
		NewPassword:     "anotherpass1",
		ConfirmPassword: "anotherpass1",
	})
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken on reuse, got %v", err)
	}
}

func TestAuthService_PasswordResetExpiredToken(t *testing.T) {
	f := newAuthFixture(t)
	f.addUser(t, "maria@example.com", "oldpassword", entity.UserRoleUser, entity.StatusActive)

	if err := f.service.RequestPasswordReset(context.Background(), "maria@example.com"); err != nil {
		t.Fatalf("request reset: %v", err)
	}
	rawToken := f.email.sent[0].token

	f.clock.now = f.clock.now.Add(31 * time.Minute)
	err := f.service.ResetPassword(context.Background(), ResetPasswordInput{
		Token:           rawToken,
		NewPassword:     "newpassword1",
		ConfirmPassword: "newpassword1",
	})
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after expiry, got %v", err)
	}
}

func TestAuthService_PasswordResetValidation(t *testing.T) {
	f := newAuthFixture(t)

	err := f.service.ResetPassword(context.Background(), ResetPasswordInput{
		Token:           "sometoken",
		NewPassword:     "abcdefgh",
		ConfirmPassword: "different",
	})
	if !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}

	err = f.service.ResetPassword(context.Background(), ResetPasswordInput{
		Token:           "sometoken",
		NewPassword:     "short",
		ConfirmPassword: "short",
	})
	if !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}
}

func TestAuthService_PasswordResetRevokesSessions(t *testing.T) {
	f := newAuthFixture(t)
	f.addUser(t, "maria@example.com", "oldpassword", entity.UserRoleUser, entity.StatusActive)

	login, err := f.service.Login(context.Background(), LoginInput{Email: "maria@example.com", Password: "oldpassword"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := f.service.RequestPasswordReset(context.Background(), "maria@example.com"); err != nil {
		t.Fatalf("request reset: %v", err)
	}
	err = f.service.ResetPassword(context.Background(), ResetPasswordInput{
		Token:           f.email.sent[0].token,
		NewPassword:     "newpassword1",
		ConfirmPassword: "newpassword1",
	})
	if err != nil {
		t.Fatalf("reset: %v", err)
	}

	session, _ := f.sessions.FindValid(context.Background(), login.SessionID, f.clock.now)
	if session != nil {
		t.Fatal("expected existing sessions to be revoked after a reset")
	}
}

func TestAuthService_EmailFailureDoesNotFailRequest(t *testing.T) {
	f := newAuthFixture(t)
	user := f.addUser(t, "maria@example.com", "oldpassword", entity.UserRoleUser, entity.StatusActive)
	f.email.err = errors.New("provider down")

	if err := f.service.RequestPasswordReset(context.Background(), "maria@example.com"); err != nil {
		t.Fatalf("expected success despite delivery failure, got %v", err)
	}
	stored, _ := f.registry.users.FindByID(context.Background(), user.ID)
	if stored.RecoveryTokenHash == nil {
		t.Fatal("expected the digest to be stored even when delivery failed")
	}
}

func TestDestinationFor(t *testing.T) {
	approved := &entity.Expert{TestState: entity.TestStateApproved}
	enabled := &entity.Expert{TestState: entity.TestStateEnabled}

	if got := DestinationFor(entity.UserRoleSuperAdmin, nil); got != DestPendingExperts {
		t.Fatalf("superadmin: got %s", got)
	}
	if got := DestinationFor(entity.UserRoleUser, nil); got != DestUserHome {
		t.Fatalf("usuario: got %s", got)
	}
	if got := DestinationFor(entity.UserRoleExpert, enabled); got != DestTakeTest {
		t.Fatalf("habilitado: got %s", got)
	}
	if got := DestinationFor(entity.UserRoleExpert, approved); got != DestTreatments {
		t.Fatalf("aprobado: got %s", got)
	}
	if got := DestinationFor(entity.UserRoleExpert, nil); got != DestAccessDenied {
		t.Fatalf("missing expert row: got %s", got)
	}
	if got := DestinationFor(entity.UserRoleUnassigned, nil); got != DestPublicHome {
		t.Fatalf("unassigned: got %s", got)
	}
}

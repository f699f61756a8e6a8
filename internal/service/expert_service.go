package service

import (
	"context"
	"strings"
	"time"

	"pacho/internal/entity"
	"pacho/internal/repository"

	"github.com/google/uuid"
)

type RegisterExpertInput struct {
	Email           string
	Password        string
	FirstName       string
	LastName        string
	Phone           string
	ExperienceType  string
	ExperienceYears float64
}

// ExpertService owns the qualification lifecycle around the aptitude
// test: registration (pendiente), the administrator enable action
// (habilitado), and the administrative operations that do not grade the
// test. Grading itself belongs to TestService.
type ExpertService struct {
	uow     repository.UnitOfWork
	users   repository.UserRepository
	experts repository.ExpertRepository
	answers repository.ExpertAnswerRepository
	audit   repository.AuditLogRepository
	hasher  PasswordHasher
	clock   Clock
}

func NewExpertService(
	uow repository.UnitOfWork,
	users repository.UserRepository,
	experts repository.ExpertRepository,
	answers repository.ExpertAnswerRepository,
	audit repository.AuditLogRepository,
	hasher PasswordHasher,
	clock Clock,
) *ExpertService {
	return &ExpertService{
		uow:     uow,
		users:   users,
		experts: experts,
		answers: answers,
		audit:   audit,
		hasher:  hasher,
		clock:   clock,
	}
}

func (s *ExpertService) Register(ctx context.Context, input RegisterExpertInput) (*entity.Expert, error) {
	if strings.TrimSpace(input.Email) == "" ||
		strings.TrimSpace(input.FirstName) == "" ||
		strings.TrimSpace(input.LastName) == "" {
		return nil, ErrInvalidInput
	}
	if len(input.Password) < 8 {
		return nil, ErrPasswordTooShort
	}

	exists, err := s.users.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyRegistered
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	confidence := entity.ConfidenceNew
	expert := &entity.Expert{
		ExperienceType:  input.ExperienceType,
		ExperienceYears: input.ExperienceYears,
		TestState:       entity.TestStatePending,
		ConfidenceLevel: &confidence,
	}

	err = s.uow.Do(ctx, func(r repository.Registry) error {
		user := &entity.User{
			Email:        input.Email,
			PasswordHash: hash,
			FirstName:    input.FirstName,
			LastName:     input.LastName,
			Role:         entity.UserRoleExpert,
			Status:       entity.StatusPending,
		}
		if input.Phone != "" {
			user.Phone = &input.Phone
		}
		if err := r.Users().Create(ctx, user); err != nil {
			return err
		}
		expert.UserID = user.ID
		return r.Experts().Create(ctx, expert)
	})
	if err != nil {
		return nil, err
	}
	return expert, nil
}

func (s *ExpertService) ListPending(ctx context.Context) ([]entity.Expert, error) {
	return s.experts.ListPending(ctx)
}

func (s *ExpertService) ListAll(ctx context.Context) ([]entity.Expert, error) {
	return s.experts.ListAll(ctx)
}

func (s *ExpertService) Get(ctx context.Context, id uuid.UUID) (*entity.Expert, error) {
	expert, err := s.experts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expert == nil {
		return nil, ErrExpertNotFound
	}
	return expert, nil
}

// EnableTest moves a pending expert to habilitado. The account status
// stays pending: the expert still has to pass the test to become active.
func (s *ExpertService) EnableTest(ctx context.Context, id uuid.UUID) error {
	expert, err := s.experts.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if expert == nil {
		return ErrExpertNotFound
	}
	if expert.TestState != entity.TestStatePending {
		return ErrInvalidState
	}

	now := s.now()
	expert.TestState = entity.TestStateEnabled
	expert.ApprovedAt = &now
	if err := s.experts.Update(ctx, expert); err != nil {
		return err
	}

	s.logAction(ctx, expert.UserID, entity.AuditTestEnabled)
	return nil
}

// DeleteRequest removes a qualification request outright. This is only
// safe before any test attempt: once recorded responses exist the
// request must stay for referential integrity.
func (s *ExpertService) DeleteRequest(ctx context.Context, id uuid.UUID) error {
	expert, err := s.experts.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if expert == nil {
		return ErrExpertNotFound
	}
	if expert.TestState != entity.TestStatePending {
		return ErrInvalidState
	}

	hasAnswers, err := s.answers.ExistsByExpert(ctx, id)
	if err != nil {
		return err
	}
	if hasAnswers {
		return ErrHasRecordedAnswers
	}

	userID := expert.UserID
	err = s.uow.Do(ctx, func(r repository.Registry) error {
		if err := r.Experts().Delete(ctx, id); err != nil {
			return err
		}
		return r.Users().Delete(ctx, userID)
	})
	if err != nil {
		return err
	}

	s.logAction(ctx, userID, entity.AuditRequestDeleted)
	return nil
}

// ToggleStatus flips the account between active and pending. This axis is
// independent from the test state and never regresses it.
func (s *ExpertService) ToggleStatus(ctx context.Context, id uuid.UUID) (entity.UserStatus, error) {
	expert, err := s.experts.FindByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if expert == nil {
		return 0, ErrExpertNotFound
	}

	user, err := s.users.FindByID(ctx, expert.UserID)
	if err != nil {
		return 0, err
	}
	if user == nil {
		return 0, ErrUserNotFound
	}

	if user.Status == entity.StatusActive {
		user.Status = entity.StatusPending
	} else {
		user.Status = entity.StatusActive
	}
	if err := s.users.Update(ctx, user); err != nil {
		return 0, err
	}

	s.logAction(ctx, user.ID, entity.AuditStatusToggled)
	return user.Status, nil
}

// Answers returns the expert's recorded test responses in the order they
// were written.
func (s *ExpertService) Answers(ctx context.Context, id uuid.UUID) ([]entity.ExpertAnswer, error) {
	expert, err := s.experts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expert == nil {
		return nil, ErrExpertNotFound
	}
	return s.answers.ListByExpert(ctx, id)
}

func (s *ExpertService) logAction(ctx context.Context, userID uuid.UUID, action entity.AuditAction) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Log(ctx, &entity.AuditLog{UserID: &userID, Action: action})
}

func (s *ExpertService) now() time.Time {
	if s.clock == nil {
		return time.Now().UTC()
	}
	return s.clock.Now()
}

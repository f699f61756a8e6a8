package service

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"pacho/internal/entity"
	"pacho/internal/repository"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const passingGrade = 60.0

// TestService is the scoring engine. It recomputes question eligibility
// from the bank on every call and never trusts a client-supplied
// question list. Submission writes the responses first and evaluates the
// outcome second, all inside one unit of work.
type TestService struct {
	uow       repository.UnitOfWork
	experts   repository.ExpertRepository
	questions repository.QuestionRepository
	audit     repository.AuditLogRepository
	clock     Clock
}

func NewTestService(
	uow repository.UnitOfWork,
	experts repository.ExpertRepository,
	questions repository.QuestionRepository,
	audit repository.AuditLogRepository,
	clock Clock,
) *TestService {
	return &TestService{
		uow:       uow,
		experts:   experts,
		questions: questions,
		audit:     audit,
		clock:     clock,
	}
}

// LoadEligibleQuestions returns the test for an enabled expert: eligible
// questions in position order, each with its active answers and with the
// correctness flag stripped.
func (s *TestService) LoadEligibleQuestions(ctx context.Context, userID uuid.UUID) ([]entity.Question, error) {
	expert, err := s.experts.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if expert == nil {
		return nil, ErrExpertNotFound
	}
	if !isEnabled(expert.TestState) {
		return nil, ErrTestNotEnabled
	}

	questions, err := s.questions.List(ctx)
	if err != nil {
		return nil, err
	}

	eligible := make([]entity.Question, 0, len(questions))
	for i := range questions {
		if !questions[i].Eligible() {
			continue
		}
		eligible = append(eligible, sanitizeQuestion(&questions[i]))
	}
	if len(eligible) == 0 {
		return nil, ErrNoEligibleQuestions
	}
	return eligible, nil
}

// SubmitTest grades the responses against a fresh eligibility snapshot.
// The expert row is locked for the duration so a concurrent resubmission
// by the same expert serializes behind this one and then fails the
// habilitado check. Responses, grade, test state, and account status
// commit or roll back together.
func (s *TestService) SubmitTest(ctx context.Context, userID uuid.UUID, responses map[uuid.UUID]uuid.UUID) (*SubmitTestResult, error) {
	var result *SubmitTestResult
	var auditUserID uuid.UUID

	err := s.uow.Do(ctx, func(r repository.Registry) error {
		expert, err := r.Experts().FindByUserIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if expert == nil {
			return ErrExpertNotFound
		}
		if !isEnabled(expert.TestState) {
			return ErrTestNotEnabled
		}

		questions, err := r.Questions().List(ctx)
		if err != nil {
			return err
		}
		eligible := make([]*entity.Question, 0, len(questions))
		for i := range questions {
			if questions[i].Eligible() {
				eligible = append(eligible, &questions[i])
			}
		}
		if len(eligible) == 0 {
			return ErrNoEligibleQuestions
		}

		// Every eligible question must be answered; extra ids are ignored.
		for _, q := range eligible {
			if _, ok := responses[q.ID]; !ok {
				return ErrIncompleteSubmission
			}
		}

		now := s.now()
		correct := 0
		records := make([]entity.ExpertAnswer, 0, len(eligible))
		for _, q := range eligible {
			chosen := responses[q.ID]
			if correctID, ok := q.CorrectAnswerID(); ok && chosen == correctID {
				correct++
			}
			records = append(records, entity.ExpertAnswer{
				ExpertID:   expert.ID,
				QuestionID: q.ID,
				AnswerID:   chosen,
				AnsweredAt: now,
			})
		}

		// Responses are persisted before the outcome is applied so the
		// history survives any future change of scoring policy.
		if err := r.ExpertAnswers().CreateBatch(ctx, records); err != nil {
			return err
		}

		total := len(eligible)
		grade := math.Round(100*float64(correct)/float64(total)*100) / 100
		expert.TestGrade = &grade

		user, err := r.Users().FindByID(ctx, expert.UserID)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrUserNotFound
		}

		if grade >= passingGrade {
			expert.TestState = entity.TestStateApproved
			expert.ApprovedAt = &now
			if expert.ConfidenceLevel == nil {
				confidence := entity.ConfidenceBeginner
				expert.ConfidenceLevel = &confidence
			}
			user.Status = entity.StatusActive
		} else {
			expert.TestState = entity.TestStateRejected
			user.Status = entity.StatusInactive
		}

		if err := r.Experts().Update(ctx, expert); err != nil {
			return err
		}
		if err := r.Users().Update(ctx, user); err != nil {
			return err
		}

		auditUserID = user.ID
		result = &SubmitTestResult{
			Grade:   grade,
			Correct: correct,
			Total:   total,
			State:   expert.TestState,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logSubmission(ctx, auditUserID, result)
	return result, nil
}

func (s *TestService) GetResult(ctx context.Context, userID uuid.UUID) (*TestResult, error) {
	expert, err := s.experts.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if expert == nil {
		return nil, ErrExpertNotFound
	}
	if expert.TestGrade == nil {
		return nil, ErrResultNotReady
	}
	return &TestResult{
		State:      expert.TestState,
		Grade:      *expert.TestGrade,
		ApprovedAt: expert.ApprovedAt,
	}, nil
}

func isEnabled(state entity.TestState) bool {
	parsed, err := entity.ParseTestState(string(state))
	return err == nil && parsed == entity.TestStateEnabled
}

// sanitizeQuestion keeps only active answers and strips the correctness
// flag before the question leaves the service.
func sanitizeQuestion(q *entity.Question) entity.Question {
	out := entity.Question{
		ID:       q.ID,
		Text:     q.Text,
		Position: q.Position,
	}
	for _, a := range q.ActiveAnswers() {
		out.Answers = append(out.Answers, entity.Answer{
			ID:         a.ID,
			QuestionID: a.QuestionID,
			Text:       a.Text,
			IsActive:   true,
		})
	}
	return out
}

func (s *TestService) logSubmission(ctx context.Context, userID uuid.UUID, result *SubmitTestResult) {
	if s.audit == nil || result == nil {
		return
	}
	metadata, err := json.Marshal(map[string]any{
		"grade":   result.Grade,
		"correct": result.Correct,
		"total":   result.Total,
		"state":   result.State,
	})
	if err != nil {
		return
	}
	_ = s.audit.Log(ctx, &entity.AuditLog{
		UserID:   &userID,
		Action:   entity.AuditTestSubmitted,
		Metadata: datatypes.JSON(metadata),
	})
}

func (s *TestService) now() time.Time {
	if s.clock == nil {
		return time.Now().UTC()
	}
	return s.clock.Now()
}

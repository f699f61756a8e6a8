package service

import (
	"context"
	"math"
	"strings"
	"time"

	"pacho/internal/entity"
	"pacho/internal/repository"

	"github.com/google/uuid"
)

const (
	maxQuestionLength = 500
	maxAnswerLength   = 200
)

type AnswerInput struct {
	ID        uuid.UUID // uuid.Nil for a new answer
	Text      string
	IsCorrect bool
}

type QuestionInput struct {
	Text     string
	Position int
	Answers  []AnswerInput
}

type QuestionStatistics struct {
	TotalQuestions            int     `json:"total_questions"`
	TotalAnswers              int     `json:"total_answers"`
	TotalCorrectAnswers       int     `json:"total_correct_answers"`
	AverageAnswersPerQuestion float64 `json:"average_answers_per_question"`
	LastPosition              int     `json:"last_position"`
	MultipleCorrect           int     `json:"questions_with_multiple_correct"`
}

type QuestionSummary struct {
	ID           uuid.UUID `json:"id"`
	Position     int       `json:"position"`
	Text         string    `json:"text"`
	AnswersCount int       `json:"answers_count"`
	CorrectCount int       `json:"correct_answers_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// QuestionService manages the question bank. Answers referenced by a
// recorded expert response are never hard-deleted: removal flips the
// soft-delete flag so the response history keeps resolving.
type QuestionService struct {
	uow       repository.UnitOfWork
	questions repository.QuestionRepository
	responses repository.ExpertAnswerRepository
}

func NewQuestionService(
	uow repository.UnitOfWork,
	questions repository.QuestionRepository,
	responses repository.ExpertAnswerRepository,
) *QuestionService {
	return &QuestionService{
		uow:       uow,
		questions: questions,
		responses: responses,
	}
}

func (s *QuestionService) List(ctx context.Context) ([]entity.Question, error) {
	return s.questions.List(ctx)
}

func (s *QuestionService) Get(ctx context.Context, id uuid.UUID) (*entity.Question, error) {
	question, err := s.questions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, ErrQuestionNotFound
	}
	return question, nil
}

func (s *QuestionService) Create(ctx context.Context, input QuestionInput) (*entity.Question, error) {
	text, answers, err := validateQuestionInput(input)
	if err != nil {
		return nil, err
	}

	taken, err := s.questions.PositionTaken(ctx, input.Position, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrPositionTaken
	}

	question := &entity.Question{
		Text:     text,
		Position: input.Position,
	}
	for _, a := range answers {
		question.Answers = append(question.Answers, entity.Answer{
			Text:      a.Text,
			IsCorrect: a.IsCorrect,
			IsActive:  true,
		})
	}
	if err := s.questions.Create(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuestionService) Update(ctx context.Context, id uuid.UUID, input QuestionInput) error {
	text, posted, err := validateQuestionInput(input)
	if err != nil {
		return err
	}

	taken, err := s.questions.PositionTaken(ctx, input.Position, id)
	if err != nil {
		return err
	}
	if taken {
		return ErrPositionTaken
	}

	return s.uow.Do(ctx, func(r repository.Registry) error {
		question, err := r.Questions().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if question == nil {
			return ErrQuestionNotFound
		}

		question.Text = text
		question.Position = input.Position
		if err := r.Questions().Update(ctx, question); err != nil {
			return err
		}

		postedIDs := make(map[uuid.UUID]AnswerInput, len(posted))
		for _, a := range posted {
			if a.ID != uuid.Nil {
				postedIDs[a.ID] = a
			}
		}

		// Answers dropped from the form: tombstone if referenced, remove
		// otherwise.
		for i := range question.Answers {
			existing := &question.Answers[i]
			if _, stillPosted := postedIDs[existing.ID]; stillPosted {
				continue
			}
			used, err := r.ExpertAnswers().ExistsByAnswer(ctx, existing.ID)
			if err != nil {
				return err
			}
			if used {
				if err := r.Questions().DeactivateAnswer(ctx, existing.ID); err != nil {
					return err
				}
			} else {
				if err := r.Questions().DeleteAnswer(ctx, existing.ID); err != nil {
					return err
				}
			}
		}

		existingByID := make(map[uuid.UUID]*entity.Answer, len(question.Answers))
		for i := range question.Answers {
			existingByID[question.Answers[i].ID] = &question.Answers[i]
		}

		for _, a := range posted {
			if a.ID != uuid.Nil {
				existing, ok := existingByID[a.ID]
				if !ok {
					continue
				}
				existing.Text = a.Text
				existing.IsCorrect = a.IsCorrect
				if err := r.Questions().UpdateAnswer(ctx, existing); err != nil {
					return err
				}
				continue
			}
			answer := &entity.Answer{
				QuestionID: question.ID,
				Text:       a.Text,
				IsCorrect:  a.IsCorrect,
				IsActive:   true,
			}
			if err := r.Questions().CreateAnswer(ctx, answer); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *QuestionService) Delete(ctx context.Context, id uuid.UUID) error {
	question, err := s.questions.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if question == nil {
		return ErrQuestionNotFound
	}

	used, err := s.responses.ExistsByQuestion(ctx, id)
	if err != nil {
		return err
	}
	if used {
		return ErrQuestionInUse
	}
	return s.questions.Delete(ctx, id)
}

func (s *QuestionService) ChangePosition(ctx context.Context, id uuid.UUID, newPosition int) error {
	question, err := s.questions.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if question == nil {
		return ErrQuestionNotFound
	}

	taken, err := s.questions.PositionTaken(ctx, newPosition, id)
	if err != nil {
		return err
	}
	if taken {
		return ErrPositionTaken
	}

	question.Position = newPosition
	return s.questions.Update(ctx, question)
}

// Duplicate copies a question and all of its answers to the next free
// position at the end of the bank. Copies start active regardless of the
// source answer's soft-delete state.
func (s *QuestionService) Duplicate(ctx context.Context, id uuid.UUID) (*entity.Question, error) {
	original, err := s.questions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if original == nil {
		return nil, ErrQuestionNotFound
	}

	maxPosition, err := s.questions.MaxPosition(ctx)
	if err != nil {
		return nil, err
	}

	copied := &entity.Question{
		Text:     original.Text + " (copia)",
		Position: maxPosition + 1,
	}
	for _, a := range original.Answers {
		copied.Answers = append(copied.Answers, entity.Answer{
			Text:      a.Text,
			IsCorrect: a.IsCorrect,
			IsActive:  true,
		})
	}
	if err := s.questions.Create(ctx, copied); err != nil {
		return nil, err
	}
	return copied, nil
}

func (s *QuestionService) Statistics(ctx context.Context) (*QuestionStatistics, error) {
	questions, err := s.questions.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &QuestionStatistics{TotalQuestions: len(questions)}
	for i := range questions {
		q := &questions[i]
		stats.TotalAnswers += len(q.Answers)
		correct := 0
		for _, a := range q.Answers {
			if a.IsCorrect {
				correct++
			}
		}
		stats.TotalCorrectAnswers += correct
		if correct > 1 {
			stats.MultipleCorrect++
		}
		if q.Position > stats.LastPosition {
			stats.LastPosition = q.Position
		}
	}
	if len(questions) > 0 {
		stats.AverageAnswersPerQuestion = math.Round(float64(stats.TotalAnswers)/float64(len(questions))*10) / 10
	}
	return stats, nil
}

func (s *QuestionService) Search(ctx context.Context, term string, limit int) ([]QuestionSummary, error) {
	if strings.TrimSpace(term) == "" {
		return []QuestionSummary{}, nil
	}
	if limit <= 0 || limit > 10 {
		limit = 10
	}

	questions, err := s.questions.Search(ctx, term, limit)
	if err != nil {
		return nil, err
	}

	summaries := make([]QuestionSummary, 0, len(questions))
	for i := range questions {
		q := &questions[i]
		text := q.Text
		if len(text) > 100 {
			text = text[:100] + "..."
		}
		correct := 0
		for _, a := range q.Answers {
			if a.IsCorrect {
				correct++
			}
		}
		summaries = append(summaries, QuestionSummary{
			ID:           q.ID,
			Position:     q.Position,
			Text:         text,
			AnswersCount: len(q.Answers),
			CorrectCount: correct,
			CreatedAt:    q.CreatedAt,
		})
	}
	return summaries, nil
}

func validateQuestionInput(input QuestionInput) (string, []AnswerInput, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return "", nil, ErrInvalidInput
	}
	if len(text) > maxQuestionLength {
		return "", nil, ErrQuestionTooLong
	}

	posted := make([]AnswerInput, 0, len(input.Answers))
	hasCorrect := false
	for _, a := range input.Answers {
		trimmed := strings.TrimSpace(a.Text)
		if trimmed == "" {
			continue
		}
		if len(trimmed) > maxAnswerLength {
			return "", nil, ErrAnswerTooLong
		}
		if a.IsCorrect {
			hasCorrect = true
		}
		posted = append(posted, AnswerInput{ID: a.ID, Text: trimmed, IsCorrect: a.IsCorrect})
	}
	if len(posted) < 2 {
		return "", nil, ErrTooFewAnswers
	}
	if !hasCorrect {
		return "", nil, ErrNoCorrectAnswer
	}
	return text, posted, nil
}

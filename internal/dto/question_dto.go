package dto

import (
	"time"

	"pacho/internal/entity"
)

type AnswerItem struct {
	ID        string `json:"id,omitempty"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

type QuestionRequest struct {
	Text     string       `json:"text" validate:"required,max=500"`
	Position int          `json:"position" validate:"required,gt=0"`
	Answers  []AnswerItem `json:"answers" validate:"required,min=2,dive"`
}

type ChangePositionRequest struct {
	Position int `json:"position" validate:"required,gt=0"`
}

type AnswerResponse struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
	IsActive  bool   `json:"is_active"`
}

type QuestionResponse struct {
	ID        string           `json:"id"`
	Position  int              `json:"position"`
	Text      string           `json:"text"`
	CreatedAt time.Time        `json:"created_at"`
	Answers   []AnswerResponse `json:"answers"`
}

func QuestionResponseFromEntity(question *entity.Question) QuestionResponse {
	answers := make([]AnswerResponse, 0, len(question.Answers))
	for _, a := range question.Answers {
		answers = append(answers, AnswerResponse{
			ID:        a.ID.String(),
			Text:      a.Text,
			IsCorrect: a.IsCorrect,
			IsActive:  a.IsActive,
		})
	}
	return QuestionResponse{
		ID:        question.ID.String(),
		Position:  question.Position,
		Text:      question.Text,
		CreatedAt: question.CreatedAt,
		Answers:   answers,
	}
}

func QuestionResponsesFromEntities(questions []entity.Question) []QuestionResponse {
	responses := make([]QuestionResponse, 0, len(questions))
	for i := range questions {
		responses = append(responses, QuestionResponseFromEntity(&questions[i]))
	}
	return responses
}

package dto

import (
	"time"

	"pacho/internal/entity"
)

type TestAnswerResponse struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// TestQuestionResponse is the test-taker view of a question: active
// answers only, no correctness markers.
type TestQuestionResponse struct {
	ID       string               `json:"id"`
	Position int                  `json:"position"`
	Text     string               `json:"text"`
	Answers  []TestAnswerResponse `json:"answers"`
}

func TestQuestionResponsesFromEntities(questions []entity.Question) []TestQuestionResponse {
	responses := make([]TestQuestionResponse, 0, len(questions))
	for i := range questions {
		q := &questions[i]
		answers := make([]TestAnswerResponse, 0, len(q.Answers))
		for _, a := range q.Answers {
			answers = append(answers, TestAnswerResponse{ID: a.ID.String(), Text: a.Text})
		}
		responses = append(responses, TestQuestionResponse{
			ID:       q.ID.String(),
			Position: q.Position,
			Text:     q.Text,
			Answers:  answers,
		})
	}
	return responses
}

// SubmitTestRequest maps question id to the chosen answer id.
type SubmitTestRequest struct {
	Responses map[string]string `json:"responses" validate:"required,min=1"`
}

type SubmitTestResponse struct {
	Grade   float64 `json:"grade"`
	Correct int     `json:"correct"`
	Total   int     `json:"total"`
	State   string  `json:"state"`
}

type TestResultResponse struct {
	State      string     `json:"state"`
	Grade      float64    `json:"grade"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
}

package dto

import (
	"time"

	"pacho/internal/entity"
)

type RegisterExpertRequest struct {
	Email           string  `json:"email" validate:"required,email"`
	Password        string  `json:"password" validate:"required,min=8"`
	FirstName       string  `json:"first_name" validate:"required"`
	LastName        string  `json:"last_name" validate:"required"`
	Phone           string  `json:"phone" validate:"omitempty"`
	ExperienceType  string  `json:"experience_type" validate:"required,oneof=empirica tecnica profesional tradicion"`
	ExperienceYears float64 `json:"experience_years" validate:"gte=0,lte=80"`
}

type ExpertResponse struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	Email           string     `json:"email,omitempty"`
	FullName        string     `json:"full_name,omitempty"`
	ExperienceType  string     `json:"experience_type"`
	ExperienceYears float64    `json:"experience_years"`
	TestState       string     `json:"test_state"`
	TestGrade       *float64   `json:"test_grade,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	ConfidenceLevel *string    `json:"confidence_level,omitempty"`
	TreatmentsTotal int        `json:"treatments_total"`
	CreatedAt       time.Time  `json:"created_at"`
}

func ExpertResponseFromEntity(expert *entity.Expert) ExpertResponse {
	response := ExpertResponse{
		ID:              expert.ID.String(),
		UserID:          expert.UserID.String(),
		ExperienceType:  expert.ExperienceType,
		ExperienceYears: expert.ExperienceYears,
		TestState:       string(expert.TestState),
		TestGrade:       expert.TestGrade,
		ApprovedAt:      expert.ApprovedAt,
		ConfidenceLevel: expert.ConfidenceLevel,
		TreatmentsTotal: expert.TreatmentsTotal,
		CreatedAt:       expert.CreatedAt,
	}
	if expert.User.ID == expert.UserID {
		response.Email = expert.User.Email
		response.FullName = expert.User.FullName()
	}
	return response
}

func ExpertResponsesFromEntities(experts []entity.Expert) []ExpertResponse {
	responses := make([]ExpertResponse, 0, len(experts))
	for i := range experts {
		responses = append(responses, ExpertResponseFromEntity(&experts[i]))
	}
	return responses
}

type RecordedAnswerResponse struct {
	QuestionID   string    `json:"question_id"`
	QuestionText string    `json:"question_text,omitempty"`
	AnswerID     string    `json:"answer_id"`
	AnswerText   string    `json:"answer_text,omitempty"`
	IsCorrect    bool      `json:"is_correct"`
	AnsweredAt   time.Time `json:"answered_at"`
}

func RecordedAnswerResponsesFromEntities(answers []entity.ExpertAnswer) []RecordedAnswerResponse {
	responses := make([]RecordedAnswerResponse, 0, len(answers))
	for i := range answers {
		a := &answers[i]
		response := RecordedAnswerResponse{
			QuestionID: a.QuestionID.String(),
			AnswerID:   a.AnswerID.String(),
			AnsweredAt: a.AnsweredAt,
		}
		if a.Question != nil {
			response.QuestionText = a.Question.Text
		}
		if a.Answer != nil {
			response.AnswerText = a.Answer.Text
			response.IsCorrect = a.Answer.IsCorrect
		}
		responses = append(responses, response)
	}
	return responses
}

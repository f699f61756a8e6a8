package entity

import (
	"time"

	"github.com/google/uuid"
)

type Question struct {
	ID   uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Text string    `gorm:"type:varchar(500);not null"`

	// Position orders questions inside the test and is unique across the bank.
	Position int `gorm:"uniqueIndex;not null"`

	CreatedAt time.Time

	Answers []Answer
}

// Eligible reports whether the question can appear in an aptitude test:
// at least two active answers and exactly one active answer marked correct.
func (q *Question) Eligible() bool {
	active, correct := 0, 0
	for _, a := range q.Answers {
		if !a.IsActive {
			continue
		}
		active++
		if a.IsCorrect {
			correct++
		}
	}
	return active >= 2 && correct == 1
}

// ActiveAnswers returns the answers visible to a test taker, in stored order.
func (q *Question) ActiveAnswers() []Answer {
	answers := make([]Answer, 0, len(q.Answers))
	for _, a := range q.Answers {
		if a.IsActive {
			answers = append(answers, a)
		}
	}
	return answers
}

// CorrectAnswerID returns the id of the single active correct answer.
// Only meaningful on eligible questions.
func (q *Question) CorrectAnswerID() (uuid.UUID, bool) {
	for _, a := range q.Answers {
		if a.IsActive && a.IsCorrect {
			return a.ID, true
		}
	}
	return uuid.Nil, false
}

type Answer struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	QuestionID uuid.UUID `gorm:"type:uuid;not null;index"`
	Question   *Question `gorm:"constraint:OnDelete:CASCADE"`

	Text      string `gorm:"type:varchar(200);not null"`
	IsCorrect bool   `gorm:"not null;default:false"`

	// IsActive is the soft-delete marker: answers referenced by recorded
	// expert responses are deactivated instead of removed.
	IsActive bool `gorm:"not null;default:true"`

	CreatedAt time.Time
}

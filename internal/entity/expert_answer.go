package entity

import (
	"time"

	"github.com/google/uuid"
)

// ExpertAnswer records one expert's chosen answer for one question during
// the aptitude test. Rows are append-only and never updated or deleted;
// their existence blocks hard deletion of the answers they reference.
type ExpertAnswer struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	ExpertID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Expert     *Expert
	QuestionID uuid.UUID `gorm:"type:uuid;not null;index"`
	Question   *Question
	AnswerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Answer     *Answer

	AnsweredAt time.Time `gorm:"not null"`
}

package entity

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TestState tracks an expert's progression through the aptitude test:
// pendiente -> habilitado -> aprobado | reprobado.
type TestState string

const (
	TestStatePending  TestState = "pendiente"
	TestStateEnabled  TestState = "habilitado"
	TestStateApproved TestState = "aprobado"
	TestStateRejected TestState = "reprobado"
)

// ParseTestState normalizes case and surrounding whitespace and rejects
// anything outside the four known states.
func ParseTestState(value string) (TestState, error) {
	switch TestState(strings.ToLower(strings.TrimSpace(value))) {
	case TestStatePending:
		return TestStatePending, nil
	case TestStateEnabled:
		return TestStateEnabled, nil
	case TestStateApproved:
		return TestStateApproved, nil
	case TestStateRejected:
		return TestStateRejected, nil
	}
	return "", fmt.Errorf("entity: unknown test state %q", value)
}

func (s *TestState) Scan(value any) error {
	var raw string
	switch v := value.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("entity: cannot scan %T into TestState", value)
	}
	parsed, err := ParseTestState(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s TestState) Value() (driver.Value, error) {
	parsed, err := ParseTestState(string(s))
	if err != nil {
		return nil, err
	}
	return string(parsed), nil
}

const (
	ConfidenceNew      = "nuevo"
	ConfidenceBeginner = "principiante"
)

type Expert struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	User   User      `gorm:"constraint:OnDelete:CASCADE"`

	ExperienceType  string  `gorm:"type:varchar(50)"`
	ExperienceYears float64 `gorm:"type:numeric(4,1)"`

	TestState TestState `gorm:"type:varchar(20);not null;default:'pendiente'"`

	// TestGrade is non-nil exactly when TestState is aprobado or reprobado.
	TestGrade  *float64
	ApprovedAt *time.Time

	ConfidenceLevel *string `gorm:"type:varchar(30)"`
	PlatformGrade   *float64
	TreatmentsTotal int `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Answers []ExpertAnswer
}

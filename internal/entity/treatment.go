package entity

import (
	"time"

	"github.com/google/uuid"
)

type TreatmentEnvironment int

const (
	EnvironmentHydroponics TreatmentEnvironment = 1
	EnvironmentSubstrate   TreatmentEnvironment = 2
)

type Treatment struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	DiseaseID uuid.UUID `gorm:"type:uuid;not null;index"`
	Disease   *Disease
	ExpertID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Expert    *Expert

	TreatmentType       string  `gorm:"type:varchar(100);not null"`
	Description         string  `gorm:"type:varchar(1000);not null"`
	RecommendedProducts *string `gorm:"type:varchar(500)"`
	Frequency           *string `gorm:"type:varchar(200)"`
	Precautions         *string `gorm:"type:varchar(500)"`
	WeatherConditions   *string `gorm:"type:varchar(200)"`
	ImprovementDays     *int

	Environment TreatmentEnvironment `gorm:"not null"`
	IsActive    bool                 `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

type Disease struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	ScientificName string `gorm:"type:varchar(150);not null"`
	CommonName     string `gorm:"type:varchar(150);not null"`
	Description    string `gorm:"type:text"`
	Symptoms       string `gorm:"type:text"`
	Conditions     string `gorm:"type:text"`

	// ReferenceImage is an opaque handle into the platform image store;
	// encryption-at-rest happens there, not here.
	ReferenceImage *string `gorm:"type:varchar(255)"`

	IsActive        bool `gorm:"not null;default:true"`
	TreatmentsTotal int  `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

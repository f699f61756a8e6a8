package dto

import (
	"time"

	"pacho/internal/entity"
)

type DiseaseRequest struct {
	ScientificName string `json:"scientific_name" validate:"required,max=150"`
	CommonName     string `json:"common_name" validate:"required,max=150"`
	Description    string `json:"description" validate:"omitempty"`
	Symptoms       string `json:"symptoms" validate:"omitempty"`
	Conditions     string `json:"conditions" validate:"omitempty"`
	ReferenceImage string `json:"reference_image" validate:"omitempty,max=255"`
}

type DiseaseResponse struct {
	ID              string    `json:"id"`
	ScientificName  string    `json:"scientific_name"`
	CommonName      string    `json:"common_name"`
	Description     string    `json:"description"`
	Symptoms        string    `json:"symptoms"`
	Conditions      string    `json:"conditions"`
	ReferenceImage  *string   `json:"reference_image,omitempty"`
	IsActive        bool      `json:"is_active"`
	TreatmentsTotal int       `json:"treatments_total"`
	CreatedAt       time.Time `json:"created_at"`
}

func DiseaseResponseFromEntity(disease *entity.Disease) DiseaseResponse {
	return DiseaseResponse{
		ID:              disease.ID.String(),
		ScientificName:  disease.ScientificName,
		CommonName:      disease.CommonName,
		Description:     disease.Description,
		Symptoms:        disease.Symptoms,
		Conditions:      disease.Conditions,
		ReferenceImage:  disease.ReferenceImage,
		IsActive:        disease.IsActive,
		TreatmentsTotal: disease.TreatmentsTotal,
		CreatedAt:       disease.CreatedAt,
	}
}

func DiseaseResponsesFromEntities(diseases []entity.Disease) []DiseaseResponse {
	responses := make([]DiseaseResponse, 0, len(diseases))
	for i := range diseases {
		responses = append(responses, DiseaseResponseFromEntity(&diseases[i]))
	}
	return responses
}

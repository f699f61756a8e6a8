package dto

import (
	"time"

	"pacho/internal/entity"
)

type TreatmentRequest struct {
	DiseaseID           string `json:"disease_id" validate:"required,uuid"`
	TreatmentType       string `json:"treatment_type" validate:"required,max=100"`
	Description         string `json:"description" validate:"required,max=1000"`
	RecommendedProducts string `json:"recommended_products" validate:"omitempty,max=500"`
	Frequency           string `json:"frequency" validate:"omitempty,max=200"`
	Precautions         string `json:"precautions" validate:"omitempty,max=500"`
	WeatherConditions   string `json:"weather_conditions" validate:"omitempty,max=200"`
	ImprovementDays     *int   `json:"improvement_days" validate:"omitempty,gte=0"`
	Environment         int    `json:"environment" validate:"required,oneof=1 2"`
}

type TreatmentResponse struct {
	ID                  string    `json:"id"`
	DiseaseID           string    `json:"disease_id"`
	DiseaseName         string    `json:"disease_name,omitempty"`
	TreatmentType       string    `json:"treatment_type"`
	Description         string    `json:"description"`
	RecommendedProducts *string   `json:"recommended_products,omitempty"`
	Frequency           *string   `json:"frequency,omitempty"`
	Precautions         *string   `json:"precautions,omitempty"`
	WeatherConditions   *string   `json:"weather_conditions,omitempty"`
	ImprovementDays     *int      `json:"improvement_days,omitempty"`
	Environment         int       `json:"environment"`
	CreatedAt           time.Time `json:"created_at"`
}

func TreatmentResponseFromEntity(treatment *entity.Treatment) TreatmentResponse {
	response := TreatmentResponse{
		ID:                  treatment.ID.String(),
		DiseaseID:           treatment.DiseaseID.String(),
		TreatmentType:       treatment.TreatmentType,
		Description:         treatment.Description,
		RecommendedProducts: treatment.RecommendedProducts,
		Frequency:           treatment.Frequency,
		Precautions:         treatment.Precautions,
		WeatherConditions:   treatment.WeatherConditions,
		ImprovementDays:     treatment.ImprovementDays,
		Environment:         int(treatment.Environment),
		CreatedAt:           treatment.CreatedAt,
	}
	if treatment.Disease != nil {
		response.DiseaseName = treatment.Disease.CommonName
	}
	return response
}

func TreatmentResponsesFromEntities(treatments []entity.Treatment) []TreatmentResponse {
	responses := make([]TreatmentResponse, 0, len(treatments))
	for i := range treatments {
		responses = append(responses, TreatmentResponseFromEntity(&treatments[i]))
	}
	return responses
}

package service

import (
	"context"
	"strings"
	"time"

	"pacho/internal/entity"
	"pacho/internal/repository"

	"github.com/google/uuid"
)

type TreatmentInput struct {
	DiseaseID           uuid.UUID
	TreatmentType       string
	Description         string
	RecommendedProducts string
	Frequency           string
	Precautions         string
	WeatherConditions   string
	ImprovementDays     *int
	Environment         int
}

type TreatmentStats struct {
	Total     int `json:"total"`
	ThisMonth int `json:"this_month"`
	Types     int `json:"types"`
}

// TreatmentService is the workspace for approved, active experts.
type TreatmentService struct {
	uow        repository.UnitOfWork
	treatments repository.TreatmentRepository
	diseases   repository.DiseaseRepository
	experts    repository.ExpertRepository
	clock      Clock
}

func NewTreatmentService(
	uow repository.UnitOfWork,
	treatments repository.TreatmentRepository,
	diseases repository.DiseaseRepository,
	experts repository.ExpertRepository,
	clock Clock,
) *TreatmentService {
	return &TreatmentService{
		uow:        uow,
		treatments: treatments,
		diseases:   diseases,
		experts:    experts,
		clock:      clock,
	}
}

func (s *TreatmentService) expertForUser(ctx context.Context, userID uuid.UUID) (*entity.Expert, error) {
	expert, err := s.experts.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if expert == nil {
		return nil, ErrExpertNotFound
	}
	if expert.TestState != entity.TestStateApproved {
		return nil, ErrNotActiveExpert
	}
	return expert, nil
}

func (s *TreatmentService) ListMine(ctx context.Context, userID uuid.UUID) ([]entity.Treatment, *TreatmentStats, error) {
	expert, err := s.expertForUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	treatments, err := s.treatments.ListByExpert(ctx, expert.ID)
	if err != nil {
		return nil, nil, err
	}

	now := s.now()
	stats := &TreatmentStats{Total: len(treatments)}
	types := make(map[string]struct{})
	for i := range treatments {
		t := &treatments[i]
		if t.CreatedAt.Year() == now.Year() && t.CreatedAt.Month() == now.Month() {
			stats.ThisMonth++
		}
		types[t.TreatmentType] = struct{}{}
	}
	stats.Types = len(types)
	return treatments, stats, nil
}

func (s *TreatmentService) Create(ctx context.Context, userID uuid.UUID, input TreatmentInput) (*entity.Treatment, error) {
	expert, err := s.expertForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.TreatmentType) == "" || strings.TrimSpace(input.Description) == "" {
		return nil, ErrInvalidInput
	}
	env := entity.TreatmentEnvironment(input.Environment)
	if env != entity.EnvironmentHydroponics && env != entity.EnvironmentSubstrate {
		return nil, ErrInvalidInput
	}

	disease, err := s.diseases.FindByID(ctx, input.DiseaseID)
	if err != nil {
		return nil, err
	}
	if disease == nil || !disease.IsActive {
		return nil, ErrDiseaseNotFound
	}

	treatment := &entity.Treatment{
		DiseaseID:       disease.ID,
		ExpertID:        expert.ID,
		TreatmentType:   strings.TrimSpace(input.TreatmentType),
		Description:     input.Description,
		ImprovementDays: input.ImprovementDays,
		Environment:     env,
		IsActive:        true,
	}
	setOptional(&treatment.RecommendedProducts, input.RecommendedProducts)
	setOptional(&treatment.Frequency, input.Frequency)
	setOptional(&treatment.Precautions, input.Precautions)
	setOptional(&treatment.WeatherConditions, input.WeatherConditions)

	err = s.uow.Do(ctx, func(r repository.Registry) error {
		if err := r.Treatments().Create(ctx, treatment); err != nil {
			return err
		}
		if err := r.Diseases().IncrementTreatments(ctx, disease.ID); err != nil {
			return err
		}
		return r.Treatments().IncrementExpertTotal(ctx, expert.ID)
	})
	if err != nil {
		return nil, err
	}
	return treatment, nil
}

func (s *TreatmentService) Update(ctx context.Context, userID uuid.UUID, id uuid.UUID, input TreatmentInput) (*entity.Treatment, error) {
	expert, err := s.expertForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	treatment, err := s.treatments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if treatment == nil {
		return nil, ErrTreatmentNotFound
	}
	if treatment.ExpertID != expert.ID {
		return nil, ErrNotOwner
	}
	if strings.TrimSpace(input.TreatmentType) == "" || strings.TrimSpace(input.Description) == "" {
		return nil, ErrInvalidInput
	}

	treatment.TreatmentType = strings.TrimSpace(input.TreatmentType)
	treatment.Description = input.Description
	treatment.ImprovementDays = input.ImprovementDays
	setOptional(&treatment.RecommendedProducts, input.RecommendedProducts)
	setOptional(&treatment.Frequency, input.Frequency)
	setOptional(&treatment.Precautions, input.Precautions)
	setOptional(&treatment.WeatherConditions, input.WeatherConditions)

	if err := s.treatments.Update(ctx, treatment); err != nil {
		return nil, err
	}
	return treatment, nil
}

func (s *TreatmentService) Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	expert, err := s.expertForUser(ctx, userID)
	if err != nil {
		return err
	}

	treatment, err := s.treatments.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if treatment == nil {
		return ErrTreatmentNotFound
	}
	if treatment.ExpertID != expert.ID {
		return ErrNotOwner
	}
	return s.treatments.Delete(ctx, id)
}

func setOptional(field **string, value string) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		*field = nil
		return
	}
	*field = &trimmed
}

func (s *TreatmentService) now() time.Time {
	if s.clock == nil {
		return time.Now().UTC()
	}
	return s.clock.Now()
}

package service

import (
	"context"
	"strings"

	"pacho/internal/entity"
	"pacho/internal/repository"

	"github.com/google/uuid"
)

type DiseaseInput struct {
	ScientificName string
	CommonName     string
	Description    string
	Symptoms       string
	Conditions     string
	ReferenceImage string
}

type DiseaseService struct {
	diseases repository.DiseaseRepository
}

func NewDiseaseService(diseases repository.DiseaseRepository) *DiseaseService {
	return &DiseaseService{diseases: diseases}
}

func (s *DiseaseService) List(ctx context.Context) ([]entity.Disease, error) {
	return s.diseases.List(ctx)
}

func (s *DiseaseService) ListActive(ctx context.Context) ([]entity.Disease, error) {
	return s.diseases.ListActive(ctx)
}

func (s *DiseaseService) Get(ctx context.Context, id uuid.UUID) (*entity.Disease, error) {
	disease, err := s.diseases.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if disease == nil {
		return nil, ErrDiseaseNotFound
	}
	return disease, nil
}

func (s *DiseaseService) Create(ctx context.Context, input DiseaseInput) (*entity.Disease, error) {
	if strings.TrimSpace(input.ScientificName) == "" || strings.TrimSpace(input.CommonName) == "" {
		return nil, ErrInvalidInput
	}
	disease := &entity.Disease{
		ScientificName: strings.TrimSpace(input.ScientificName),
		CommonName:     strings.TrimSpace(input.CommonName),
		Description:    input.Description,
		Symptoms:       input.Symptoms,
		Conditions:     input.Conditions,
		IsActive:       true,
	}
	if input.ReferenceImage != "" {
		disease.ReferenceImage = &input.ReferenceImage
	}
	if err := s.diseases.Create(ctx, disease); err != nil {
		return nil, err
	}
	return disease, nil
}

func (s *DiseaseService) Update(ctx context.Context, id uuid.UUID, input DiseaseInput) (*entity.Disease, error) {
	disease, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.ScientificName) == "" || strings.TrimSpace(input.CommonName) == "" {
		return nil, ErrInvalidInput
	}

	disease.ScientificName = strings.TrimSpace(input.ScientificName)
	disease.CommonName = strings.TrimSpace(input.CommonName)
	disease.Description = input.Description
	disease.Symptoms = input.Symptoms
	disease.Conditions = input.Conditions
	if input.ReferenceImage != "" {
		disease.ReferenceImage = &input.ReferenceImage
	}
	if err := s.diseases.Update(ctx, disease); err != nil {
		return nil, err
	}
	return disease, nil
}

func (s *DiseaseService) ToggleActive(ctx context.Context, id uuid.UUID) (*entity.Disease, error) {
	disease, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	disease.IsActive = !disease.IsActive
	if err := s.diseases.Update(ctx, disease); err != nil {
		return nil, err
	}
	return disease, nil
}

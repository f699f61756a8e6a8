package repository

import (
	"context"
	"errors"

	"pacho/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TreatmentRepository interface {
	Create(ctx context.Context, treatment *entity.Treatment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Treatment, error)
	ListByExpert(ctx context.Context, expertID uuid.UUID) ([]entity.Treatment, error)
	Update(ctx context.Context, treatment *entity.Treatment) error
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementExpertTotal(ctx context.Context, expertID uuid.UUID) error
}

type treatmentRepository struct {
	db *gorm.DB
}

func NewTreatmentRepository(db *gorm.DB) TreatmentRepository {
	return &treatmentRepository{db: db}
}

func (r *treatmentRepository) Create(ctx context.Context, treatment *entity.Treatment) error {
	return r.db.WithContext(ctx).Create(treatment).Error
}

func (r *treatmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Treatment, error) {
	var treatment entity.Treatment
	err := r.db.WithContext(ctx).
		Preload("Disease").
		Where("id = ?", id).
		First(&treatment).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &treatment, err
}

func (r *treatmentRepository) ListByExpert(ctx context.Context, expertID uuid.UUID) ([]entity.Treatment, error) {
	var treatments []entity.Treatment
	err := r.db.WithContext(ctx).
		Preload("Disease").
		Where("expert_id = ?", expertID).
		Order("created_at DESC").
		Find(&treatments).Error
	return treatments, err
}

func (r *treatmentRepository) Update(ctx context.Context, treatment *entity.Treatment) error {
	return r.db.WithContext(ctx).Save(treatment).Error
}

func (r *treatmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Treatment{}, "id = ?", id).Error
}

func (r *treatmentRepository) IncrementExpertTotal(ctx context.Context, expertID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&entity.Expert{}).
		Where("id = ?", expertID).
		Update("treatments_total", gorm.Expr("treatments_total + 1")).
		Error
}

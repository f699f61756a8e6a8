package repository

import (
	"context"
	"errors"

	"pacho/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DiseaseRepository interface {
	Create(ctx context.Context, disease *entity.Disease) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Disease, error)
	List(ctx context.Context) ([]entity.Disease, error)
	ListActive(ctx context.Context) ([]entity.Disease, error)
	Update(ctx context.Context, disease *entity.Disease) error
	IncrementTreatments(ctx context.Context, id uuid.UUID) error
}

type diseaseRepository struct {
	db *gorm.DB
}

func NewDiseaseRepository(db *gorm.DB) DiseaseRepository {
	return &diseaseRepository{db: db}
}

func (r *diseaseRepository) Create(ctx context.Context, disease *entity.Disease) error {
	return r.db.WithContext(ctx).Create(disease).Error
}

func (r *diseaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Disease, error) {
	var disease entity.Disease
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&disease).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &disease, err
}

func (r *diseaseRepository) List(ctx context.Context) ([]entity.Disease, error) {
	var diseases []entity.Disease
	err := r.db.WithContext(ctx).Order("common_name").Find(&diseases).Error
	return diseases, err
}

func (r *diseaseRepository) ListActive(ctx context.Context) ([]entity.Disease, error) {
	var diseases []entity.Disease
	err := r.db.WithContext(ctx).
		Where("is_active = true").
		Order("common_name").
		Find(&diseases).Error
	return diseases, err
}

func (r *diseaseRepository) Update(ctx context.Context, disease *entity.Disease) error {
	return r.db.WithContext(ctx).Save(disease).Error
}

func (r *diseaseRepository) IncrementTreatments(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&entity.Disease{}).
		Where("id = ?", id).
		Update("treatments_total", gorm.Expr("treatments_total + 1")).
		Error
}

package repository

import (
	"context"
	"errors"

	"pacho/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ExpertRepository interface {
	Create(ctx context.Context, expert *entity.Expert) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Expert, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Expert, error)
	// FindByUserIDForUpdate takes a row lock so concurrent submissions of
	// the same test serialize on the expert row. Only valid inside a
	// transaction.
	FindByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (*entity.Expert, error)
	Update(ctx context.Context, expert *entity.Expert) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListPending(ctx context.Context) ([]entity.Expert, error)
	ListAll(ctx context.Context) ([]entity.Expert, error)
}

type expertRepository struct {
	db *gorm.DB
}

func NewExpertRepository(db *gorm.DB) ExpertRepository {
	return &expertRepository{db: db}
}

func (r *expertRepository) Create(ctx context.Context, expert *entity.Expert) error {
	return r.db.WithContext(ctx).Create(expert).Error
}

func (r *expertRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Expert, error) {
	var expert entity.Expert
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ?", id).
		First(&expert).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &expert, err
}

func (r *expertRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Expert, error) {
	var expert entity.Expert
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&expert).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &expert, err
}

func (r *expertRepository) FindByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (*entity.Expert, error) {
	var expert entity.Expert
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&expert).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &expert, err
}

func (r *expertRepository) Update(ctx context.Context, expert *entity.Expert) error {
	return r.db.WithContext(ctx).Save(expert).Error
}

func (r *expertRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Expert{}, "id = ?", id).Error
}

func (r *expertRepository) ListPending(ctx context.Context) ([]entity.Expert, error) {
	var experts []entity.Expert
	err := r.db.WithContext(ctx).
		Joins("User").
		Where(`"User".status = ? AND experts.test_state = ?`, entity.StatusPending, entity.TestStatePending).
		Order("experts.created_at").
		Find(&experts).Error
	return experts, err
}

func (r *expertRepository) ListAll(ctx context.Context) ([]entity.Expert, error) {
	var experts []entity.Expert
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at").
		Find(&experts).Error
	return experts, err
}

package repository

import (
	"context"
	"errors"
	"strings"

	"pacho/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	Create(ctx context.Context, question *entity.Question) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Question, error)
	// List returns every question with all of its answers (active and
	// inactive), ordered by position; answers come back in creation order.
	List(ctx context.Context) ([]entity.Question, error)
	Search(ctx context.Context, term string, limit int) ([]entity.Question, error)
	Update(ctx context.Context, question *entity.Question) error
	Delete(ctx context.Context, id uuid.UUID) error
	PositionTaken(ctx context.Context, position int, excludeID uuid.UUID) (bool, error)
	MaxPosition(ctx context.Context) (int, error)

	CreateAnswer(ctx context.Context, answer *entity.Answer) error
	UpdateAnswer(ctx context.Context, answer *entity.Answer) error
	DeleteAnswer(ctx context.Context, id uuid.UUID) error
	DeactivateAnswer(ctx context.Context, id uuid.UUID) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func answersInOrder(db *gorm.DB) *gorm.DB {
	return db.Order("answers.created_at, answers.id")
}

func (r *questionRepository) Create(ctx context.Context, question *entity.Question) error {
	return r.db.WithContext(ctx).Create(question).Error
}

func (r *questionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Question, error) {
	var question entity.Question
	err := r.db.WithContext(ctx).
		Preload("Answers", answersInOrder).
		Where("id = ?", id).
		First(&question).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &question, err
}

func (r *questionRepository) List(ctx context.Context) ([]entity.Question, error) {
	var questions []entity.Question
	err := r.db.WithContext(ctx).
		Preload("Answers", answersInOrder).
		Order("position").
		Find(&questions).Error
	return questions, err
}

func (r *questionRepository) Search(ctx context.Context, term string, limit int) ([]entity.Question, error) {
	var questions []entity.Question
	err := r.db.WithContext(ctx).
		Preload("Answers", answersInOrder).
		Where("text ILIKE ?", "%"+strings.TrimSpace(term)+"%").
		Order("position").
		Limit(limit).
		Find(&questions).Error
	return questions, err
}

func (r *questionRepository) Update(ctx context.Context, question *entity.Question) error {
	return r.db.WithContext(ctx).
		Model(&entity.Question{}).
		Where("id = ?", question.ID).
		Updates(map[string]any{
			"text":     question.Text,
			"position": question.Position,
		}).Error
}

func (r *questionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Question{}, "id = ?", id).Error
}

func (r *questionRepository) PositionTaken(ctx context.Context, position int, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&entity.Question{}).
		Where("position = ?", position)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *questionRepository) MaxPosition(ctx context.Context) (int, error) {
	var max *int
	err := r.db.WithContext(ctx).
		Model(&entity.Question{}).
		Select("max(position)").
		Scan(&max).Error
	if err != nil || max == nil {
		return 0, err
	}
	return *max, nil
}

func (r *questionRepository) CreateAnswer(ctx context.Context, answer *entity.Answer) error {
	return r.db.WithContext(ctx).Create(answer).Error
}

func (r *questionRepository) UpdateAnswer(ctx context.Context, answer *entity.Answer) error {
	return r.db.WithContext(ctx).Save(answer).Error
}

func (r *questionRepository) DeleteAnswer(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Answer{}, "id = ?", id).Error
}

func (r *questionRepository) DeactivateAnswer(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&entity.Answer{}).
		Where("id = ?", id).
		Update("is_active", false).
		Error
}

package repository

import (
	"context"

	"pacho/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExpertAnswerRepository interface {
	CreateBatch(ctx context.Context, answers []entity.ExpertAnswer) error
	ListByExpert(ctx context.Context, expertID uuid.UUID) ([]entity.ExpertAnswer, error)
	ExistsByExpert(ctx context.Context, expertID uuid.UUID) (bool, error)
	ExistsByAnswer(ctx context.Context, answerID uuid.UUID) (bool, error)
	ExistsByQuestion(ctx context.Context, questionID uuid.UUID) (bool, error)
}

type expertAnswerRepository struct {
	db *gorm.DB
}

func NewExpertAnswerRepository(db *gorm.DB) ExpertAnswerRepository {
	return &expertAnswerRepository{db: db}
}

func (r *expertAnswerRepository) CreateBatch(ctx context.Context, answers []entity.ExpertAnswer) error {
	if len(answers) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&answers).Error
}

func (r *expertAnswerRepository) ListByExpert(ctx context.Context, expertID uuid.UUID) ([]entity.ExpertAnswer, error) {
	var answers []entity.ExpertAnswer
	err := r.db.WithContext(ctx).
		Preload("Question").
		Preload("Answer").
		Where("expert_id = ?", expertID).
		Order("answered_at").
		Find(&answers).Error
	return answers, err
}

func (r *expertAnswerRepository) ExistsByExpert(ctx context.Context, expertID uuid.UUID) (bool, error) {
	return r.exists(ctx, "expert_id = ?", expertID)
}

func (r *expertAnswerRepository) ExistsByAnswer(ctx context.Context, answerID uuid.UUID) (bool, error) {
	return r.exists(ctx, "answer_id = ?", answerID)
}

func (r *expertAnswerRepository) ExistsByQuestion(ctx context.Context, questionID uuid.UUID) (bool, error) {
	return r.exists(ctx, "question_id = ?", questionID)
}

func (r *expertAnswerRepository) exists(ctx context.Context, query string, arg any) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.ExpertAnswer{}).
		Where(query, arg).
		Count(&count).Error
	return count > 0, err
}

package repository

import (
	"context"

	"gorm.io/gorm"
)

// Registry hands out repositories bound to one transaction.
type Registry interface {
	Users() UserRepository
	Experts() ExpertRepository
	Questions() QuestionRepository
	ExpertAnswers() ExpertAnswerRepository
	Diseases() DiseaseRepository
	Treatments() TreatmentRepository
}

// UnitOfWork runs fn atomically: if fn returns an error the whole set of
// writes rolls back and no partial state survives.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(r Registry) error) error
}

type gormRegistry struct {
	db *gorm.DB
}

func (r *gormRegistry) Users() UserRepository                 { return NewUserRepository(r.db) }
func (r *gormRegistry) Experts() ExpertRepository             { return NewExpertRepository(r.db) }
func (r *gormRegistry) Questions() QuestionRepository         { return NewQuestionRepository(r.db) }
func (r *gormRegistry) ExpertAnswers() ExpertAnswerRepository { return NewExpertAnswerRepository(r.db) }
func (r *gormRegistry) Diseases() DiseaseRepository           { return NewDiseaseRepository(r.db) }
func (r *gormRegistry) Treatments() TreatmentRepository       { return NewTreatmentRepository(r.db) }

type gormUnitOfWork struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &gormUnitOfWork{db: db}
}

func (u *gormUnitOfWork) Do(ctx context.Context, fn func(r Registry) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormRegistry{db: tx})
	})
}

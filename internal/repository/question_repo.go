package repository

import (
	"errors"

	"revhub/internal/model"

	"gorm.io/gorm"
)

// QuestionRepository serves both question tables and their answer tables;
// table arguments come from the question kind descriptors.
type QuestionRepository interface {
	Create(table string, question *model.Question) error
	FindByID(table, id string) (*model.Question, error)
	ListByTarget(table, targetID string, limit, offset int) ([]*model.Question, int64, error)
	// SetAcceptedAnswer writes the accepted answer reference; nil clears it.
	SetAcceptedAnswer(table, id string, answerID *string) error
	IncrementAnsCount(table, id string, delta int) error

	CreateAnswer(table string, answer *model.Answer) error
	FindAnswerByID(table, id string) (*model.Answer, error)
	ListAnswers(table, questionID string, limit, offset int) ([]*model.Answer, error)
	SetAnswerAccepted(table, id string, accepted bool) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(table string, question *model.Question) error {
	return r.db.Table(table).Create(question).Error
}

func (r *questionRepository) FindByID(table, id string) (*model.Question, error) {
	var question model.Question
	err := r.db.Table(table).Where("id = ?", id).Take(&question).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) ListByTarget(table, targetID string, limit, offset int) ([]*model.Question, int64, error) {
	var questions []*model.Question
	q := r.db.Table(table).Where("target_id = ? AND hidden = false", targetID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&questions).Error
	if err != nil {
		return nil, 0, err
	}
	return questions, total, nil
}

func (r *questionRepository) SetAcceptedAnswer(table, id string, answerID *string) error {
	return r.db.Table(table).
		Where("id = ?", id).
		UpdateColumn("accepted_ans_id", answerID).Error
}

func (r *questionRepository) IncrementAnsCount(table, id string, delta int) error {
	return r.db.Table(table).
		Where("id = ?", id).
		UpdateColumn("ans_count", gorm.Expr("ans_count + ?", delta)).Error
}

func (r *questionRepository) CreateAnswer(table string, answer *model.Answer) error {
	return r.db.Table(table).Create(answer).Error
}

func (r *questionRepository) FindAnswerByID(table, id string) (*model.Answer, error) {
	var answer model.Answer
	err := r.db.Table(table).Where("id = ?", id).Take(&answer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

func (r *questionRepository) ListAnswers(table, questionID string, limit, offset int) ([]*model.Answer, error) {
	var answers []*model.Answer
	err := r.db.Table(table).
		Where("question_id = ?", questionID).
		Order("accepted DESC, upvotes DESC, created_at ASC").
		Limit(limit).Offset(offset).
		Find(&answers).Error
	if err != nil {
		return nil, err
	}
	return answers, nil
}

func (r *questionRepository) SetAnswerAccepted(table, id string, accepted bool) error {
	return r.db.Table(table).
		Where("id = ?", id).
		UpdateColumn("accepted", accepted).Error
}

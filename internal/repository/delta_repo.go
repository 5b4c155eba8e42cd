package repository

import (
	"time"

	"revhub/internal/model"

	"gorm.io/gorm"
)

// DeltaRepository stores the acceptance delta triples (accepted /
// accepted-removed / accepted-changed) of each question family. The table
// argument comes from a QuestionKind descriptor. Every write in the
// acceptance flow is preceded by a find-or-delete scoped to the current
// sync window, so a transition never double-emits.
type DeltaRepository interface {
	Create(table, userID, questionID string) error
	// DeleteSince removes in-window rows for the pair and reports how many
	// existed.
	DeleteSince(table, userID, questionID string, since time.Time) (int64, error)
	ExistsSince(table, userID, questionID string, since time.Time) (bool, error)
}

type deltaRepository struct {
	db *gorm.DB
}

func NewDeltaRepository(db *gorm.DB) DeltaRepository {
	return &deltaRepository{db: db}
}

func (r *deltaRepository) Create(table, userID, questionID string) error {
	rec := &model.AcceptanceDelta{UserID: userID, QuestionID: questionID}
	return r.db.Table(table).Create(rec).Error
}

func (r *deltaRepository) DeleteSince(table, userID, questionID string, since time.Time) (int64, error) {
	res := r.db.Table(table).
		Where("user_id = ? AND question_id = ? AND created_at >= ?", userID, questionID, since).
		Delete(&model.AcceptanceDelta{})
	return res.RowsAffected, res.Error
}

func (r *deltaRepository) ExistsSince(table, userID, questionID string, since time.Time) (bool, error) {
	var count int64
	err := r.db.Table(table).
		Where("user_id = ? AND question_id = ? AND created_at >= ?", userID, questionID, since).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

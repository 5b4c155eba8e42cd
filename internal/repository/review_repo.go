package repository

import (
	"errors"

	"revhub/internal/model"

	"gorm.io/gorm"
)

// ReviewRepository serves both review tables; the table argument comes
// from the engagement kind descriptors.
type ReviewRepository interface {
	Create(table string, review *model.Review) error
	FindByID(table, id string) (*model.Review, error)
	ListByTarget(table, targetID string, limit, offset int) ([]*model.Review, int64, error)
	// ListTop returns visible reviews ordered by likes, for the local
	// recommendation fallback.
	ListTop(table string, limit int) ([]*model.Review, error)
	// SetHidden flips visibility with the ownership guard folded into the
	// update. Returns rows affected.
	SetHidden(table, id, ownerID string, hidden bool) (int64, error)
	IncrementComments(table, id string, delta int) error
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(table string, review *model.Review) error {
	return r.db.Table(table).Create(review).Error
}

func (r *reviewRepository) FindByID(table, id string) (*model.Review, error) {
	var review model.Review
	err := r.db.Table(table).Where("id = ?", id).Take(&review).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) ListByTarget(table, targetID string, limit, offset int) ([]*model.Review, int64, error) {
	var reviews []*model.Review
	q := r.db.Table(table).Where("target_id = ? AND hidden = false", targetID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

func (r *reviewRepository) ListTop(table string, limit int) ([]*model.Review, error) {
	var reviews []*model.Review
	err := r.db.Table(table).
		Where("hidden = false").
		Order("likes DESC, created_at DESC").
		Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) SetHidden(table, id, ownerID string, hidden bool) (int64, error) {
	res := r.db.Table(table).
		Where("id = ? AND user_id = ?", id, ownerID).
		UpdateColumn("hidden", hidden)
	return res.RowsAffected, res.Error
}

func (r *reviewRepository) IncrementComments(table, id string, delta int) error {
	return r.db.Table(table).
		Where("id = ?", id).
		UpdateColumn("comments_count", gorm.Expr("comments_count + ?", delta)).Error
}

package repository

import (
	"errors"

	"revhub/internal/model"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(table string, comment *model.Comment) error
	FindByID(table, id string) (*model.Comment, error)
	ListByReview(table, reviewID string, limit, offset int) ([]*model.Comment, error)
	ListReplies(table, parentID string) ([]*model.Comment, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(table string, comment *model.Comment) error {
	return r.db.Table(table).Create(comment).Error
}

func (r *commentRepository) FindByID(table, id string) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.Table(table).Where("id = ?", id).Take(&comment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListByReview(table, reviewID string, limit, offset int) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := r.db.Table(table).
		Where("review_id = ? AND parent_id IS NULL", reviewID).
		Order("created_at ASC").
		Limit(limit).Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) ListReplies(table, parentID string) ([]*model.Comment, error) {
	var replies []*model.Comment
	err := r.db.Table(table).
		Where("parent_id = ?", parentID).
		Order("created_at ASC").
		Find(&replies).Error
	if err != nil {
		return nil, err
	}
	return replies, nil
}

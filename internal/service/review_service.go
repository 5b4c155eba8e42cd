package service

import (
	"context"
	"strings"

	"revhub/internal/apperr"
	"revhub/internal/model"
	"revhub/internal/repository"
)

// ReviewService owns the review content flows for both the phone and
// company families. Table routing comes from the area argument; the
// like/unlike side lives in EngagementService.
type ReviewService interface {
	Create(ctx context.Context, area, userID, targetID, pros, cons string, rating int) (*model.Review, error)
	// Get returns a review; hidden reviews stay visible to their owner.
	Get(area, id, viewerID string) (*model.Review, error)
	ListByTarget(area, targetID string, limit, offset int) ([]*model.Review, int64, error)
	SetHidden(area, id, userID string, hidden bool) error
	CreateComment(area, userID, reviewID string, parentID *string, content string) (*model.Comment, error)
	ListComments(area, reviewID string, limit, offset int) ([]*model.Comment, error)
	ListReplies(area, commentID string) ([]*model.Comment, error)
}

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	commentRepo repository.CommentRepository
	catalogRepo repository.CatalogRepository
	ai          AIService
	notifier    NotificationService
}

var reviewTables = map[string]string{
	model.AreaPhone:   "phone_reviews",
	model.AreaCompany: "company_reviews",
}

var commentTables = map[string]string{
	model.AreaPhone:   "phone_review_comments",
	model.AreaCompany: "company_review_comments",
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	commentRepo repository.CommentRepository,
	catalogRepo repository.CatalogRepository,
	ai AIService,
	notifier NotificationService,
) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		commentRepo: commentRepo,
		catalogRepo: catalogRepo,
		ai:          ai,
		notifier:    notifier,
	}
}

func (s *reviewService) table(area string) (string, error) {
	t, ok := reviewTables[area]
	if !ok {
		return "", apperr.ErrBadRequest
	}
	return t, nil
}

func (s *reviewService) targetExists(area, targetID string) (bool, error) {
	if area == model.AreaPhone {
		phone, err := s.catalogRepo.FindPhone(targetID)
		return phone != nil, err
	}
	company, err := s.catalogRepo.FindCompany(targetID)
	return company != nil, err
}

func (s *reviewService) Create(ctx context.Context, area, userID, targetID, pros, cons string, rating int) (*model.Review, error) {
	table, err := s.table(area)
	if err != nil {
		return nil, err
	}

	exists, err := s.targetExists(area, targetID)
	if err != nil {
		return nil, apperr.Internal("review target guard", err)
	}
	if !exists {
		return nil, apperr.ErrTargetNotFound
	}

	review := &model.Review{
		UserID:   userID,
		TargetID: targetID,
		Pros:     pros,
		Cons:     cons,
		Rating:   rating,
		Grade:    s.ai.Grade(ctx, strings.TrimSpace(pros+" "+cons)),
	}
	if err := s.reviewRepo.Create(table, review); err != nil {
		return nil, apperr.Internal("review create", err)
	}

	if area == model.AreaPhone {
		// view/popularity bookkeeping is best-effort
		_ = s.catalogRepo.IncrementPhoneViews(targetID)
	}

	return review, nil
}

func (s *reviewService) Get(area, id, viewerID string) (*model.Review, error) {
	table, err := s.table(area)
	if err != nil {
		return nil, err
	}
	review, err := s.reviewRepo.FindByID(table, id)
	if err != nil {
		return nil, apperr.Internal("review read", err)
	}
	if review == nil {
		return nil, apperr.ErrTargetNotFound
	}
	if review.Hidden && review.UserID != viewerID {
		return nil, apperr.ErrTargetNotFound
	}
	return review, nil
}

func (s *reviewService) ListByTarget(area, targetID string, limit, offset int) ([]*model.Review, int64, error) {
	table, err := s.table(area)
	if err != nil {
		return nil, 0, err
	}
	reviews, total, err := s.reviewRepo.ListByTarget(table, targetID, limit, offset)
	if err != nil {
		return nil, 0, apperr.Internal("review list", err)
	}
	return reviews, total, nil
}

func (s *reviewService) SetHidden(area, id, userID string, hidden bool) error {
	table, err := s.table(area)
	if err != nil {
		return err
	}
	rows, err := s.reviewRepo.SetHidden(table, id, userID, hidden)
	if err != nil {
		return apperr.Internal("review visibility mutation", err)
	}
	if rows == 0 {
		// Missing review and foreign ownership look identical on purpose.
		return apperr.ErrTargetNotFound
	}
	return nil
}

func (s *reviewService) CreateComment(area, userID, reviewID string, parentID *string, content string) (*model.Comment, error) {
	table, err := s.table(area)
	if err != nil {
		return nil, err
	}

	review, err := s.reviewRepo.FindByID(table, reviewID)
	if err != nil {
		return nil, apperr.Internal("comment review guard", err)
	}
	if review == nil || review.Hidden {
		return nil, apperr.ErrTargetNotFound
	}

	if parentID != nil {
		parent, err := s.commentRepo.FindByID(commentTables[area], *parentID)
		if err != nil {
			return nil, apperr.Internal("comment parent guard", err)
		}
		if parent == nil || parent.ReviewID != reviewID {
			return nil, apperr.ErrTargetNotFound
		}
	}

	comment := &model.Comment{
		ReviewID: reviewID,
		UserID:   userID,
		ParentID: parentID,
		Content:  content,
	}
	if err := s.commentRepo.Create(commentTables[area], comment); err != nil {
		return nil, apperr.Internal("comment create", err)
	}

	if err := s.reviewRepo.IncrementComments(table, reviewID, 1); err != nil {
		return nil, apperr.Internal("comment counter mutation", err)
	}

	if s.notifier != nil {
		s.notifier.NotifyCommented(review.UserID, userID, area+"_review", reviewID)
	}

	return comment, nil
}

func (s *reviewService) ListComments(area, reviewID string, limit, offset int) ([]*model.Comment, error) {
	table, ok := commentTables[area]
	if !ok {
		return nil, apperr.ErrBadRequest
	}
	comments, err := s.commentRepo.ListByReview(table, reviewID, limit, offset)
	if err != nil {
		return nil, apperr.Internal("comment list", err)
	}
	return comments, nil
}

func (s *reviewService) ListReplies(area, commentID string) ([]*model.Comment, error) {
	table, ok := commentTables[area]
	if !ok {
		return nil, apperr.ErrBadRequest
	}
	replies, err := s.commentRepo.ListReplies(table, commentID)
	if err != nil {
		return nil, apperr.Internal("reply list", err)
	}
	return replies, nil
}

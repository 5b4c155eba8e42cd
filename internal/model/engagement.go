package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LikeRecord is the ledger row for one (user, target) pair. It is created
// on the first like and never deleted: like→unlike→like cycles flip the
// Unliked flag in place, so UpdatedAt doubles as the time of the latest
// state change. One table exists per likeable content family; queries scope
// this shape with Table(kind.LikeTable).
type LikeRecord struct {
	ID        string    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;index:,unique,composite:user_target" json:"user_id"`
	TargetID  string    `gorm:"type:uuid;not null;index:,unique,composite:user_target" json:"target_id"`
	Unliked   bool      `gorm:"default:false" json:"unliked"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (l *LikeRecord) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}

// UnlikeRecord is a discrete unlike event that happened after the current
// sync checkpoint while the like itself predates it. The external trainer
// scans these to see net-negative engagement inside the training window;
// a re-like inside the same window deletes the row again.
type UnlikeRecord struct {
	ID        string    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	TargetID  string    `gorm:"type:uuid;not null;index" json:"target_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (u *UnlikeRecord) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// EngagementKind is the capability descriptor that parameterizes the
// engagement ledger over the phone/company content families: which table
// holds the target, which column is its counter, which tables hold the
// like/unlike ledgers, and what a like of it is worth to the author.
type EngagementKind struct {
	Name          string
	TargetTable   string
	CounterColumn string
	LikeTable     string
	UnlikeTable   string
	PointsPerLike int
	PointsAction  string
}

// Point-log action labels.
const (
	ActionReviewLiked     = "review liked"
	ActionQuestionUpvoted = "question upvoted"
	ActionCommentLiked    = "comment liked"
	ActionAnswerLiked     = "answer liked"
	ActionAnswerAccepted  = "answer accepted"
	ActionAcceptRevoked   = "accepted answer revoked"
)

// Areas a content family belongs to.
const (
	AreaPhone   = "phone"
	AreaCompany = "company"
)

// Kinds returns the full engagement-kind registry wired to the configured
// point values. Keys are area + "_" + content type.
func Kinds(reviewPts, questionPts, commentPts, answerPts int) map[string]EngagementKind {
	return map[string]EngagementKind{
		"phone_review": {
			Name:          "phone_review",
			TargetTable:   "phone_reviews",
			CounterColumn: "likes",
			LikeTable:     "phone_review_likes",
			UnlikeTable:   "phone_review_unlikes",
			PointsPerLike: reviewPts,
			PointsAction:  ActionReviewLiked,
		},
		"company_review": {
			Name:          "company_review",
			TargetTable:   "company_reviews",
			CounterColumn: "likes",
			LikeTable:     "company_review_likes",
			UnlikeTable:   "company_review_unlikes",
			PointsPerLike: reviewPts,
			PointsAction:  ActionReviewLiked,
		},
		"phone_question": {
			Name:          "phone_question",
			TargetTable:   "phone_questions",
			CounterColumn: "upvotes",
			LikeTable:     "phone_question_likes",
			UnlikeTable:   "phone_question_unlikes",
			PointsPerLike: questionPts,
			PointsAction:  ActionQuestionUpvoted,
		},
		"company_question": {
			Name:          "company_question",
			TargetTable:   "company_questions",
			CounterColumn: "upvotes",
			LikeTable:     "company_question_likes",
			UnlikeTable:   "company_question_unlikes",
			PointsPerLike: questionPts,
			PointsAction:  ActionQuestionUpvoted,
		},
		"phone_answer": {
			Name:          "phone_answer",
			TargetTable:   "phone_answers",
			CounterColumn: "upvotes",
			LikeTable:     "phone_answer_likes",
			UnlikeTable:   "phone_answer_unlikes",
			PointsPerLike: answerPts,
			PointsAction:  ActionAnswerLiked,
		},
		"company_answer": {
			Name:          "company_answer",
			TargetTable:   "company_answers",
			CounterColumn: "upvotes",
			LikeTable:     "company_answer_likes",
			UnlikeTable:   "company_answer_unlikes",
			PointsPerLike: answerPts,
			PointsAction:  ActionAnswerLiked,
		},
		"phone_comment": {
			Name:          "phone_comment",
			TargetTable:   "phone_review_comments",
			CounterColumn: "likes",
			LikeTable:     "phone_comment_likes",
			UnlikeTable:   "phone_comment_unlikes",
			PointsPerLike: commentPts,
			PointsAction:  ActionCommentLiked,
		},
		"company_comment": {
			Name:          "company_comment",
			TargetTable:   "company_review_comments",
			CounterColumn: "likes",
			LikeTable:     "company_comment_likes",
			UnlikeTable:   "company_comment_unlikes",
			PointsPerLike: commentPts,
			PointsAction:  ActionCommentLiked,
		},
	}
}

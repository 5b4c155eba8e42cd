package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// The phone and company content families share row shapes. None of these
// models carry a TableName; every query scopes them with Table(...) using
// the kind descriptors in engagement.go, so a single implementation serves
// both families.

// Review is a user's review of a phone or a company. Grade is the score
// the AI collaborator (or the local heuristic fallback) assigned on create.
type Review struct {
	ID            string         `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID        string         `gorm:"type:uuid;not null;index" json:"user_id"`
	TargetID      string         `gorm:"type:uuid;not null;index" json:"target_id"` // phone or company id
	Pros          string         `gorm:"type:text" json:"pros"`
	Cons          string         `gorm:"type:text" json:"cons"`
	Rating        int            `gorm:"not null" json:"rating"`
	Grade         float64        `gorm:"default:0" json:"grade"`
	Likes         int            `gorm:"default:0" json:"likes"`
	CommentsCount int            `gorm:"default:0" json:"comments_count"`
	Views         int            `gorm:"default:0" json:"views"`
	Shares        int            `gorm:"default:0" json:"shares"`
	Hidden        bool           `gorm:"default:false" json:"hidden"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

// Question is a user's question about a phone or a company. AcceptedAnsID
// points at the currently accepted answer, if any.
type Question struct {
	ID            string         `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID        string         `gorm:"type:uuid;not null;index" json:"user_id"`
	TargetID      string         `gorm:"type:uuid;not null;index" json:"target_id"`
	Content       string         `gorm:"type:text;not null" json:"content"`
	Upvotes       int            `gorm:"default:0" json:"upvotes"`
	AnsCount      int            `gorm:"default:0" json:"ans_count"`
	AcceptedAnsID *string        `gorm:"type:uuid" json:"accepted_ans_id,omitempty"`
	Hidden        bool           `gorm:"default:false" json:"hidden"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.New().String()
	}
	return nil
}

type Answer struct {
	ID         string    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	QuestionID string    `gorm:"type:uuid;not null;index" json:"question_id"`
	UserID     string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	Upvotes    int       `gorm:"default:0" json:"upvotes"`
	Accepted   bool      `gorm:"default:false" json:"accepted"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (a *Answer) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

// Comment is a comment on a review. ParentID nests replies one level deep;
// replies share the comment like/unlike ledger of their family.
type Comment struct {
	ID        string    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ReviewID  string    `gorm:"type:uuid;not null;index" json:"review_id"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	ParentID  *string   `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Likes     int       `gorm:"default:0" json:"likes"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID       string `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name     string `gorm:"type:varchar(100);not null" json:"name"`
	Email    string `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Password string `gorm:"type:varchar(255);not null" json:"-"`
	Picture  string `gorm:"type:text" json:"picture,omitempty"`
	Role     string `gorm:"type:varchar(20);default:'user'" json:"role"`

	// Points carries two pools: a lifetime score and a competition score
	// that only accrues while a competition window is active.
	Points            int `gorm:"default:0" json:"points"`
	CompetitionPoints int `gorm:"default:0" json:"competition_points"`

	// RecommendationRound tracks which page of recommendations the AI
	// collaborator served this user last. Reset when the trainer reports
	// a new query time.
	RecommendationRound int `gorm:"default:0" json:"recommendation_round"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate hook to generate UUID
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

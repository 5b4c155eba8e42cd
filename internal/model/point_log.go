package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PointLog is an append-only record of every point balance change.
// Amount is positive for credits, negative for debits.
type PointLog struct {
	ID          string    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID      string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Amount      int       `gorm:"not null" json:"amount"`
	Action      string    `gorm:"type:varchar(100);not null" json:"action"`
	Competition bool      `gorm:"default:false" json:"competition"` // counted toward the competition pool too
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (p *PointLog) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

func (PointLog) TableName() string {
	return "point_logs"
}

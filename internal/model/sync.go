package model

import "time"

// SyncCheckpoint is the singleton "last query" document the external
// trainer advances after each successful data pull. Every
// before-or-after-the-window decision in the engagement and acceptance
// flows reads Date; only the trainer callback writes it.
type SyncCheckpoint struct {
	Name      string    `gorm:"type:varchar(50);primary_key" json:"name"`
	Date      time.Time `gorm:"not null" json:"date"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SyncCheckpoint) TableName() string {
	return "sync_checkpoints"
}

// CheckpointAILastQuery is the key of the one checkpoint row in use.
const CheckpointAILastQuery = "ai_last_query"

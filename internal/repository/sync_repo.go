package repository

import (
	"errors"
	"time"

	"revhub/internal/apperr"
	"revhub/internal/model"
	"revhub/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SyncCheckpointRepository holds the trainer's "last query" timestamp.
// Read by every engagement/acceptance flow, written only by the trainer
// callback, so the value is cached aggressively.
type SyncCheckpointRepository interface {
	// LastQuery returns the checkpoint date, or the Unix epoch when no
	// checkpoint has ever been reported.
	LastQuery() (time.Time, error)
	// Advance moves the checkpoint forward. A date at or before the
	// current one is rejected: the checkpoint is monotonic.
	Advance(date time.Time) error
}

type syncCheckpointRepository struct {
	db    *gorm.DB
	redis *util.RedisClient
}

const (
	checkpointCacheKey      = "sync:last_query"
	checkpointCacheDuration = time.Minute
)

func NewSyncCheckpointRepository(db *gorm.DB, redis *util.RedisClient) SyncCheckpointRepository {
	return &syncCheckpointRepository{db: db, redis: redis}
}

func (r *syncCheckpointRepository) LastQuery() (time.Time, error) {
	if r.redis != nil {
		if cached, err := r.redis.Get(checkpointCacheKey); err == nil {
			if t, err := time.Parse(time.RFC3339Nano, cached); err == nil {
				return t, nil
			}
		}
	}

	var cp model.SyncCheckpoint
	err := r.db.Where("name = ?", model.CheckpointAILastQuery).Take(&cp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// No trainer pull has ever happened: everything counts as
		// predating the window.
		return time.Unix(0, 0).UTC(), nil
	}
	if err != nil {
		return time.Time{}, err
	}

	if r.redis != nil {
		r.redis.Set(checkpointCacheKey, cp.Date.Format(time.RFC3339Nano), checkpointCacheDuration)
	}

	return cp.Date, nil
}

func (r *syncCheckpointRepository) Advance(date time.Time) error {
	current, err := r.LastQuery()
	if err != nil {
		return err
	}
	if !date.After(current) {
		return apperr.ErrStaleCheckpoint
	}

	cp := model.SyncCheckpoint{Name: model.CheckpointAILastQuery, Date: date}
	err = r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"date", "updated_at"}),
	}).Create(&cp).Error
	if err != nil {
		return err
	}

	if r.redis != nil {
		r.redis.Delete(checkpointCacheKey)
	}
	return nil
}

package repository

import (
	"errors"
	"fmt"

	"revhub/internal/model"
	"revhub/internal/util"

	"gorm.io/gorm"
)

// TargetRow is the projection of a likeable entity the engagement flows
// need: identity, author, and the denormalized counter.
type TargetRow struct {
	ID      string
	UserID  string
	Counter int
}

// TargetRepository is the counter/points mutator's storage half. Counter
// mutation and the ownership guard are a single conditional UPDATE, so the
// guard cannot be raced between check and write.
type TargetRepository interface {
	Find(kind model.EngagementKind, targetID string) (*TargetRow, error)
	// AdjustCounter adds delta to the kind's counter column, excluding
	// rows owned by excludeUserID. Returns the number of rows affected;
	// zero means the target is missing or owned by the actor.
	AdjustCounter(kind model.EngagementKind, targetID, excludeUserID string, delta int) (int64, error)
	// CounterValue reads the counter back after a mutation.
	CounterValue(kind model.EngagementKind, targetID string) (int, error)
}

type targetRepository struct {
	db    *gorm.DB
	redis *util.RedisClient
}

const (
	popularityKeyPrefix = "popular:"
	counterCachePrefix  = "counter:"
)

func NewTargetRepository(db *gorm.DB, redis *util.RedisClient) TargetRepository {
	return &targetRepository{db: db, redis: redis}
}

func (r *targetRepository) Find(kind model.EngagementKind, targetID string) (*TargetRow, error) {
	var row TargetRow
	err := r.db.Table(kind.TargetTable).
		Select(fmt.Sprintf("id, user_id, %s as counter", kind.CounterColumn)).
		Where("id = ?", targetID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *targetRepository) AdjustCounter(kind model.EngagementKind, targetID, excludeUserID string, delta int) (int64, error) {
	res := r.db.Table(kind.TargetTable).
		Where("id = ? AND user_id <> ?", targetID, excludeUserID).
		UpdateColumn(kind.CounterColumn, gorm.Expr(kind.CounterColumn+" + ?", delta))
	if res.Error != nil {
		return 0, res.Error
	}

	if res.RowsAffected > 0 && r.redis != nil {
		r.redis.Delete(counterCachePrefix + kind.Name + ":" + targetID)
		// popularity ranking feeds the recommendation fallback
		r.redis.ZIncrBy(popularityKeyPrefix+kind.TargetTable, float64(delta), targetID)
	}

	return res.RowsAffected, nil
}

func (r *targetRepository) CounterValue(kind model.EngagementKind, targetID string) (int, error) {
	var row TargetRow
	err := r.db.Table(kind.TargetTable).
		Select(fmt.Sprintf("id, user_id, %s as counter", kind.CounterColumn)).
		Where("id = ?", targetID).
		Take(&row).Error
	if err != nil {
		return 0, err
	}
	return row.Counter, nil
}

package repository

import (
	"errors"
	"time"

	"revhub/internal/model"
	"revhub/internal/util"

	"gorm.io/gorm"
)

// LedgerRepository stores the per-(user, target) like records and the
// discrete unlike events of one content family. The kind descriptor picks
// the table pair; the row shapes are shared.
type LedgerRepository interface {
	FindByUserAndTarget(kind model.EngagementKind, userID, targetID string) (*model.LikeRecord, error)
	Create(kind model.EngagementKind, rec *model.LikeRecord) error
	// SetUnliked flips the unliked flag and advances updated_at.
	SetUnliked(kind model.EngagementKind, id string, unliked bool) error
	CreateUnlike(kind model.EngagementKind, userID, targetID string) error
	// DeleteUnlikesSince removes unlike events for the pair recorded at or
	// after since, returning how many were removed.
	DeleteUnlikesSince(kind model.EngagementKind, userID, targetID string, since time.Time) (int64, error)
}

type ledgerRepository struct {
	db    *gorm.DB
	redis *util.RedisClient
}

const ledgerCachePrefix = "ledger:"

func NewLedgerRepository(db *gorm.DB, redis *util.RedisClient) LedgerRepository {
	return &ledgerRepository{db: db, redis: redis}
}

func (r *ledgerRepository) FindByUserAndTarget(kind model.EngagementKind, userID, targetID string) (*model.LikeRecord, error) {
	var rec model.LikeRecord
	err := r.db.Table(kind.LikeTable).
		Where("user_id = ? AND target_id = ?", userID, targetID).
		Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *ledgerRepository) Create(kind model.EngagementKind, rec *model.LikeRecord) error {
	if err := r.db.Table(kind.LikeTable).Create(rec).Error; err != nil {
		return err
	}
	r.invalidate(kind, rec.TargetID)
	return nil
}

func (r *ledgerRepository) SetUnliked(kind model.EngagementKind, id string, unliked bool) error {
	return r.db.Table(kind.LikeTable).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"unliked":    unliked,
			"updated_at": time.Now(),
		}).Error
}

func (r *ledgerRepository) CreateUnlike(kind model.EngagementKind, userID, targetID string) error {
	rec := &model.UnlikeRecord{UserID: userID, TargetID: targetID}
	return r.db.Table(kind.UnlikeTable).Create(rec).Error
}

func (r *ledgerRepository) DeleteUnlikesSince(kind model.EngagementKind, userID, targetID string, since time.Time) (int64, error) {
	res := r.db.Table(kind.UnlikeTable).
		Where("user_id = ? AND target_id = ? AND created_at >= ?", userID, targetID, since).
		Delete(&model.UnlikeRecord{})
	return res.RowsAffected, res.Error
}

func (r *ledgerRepository) invalidate(kind model.EngagementKind, targetID string) {
	if r.redis == nil {
		return
	}
	r.redis.Delete(ledgerCachePrefix + kind.Name + ":" + targetID)
}

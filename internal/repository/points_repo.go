package repository

import (
	"revhub/internal/model"

	"gorm.io/gorm"
)

// PointsRepository applies a point change to a user: one log row plus the
// balance update(s), committed together. The competition pool is touched
// only when the award is flagged as in-competition.
type PointsRepository interface {
	Award(userID string, amount int, action string, competition bool) error
}

type pointsRepository struct {
	db *gorm.DB
}

func NewPointsRepository(db *gorm.DB) PointsRepository {
	return &pointsRepository{db: db}
}

func (r *pointsRepository) Award(userID string, amount int, action string, competition bool) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		log := model.PointLog{
			UserID:      userID,
			Amount:      amount,
			Action:      action,
			Competition: competition,
		}
		if err := tx.Create(&log).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{
			"points": gorm.Expr("points + ?", amount),
		}
		if competition {
			updates["competition_points"] = gorm.Expr("competition_points + ?", amount)
		}

		return tx.Model(&model.User{}).
			Where("id = ?", userID).
			UpdateColumns(updates).Error
	})
}

package repository

import (
	"errors"

	"revhub/internal/model"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *model.User) error
	FindByID(id string) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	UpdatePicture(id, url string) error
	// IncrementRecommendationRound bumps the user's round and returns the
	// value the next recommendation request should use.
	IncrementRecommendationRound(id string) (int, error)
	// ResetRecommendationRounds zeroes every user's round. Called when the
	// trainer reports a new query time.
	ResetRecommendationRounds() error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) FindByID(id string) (*model.User, error) {
	var user model.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdatePicture(id, url string) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).Update("picture", url).Error
}

func (r *userRepository) IncrementRecommendationRound(id string) (int, error) {
	err := r.db.Model(&model.User{}).
		Where("id = ?", id).
		UpdateColumn("recommendation_round", gorm.Expr("recommendation_round + 1")).Error
	if err != nil {
		return 0, err
	}
	var user model.User
	if err := r.db.Select("recommendation_round").Where("id = ?", id).Take(&user).Error; err != nil {
		return 0, err
	}
	return user.RecommendationRound, nil
}

func (r *userRepository) ResetRecommendationRounds() error {
	return r.db.Model(&model.User{}).
		Where("recommendation_round <> 0").
		UpdateColumn("recommendation_round", 0).Error
}

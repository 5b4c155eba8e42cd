package repository

import (
	"errors"

	"revhub/internal/model"

	"gorm.io/gorm"
)

// CatalogRepository reads the phone/company catalog the scraper job
// populates. The ingestion side is out of scope here.
type CatalogRepository interface {
	FindPhone(id string) (*model.Phone, error)
	FindCompany(id string) (*model.Company, error)
	ListPhones(limit, offset int) ([]*model.Phone, error)
	IncrementPhoneViews(id string) error
	UpdateCompanyLogo(id, url string) error
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) FindPhone(id string) (*model.Phone, error) {
	var phone model.Phone
	err := r.db.Preload("Company").Where("id = ?", id).First(&phone).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &phone, nil
}

func (r *catalogRepository) FindCompany(id string) (*model.Company, error) {
	var company model.Company
	err := r.db.Where("id = ?", id).First(&company).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *catalogRepository) ListPhones(limit, offset int) ([]*model.Phone, error) {
	var phones []*model.Phone
	err := r.db.Preload("Company").
		Order("views DESC").
		Limit(limit).Offset(offset).
		Find(&phones).Error
	if err != nil {
		return nil, err
	}
	return phones, nil
}

func (r *catalogRepository) IncrementPhoneViews(id string) error {
	return r.db.Model(&model.Phone{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

func (r *catalogRepository) UpdateCompanyLogo(id, url string) error {
	return r.db.Model(&model.Company{}).Where("id = ?", id).Update("logo", url).Error
}

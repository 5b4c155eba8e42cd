package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Phone is a catalog entry ingested by the scraper job. Only the
// fields the review/question flows read are modeled here.
type Phone struct {
	ID        string    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null;index" json:"name"`
	CompanyID *string   `gorm:"type:uuid;index" json:"company_id,omitempty"`
	Picture   string    `gorm:"type:text" json:"picture,omitempty"`
	Views     int       `gorm:"default:0" json:"views"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Company *Company `gorm:"foreignKey:CompanyID;references:ID" json:"company,omitempty"`
}

func (p *Phone) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

func (Phone) TableName() string {
	return "phones"
}

type Company struct {
	ID        string    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	Logo      string    `gorm:"type:text" json:"logo,omitempty"`
	Views     int       `gorm:"default:0" json:"views"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

func (Company) TableName() string {
	return "companies"
}

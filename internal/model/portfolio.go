package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PortfolioItem is a showcased client project.
type PortfolioItem struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Slug        string    `json:"slug" gorm:"size:255;not null;index"`
	Client      string    `json:"client" gorm:"size:255"`
	ProjectDate string    `json:"project_date" gorm:"size:40"`
	Description string    `json:"description" gorm:"type:text"`
	Images      []string  `json:"images" gorm:"type:json;serializer:json"`
	Tags        []string  `json:"tags" gorm:"type:json;serializer:json"`
	Featured    bool      `json:"featured" gorm:"default:false;index"`
	Published   bool      `json:"published" gorm:"not null;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for PortfolioItem.
func (PortfolioItem) TableName() string {
	return "portfolio_items"
}

// BeforeCreate sets UUID before creating the record.
func (p *PortfolioItem) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

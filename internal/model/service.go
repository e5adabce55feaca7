package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service is a product/service offered in the catalog. Tags[0] conventionally
// holds the "{letter}. {title}" string of the owning category.
type Service struct {
	ID               uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Title            string    `json:"title" gorm:"size:255;not null"`
	Slug             string    `json:"slug" gorm:"size:255;not null;index"`
	ShortDescription string    `json:"short_description" gorm:"type:text"`
	LongDescription  string    `json:"long_description" gorm:"type:text"`
	PriceRange       string    `json:"price_range" gorm:"size:120"`
	IconName         string    `json:"icon_name" gorm:"size:80"`
	ImageURL         string    `json:"image_url" gorm:"type:text"`
	Published        bool      `json:"published" gorm:"not null;index"`
	SortOrder        int       `json:"sort_order" gorm:"not null;default:0;index"`
	Tags             []string  `json:"tags" gorm:"type:json;serializer:json"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

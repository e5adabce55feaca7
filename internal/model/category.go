package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServiceCategory groups services under a letter (A, B, C...). Membership of a
// service is expressed by its tags, not by a foreign key.
type ServiceCategory struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Letter      string    `json:"letter" gorm:"size:4;not null;index"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text"`
	ImageURL    string    `json:"image_url" gorm:"type:text"`
	SortOrder   int       `json:"sort_order" gorm:"not null;default:0;index"`
	Published   bool      `json:"published" gorm:"not null;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for ServiceCategory.
func (ServiceCategory) TableName() string {
	return "service_categories"
}

// BeforeCreate sets UUID before creating the record.
func (c *ServiceCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

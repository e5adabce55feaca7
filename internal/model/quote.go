package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QuoteStatus represents where a quote request is in its lifecycle.
type QuoteStatus string

const (
	QuoteStatusNew       QuoteStatus = "new"
	QuoteStatusResponded QuoteStatus = "responded"
	QuoteStatusQuoted    QuoteStatus = "quoted"
	QuoteStatusClosed    QuoteStatus = "closed"
)

// QuoteStatuses lists every status in lifecycle order.
var QuoteStatuses = []QuoteStatus{
	QuoteStatusNew,
	QuoteStatusResponded,
	QuoteStatusQuoted,
	QuoteStatusClosed,
}

// Valid reports whether s is a known status.
func (s QuoteStatus) Valid() bool {
	for _, known := range QuoteStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// QuoteRequest is a customer inquiry submitted through the public form.
type QuoteRequest struct {
	ID               uuid.UUID   `json:"id" gorm:"type:char(36);primaryKey"`
	Name             string      `json:"name" gorm:"size:100;not null"`
	Email            string      `json:"email" gorm:"size:255;not null;index"`
	Phone            string      `json:"phone" gorm:"size:20;not null"`
	Company          string      `json:"company,omitempty" gorm:"size:100"`
	Services         []string    `json:"services" gorm:"type:json;serializer:json"`
	Quantity         string      `json:"quantity,omitempty" gorm:"size:100"`
	Width            string      `json:"width,omitempty" gorm:"size:50"`
	Height           string      `json:"height,omitempty" gorm:"size:50"`
	DeliveryLocation string      `json:"delivery_location" gorm:"size:200;not null"`
	Deadline         string      `json:"deadline,omitempty" gorm:"size:50"`
	Message          string      `json:"message" gorm:"type:text;not null"`
	Source           string      `json:"source,omitempty" gorm:"size:100"`
	Status           QuoteStatus `json:"status" gorm:"type:varchar(20);not null;default:'new';index"`
	InternalNotes    string      `json:"internal_notes,omitempty" gorm:"type:text"`
	CreatedAt        time.Time   `json:"created_at" gorm:"index"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (q *QuoteRequest) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

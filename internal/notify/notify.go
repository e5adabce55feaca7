// Package notify tells the business about new quote requests. Delivery is
// best effort: callers hand a payload to a Dispatcher and never see the
// outcome, which is only logged.
package notify

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"riseadvertising/internal/model"
)

// QuotePayload is the JSON body sent for a new quote. It mirrors QuoteRequest.
type QuotePayload struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	Company          string    `json:"company,omitempty"`
	Services         []string  `json:"services"`
	Quantity         string    `json:"quantity,omitempty"`
	Width            string    `json:"width,omitempty"`
	Height           string    `json:"height,omitempty"`
	DeliveryLocation string    `json:"delivery_location"`
	Deadline         string    `json:"deadline,omitempty"`
	Message          string    `json:"message"`
	Source           string    `json:"source,omitempty"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

// PayloadFromQuote copies the stored quote into a notification payload.
func PayloadFromQuote(q *model.QuoteRequest) QuotePayload {
	services := make([]string, len(q.Services))
	copy(services, q.Services)
	return QuotePayload{
		ID:               q.ID,
		Name:             q.Name,
		Email:            q.Email,
		Phone:            q.Phone,
		Company:          q.Company,
		Services:         services,
		Quantity:         q.Quantity,
		Width:            q.Width,
		Height:           q.Height,
		DeliveryLocation: q.DeliveryLocation,
		Deadline:         q.Deadline,
		Message:          q.Message,
		Source:           q.Source,
		Status:           string(q.Status),
		CreatedAt:        q.CreatedAt,
	}
}

// QuoteNotifier delivers a new-quote notification. Only overall success or
// failure is observable.
type QuoteNotifier interface {
	NotifyNewQuote(ctx context.Context, p QuotePayload) error
}

// Multi fans a payload out to every notifier and joins their errors.
type Multi []QuoteNotifier

func (m Multi) NotifyNewQuote(ctx context.Context, p QuotePayload) error {
	var errs []error
	for _, n := range m {
		if err := n.NotifyNewQuote(ctx, p); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

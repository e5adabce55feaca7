package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"riseadvertising/internal/model"
	"riseadvertising/internal/notify"
	"riseadvertising/internal/repository"
	"riseadvertising/internal/validation"
)

// QuoteInput is the public quote request form.
type QuoteInput struct {
	Name             string   `json:"name" validate:"min=2,max=100"`
	Email            string   `json:"email" validate:"required,email,max=255"`
	Phone            string   `json:"phone" validate:"min=10,max=20"`
	Company          string   `json:"company" validate:"max=100"`
	Services         []string `json:"services" validate:"min=1,dive,quoteservice"`
	Quantity         string   `json:"quantity"`
	Width            string   `json:"width"`
	Height           string   `json:"height"`
	DeliveryLocation string   `json:"delivery_location" validate:"min=2,max=200"`
	Deadline         string   `json:"deadline"`
	Message          string   `json:"message" validate:"min=10,max=1000"`
	Source           string   `json:"source"`
}

func (in *QuoteInput) trim() {
	for _, f := range []*string{
		&in.Name, &in.Email, &in.Phone, &in.Company, &in.Quantity, &in.Width,
		&in.Height, &in.DeliveryLocation, &in.Deadline, &in.Message, &in.Source,
	} {
		*f = strings.TrimSpace(*f)
	}
	services := make([]string, 0, len(in.Services))
	for _, s := range in.Services {
		if s = strings.TrimSpace(s); s != "" {
			services = append(services, s)
		}
	}
	in.Services = services
}

// NotificationDispatcher hands a payload off for asynchronous delivery.
type NotificationDispatcher interface {
	Dispatch(p notify.QuotePayload)
}

// QuoteService accepts quote requests from the public site.
type QuoteService interface {
	Validate(in QuoteInput) error
	Submit(ctx context.Context, in QuoteInput) (*model.QuoteRequest, error)
}

type quoteService struct {
	repo       repository.QuoteRepository
	dispatcher NotificationDispatcher
	validate   *validator.Validate
}

// NewQuoteService creates a quote service that notifies through dispatcher.
func NewQuoteService(repo repository.QuoteRepository, dispatcher NotificationDispatcher) QuoteService {
	return &quoteService{
		repo:       repo,
		dispatcher: dispatcher,
		validate:   validation.New(),
	}
}

// Validate trims the input and checks it against the form rules.
func (s *quoteService) Validate(in QuoteInput) error {
	in.trim()
	return validation.Struct(s.validate, in)
}

// Submit stores the request with status "new" and then schedules the
// notification. The quote counts as submitted once the insert succeeds;
// notification failures are only logged.
func (s *quoteService) Submit(ctx context.Context, in QuoteInput) (*model.QuoteRequest, error) {
	in.trim()
	if err := validation.Struct(s.validate, in); err != nil {
		return nil, err
	}

	quote := &model.QuoteRequest{
		Name:             in.Name,
		Email:            in.Email,
		Phone:            in.Phone,
		Company:          in.Company,
		Services:         in.Services,
		Quantity:         in.Quantity,
		Width:            in.Width,
		Height:           in.Height,
		DeliveryLocation: in.DeliveryLocation,
		Deadline:         in.Deadline,
		Message:          in.Message,
		Source:           in.Source,
		Status:           model.QuoteStatusNew,
	}

	if err := s.repo.Create(ctx, quote); err != nil {
		return nil, fmt.Errorf("create quote request: %w", err)
	}

	log.Info().Str("quote_id", quote.ID.String()).Strs("services", quote.Services).Msg("quote request received")
	s.dispatcher.Dispatch(notify.PayloadFromQuote(quote))

	return quote, nil
}

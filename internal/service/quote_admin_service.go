package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	apperrors "riseadvertising/internal/errors"
	"riseadvertising/internal/export"
	"riseadvertising/internal/model"
	"riseadvertising/internal/repository"
)

// QuoteUpdate carries the admin-editable quote fields. Nil leaves a field as is.
type QuoteUpdate struct {
	Status        *model.QuoteStatus `json:"status"`
	InternalNotes *string            `json:"internal_notes"`
}

// Dashboard holds the counts shown on the admin home screen.
type Dashboard struct {
	Services   int64                       `json:"services"`
	Categories int64                       `json:"categories"`
	Portfolio  int64                       `json:"portfolio"`
	Quotes     map[model.QuoteStatus]int64 `json:"quotes"`
	NewQuotes  int64                       `json:"new_quotes"`
}

// QuoteAdminService lets admins triage quote requests. Quotes are never deleted.
type QuoteAdminService interface {
	List(ctx context.Context, status string) ([]model.QuoteRequest, error)
	Get(ctx context.Context, id uuid.UUID) (*model.QuoteRequest, error)
	Update(ctx context.Context, id uuid.UUID, upd QuoteUpdate) (*model.QuoteRequest, error)
	Dashboard(ctx context.Context) (*Dashboard, error)
	ExportCSV(ctx context.Context, w io.Writer, status string) error
	ExportXLSX(ctx context.Context, w io.Writer, status string) error
}

type quoteAdminService struct {
	quoteRepo     repository.QuoteRepository
	serviceRepo   repository.ServiceRepository
	categoryRepo  repository.CategoryRepository
	portfolioRepo repository.PortfolioRepository
}

// NewQuoteAdminService creates the quote admin service.
func NewQuoteAdminService(
	quoteRepo repository.QuoteRepository,
	serviceRepo repository.ServiceRepository,
	categoryRepo repository.CategoryRepository,
	portfolioRepo repository.PortfolioRepository,
) QuoteAdminService {
	return &quoteAdminService{
		quoteRepo:     quoteRepo,
		serviceRepo:   serviceRepo,
		categoryRepo:  categoryRepo,
		portfolioRepo: portfolioRepo,
	}
}

// List returns quotes newest first, optionally only those with status.
func (s *quoteAdminService) List(ctx context.Context, status string) ([]model.QuoteRequest, error) {
	status = strings.TrimSpace(status)
	if status != "" && !model.QuoteStatus(status).Valid() {
		return nil, apperrors.ErrInvalidStatus
	}
	quotes, err := s.quoteRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	if status == "" {
		return quotes, nil
	}
	out := make([]model.QuoteRequest, 0, len(quotes))
	for _, q := range quotes {
		if string(q.Status) == status {
			out = append(out, q)
		}
	}
	return out, nil
}

func (s *quoteAdminService) Get(ctx context.Context, id uuid.UUID) (*model.QuoteRequest, error) {
	q, err := s.quoteRepo.FindByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, apperrors.ErrQuoteNotFound)
	}
	return q, nil
}

func (s *quoteAdminService) Update(ctx context.Context, id uuid.UUID, upd QuoteUpdate) (*model.QuoteRequest, error) {
	if upd.Status != nil && !upd.Status.Valid() {
		return nil, apperrors.ErrInvalidStatus
	}
	q, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if upd.Status != nil {
		fields["status"] = *upd.Status
		q.Status = *upd.Status
	}
	if upd.InternalNotes != nil {
		fields["internal_notes"] = *upd.InternalNotes
		q.InternalNotes = *upd.InternalNotes
	}
	if len(fields) == 0 {
		return q, nil
	}
	if err := s.quoteRepo.UpdateFields(ctx, id, fields); err != nil {
		return nil, fmt.Errorf("update quote: %w", err)
	}
	return q, nil
}

func (s *quoteAdminService) Dashboard(ctx context.Context) (*Dashboard, error) {
	d := &Dashboard{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.Services, err = s.serviceRepo.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		d.Categories, err = s.categoryRepo.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		d.Portfolio, err = s.portfolioRepo.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		d.Quotes, err = s.quoteRepo.CountByStatus(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load dashboard: %w", err)
	}
	d.NewQuotes = d.Quotes[model.QuoteStatusNew]
	return d, nil
}

func (s *quoteAdminService) ExportCSV(ctx context.Context, w io.Writer, status string) error {
	quotes, err := s.List(ctx, status)
	if err != nil {
		return err
	}
	return export.QuotesCSV(w, quotes)
}

func (s *quoteAdminService) ExportXLSX(ctx context.Context, w io.Writer, status string) error {
	quotes, err := s.List(ctx, status)
	if err != nil {
		return err
	}
	return export.QuotesXLSX(w, quotes)
}

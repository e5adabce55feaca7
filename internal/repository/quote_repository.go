package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"riseadvertising/internal/model"
)

// QuoteRepository defines quote request persistence operations.
// Quote requests are never deleted.
type QuoteRepository interface {
	Create(ctx context.Context, quote *model.QuoteRequest) error
	List(ctx context.Context) ([]model.QuoteRequest, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.QuoteRequest, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	CountByStatus(ctx context.Context) (map[model.QuoteStatus]int64, error)
}

type quoteRepository struct {
	db *gorm.DB
}

// NewQuoteRepository creates a new quote repository.
func NewQuoteRepository(db *gorm.DB) QuoteRepository {
	return &quoteRepository{db: db}
}

// Create inserts a new quote request.
func (r *quoteRepository) Create(ctx context.Context, quote *model.QuoteRequest) error {
	return r.db.WithContext(ctx).Create(quote).Error
}

// List returns every quote request, newest first.
func (r *quoteRepository) List(ctx context.Context) ([]model.QuoteRequest, error) {
	var quotes []model.QuoteRequest
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&quotes).Error; err != nil {
		return nil, err
	}
	return quotes, nil
}

// FindByID finds a quote request by ID.
func (r *quoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.QuoteRequest, error) {
	var quote model.QuoteRequest
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&quote).Error; err != nil {
		return nil, err
	}
	return &quote, nil
}

// UpdateFields applies a partial update (status, internal_notes).
func (r *quoteRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&model.QuoteRequest{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// CountByStatus returns the number of quote requests per status.
func (r *quoteRepository) CountByStatus(ctx context.Context) (map[model.QuoteStatus]int64, error) {
	var rows []struct {
		Status model.QuoteStatus
		Total  int64
	}
	if err := r.db.WithContext(ctx).Model(&model.QuoteRequest{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[model.QuoteStatus]int64, len(model.QuoteStatuses))
	for _, s := range model.QuoteStatuses {
		counts[s] = 0
	}
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"riseadvertising/internal/model"
)

// PortfolioRepository defines portfolio item persistence operations.
type PortfolioRepository interface {
	List(ctx context.Context, publishedOnly bool) ([]model.PortfolioItem, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.PortfolioItem, error)
	Create(ctx context.Context, item *model.PortfolioItem) error
	Update(ctx context.Context, item *model.PortfolioItem) error
	UpdateImages(ctx context.Context, id uuid.UUID, images []string) error
	Delete(ctx context.Context, id uuid.UUID) error
	SetPublished(ctx context.Context, id uuid.UUID, published bool) error
	Count(ctx context.Context) (int64, error)
}

type portfolioRepository struct {
	db *gorm.DB
}

// NewPortfolioRepository creates a new portfolio repository.
func NewPortfolioRepository(db *gorm.DB) PortfolioRepository {
	return &portfolioRepository{db: db}
}

// List returns portfolio items, newest first.
func (r *portfolioRepository) List(ctx context.Context, publishedOnly bool) ([]model.PortfolioItem, error) {
	var items []model.PortfolioItem
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if publishedOnly {
		q = q.Where("published = ?", true)
	}
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindByID finds a portfolio item by ID.
func (r *portfolioRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.PortfolioItem, error) {
	var item model.PortfolioItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Create inserts a new portfolio item.
func (r *portfolioRepository) Create(ctx context.Context, item *model.PortfolioItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// Update saves every column of an existing portfolio item.
func (r *portfolioRepository) Update(ctx context.Context, item *model.PortfolioItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// UpdateImages replaces the image list only.
func (r *portfolioRepository) UpdateImages(ctx context.Context, id uuid.UUID, images []string) error {
	return r.db.WithContext(ctx).Model(&model.PortfolioItem{ID: id}).
		Select("images").
		Updates(&model.PortfolioItem{Images: images}).Error
}

// Delete removes a portfolio item.
func (r *portfolioRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.PortfolioItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetPublished updates only the published flag.
func (r *portfolioRepository) SetPublished(ctx context.Context, id uuid.UUID, published bool) error {
	return r.db.WithContext(ctx).Model(&model.PortfolioItem{}).
		Where("id = ?", id).
		Update("published", published).Error
}

// Count returns the number of portfolio items.
func (r *portfolioRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.PortfolioItem{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

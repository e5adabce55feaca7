package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"riseadvertising/internal/model"
)

// CategoryRepository defines service category persistence operations.
type CategoryRepository interface {
	List(ctx context.Context, publishedOnly bool) ([]model.ServiceCategory, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.ServiceCategory, error)
	Create(ctx context.Context, category *model.ServiceCategory) error
	Update(ctx context.Context, category *model.ServiceCategory) error
	Delete(ctx context.Context, id uuid.UUID) error
	SetPublished(ctx context.Context, id uuid.UUID, published bool) error
	Count(ctx context.Context) (int64, error)
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository.
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// List returns categories ordered by sort_order ascending.
func (r *categoryRepository) List(ctx context.Context, publishedOnly bool) ([]model.ServiceCategory, error) {
	var categories []model.ServiceCategory
	q := r.db.WithContext(ctx).Order("sort_order ASC").Order("letter ASC")
	if publishedOnly {
		q = q.Where("published = ?", true)
	}
	if err := q.Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// FindByID finds a category by ID.
func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ServiceCategory, error) {
	var category model.ServiceCategory
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// Create inserts a new category.
func (r *categoryRepository) Create(ctx context.Context, category *model.ServiceCategory) error {
	return r.db.WithContext(ctx).Create(category).Error
}

// Update saves every column of an existing category.
func (r *categoryRepository) Update(ctx context.Context, category *model.ServiceCategory) error {
	return r.db.WithContext(ctx).Save(category).Error
}

// Delete removes a category. Services tagged with it are left untouched.
func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ServiceCategory{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetPublished updates only the published flag.
func (r *categoryRepository) SetPublished(ctx context.Context, id uuid.UUID, published bool) error {
	return r.db.WithContext(ctx).Model(&model.ServiceCategory{}).
		Where("id = ?", id).
		Update("published", published).Error
}

// Count returns the number of categories.
func (r *categoryRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.ServiceCategory{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"riseadvertising/internal/model"
)

// ServiceRepository defines service (product) persistence operations.
type ServiceRepository interface {
	List(ctx context.Context, publishedOnly bool) ([]model.Service, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Service, error)
	FindBySlug(ctx context.Context, slug string, publishedOnly bool) (*model.Service, error)
	Create(ctx context.Context, service *model.Service) error
	Update(ctx context.Context, service *model.Service) error
	Delete(ctx context.Context, id uuid.UUID) error
	SetPublished(ctx context.Context, id uuid.UUID, published bool) error
	Count(ctx context.Context) (int64, error)
}

type serviceRepository struct {
	db *gorm.DB
}

// NewServiceRepository creates a new service repository.
func NewServiceRepository(db *gorm.DB) ServiceRepository {
	return &serviceRepository{db: db}
}

// List returns services ordered by sort_order ascending.
func (r *serviceRepository) List(ctx context.Context, publishedOnly bool) ([]model.Service, error) {
	var services []model.Service
	q := r.db.WithContext(ctx).Order("sort_order ASC").Order("title ASC")
	if publishedOnly {
		q = q.Where("published = ?", true)
	}
	if err := q.Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// FindByID finds a service by ID.
func (r *serviceRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	var service model.Service
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

// FindBySlug finds the first service with the given slug.
func (r *serviceRepository) FindBySlug(ctx context.Context, slug string, publishedOnly bool) (*model.Service, error) {
	var service model.Service
	q := r.db.WithContext(ctx).Where("slug = ?", slug)
	if publishedOnly {
		q = q.Where("published = ?", true)
	}
	if err := q.Order("created_at ASC").First(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

// Create inserts a new service.
func (r *serviceRepository) Create(ctx context.Context, service *model.Service) error {
	return r.db.WithContext(ctx).Create(service).Error
}

// Update saves every column of an existing service.
func (r *serviceRepository) Update(ctx context.Context, service *model.Service) error {
	return r.db.WithContext(ctx).Save(service).Error
}

// Delete removes a service.
func (r *serviceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Service{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetPublished updates only the published flag.
func (r *serviceRepository) SetPublished(ctx context.Context, id uuid.UUID, published bool) error {
	return r.db.WithContext(ctx).Model(&model.Service{}).
		Where("id = ?", id).
		Update("published", published).Error
}

// Count returns the number of services.
func (r *serviceRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Service{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

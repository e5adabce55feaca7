package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"riseadvertising/internal/catalog"
	apperrors "riseadvertising/internal/errors"
	"riseadvertising/internal/model"
	"riseadvertising/internal/repository"
	"riseadvertising/internal/validation"
)

// ServiceInput is the admin form for a catalog service.
type ServiceInput struct {
	Title            string   `json:"title" validate:"required,max=255"`
	Slug             string   `json:"slug" validate:"max=255"`
	ShortDescription string   `json:"short_description"`
	LongDescription  string   `json:"long_description"`
	PriceRange       string   `json:"price_range" validate:"max=120"`
	IconName         string   `json:"icon_name" validate:"max=80"`
	ImageURL         string   `json:"image_url"`
	Published        bool     `json:"published"`
	SortOrder        int      `json:"sort_order"`
	Tags             []string `json:"tags"`
}

// ProductService manages catalog services ("products") from the admin console.
type ProductService interface {
	List(ctx context.Context, categoryLetter string) ([]model.Service, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Service, error)
	Draft(ctx context.Context, categoryLetter string) (*model.Service, error)
	Create(ctx context.Context, in ServiceInput) (*model.Service, error)
	Update(ctx context.Context, id uuid.UUID, in ServiceInput) (*model.Service, error)
	Delete(ctx context.Context, id uuid.UUID, confirmed bool) error
	SetPublished(ctx context.Context, id uuid.UUID, published bool) (*model.Service, error)
}

type productService struct {
	repo         repository.ServiceRepository
	categoryRepo repository.CategoryRepository
	validate     *validator.Validate
}

// NewProductService creates a service admin service.
func NewProductService(repo repository.ServiceRepository, categoryRepo repository.CategoryRepository) ProductService {
	return &productService{repo: repo, categoryRepo: categoryRepo, validate: validation.New()}
}

// List returns every service; a category letter narrows the list in memory
// by exact tag match.
func (s *productService) List(ctx context.Context, categoryLetter string) ([]model.Service, error) {
	services, err := s.repo.List(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	if categoryLetter == "" {
		return services, nil
	}
	categories, err := s.categoryRepo.List(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return catalog.FilterServicesByLetter(services, categories, categoryLetter), nil
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	svc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, apperrors.ErrServiceNotFound)
	}
	return svc, nil
}

// Draft pre-fills a new service with the active category filter as its tag.
func (s *productService) Draft(ctx context.Context, categoryLetter string) (*model.Service, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count services: %w", err)
	}
	draft := &model.Service{
		Published: true,
		SortOrder: int(count),
		Tags:      []string{},
	}
	if categoryLetter != "" {
		categories, err := s.categoryRepo.List(ctx, false)
		if err != nil {
			return nil, fmt.Errorf("list categories: %w", err)
		}
		if c, ok := catalog.FindCategoryByLetter(categories, categoryLetter); ok {
			draft.Tags = []string{catalog.CategoryTag(c)}
		}
	}
	return draft, nil
}

func (s *productService) normalize(in *ServiceInput) error {
	in.Title = strings.TrimSpace(in.Title)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	in.Tags = cleanList(in.Tags)
	if err := validation.Struct(s.validate, in); err != nil {
		return err
	}
	in.Slug = catalog.SlugOrDefault(in.Slug, in.Title)
	return nil
}

func (s *productService) apply(svc *model.Service, in ServiceInput) {
	svc.Title = in.Title
	svc.Slug = in.Slug
	svc.ShortDescription = in.ShortDescription
	svc.LongDescription = in.LongDescription
	svc.PriceRange = in.PriceRange
	svc.IconName = in.IconName
	svc.ImageURL = in.ImageURL
	svc.Published = in.Published
	svc.SortOrder = in.SortOrder
	svc.Tags = in.Tags
}

func (s *productService) Create(ctx context.Context, in ServiceInput) (*model.Service, error) {
	if err := s.normalize(&in); err != nil {
		return nil, err
	}
	svc := &model.Service{}
	s.apply(svc, in)
	if err := s.repo.Create(ctx, svc); err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}
	return svc, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, in ServiceInput) (*model.Service, error) {
	svc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.normalize(&in); err != nil {
		return nil, err
	}
	s.apply(svc, in)
	if err := s.repo.Update(ctx, svc); err != nil {
		return nil, fmt.Errorf("update service: %w", err)
	}
	return svc, nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID, confirmed bool) error {
	if err := requireConfirmation(confirmed); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return translateNotFound(err, apperrors.ErrServiceNotFound)
	}
	return nil
}

func (s *productService) SetPublished(ctx context.Context, id uuid.UUID, published bool) (*model.Service, error) {
	svc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetPublished(ctx, id, published); err != nil {
		return nil, fmt.Errorf("set service published: %w", err)
	}
	svc.Published = published
	return svc, nil
}

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

// PortfolioInput is the admin form for a portfolio item.
type PortfolioInput struct {
	Title       string   `json:"title" validate:"required,max=255"`
	Slug        string   `json:"slug" validate:"max=255"`
	Client      string   `json:"client" validate:"max=255"`
	ProjectDate string   `json:"project_date" validate:"max=40"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	Tags        []string `json:"tags"`
	Featured    bool     `json:"featured"`
	Published   bool     `json:"published"`
}

// PortfolioService manages portfolio items from the admin console.
type PortfolioService interface {
	List(ctx context.Context, tag string) ([]model.PortfolioItem, error)
	Get(ctx context.Context, id uuid.UUID) (*model.PortfolioItem, error)
	Draft(ctx context.Context, tag string) *model.PortfolioItem
	Create(ctx context.Context, in PortfolioInput) (*model.PortfolioItem, error)
	Update(ctx context.Context, id uuid.UUID, in PortfolioInput) (*model.PortfolioItem, error)
	Delete(ctx context.Context, id uuid.UUID, confirmed bool) error
	SetPublished(ctx context.Context, id uuid.UUID, published bool) (*model.PortfolioItem, error)
	AppendImage(ctx context.Context, id uuid.UUID, url string) (*model.PortfolioItem, error)
	RemoveImage(ctx context.Context, id uuid.UUID, index int) (*model.PortfolioItem, error)
}

type portfolioService struct {
	repo     repository.PortfolioRepository
	validate *validator.Validate
}

// NewPortfolioService creates a portfolio admin service.
func NewPortfolioService(repo repository.PortfolioRepository) PortfolioService {
	return &portfolioService{repo: repo, validate: validation.New()}
}

func (s *portfolioService) List(ctx context.Context, tag string) ([]model.PortfolioItem, error) {
	items, err := s.repo.List(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("list portfolio: %w", err)
	}
	return catalog.FilterPortfolioByTag(items, tag), nil
}

func (s *portfolioService) Get(ctx context.Context, id uuid.UUID) (*model.PortfolioItem, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, apperrors.ErrPortfolioNotFound)
	}
	return item, nil
}

// Draft pre-fills a new item with the active filter as its first tag.
func (s *portfolioService) Draft(_ context.Context, tag string) *model.PortfolioItem {
	draft := &model.PortfolioItem{
		Published: true,
		Images:    []string{},
		Tags:      []string{},
	}
	if tag = strings.TrimSpace(tag); tag != "" {
		draft.Tags = []string{tag}
	}
	return draft
}

func (s *portfolioService) normalize(in *PortfolioInput) error {
	in.Title = strings.TrimSpace(in.Title)
	in.Images = cleanList(in.Images)
	in.Tags = cleanList(in.Tags)
	if err := validation.Struct(s.validate, in); err != nil {
		return err
	}
	in.Slug = catalog.SlugOrDefault(in.Slug, in.Title)
	return nil
}

func (s *portfolioService) apply(item *model.PortfolioItem, in PortfolioInput) {
	item.Title = in.Title
	item.Slug = in.Slug
	item.Client = in.Client
	item.ProjectDate = in.ProjectDate
	item.Description = in.Description
	item.Images = in.Images
	item.Tags = in.Tags
	item.Featured = in.Featured
	item.Published = in.Published
}

func (s *portfolioService) Create(ctx context.Context, in PortfolioInput) (*model.PortfolioItem, error) {
	if err := s.normalize(&in); err != nil {
		return nil, err
	}
	item := &model.PortfolioItem{}
	s.apply(item, in)
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create portfolio item: %w", err)
	}
	return item, nil
}

func (s *portfolioService) Update(ctx context.Context, id uuid.UUID, in PortfolioInput) (*model.PortfolioItem, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.normalize(&in); err != nil {
		return nil, err
	}
	s.apply(item, in)
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("update portfolio item: %w", err)
	}
	return item, nil
}

func (s *portfolioService) Delete(ctx context.Context, id uuid.UUID, confirmed bool) error {
	if err := requireConfirmation(confirmed); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return translateNotFound(err, apperrors.ErrPortfolioNotFound)
	}
	return nil
}

func (s *portfolioService) SetPublished(ctx context.Context, id uuid.UUID, published bool) (*model.PortfolioItem, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetPublished(ctx, id, published); err != nil {
		return nil, fmt.Errorf("set portfolio published: %w", err)
	}
	item.Published = published
	return item, nil
}

func (s *portfolioService) AppendImage(ctx context.Context, id uuid.UUID, url string) (*model.PortfolioItem, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, apperrors.NewValidationError(map[string]string{"url": "this field is required"})
	}
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	images := append(append([]string{}, item.Images...), url)
	if err := s.repo.UpdateImages(ctx, id, images); err != nil {
		return nil, fmt.Errorf("append portfolio image: %w", err)
	}
	item.Images = images
	return item, nil
}

func (s *portfolioService) RemoveImage(ctx context.Context, id uuid.UUID, index int) (*model.PortfolioItem, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(item.Images) {
		return nil, apperrors.ErrInvalidImageIndex
	}
	images := make([]string, 0, len(item.Images)-1)
	images = append(images, item.Images[:index]...)
	images = append(images, item.Images[index+1:]...)
	if err := s.repo.UpdateImages(ctx, id, images); err != nil {
		return nil, fmt.Errorf("remove portfolio image: %w", err)
	}
	item.Images = images
	return item, nil
}

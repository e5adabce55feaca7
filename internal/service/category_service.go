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

// CategoryInput is the admin category form.
type CategoryInput struct {
	Letter      string `json:"letter" validate:"max=4"`
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	SortOrder   int    `json:"sort_order"`
	Published   bool   `json:"published"`
}

// CategoryService manages service categories from the admin console.
type CategoryService interface {
	List(ctx context.Context) ([]model.ServiceCategory, error)
	Get(ctx context.Context, id uuid.UUID) (*model.ServiceCategory, error)
	Draft(ctx context.Context) (*model.ServiceCategory, error)
	Create(ctx context.Context, in CategoryInput) (*model.ServiceCategory, error)
	Update(ctx context.Context, id uuid.UUID, in CategoryInput) (*model.ServiceCategory, error)
	Delete(ctx context.Context, id uuid.UUID, confirmed bool) error
	SetPublished(ctx context.Context, id uuid.UUID, published bool) (*model.ServiceCategory, error)
}

type categoryService struct {
	repo     repository.CategoryRepository
	validate *validator.Validate
}

// NewCategoryService creates a category admin service.
func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo, validate: validation.New()}
}

func (s *categoryService) List(ctx context.Context) ([]model.ServiceCategory, error) {
	return s.repo.List(ctx, false)
}

func (s *categoryService) Get(ctx context.Context, id uuid.UUID) (*model.ServiceCategory, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, apperrors.ErrCategoryNotFound)
	}
	return c, nil
}

// Draft returns the defaults of a new category. The letter follows from the
// current count only, so it may repeat one still in use after a deletion.
func (s *categoryService) Draft(ctx context.Context) (*model.ServiceCategory, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}
	return &model.ServiceCategory{
		Letter:    catalog.NextCategoryLetter(int(count)),
		SortOrder: int(count),
		Published: true,
	}, nil
}

func (s *categoryService) normalize(ctx context.Context, in *CategoryInput) error {
	in.Title = strings.TrimSpace(in.Title)
	in.Letter = strings.ToUpper(strings.TrimSpace(in.Letter))
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	if err := validation.Struct(s.validate, in); err != nil {
		return err
	}
	if in.Letter == "" {
		draft, err := s.Draft(ctx)
		if err != nil {
			return err
		}
		in.Letter = draft.Letter
	}
	return nil
}

func (s *categoryService) Create(ctx context.Context, in CategoryInput) (*model.ServiceCategory, error) {
	if err := s.normalize(ctx, &in); err != nil {
		return nil, err
	}
	c := &model.ServiceCategory{
		Letter:      in.Letter,
		Title:       in.Title,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		SortOrder:   in.SortOrder,
		Published:   in.Published,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return c, nil
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, in CategoryInput) (*model.ServiceCategory, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Letter) == "" {
		in.Letter = c.Letter
	}
	if err := s.normalize(ctx, &in); err != nil {
		return nil, err
	}

	c.Letter = in.Letter
	c.Title = in.Title
	c.Description = in.Description
	c.ImageURL = in.ImageURL
	c.SortOrder = in.SortOrder
	c.Published = in.Published
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return c, nil
}

// Delete removes the row only. Services still tagged with the category keep
// the now dangling tag.
func (s *categoryService) Delete(ctx context.Context, id uuid.UUID, confirmed bool) error {
	if err := requireConfirmation(confirmed); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return translateNotFound(err, apperrors.ErrCategoryNotFound)
	}
	return nil
}

func (s *categoryService) SetPublished(ctx context.Context, id uuid.UUID, published bool) (*model.ServiceCategory, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetPublished(ctx, id, published); err != nil {
		return nil, fmt.Errorf("set category published: %w", err)
	}
	c.Published = published
	return c, nil
}

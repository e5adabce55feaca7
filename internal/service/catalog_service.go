package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"riseadvertising/internal/catalog"
	apperrors "riseadvertising/internal/errors"
	"riseadvertising/internal/model"
	"riseadvertising/internal/repository"
)

// Overview is the data the services page needs on first render.
type Overview struct {
	Categories []catalog.CategoryCard `json:"categories"`
	Services   []model.Service        `json:"services"`
}

// CatalogService serves the published catalog to the public site.
type CatalogService interface {
	ListCategories(ctx context.Context) ([]model.ServiceCategory, error)
	ListServices(ctx context.Context) ([]model.Service, error)
	GetServiceBySlug(ctx context.Context, slug string) (*model.Service, error)
	Overview(ctx context.Context) (*Overview, error)
	Browse(ctx context.Context, query, letter string) (*catalog.View, error)
	ListPortfolio(ctx context.Context, tag string) ([]model.PortfolioItem, error)
	FeaturedPortfolio(ctx context.Context) ([]model.PortfolioItem, error)
	GetSettings(ctx context.Context) (map[string]datatypes.JSON, error)
}

type catalogService struct {
	categoryRepo  repository.CategoryRepository
	serviceRepo   repository.ServiceRepository
	portfolioRepo repository.PortfolioRepository
	settingRepo   repository.SettingRepository
	retry         ReadRetry
}

// NewCatalogService creates the public catalog service.
func NewCatalogService(
	categoryRepo repository.CategoryRepository,
	serviceRepo repository.ServiceRepository,
	portfolioRepo repository.PortfolioRepository,
	settingRepo repository.SettingRepository,
	retry ReadRetry,
) CatalogService {
	return &catalogService{
		categoryRepo:  categoryRepo,
		serviceRepo:   serviceRepo,
		portfolioRepo: portfolioRepo,
		settingRepo:   settingRepo,
		retry:         retry,
	}
}

func (s *catalogService) ListCategories(ctx context.Context) ([]model.ServiceCategory, error) {
	var categories []model.ServiceCategory
	err := s.retry.do(ctx, "list categories", func() (err error) {
		categories, err = s.categoryRepo.List(ctx, true)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s *catalogService) ListServices(ctx context.Context) ([]model.Service, error) {
	var services []model.Service
	err := s.retry.do(ctx, "list services", func() (err error) {
		services, err = s.serviceRepo.List(ctx, true)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return services, nil
}

func (s *catalogService) GetServiceBySlug(ctx context.Context, slug string) (*model.Service, error) {
	var svc *model.Service
	err := s.retry.do(ctx, "get service", func() (err error) {
		svc, err = s.serviceRepo.FindBySlug(ctx, slug, true)
		return err
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get service: %w", err)
	}
	return svc, nil
}

// Overview loads categories and services concurrently and returns once both
// have arrived. Either failure fails the whole load.
func (s *catalogService) Overview(ctx context.Context) (*Overview, error) {
	var (
		categories []model.ServiceCategory
		services   []model.Service
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		categories, err = s.ListCategories(gctx)
		return err
	})
	g.Go(func() (err error) {
		services, err = s.ListServices(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Overview{
		Categories: catalog.Cards(categories, services),
		Services:   services,
	}, nil
}

func (s *catalogService) Browse(ctx context.Context, query, letter string) (*catalog.View, error) {
	ov, err := s.Overview(ctx)
	if err != nil {
		return nil, err
	}
	categories := make([]model.ServiceCategory, len(ov.Categories))
	for i, c := range ov.Categories {
		categories[i] = c.ServiceCategory
	}
	view := catalog.Browse(categories, ov.Services, query, letter)
	return &view, nil
}

func (s *catalogService) listPublishedPortfolio(ctx context.Context) ([]model.PortfolioItem, error) {
	var items []model.PortfolioItem
	err := s.retry.do(ctx, "list portfolio", func() (err error) {
		items, err = s.portfolioRepo.List(ctx, true)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list portfolio: %w", err)
	}
	return items, nil
}

// ListPortfolio returns published items, featured first and then newest
// project first, optionally narrowed to one category tag.
func (s *catalogService) ListPortfolio(ctx context.Context, tag string) ([]model.PortfolioItem, error) {
	items, err := s.listPublishedPortfolio(ctx)
	if err != nil {
		return nil, err
	}
	items = catalog.FilterPortfolioByTag(items, tag)
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Featured != items[j].Featured {
			return items[i].Featured
		}
		return items[i].ProjectDate > items[j].ProjectDate
	})
	return items, nil
}

func (s *catalogService) FeaturedPortfolio(ctx context.Context) ([]model.PortfolioItem, error) {
	items, err := s.listPublishedPortfolio(ctx)
	if err != nil {
		return nil, err
	}
	featured := make([]model.PortfolioItem, 0, len(items))
	for _, it := range items {
		if it.Featured {
			featured = append(featured, it)
		}
	}
	return featured, nil
}

func (s *catalogService) GetSettings(ctx context.Context) (map[string]datatypes.JSON, error) {
	var rows []model.SiteSetting
	err := s.retry.do(ctx, "list settings", func() (err error) {
		rows, err = s.settingRepo.List(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	out := make(map[string]datatypes.JSON, len(rows))
	for _, r := range rows {
		out[r.Key] = r.Value
	}
	return out, nil
}

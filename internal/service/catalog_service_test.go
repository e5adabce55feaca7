package service

import (
	"context"
	"database/sql/driver"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"riseadvertising/internal/catalog"
	apperrors "riseadvertising/internal/errors"
	"riseadvertising/internal/model"
)

var testRetry = ReadRetry{Attempts: 3, Delay: time.Millisecond}

func newCatalogService() (CatalogService, *MockCategoryRepository, *MockServiceRepository, *MockPortfolioRepository, *MockSettingRepository) {
	cats := new(MockCategoryRepository)
	svcs := new(MockServiceRepository)
	port := new(MockPortfolioRepository)
	sets := new(MockSettingRepository)
	return NewCatalogService(cats, svcs, port, sets, testRetry), cats, svcs, port, sets
}

func TestCatalogService_Overview(t *testing.T) {
	service, cats, svcs, _, _ := newCatalogService()

	signage := model.ServiceCategory{Letter: "B", Title: "Signage & Neon & LED Signs"}
	cats.On("List", mock.Anything, true).Return([]model.ServiceCategory{signage}, nil)
	svcs.On("List", mock.Anything, true).Return([]model.Service{
		{Title: "Neon sign", ImageURL: "https://img/neon.jpg", Tags: []string{"B. Signage & Neon & LED Signs"}},
	}, nil)

	ov, err := service.Overview(context.Background())
	require.NoError(t, err)
	require.Len(t, ov.Categories, 1)
	assert.Equal(t, "https://img/neon.jpg", ov.Categories[0].DisplayImage)
	assert.Len(t, ov.Services, 1)
}

func TestCatalogService_OverviewFailsWhenEitherReadFails(t *testing.T) {
	service, cats, svcs, _, _ := newCatalogService()
	cats.On("List", mock.Anything, true).Return([]model.ServiceCategory{}, nil)
	svcs.On("List", mock.Anything, true).Return(nil, assert.AnError)

	ov, err := service.Overview(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
	assert.Nil(t, ov)
}

func TestCatalogService_ReadRetry(t *testing.T) {
	transient := &net.OpError{Op: "read", Net: "tcp", Err: driver.ErrBadConn}

	t.Run("retries transient failures", func(t *testing.T) {
		service, cats, _, _, _ := newCatalogService()
		cats.On("List", mock.Anything, true).Return(nil, transient).Twice()
		cats.On("List", mock.Anything, true).Return([]model.ServiceCategory{{Letter: "A"}}, nil).Once()

		got, err := service.ListCategories(context.Background())
		require.NoError(t, err)
		assert.Len(t, got, 1)
		cats.AssertNumberOfCalls(t, "List", 3)
	})

	t.Run("gives up after three attempts", func(t *testing.T) {
		service, cats, _, _, _ := newCatalogService()
		cats.On("List", mock.Anything, true).Return(nil, transient)

		_, err := service.ListCategories(context.Background())
		assert.Error(t, err)
		cats.AssertNumberOfCalls(t, "List", 3)
	})

	t.Run("does not retry other errors", func(t *testing.T) {
		service, cats, _, _, _ := newCatalogService()
		cats.On("List", mock.Anything, true).Return(nil, assert.AnError)

		_, err := service.ListCategories(context.Background())
		assert.Error(t, err)
		cats.AssertNumberOfCalls(t, "List", 1)
	})
}

func TestCatalogService_GetServiceBySlug(t *testing.T) {
	service, _, svcs, _, _ := newCatalogService()
	svcs.On("FindBySlug", mock.Anything, "vinyl-banners", true).Return(&model.Service{Slug: "vinyl-banners"}, nil)
	svcs.On("FindBySlug", mock.Anything, "missing", true).Return(nil, gorm.ErrRecordNotFound)

	svc, err := service.GetServiceBySlug(context.Background(), "vinyl-banners")
	require.NoError(t, err)
	assert.Equal(t, "vinyl-banners", svc.Slug)

	_, err = service.GetServiceBySlug(context.Background(), "missing")
	assert.Equal(t, apperrors.ErrServiceNotFound, err)
}

func TestCatalogService_Browse(t *testing.T) {
	service, cats, svcs, _, _ := newCatalogService()
	cats.On("List", mock.Anything, true).Return([]model.ServiceCategory{
		{Letter: "A", Title: "Large Format Printing"},
		{Letter: "B", Title: "Signage & Neon & LED Signs"},
	}, nil)
	svcs.On("List", mock.Anything, true).Return([]model.Service{
		{Title: "Roll-up banner", Tags: []string{"A. Large Format Printing"}},
	}, nil)

	view, err := service.Browse(context.Background(), "neon", "A")
	require.NoError(t, err)
	assert.Equal(t, catalog.ModeSearch, view.Mode)
	require.Len(t, view.Categories, 1)
	assert.Equal(t, "B", view.Categories[0].Letter)

	view, err = service.Browse(context.Background(), "", "A")
	require.NoError(t, err)
	assert.Equal(t, catalog.ModeCategory, view.Mode)
	assert.Len(t, view.Products, 1)

	view, err = service.Browse(context.Background(), "", "Z")
	require.NoError(t, err)
	assert.Equal(t, catalog.ModeGrid, view.Mode)
}

func TestCatalogService_ListPortfolio(t *testing.T) {
	service, _, _, port, _ := newCatalogService()
	port.On("List", mock.Anything, true).Return([]model.PortfolioItem{
		{Title: "old", ProjectDate: "2023-01-10", Tags: []string{"Banners"}},
		{Title: "new", ProjectDate: "2024-05-01", Tags: []string{"Banners"}},
		{Title: "star", ProjectDate: "2022-02-02", Featured: true, Tags: []string{"Signage"}},
	}, nil)

	items, err := service.ListPortfolio(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, []string{"star", "new", "old"}, []string{items[0].Title, items[1].Title, items[2].Title})

	items, err = service.ListPortfolio(context.Background(), "Banners")
	require.NoError(t, err)
	assert.Len(t, items, 2)

	featured, err := service.FeaturedPortfolio(context.Background())
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, "star", featured[0].Title)
}

func TestCatalogService_GetSettings(t *testing.T) {
	service, _, _, _, sets := newCatalogService()
	sets.On("List", mock.Anything).Return([]model.SiteSetting{
		{Key: "contact", Value: datatypes.JSON(`{"phone":"+251"}`)},
	}, nil)

	got, err := service.GetSettings(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"phone":"+251"}`, string(got["contact"]))
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"riseadvertising/internal/catalog"
	"riseadvertising/internal/service"
)

// SiteHandler serves the public marketing site data.
type SiteHandler struct {
	catalogService service.CatalogService
}

// NewSiteHandler creates a new site handler.
func NewSiteHandler(catalogService service.CatalogService) *SiteHandler {
	return &SiteHandler{catalogService: catalogService}
}

// Content godoc
// @Summary Static site content
// @Description Default categories, footer links, testimonials and form vocabularies.
// @Tags site
// @Produce json
// @Success 200 {object} catalog.Content
// @Router /site/content [get]
func (h *SiteHandler) Content(c echo.Context) error {
	return c.JSON(http.StatusOK, catalog.StaticContent())
}

// ListCategories godoc
// @Summary List published categories
// @Tags catalog
// @Produce json
// @Success 200 {array} catalog.CategoryCard
// @Failure 500 {object} errors.ErrorResponse
// @Router /site/categories [get]
func (h *SiteHandler) ListCategories(c echo.Context) error {
	ov, err := h.catalogService.Overview(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ov.Categories)
}

// ListServices godoc
// @Summary List published services
// @Tags catalog
// @Produce json
// @Success 200 {array} model.Service
// @Failure 500 {object} errors.ErrorResponse
// @Router /site/services [get]
func (h *SiteHandler) ListServices(c echo.Context) error {
	services, err := h.catalogService.ListServices(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, services)
}

// GetService godoc
// @Summary Get a published service by slug
// @Tags catalog
// @Produce json
// @Param slug path string true "Service slug"
// @Success 200 {object} model.Service
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /site/services/{slug} [get]
func (h *SiteHandler) GetService(c echo.Context) error {
	svc, err := h.catalogService.GetServiceBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, svc)
}

// Catalog godoc
// @Summary Browse the catalog
// @Description A non-empty q searches categories and services and overrides category.
// @Tags catalog
// @Produce json
// @Param q query string false "Search text"
// @Param category query string false "Category letter to drill into"
// @Success 200 {object} catalog.View
// @Failure 500 {object} errors.ErrorResponse
// @Router /site/catalog [get]
func (h *SiteHandler) Catalog(c echo.Context) error {
	view, err := h.catalogService.Browse(c.Request().Context(), c.QueryParam("q"), c.QueryParam("category"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// ListPortfolio godoc
// @Summary List published portfolio items
// @Tags portfolio
// @Produce json
// @Param category query string false "Portfolio category tag"
// @Success 200 {array} model.PortfolioItem
// @Failure 500 {object} errors.ErrorResponse
// @Router /site/portfolio [get]
func (h *SiteHandler) ListPortfolio(c echo.Context) error {
	items, err := h.catalogService.ListPortfolio(c.Request().Context(), c.QueryParam("category"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// FeaturedPortfolio godoc
// @Summary List featured portfolio items
// @Tags portfolio
// @Produce json
// @Success 200 {array} model.PortfolioItem
// @Failure 500 {object} errors.ErrorResponse
// @Router /site/portfolio/featured [get]
func (h *SiteHandler) FeaturedPortfolio(c echo.Context) error {
	items, err := h.catalogService.FeaturedPortfolio(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// Settings godoc
// @Summary Public site settings
// @Tags site
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} errors.ErrorResponse
// @Router /site/settings [get]
func (h *SiteHandler) Settings(c echo.Context) error {
	settings, err := h.catalogService.GetSettings(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, settings)
}

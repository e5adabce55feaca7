package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"riseadvertising/internal/errors"
	"riseadvertising/internal/service"
)

// ImageRequest appends an uploaded image URL to a portfolio item.
type ImageRequest struct {
	URL string `json:"url" validate:"required"`
}

// PortfolioHandler handles portfolio administration.
type PortfolioHandler struct {
	svc service.PortfolioService
}

// NewPortfolioHandler creates a new portfolio handler.
func NewPortfolioHandler(svc service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{svc: svc}
}

// List godoc
// @Summary List all portfolio items
// @Tags admin-portfolio
// @Produce json
// @Security BearerAuth
// @Param category query string false "Portfolio category tag"
// @Success 200 {array} model.PortfolioItem
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/portfolio [get]
func (h *PortfolioHandler) List(c echo.Context) error {
	items, err := h.svc.List(c.Request().Context(), c.QueryParam("category"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// Draft godoc
// @Summary Defaults for a new portfolio item
// @Tags admin-portfolio
// @Produce json
// @Security BearerAuth
// @Param category query string false "Active category tag"
// @Success 200 {object} model.PortfolioItem
// @Router /admin/portfolio/new [get]
func (h *PortfolioHandler) Draft(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Draft(c.Request().Context(), c.QueryParam("category")))
}

// Get godoc
// @Summary Get a portfolio item
// @Tags admin-portfolio
// @Produce json
// @Security BearerAuth
// @Param id path string true "Portfolio item ID"
// @Success 200 {object} model.PortfolioItem
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/portfolio/{id} [get]
func (h *PortfolioHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	item, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

// Create godoc
// @Summary Create a portfolio item
// @Tags admin-portfolio
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.PortfolioInput true "Portfolio item"
// @Success 201 {object} model.PortfolioItem
// @Failure 400 {object} errors.ErrorResponse
// @Router /admin/portfolio [post]
func (h *PortfolioHandler) Create(c echo.Context) error {
	var req service.PortfolioInput
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}
	item, err := h.svc.Create(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, item)
}

// Update godoc
// @Summary Update a portfolio item
// @Tags admin-portfolio
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Portfolio item ID"
// @Param request body service.PortfolioInput true "Portfolio item"
// @Success 200 {object} model.PortfolioItem
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/portfolio/{id} [put]
func (h *PortfolioHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req service.PortfolioInput
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}
	item, err := h.svc.Update(c.Request().Context(), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

// Delete godoc
// @Summary Delete a portfolio item
// @Tags admin-portfolio
// @Produce json
// @Security BearerAuth
// @Param id path string true "Portfolio item ID"
// @Param confirm query bool true "Must be true"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/portfolio/{id} [delete]
func (h *PortfolioHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id, confirmed(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "portfolio item deleted"})
}

// SetPublished godoc
// @Summary Publish or unpublish a portfolio item
// @Tags admin-portfolio
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Portfolio item ID"
// @Param request body PublishRequest true "Published flag"
// @Success 200 {object} model.PortfolioItem
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/portfolio/{id}/published [patch]
func (h *PortfolioHandler) SetPublished(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req PublishRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	item, err := h.svc.SetPublished(c.Request().Context(), id, *req.Published)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

// AppendImage godoc
// @Summary Append an image to a portfolio item
// @Tags admin-portfolio
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Portfolio item ID"
// @Param request body ImageRequest true "Image URL"
// @Success 200 {object} model.PortfolioItem
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/portfolio/{id}/images [post]
func (h *PortfolioHandler) AppendImage(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req ImageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	item, err := h.svc.AppendImage(c.Request().Context(), id, req.URL)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

// RemoveImage godoc
// @Summary Remove an image from a portfolio item by position
// @Tags admin-portfolio
// @Produce json
// @Security BearerAuth
// @Param id path string true "Portfolio item ID"
// @Param index path int true "Zero-based image index"
// @Success 200 {object} model.PortfolioItem
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/portfolio/{id}/images/{index} [delete]
func (h *PortfolioHandler) RemoveImage(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return respondError(c, errors.ErrInvalidImageIndex)
	}
	item, err := h.svc.RemoveImage(c.Request().Context(), id, index)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

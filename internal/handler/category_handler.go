package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"riseadvertising/internal/service"
)

// CategoryHandler handles category administration.
type CategoryHandler struct {
	svc service.CategoryService
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(svc service.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

// List godoc
// @Summary List all categories
// @Tags admin-categories
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.ServiceCategory
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.svc.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, categories)
}

// Draft godoc
// @Summary Defaults for a new category
// @Description The letter is derived from the current number of categories.
// @Tags admin-categories
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.ServiceCategory
// @Router /admin/categories/new [get]
func (h *CategoryHandler) Draft(c echo.Context) error {
	draft, err := h.svc.Draft(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, draft)
}

// Get godoc
// @Summary Get a category
// @Tags admin-categories
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Success 200 {object} model.ServiceCategory
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/categories/{id} [get]
func (h *CategoryHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	category, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, category)
}

// Create godoc
// @Summary Create a category
// @Tags admin-categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CategoryInput true "Category"
// @Success 201 {object} model.ServiceCategory
// @Failure 400 {object} errors.ErrorResponse
// @Router /admin/categories [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	var req service.CategoryInput
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}
	category, err := h.svc.Create(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, category)
}

// Update godoc
// @Summary Update a category
// @Tags admin-categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Param request body service.CategoryInput true "Category"
// @Success 200 {object} model.ServiceCategory
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/categories/{id} [put]
func (h *CategoryHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req service.CategoryInput
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}
	category, err := h.svc.Update(c.Request().Context(), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, category)
}

// Delete godoc
// @Summary Delete a category
// @Description Services tagged with the category keep their tag.
// @Tags admin-categories
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Param confirm query bool true "Must be true"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/categories/{id} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id, confirmed(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "category deleted"})
}

// SetPublished godoc
// @Summary Publish or unpublish a category
// @Tags admin-categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Param request body PublishRequest true "Published flag"
// @Success 200 {object} model.ServiceCategory
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/categories/{id}/published [patch]
func (h *CategoryHandler) SetPublished(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req PublishRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	category, err := h.svc.SetPublished(c.Request().Context(), id, *req.Published)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, category)
}

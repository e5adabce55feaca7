package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"riseadvertising/internal/service"
)

// ServiceHandler handles catalog service administration.
type ServiceHandler struct {
	svc service.ProductService
}

// NewServiceHandler creates a new service handler.
func NewServiceHandler(svc service.ProductService) *ServiceHandler {
	return &ServiceHandler{svc: svc}
}

// List godoc
// @Summary List all services
// @Description category narrows the list to services tagged with that category letter.
// @Tags admin-services
// @Produce json
// @Security BearerAuth
// @Param category query string false "Category letter"
// @Success 200 {array} model.Service
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/services [get]
func (h *ServiceHandler) List(c echo.Context) error {
	services, err := h.svc.List(c.Request().Context(), c.QueryParam("category"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, services)
}

// Draft godoc
// @Summary Defaults for a new service
// @Description The active category filter becomes the first tag.
// @Tags admin-services
// @Produce json
// @Security BearerAuth
// @Param category query string false "Active category letter"
// @Success 200 {object} model.Service
// @Router /admin/services/new [get]
func (h *ServiceHandler) Draft(c echo.Context) error {
	draft, err := h.svc.Draft(c.Request().Context(), c.QueryParam("category"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, draft)
}

// Get godoc
// @Summary Get a service
// @Tags admin-services
// @Produce json
// @Security BearerAuth
// @Param id path string true "Service ID"
// @Success 200 {object} model.Service
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/services/{id} [get]
func (h *ServiceHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	svc, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, svc)
}

// Create godoc
// @Summary Create a service
// @Tags admin-services
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.ServiceInput true "Service"
// @Success 201 {object} model.Service
// @Failure 400 {object} errors.ErrorResponse
// @Router /admin/services [post]
func (h *ServiceHandler) Create(c echo.Context) error {
	var req service.ServiceInput
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}
	svc, err := h.svc.Create(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, svc)
}

// Update godoc
// @Summary Update a service
// @Tags admin-services
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Service ID"
// @Param request body service.ServiceInput true "Service"
// @Success 200 {object} model.Service
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/services/{id} [put]
func (h *ServiceHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req service.ServiceInput
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}
	svc, err := h.svc.Update(c.Request().Context(), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, svc)
}

// Delete godoc
// @Summary Delete a service
// @Tags admin-services
// @Produce json
// @Security BearerAuth
// @Param id path string true "Service ID"
// @Param confirm query bool true "Must be true"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/services/{id} [delete]
func (h *ServiceHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id, confirmed(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "service deleted"})
}

// SetPublished godoc
// @Summary Publish or unpublish a service
// @Tags admin-services
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Service ID"
// @Param request body PublishRequest true "Published flag"
// @Success 200 {object} model.Service
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/services/{id}/published [patch]
func (h *ServiceHandler) SetPublished(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req PublishRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	svc, err := h.svc.SetPublished(c.Request().Context(), id, *req.Published)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, svc)
}

package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"riseadvertising/internal/service"
)

// SettingsHandler handles site settings administration.
type SettingsHandler struct {
	svc service.SettingsService
}

// NewSettingsHandler creates a new settings handler.
func NewSettingsHandler(svc service.SettingsService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

// List godoc
// @Summary List site settings
// @Tags admin-settings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.SiteSetting
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/settings [get]
func (h *SettingsHandler) List(c echo.Context) error {
	settings, err := h.svc.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, settings)
}

// Get godoc
// @Summary Get one site setting
// @Tags admin-settings
// @Produce json
// @Security BearerAuth
// @Param key path string true "contact, social or seo"
// @Success 200 {object} model.SiteSetting
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/settings/{key} [get]
func (h *SettingsHandler) Get(c echo.Context) error {
	setting, err := h.svc.Get(c.Request().Context(), c.Param("key"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, setting)
}

// Update godoc
// @Summary Replace a site setting value
// @Description The body is the new JSON object value.
// @Tags admin-settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param key path string true "contact, social or seo"
// @Param request body object true "Setting value"
// @Success 200 {object} model.SiteSetting
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/settings/{key} [put]
func (h *SettingsHandler) Update(c echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, 64<<10))
	if err != nil {
		return invalidBody()
	}
	setting, err := h.svc.Update(c.Request().Context(), c.Param("key"), json.RawMessage(body))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, setting)
}

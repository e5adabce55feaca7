package handler

import (
	"bytes"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"riseadvertising/internal/model"
	"riseadvertising/internal/service"
)

// QuoteSubmittedResponse is returned once a quote request is stored.
type QuoteSubmittedResponse struct {
	Quote *model.QuoteRequest `json:"quote"`
	State string              `json:"state"`
}

// QuoteHandler handles the public quote form and quote administration.
type QuoteHandler struct {
	quoteService service.QuoteService
	adminService service.QuoteAdminService
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(quoteService service.QuoteService, adminService service.QuoteAdminService) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService, adminService: adminService}
}

// Submit godoc
// @Summary Submit a quote request
// @Description Stores the request and notifies the business in the background. Notification failures do not affect the response.
// @Tags quotes
// @Accept json
// @Produce json
// @Param request body service.QuoteInput true "Quote request"
// @Success 201 {object} QuoteSubmittedResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /quotes [post]
func (h *QuoteHandler) Submit(c echo.Context) error {
	var req service.QuoteInput
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}

	quote, err := h.quoteService.Submit(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, QuoteSubmittedResponse{Quote: quote, State: "submitted"})
}

// List godoc
// @Summary List quote requests
// @Tags admin-quotes
// @Produce json
// @Security BearerAuth
// @Param status query string false "new, responded, quoted or closed"
// @Success 200 {array} model.QuoteRequest
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/quotes [get]
func (h *QuoteHandler) List(c echo.Context) error {
	quotes, err := h.adminService.List(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, quotes)
}

// Get godoc
// @Summary Get a quote request
// @Tags admin-quotes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quote ID"
// @Success 200 {object} model.QuoteRequest
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/quotes/{id} [get]
func (h *QuoteHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	quote, err := h.adminService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, quote)
}

// Update godoc
// @Summary Update quote status or internal notes
// @Tags admin-quotes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quote ID"
// @Param request body service.QuoteUpdate true "Fields to change"
// @Success 200 {object} model.QuoteRequest
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/quotes/{id} [patch]
func (h *QuoteHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req service.QuoteUpdate
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}
	quote, err := h.adminService.Update(c.Request().Context(), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, quote)
}

// Dashboard godoc
// @Summary Admin dashboard counts
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.Dashboard
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/dashboard [get]
func (h *QuoteHandler) Dashboard(c echo.Context) error {
	d, err := h.adminService.Dashboard(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, d)
}

func exportFilename(ext string) string {
	return "quotes-" + time.Now().Format("2006-01-02") + "." + ext
}

// ExportCSV godoc
// @Summary Export quote requests as CSV
// @Tags admin-quotes
// @Produce text/csv
// @Security BearerAuth
// @Param status query string false "Only quotes with this status"
// @Success 200 {file} file
// @Failure 400 {object} errors.ErrorResponse
// @Router /admin/quotes/export.csv [get]
func (h *QuoteHandler) ExportCSV(c echo.Context) error {
	var buf bytes.Buffer
	if err := h.adminService.ExportCSV(c.Request().Context(), &buf, c.QueryParam("status")); err != nil {
		return respondError(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+exportFilename("csv")+`"`)
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportXLSX godoc
// @Summary Export quote requests as an Excel workbook
// @Tags admin-quotes
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param status query string false "Only quotes with this status"
// @Success 200 {file} file
// @Failure 400 {object} errors.ErrorResponse
// @Router /admin/quotes/export.xlsx [get]
func (h *QuoteHandler) ExportXLSX(c echo.Context) error {
	var buf bytes.Buffer
	if err := h.adminService.ExportXLSX(c.Request().Context(), &buf, c.QueryParam("status")); err != nil {
		return respondError(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+exportFilename("xlsx")+`"`)
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

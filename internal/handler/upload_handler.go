package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"riseadvertising/internal/errors"
	"riseadvertising/internal/service"
)

// UploadHandler accepts admin image uploads.
type UploadHandler struct {
	svc service.UploadService
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(svc service.UploadService) *UploadHandler {
	return &UploadHandler{svc: svc}
}

// Upload godoc
// @Summary Upload an image
// @Description Stores the file under {entity}/{slug-or-random}-{random}.{ext} and returns its public URL. The caller saves the URL on the record.
// @Tags admin-uploads
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param entity path string true "categories, services or portfolio"
// @Param file formData file true "Image file"
// @Param slug formData string false "Slug used in the object name"
// @Success 201 {object} service.UploadResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /admin/uploads/{entity} [post]
func (h *UploadHandler) Upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return respondError(c, errors.NewValidationError(map[string]string{"file": "choose an image to upload"}))
	}
	src, err := fh.Open()
	if err != nil {
		return invalidBody()
	}
	defer src.Close()

	res, err := h.svc.UploadImage(c.Request().Context(), c.Param("entity"), c.FormValue("slug"), fh.Filename, src)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, res)
}

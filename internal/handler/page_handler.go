package handler

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"riseadvertising/internal/errors"
)

const fallbackNotFound = `<!doctype html><html><head><title>Page not found</title></head>` +
	`<body><h1>Page not found</h1><p><a href="/">Back to Rise Advertising</a></p></body></html>`

// PageHandler serves the single-page app shell for site and admin routes.
type PageHandler struct {
	webRoot string
}

// NewPageHandler serves index.html from webRoot.
func NewPageHandler(webRoot string) *PageHandler {
	return &PageHandler{webRoot: webRoot}
}

func (h *PageHandler) shell() ([]byte, error) {
	return os.ReadFile(filepath.Join(h.webRoot, "index.html"))
}

// Shell renders the app shell; the client router takes it from there.
func (h *PageHandler) Shell(c echo.Context) error {
	body, err := h.shell()
	if err != nil {
		return c.HTML(http.StatusServiceUnavailable, "<!doctype html><p>Site is being updated, please try again shortly.</p>")
	}
	return c.HTMLBlob(http.StatusOK, body)
}

// NotFound answers unknown pages with a 404 status. The shell still renders
// so the client can show its not-found view.
func (h *PageHandler) NotFound(c echo.Context) error {
	body, err := h.shell()
	if err != nil {
		return c.HTML(http.StatusNotFound, fallbackNotFound)
	}
	return c.HTMLBlob(http.StatusNotFound, body)
}

// APINotFound answers unknown API routes.
func (h *PageHandler) APINotFound(c echo.Context) error {
	return echo.NewHTTPError(http.StatusNotFound, errors.ErrorResponse{
		Error: "route not found",
		Code:  "NOT_FOUND",
	})
}

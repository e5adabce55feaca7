package router

import (
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"riseadvertising/internal/config"
	"riseadvertising/internal/handler"
	"riseadvertising/internal/storage/localfs"
)

// Handlers groups everything Register mounts.
type Handlers struct {
	Site      *handler.SiteHandler
	Quote     *handler.QuoteHandler
	Auth      *handler.AuthHandler
	Category  *handler.CategoryHandler
	Service   *handler.ServiceHandler
	Portfolio *handler.PortfolioHandler
	Settings  *handler.SettingsHandler
	Upload    *handler.UploadHandler
	Page      *handler.PageHandler
}

var publicPages = []string{
	"/",
	"/services",
	"/services/:slug",
	"/portfolio",
	"/about",
	"/contact",
	"/request-quote",
	"/faq",
	"/terms",
	"/privacy",
	"/admin/login",
	"/admin/forgot-password",
	"/admin/reset-password",
}

var adminPages = []string{
	"",
	"/services",
	"/categories",
	"/portfolio",
	"/quotes",
	"/settings",
}

// Register wires routes and middleware.
func Register(e *echo.Echo, cfg *config.Config, sessions SessionResolver, h Handlers, serveUploads bool) {
	e.Use(middleware.RequestID())
	e.Use(requestLogger())
	e.Use(middleware.Recover())

	e.Validator = NewCustomValidator()

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public site routes
	site := api.Group("/site")
	site.GET("/content", h.Site.Content)
	site.GET("/categories", h.Site.ListCategories)
	site.GET("/services", h.Site.ListServices)
	site.GET("/services/:slug", h.Site.GetService)
	site.GET("/catalog", h.Site.Catalog)
	site.GET("/portfolio", h.Site.ListPortfolio)
	site.GET("/portfolio/featured", h.Site.FeaturedPortfolio)
	site.GET("/settings", h.Site.Settings)

	api.POST("/quotes", h.Quote.Submit)

	// Auth routes
	authSession := requireSession(sessions)
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/refresh", h.Auth.Refresh)
	api.POST("/auth/logout", h.Auth.Logout)
	api.GET("/auth/session", h.Auth.Session)
	api.PUT("/auth/user", h.Auth.UpdateUser, authSession)
	api.POST("/auth/forgot-password", h.Auth.ForgotPassword)
	api.POST("/auth/reset-password", h.Auth.ResetPassword)
	api.GET("/auth/google/login", h.Auth.GoogleLogin)
	api.GET("/auth/google/callback", h.Auth.GoogleCallback)

	// Admin routes (require a session, and the editor role unless disabled)
	admin := api.Group("/admin", authSession, requireEditor(cfg.RequireEditorRole))

	admin.GET("/dashboard", h.Quote.Dashboard)

	admin.GET("/categories", h.Category.List)
	admin.GET("/categories/new", h.Category.Draft)
	admin.GET("/categories/:id", h.Category.Get)
	admin.POST("/categories", h.Category.Create)
	admin.PUT("/categories/:id", h.Category.Update)
	admin.DELETE("/categories/:id", h.Category.Delete)
	admin.PATCH("/categories/:id/published", h.Category.SetPublished)

	admin.GET("/services", h.Service.List)
	admin.GET("/services/new", h.Service.Draft)
	admin.GET("/services/:id", h.Service.Get)
	admin.POST("/services", h.Service.Create)
	admin.PUT("/services/:id", h.Service.Update)
	admin.DELETE("/services/:id", h.Service.Delete)
	admin.PATCH("/services/:id/published", h.Service.SetPublished)

	admin.GET("/portfolio", h.Portfolio.List)
	admin.GET("/portfolio/new", h.Portfolio.Draft)
	admin.GET("/portfolio/:id", h.Portfolio.Get)
	admin.POST("/portfolio", h.Portfolio.Create)
	admin.PUT("/portfolio/:id", h.Portfolio.Update)
	admin.DELETE("/portfolio/:id", h.Portfolio.Delete)
	admin.PATCH("/portfolio/:id/published", h.Portfolio.SetPublished)
	admin.POST("/portfolio/:id/images", h.Portfolio.AppendImage)
	admin.DELETE("/portfolio/:id/images/:index", h.Portfolio.RemoveImage)

	admin.GET("/quotes", h.Quote.List)
	admin.GET("/quotes/export.csv", h.Quote.ExportCSV)
	admin.GET("/quotes/export.xlsx", h.Quote.ExportXLSX)
	admin.GET("/quotes/:id", h.Quote.Get)
	admin.PATCH("/quotes/:id", h.Quote.Update)

	admin.GET("/settings", h.Settings.List)
	admin.GET("/settings/:key", h.Settings.Get)
	admin.PUT("/settings/:key", h.Settings.Update)

	admin.POST("/uploads/:entity", h.Upload.Upload)

	api.RouteNotFound("/*", h.Page.APINotFound)

	if serveUploads {
		e.Static(localfs.URLPrefix, cfg.StorageDir)
	}
	e.Static("/assets", filepath.Join(cfg.WebRoot, "assets"))

	// Pages
	for _, p := range publicPages {
		e.GET(p, h.Page.Shell)
	}
	gate := pageGate(sessions, cfg.RequireEditorRole)
	for _, p := range adminPages {
		e.GET("/admin"+p, h.Page.Shell, gate)
	}
	// Unknown admin paths stay behind the gate; signed-in editors get the 404 page.
	e.GET("/admin/*", h.Page.NotFound, gate)
	e.RouteNotFound("/*", h.Page.NotFound)
}

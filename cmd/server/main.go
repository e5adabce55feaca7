package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "riseadvertising/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"

	"riseadvertising/internal/auth"
	"riseadvertising/internal/cache"
	"riseadvertising/internal/config"
	"riseadvertising/internal/db"
	"riseadvertising/internal/handler"
	"riseadvertising/internal/model"
	"riseadvertising/internal/notify"
	"riseadvertising/internal/repository"
	"riseadvertising/internal/router"
	"riseadvertising/internal/service"
	"riseadvertising/internal/storage"
	"riseadvertising/internal/storage/localfs"
)

// @title Rise Advertising API
// @version 1.0
// @description Public catalog, quote requests and the admin console API of the Rise Advertising site.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	setupLogger(cfg)

	gormDB, err := db.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		resetTables(gormDB)
	}

	if err := db.Migrate(gormDB); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
	if err := cacheClient.Ping(pingCtx); err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, sessions will not survive sign-out checks")
	}
	cancelPing()

	store, serveUploads := objectStore(cfg)

	// Notifications
	var mailer notify.Mailer = notify.NopMailer{}
	if cfg.SMTPConfigured() {
		mailer = notify.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)
	} else {
		log.Warn().Msg("SMTP not configured, e-mails are only logged")
	}
	notifiers := notify.Multi{notify.NewEmailNotifier(mailer, cfg.BusinessEmail)}
	if cfg.NotifyWebhookURL != "" {
		notifiers = append(notifiers, notify.NewWebhookNotifier(cfg.NotifyWebhookURL, cfg.NotifyWebhookKey))
	}
	dispatcher := notify.NewDispatcher(notifiers, 64)

	// Initialize repositories
	categoryRepo := repository.NewCategoryRepository(gormDB)
	serviceRepo := repository.NewServiceRepository(gormDB)
	portfolioRepo := repository.NewPortfolioRepository(gormDB)
	quoteRepo := repository.NewQuoteRepository(gormDB)
	settingRepo := repository.NewSettingRepository(gormDB)
	userRepo := repository.NewUserRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	retry := service.ReadRetry{Attempts: cfg.ReadRetryAttempts, Delay: cfg.ReadRetryDelay}
	authService := service.NewAuthService(userRepo, jwtService, tokenStore, mailer, cfg.SiteURL)
	catalogService := service.NewCatalogService(categoryRepo, serviceRepo, portfolioRepo, settingRepo, retry)
	quoteService := service.NewQuoteService(quoteRepo, dispatcher)
	quoteAdminService := service.NewQuoteAdminService(quoteRepo, serviceRepo, categoryRepo, portfolioRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	productService := service.NewProductService(serviceRepo, categoryRepo)
	portfolioService := service.NewPortfolioService(portfolioRepo)
	settingsService := service.NewSettingsService(settingRepo)
	uploadService := service.NewUploadService(store)

	// Initialize handlers
	handlers := router.Handlers{
		Site:      handler.NewSiteHandler(catalogService),
		Quote:     handler.NewQuoteHandler(quoteService, quoteAdminService),
		Auth:      handler.NewAuthHandler(authService, googleOAuth(cfg), cfg.IsProduction()),
		Category:  handler.NewCategoryHandler(categoryService),
		Service:   handler.NewServiceHandler(productService),
		Portfolio: handler.NewPortfolioHandler(portfolioService),
		Settings:  handler.NewSettingsHandler(settingsService),
		Upload:    handler.NewUploadHandler(uploadService),
		Page:      handler.NewPageHandler(cfg.WebRoot),
	}

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, authService, handlers, serveUploads)

	log.Info().Str("url", swaggerURL(cfg)).Msg("swagger documentation available")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		addr := ":" + cfg.ServerPort
		log.Info().Str("addr", addr).Msg("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	dispatcher.Close()
	if err := cacheClient.Close(); err != nil {
		log.Error().Err(err).Msg("close redis")
	}
}

func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339
	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	}
}

func resetTables(gormDB *gorm.DB) {
	log.Warn().Msg("RESET_DB=true detected, dropping all tables")
	tables := []interface{}{
		&model.QuoteRequest{},
		&model.PortfolioItem{},
		&model.Service{},
		&model.ServiceCategory{},
		&model.SiteSetting{},
	}
	for _, table := range tables {
		if err := gormDB.Migrator().DropTable(table); err != nil {
			log.Warn().Err(err).Msg("drop table failed (may not exist)")
		}
	}
	log.Info().Msg("tables dropped")
}

// objectStore picks Cloudinary when configured and the local disk otherwise.
// The boolean reports whether the server must serve the uploads itself.
func objectStore(cfg *config.Config) (storage.ObjectStore, bool) {
	if cfg.CloudinaryURL != "" {
		cld, err := storage.NewCloudinary(cfg.CloudinaryURL)
		if err != nil {
			log.Fatal().Err(err).Msg("cloudinary init")
		}
		return cld, false
	}
	fs, err := localfs.New(cfg.StorageDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.StorageDir).Msg("storage dir init")
	}
	log.Info().Str("dir", cfg.StorageDir).Msg("CLOUDINARY_URL not set, storing uploads on disk")
	return fs, true
}

func googleOAuth(cfg *config.Config) *oauth2.Config {
	if !cfg.GoogleConfigured() {
		return nil
	}
	return &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.SiteURL + "/api/auth/google/callback",
		Scopes:       []string{"openid", "email"},
		Endpoint:     google.Endpoint,
	}
}

func swaggerURL(cfg *config.Config) string {
	host := cfg.SwaggerHost
	if host == "" {
		return cfg.SiteURL + "/swagger/index.html"
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	return strings.TrimRight(host, "/") + "/swagger/index.html"
}

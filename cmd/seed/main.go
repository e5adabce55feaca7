package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"riseadvertising/internal/catalog"
	"riseadvertising/internal/config"
	"riseadvertising/internal/db"
	"riseadvertising/internal/model"
	"riseadvertising/internal/repository"
)

// defaultSettings are the rows the site expects to exist. The admin console
// only ever updates them.
var defaultSettings = map[string]string{
	model.SettingContact: `{"phone":"+251 911 000 000","email":"info@riseadvertising.com","address":"Bole Road, Addis Ababa","hours":"Mon-Sat 8:30-18:00"}`,
	model.SettingSocial:  `{"facebook":"","instagram":"","linkedin":"","tiktok":"","telegram":""}`,
	model.SettingSEO:     `{"title":"Rise Advertising | Printing, Signage & Branding","description":"Large format printing, signage, vehicle branding and promotional items.","keywords":"printing, signage, branding"}`,
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	log.Info().Msg("starting seed script")

	cfg := config.Load()

	gormDB, err := db.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatal().Err(err).Msg("run migrations")
	}
	log.Info().Msg("database migrations completed")

	ctx := context.Background()

	seeded, updated, err := seedCategories(ctx, repository.NewCategoryRepository(gormDB))
	if err != nil {
		log.Fatal().Err(err).Msg("seed categories")
	}
	log.Info().Int("created", seeded).Int("updated", updated).Msg("categories seeded")

	if err := seedSettings(ctx, repository.NewSettingRepository(gormDB)); err != nil {
		log.Fatal().Err(err).Msg("seed settings")
	}
	log.Info().Int("keys", len(defaultSettings)).Msg("settings seeded")

	if err := seedAdmin(ctx, repository.NewUserRepository(gormDB), cfg.SeedAdminEmail, cfg.SeedAdminPassword); err != nil {
		log.Fatal().Err(err).Msg("seed admin user")
	}

	log.Info().Msg("seed completed successfully")
}

// seedCategories creates the missing A–M categories and fills in the image of
// existing ones that have none.
func seedCategories(ctx context.Context, repo repository.CategoryRepository) (seeded int, updated int, err error) {
	existing, err := repo.List(ctx, false)
	if err != nil {
		return 0, 0, fmt.Errorf("list categories: %w", err)
	}
	byLetter := make(map[string]*model.ServiceCategory, len(existing))
	for i := range existing {
		byLetter[strings.ToUpper(existing[i].Letter)] = &existing[i]
	}

	for i, def := range catalog.DefaultCategories {
		image := catalog.DefaultCategoryImages[def.Letter]
		if cat, ok := byLetter[def.Letter]; ok {
			if cat.ImageURL == "" && image != "" {
				cat.ImageURL = image
				if err := repo.Update(ctx, cat); err != nil {
					return seeded, updated, fmt.Errorf("update category %s: %w", def.Letter, err)
				}
				updated++
			}
			continue
		}

		cat := &model.ServiceCategory{
			Letter:      def.Letter,
			Title:       def.Title,
			Description: def.Description,
			ImageURL:    image,
			SortOrder:   i,
			Published:   true,
		}
		if err := repo.Create(ctx, cat); err != nil {
			return seeded, updated, fmt.Errorf("create category %s: %w", def.Letter, err)
		}
		seeded++
	}
	return seeded, updated, nil
}

func seedSettings(ctx context.Context, repo repository.SettingRepository) error {
	for _, key := range model.SettingKeys {
		setting := &model.SiteSetting{Key: key, Value: datatypes.JSON(defaultSettings[key])}
		if err := repo.Seed(ctx, setting); err != nil {
			return fmt.Errorf("seed setting %s: %w", key, err)
		}
	}
	return nil
}

func seedAdmin(ctx context.Context, repo repository.UserRepository, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil
	}

	_, err := repo.FindByEmail(ctx, email)
	if err == nil {
		log.Info().Str("email", email).Msg("admin user already exists")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("find admin: %w", err)
	}

	if len(password) < 8 {
		log.Warn().Msg("SEED_ADMIN_PASSWORD missing or shorter than 8 characters, admin user not created")
		return nil
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         "Administrator",
		Email:        email,
		PasswordHash: string(hashed),
		Role:         model.RoleAdmin,
	}
	if err := repo.Create(ctx, user); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	log.Info().Str("email", email).Msg("admin user created")
	return nil
}

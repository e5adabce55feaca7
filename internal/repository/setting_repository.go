package repository

import (
	"context"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"riseadvertising/internal/model"
)

// SettingRepository defines site setting persistence operations.
type SettingRepository interface {
	List(ctx context.Context) ([]model.SiteSetting, error)
	FindByKey(ctx context.Context, key string) (*model.SiteSetting, error)
	UpdateValue(ctx context.Context, key string, value datatypes.JSON) error
	// Seed inserts a row only if the key is absent.
	Seed(ctx context.Context, setting *model.SiteSetting) error
}

type settingRepository struct {
	db *gorm.DB
}

// NewSettingRepository creates a new settings repository.
func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) List(ctx context.Context) ([]model.SiteSetting, error) {
	var settings []model.SiteSetting
	if err := r.db.WithContext(ctx).Order(clause.OrderByColumn{Column: clause.Column{Name: "key"}}).Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

func (r *settingRepository) FindByKey(ctx context.Context, key string) (*model.SiteSetting, error) {
	var setting model.SiteSetting
	if err := r.db.WithContext(ctx).Where(&model.SiteSetting{Key: key}).First(&setting).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *settingRepository) UpdateValue(ctx context.Context, key string, value datatypes.JSON) error {
	return r.db.WithContext(ctx).Model(&model.SiteSetting{Key: key}).
		Update("value", value).Error
}

func (r *settingRepository) Seed(ctx context.Context, setting *model.SiteSetting) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(setting).Error
}

package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	apperrors "riseadvertising/internal/errors"
	"riseadvertising/internal/model"
	"riseadvertising/internal/repository"
)

// SettingsService reads and updates the pre-seeded site settings rows.
type SettingsService interface {
	List(ctx context.Context) ([]model.SiteSetting, error)
	Get(ctx context.Context, key string) (*model.SiteSetting, error)
	Update(ctx context.Context, key string, value json.RawMessage) (*model.SiteSetting, error)
}

type settingsService struct {
	repo repository.SettingRepository
}

// NewSettingsService creates a settings service.
func NewSettingsService(repo repository.SettingRepository) SettingsService {
	return &settingsService{repo: repo}
}

func (s *settingsService) List(ctx context.Context) ([]model.SiteSetting, error) {
	return s.repo.List(ctx)
}

func (s *settingsService) Get(ctx context.Context, key string) (*model.SiteSetting, error) {
	if !model.IsSettingKey(key) {
		return nil, apperrors.ErrUnknownSettingKey
	}
	setting, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		return nil, translateNotFound(err, apperrors.ErrNotFound)
	}
	return setting, nil
}

// Update replaces the value of an existing key. The value must be a JSON
// object; its shape is not checked further.
func (s *settingsService) Update(ctx context.Context, key string, value json.RawMessage) (*model.SiteSetting, error) {
	setting, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var obj map[string]interface{}
	if err := json.Unmarshal(value, &obj); err != nil || obj == nil {
		return nil, apperrors.ErrInvalidSettingValue
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, value); err != nil {
		return nil, apperrors.ErrInvalidSettingValue
	}

	setting.Value = datatypes.JSON(compact.Bytes())
	if err := s.repo.UpdateValue(ctx, key, setting.Value); err != nil {
		return nil, fmt.Errorf("update setting %s: %w", key, err)
	}
	return setting, nil
}

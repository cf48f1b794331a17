package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/platform-admin/internal/domain"
	"github.com/spec-kit/platform-admin/internal/repository"
	apperrors "github.com/spec-kit/platform-admin/pkg/util"
)

// SettingsService manages admin-editable configuration values.
type SettingsService struct {
	settings repository.SettingRepository
}

// NewSettingsService constructs the service.
func NewSettingsService(settings repository.SettingRepository) *SettingsService {
	return &SettingsService{settings: settings}
}

// Get loads one setting by key.
func (s *SettingsService) Get(ctx context.Context, key string) (*domain.Setting, error) {
	setting, err := s.settings.Get(ctx, key)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("setting", map[string]any{"key": key})
		}
		return nil, err
	}
	return setting, nil
}

// Upsert writes a setting value.
func (s *SettingsService) Upsert(ctx context.Context, key, group, value string) (*domain.Setting, error) {
	setting := &domain.Setting{
		Key:       key,
		Group:     group,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.settings.Upsert(ctx, setting); err != nil {
		return nil, err
	}
	return setting, nil
}

// ListByGroup returns all settings in a group.
func (s *SettingsService) ListByGroup(ctx context.Context, group string) ([]domain.Setting, error) {
	return s.settings.ListByGroup(ctx, group)
}

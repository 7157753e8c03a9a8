package services

import (
	"context"

	"clinicBack/internal/models"
	"clinicBack/internal/repositories"
)

type SettingsService struct {
	SettingsRepo *repositories.SettingsRepository
}

func (s *SettingsService) GetSettings(ctx context.Context) (models.Settings, error) {
	return s.SettingsRepo.GetSettings(ctx)
}

func (s *SettingsService) UpsertSettings(ctx context.Context, settings models.Settings) (models.Settings, error) {
	return s.SettingsRepo.UpsertSettings(ctx, settings)
}

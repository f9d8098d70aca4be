package services

import (
	"Pronostico/forecast"
	"Pronostico/repositories"
	"Pronostico/utils"
	"context"
)

type SettingsService struct {
	repository *repositories.SettingsRepository
}

func NewSettingsService(repository *repositories.SettingsRepository) *SettingsService {
	return &SettingsService{repository: repository}
}

func (s *SettingsService) Get(ctx context.Context) (map[string]string, error) {
	return s.repository.GetSettings(ctx)
}

func (s *SettingsService) Save(ctx context.Context, values map[string]string) error {
	if err := utils.ValidateSettings(values); err != nil {
		return err
	}
	return s.repository.SaveSettings(ctx, values)
}

// Thresholds returns the compliance classification boundaries.
func (s *SettingsService) Thresholds(ctx context.Context) (forecast.Thresholds, error) {
	return s.repository.GetThresholds(ctx)
}

// WorkingDays counts the working days of a fiscal month. baseYear is the
// calendar year the fiscal year starts in; month 12 rolls over to January
// of the next year.
func (s *SettingsService) WorkingDays(ctx context.Context, baseYear, month int) (int, error) {
	workDays, err := s.repository.GetWorkDays(ctx)
	if err != nil {
		return 0, err
	}
	calendarMonth, yearOffset := forecast.CalendarMonth(month)
	return utils.CountWorkingDays(baseYear+yearOffset, calendarMonth, workDays), nil
}

package services

import (
	"Pronostico/models"
	"Pronostico/repositories"
	"Pronostico/utils"
	"context"
)

type YearService struct {
	repository *repositories.YearRepository
}

func NewYearService(repository *repositories.YearRepository) *YearService {
	return &YearService{repository: repository}
}

func (s *YearService) GetAll(ctx context.Context) ([]models.FiscalYear, error) {
	return s.repository.GetAll(ctx)
}

func (s *YearService) GetActive(ctx context.Context) (*models.FiscalYear, error) {
	return s.repository.GetActive(ctx)
}

func (s *YearService) Create(ctx context.Context, year *models.FiscalYear) error {
	if err := utils.ValidateFiscalYear(year); err != nil {
		return err
	}
	return s.repository.Create(ctx, year)
}

func (s *YearService) Update(ctx context.Context, year *models.FiscalYear) error {
	if err := utils.ValidateFiscalYear(year); err != nil {
		return err
	}
	return s.repository.Update(ctx, year)
}

func (s *YearService) Delete(ctx context.Context, id uint) error {
	return s.repository.Delete(ctx, id)
}

package services

import (
	"Pronostico/forecast"
	"Pronostico/models"
	"Pronostico/repositories"
	"Pronostico/utils"
	"context"
	"errors"
)

// PopulationService saves population records. The repository recomputes
// the month's projections in the same transaction, so callers never see
// population and projections out of step.
type PopulationService struct {
	repository *repositories.PopulationRepository
	years      *repositories.YearRepository
}

func NewPopulationService(repository *repositories.PopulationRepository, years *repositories.YearRepository) *PopulationService {
	return &PopulationService{repository: repository, years: years}
}

// List returns population rows. When no year filter is given the active
// fiscal year is used; with no active year the listing is unfiltered.
func (s *PopulationService) List(ctx context.Context, yearID, epsID uint, month int) ([]models.Population, error) {
	if yearID == 0 {
		year, err := s.years.GetActive(ctx)
		if err != nil && !errors.Is(err, forecast.ErrNoActiveYear) {
			return nil, err
		}
		if year != nil {
			yearID = year.ID
		}
	}
	return s.repository.List(ctx, yearID, epsID, month)
}

func (s *PopulationService) Save(ctx context.Context, population *models.Population) error {
	if err := utils.ValidatePopulation(population); err != nil {
		return err
	}
	return s.repository.Save(ctx, population)
}

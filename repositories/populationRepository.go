package repositories

import (
	"Pronostico/cache"
	"Pronostico/database"
	"Pronostico/forecast"
	"Pronostico/models"
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PopulationRepository struct {
	cache *cache.Cache
}

func NewPopulationRepository(cache *cache.Cache) *PopulationRepository {
	return &PopulationRepository{cache: cache}
}

// List returns population rows matching the filters; zero values mean no
// filter on that field.
func (r *PopulationRepository) List(ctx context.Context, yearID, epsID uint, month int) ([]models.Population, error) {
	query := database.DB.WithContext(ctx).Model(&models.Population{})
	if yearID > 0 {
		query = query.Where("year_id = ?", yearID)
	}
	if epsID > 0 {
		query = query.Where("eps_id = ?", epsID)
	}
	if month > 0 {
		query = query.Where("month = ?", month)
	}

	var populations []models.Population
	if err := query.Order("eps_id, month").Find(&populations).Error; err != nil {
		return nil, fmt.Errorf("failed to list population: %w", err)
	}
	return populations, nil
}

// Save upserts the population row for its (eps, year, month) key and
// recomputes the month's projections inside the same transaction, so a
// failed projection run leaves the population unchanged too.
func (r *PopulationRepository) Save(ctx context.Context, population *models.Population) error {
	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "eps_id"}, {Name: "year_id"}, {Name: "month"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"total_population", "active_population", "fertile_women", "pregnant_women",
				"adults", "pediatric_diagnosed", "minors_follow_up", "updated_at",
			}),
		}).Create(population).Error
		if err != nil {
			return err
		}

		engine := forecast.NewProjectionEngine(NewForecastRepository(tx))
		return engine.ComputeProjection(ctx, population.EPSID, population.YearID, population.Month)
	})
	if err != nil {
		return fmt.Errorf("failed to save population: %w", err)
	}
	return r.cache.DeleteBatch(ctx, fmt.Sprintf("%s:stats:%d", dashboardCacheKey, population.YearID))
}

package repositories

import (
	"Pronostico/database"
	"Pronostico/forecast"
	"Pronostico/models"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrYearNotFound     = errors.New("fiscal year not found")
	ErrYearLabelTaken   = errors.New("a fiscal year with that label already exists")
	ErrActiveYearDelete = errors.New("the active fiscal year cannot be deleted")
	ErrLastYearDelete   = errors.New("the only fiscal year cannot be deleted")
)

type YearRepository struct{}

func NewYearRepository() *YearRepository {
	return &YearRepository{}
}

func (r *YearRepository) GetAll(ctx context.Context) ([]models.FiscalYear, error) {
	var years []models.FiscalYear
	err := database.DB.WithContext(ctx).Order("start_date DESC").Find(&years).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list fiscal years: %w", err)
	}
	return years, nil
}

// GetActive returns the single active fiscal year.
func (r *YearRepository) GetActive(ctx context.Context) (*models.FiscalYear, error) {
	var year models.FiscalYear
	err := database.DB.WithContext(ctx).First(&year, "active = ?", true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, forecast.ErrNoActiveYear
		}
		return nil, fmt.Errorf("failed to get active fiscal year: %w", err)
	}
	return &year, nil
}

// Create inserts a fiscal year. Activating it deactivates every other year
// in the same transaction, preserving the single-active invariant.
func (r *YearRepository) Create(ctx context.Context, year *models.FiscalYear) error {
	var duplicate models.FiscalYear
	err := database.DB.WithContext(ctx).First(&duplicate, "year_label = ?", year.Label).Error
	if err == nil {
		return ErrYearLabelTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check year label: %w", err)
	}

	err = database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if year.Active {
			if err := tx.Model(&models.FiscalYear{}).Where("active = ?", true).Update("active", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(year).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create fiscal year: %w", err)
	}
	return nil
}

func (r *YearRepository) Update(ctx context.Context, year *models.FiscalYear) error {
	var existing models.FiscalYear
	if err := database.DB.WithContext(ctx).First(&existing, "id = ?", year.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrYearNotFound
		}
		return fmt.Errorf("failed to get fiscal year: %w", err)
	}

	var duplicate models.FiscalYear
	err := database.DB.WithContext(ctx).First(&duplicate, "year_label = ? AND id != ?", year.Label, year.ID).Error
	if err == nil {
		return ErrYearLabelTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check year label: %w", err)
	}

	err = database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if year.Active {
			if err := tx.Model(&models.FiscalYear{}).Where("id != ?", year.ID).Update("active", false).Error; err != nil {
				return err
			}
		}
		return tx.Model(&existing).
			Select("year_label", "start_date", "end_date", "active").
			Updates(map[string]interface{}{
				"year_label": year.Label,
				"start_date": year.StartDate,
				"end_date":   year.EndDate,
				"active":     year.Active,
			}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to update fiscal year: %w", err)
	}
	return nil
}

// Delete removes a fiscal year and cascades to its per-year records. The
// active year and the only remaining year are protected.
func (r *YearRepository) Delete(ctx context.Context, id uint) error {
	var year models.FiscalYear
	if err := database.DB.WithContext(ctx).First(&year, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrYearNotFound
		}
		return fmt.Errorf("failed to get fiscal year: %w", err)
	}
	if year.Active {
		return ErrActiveYearDelete
	}

	var count int64
	if err := database.DB.WithContext(ctx).Model(&models.FiscalYear{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count fiscal years: %w", err)
	}
	if count <= 1 {
		return ErrLastYearDelete
	}

	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&models.Population{},
			&models.ProjectedAppointment{},
			&models.CompletedAppointment{},
		} {
			if err := tx.Where("year_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.FiscalYear{}, "id = ?", id).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete fiscal year: %w", err)
	}
	return nil
}

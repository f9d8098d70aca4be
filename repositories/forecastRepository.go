package repositories

import (
	"Pronostico/forecast"
	"Pronostico/models"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ForecastRepository is the gorm implementation of forecast.Store. The db
// handle may be a transaction; InTransaction derives a repository bound to
// the transactional handle so engine writes commit or roll back as a unit.
type ForecastRepository struct {
	db *gorm.DB
}

func NewForecastRepository(db *gorm.DB) *ForecastRepository {
	return &ForecastRepository{db: db}
}

func (r *ForecastRepository) InTransaction(ctx context.Context, fn func(tx forecast.Store) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ForecastRepository{db: tx})
	})
}

func (r *ForecastRepository) GetPopulation(ctx context.Context, epsID, yearID uint, month int) (*models.Population, error) {
	var population models.Population
	err := r.db.WithContext(ctx).
		First(&population, "eps_id = ? AND year_id = ? AND month = ?", epsID, yearID, month).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, forecast.ErrNoPopulationData
		}
		return nil, fmt.Errorf("failed to get population: %w", err)
	}
	return &population, nil
}

func (r *ForecastRepository) ListContractedServices(ctx context.Context, epsID uint) ([]forecast.ContractedService, error) {
	var services []forecast.ContractedService
	err := r.db.WithContext(ctx).
		Model(&models.ContractedService{}).
		Select("contracted_services.specialty_id, specialties.code, contracted_services.yearly_qty").
		Joins("JOIN specialties ON specialties.id = contracted_services.specialty_id").
		Where("contracted_services.eps_id = ?", epsID).
		Scan(&services).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list contracted services: %w", err)
	}
	return services, nil
}

func (r *ForecastRepository) ListSpecialties(ctx context.Context) ([]forecast.SpecialtyRef, error) {
	var specialties []forecast.SpecialtyRef
	err := r.db.WithContext(ctx).
		Model(&models.Specialty{}).
		Select("id, code").
		Order("id").
		Scan(&specialties).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list specialties: %w", err)
	}
	return specialties, nil
}

func (r *ForecastRepository) ListActiveEPS(ctx context.Context) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.EPS{}).
		Where("active = ?", true).
		Order("id").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list active EPS: %w", err)
	}
	return ids, nil
}

func (r *ForecastRepository) Distribution(ctx context.Context) ([]int, error) {
	value, err := settingValue(ctx, r.db, models.SettingDistribution, defaultDistribution)
	if err != nil {
		return nil, err
	}
	return parseIntList(value), nil
}

func (r *ForecastRepository) ComplianceThresholds(ctx context.Context) (forecast.Thresholds, error) {
	red, err := settingValue(ctx, r.db, models.SettingThresholdRed, defaultThresholdRed)
	if err != nil {
		return forecast.Thresholds{}, err
	}
	yellow, err := settingValue(ctx, r.db, models.SettingThresholdYellow, defaultThresholdYellow)
	if err != nil {
		return forecast.Thresholds{}, err
	}
	return forecast.Thresholds{Red: parseIntOr(red, 70), Yellow: parseIntOr(yellow, 90)}, nil
}

func (r *ForecastRepository) GetProjection(ctx context.Context, epsID, yearID uint, month int, specialtyID uint) (int, bool, error) {
	var projection models.ProjectedAppointment
	err := r.db.WithContext(ctx).
		First(&projection, "eps_id = ? AND year_id = ? AND month = ? AND specialty_id = ?",
			epsID, yearID, month, specialtyID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to get projection: %w", err)
	}
	return projection.ProjectedQty, true, nil
}

func (r *ForecastRepository) UpsertProjection(ctx context.Context, epsID, yearID uint, month int, specialtyID uint, qty int) error {
	projection := models.ProjectedAppointment{
		EPSID:        epsID,
		YearID:       yearID,
		Month:        month,
		SpecialtyID:  specialtyID,
		ProjectedQty: qty,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "eps_id"}, {Name: "year_id"}, {Name: "month"}, {Name: "specialty_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"projected_qty"}),
	}).Create(&projection).Error
	if err != nil {
		return fmt.Errorf("failed to upsert projection: %w", err)
	}
	return nil
}

func (r *ForecastRepository) AddToProjection(ctx context.Context, epsID, yearID uint, month int, specialtyID uint, delta int) error {
	projection := models.ProjectedAppointment{
		EPSID:        epsID,
		YearID:       yearID,
		Month:        month,
		SpecialtyID:  specialtyID,
		ProjectedQty: delta,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "eps_id"}, {Name: "year_id"}, {Name: "month"}, {Name: "specialty_id"},
		},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"projected_qty": gorm.Expr("projected_appointments.projected_qty + ?", delta),
		}),
	}).Create(&projection).Error
	if err != nil {
		return fmt.Errorf("failed to add to projection: %w", err)
	}
	return nil
}

func (r *ForecastRepository) SumCompleted(ctx context.Context, epsID, yearID uint, month int, specialtyID uint) (int, error) {
	var total int
	err := r.db.WithContext(ctx).
		Model(&models.CompletedAppointment{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("eps_id = ? AND year_id = ? AND month = ? AND specialty_id = ?", epsID, yearID, month, specialtyID).
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum completed appointments: %w", err)
	}
	return total, nil
}

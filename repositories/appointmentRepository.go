package repositories

import (
	"Pronostico/cache"
	"Pronostico/database"
	"Pronostico/models"
	"context"
	"errors"
	"fmt"
)

var ErrAppointmentNotFound = errors.New("completed appointment not found")

// AppointmentRepository stores the append-only log of completed
// appointments.
type AppointmentRepository struct {
	cache *cache.Cache
}

func NewAppointmentRepository(cache *cache.Cache) *AppointmentRepository {
	return &AppointmentRepository{cache: cache}
}

// AppointmentSummary pairs projected and completed totals per
// (eps, specialty) for the data-entry screen.
type AppointmentSummary struct {
	EPSID        uint `json:"eps_id"`
	SpecialtyID  uint `json:"specialty_id"`
	ProjectedQty int  `json:"projected_qty"`
	CompletedQty int  `json:"completed_qty"`
}

func (r *AppointmentRepository) List(ctx context.Context, yearID, epsID uint, month int, specialtyID uint) ([]models.CompletedAppointment, error) {
	query := database.DB.WithContext(ctx).Model(&models.CompletedAppointment{})
	if yearID > 0 {
		query = query.Where("year_id = ?", yearID)
	}
	if epsID > 0 {
		query = query.Where("eps_id = ?", epsID)
	}
	if month > 0 {
		query = query.Where("month = ?", month)
	}
	if specialtyID > 0 {
		query = query.Where("specialty_id = ?", specialtyID)
	}

	var appointments []models.CompletedAppointment
	if err := query.Order("appointment_date DESC, id DESC").Find(&appointments).Error; err != nil {
		return nil, fmt.Errorf("failed to list completed appointments: %w", err)
	}
	return appointments, nil
}

func (r *AppointmentRepository) Create(ctx context.Context, appointment *models.CompletedAppointment) error {
	if err := database.DB.WithContext(ctx).Create(appointment).Error; err != nil {
		return fmt.Errorf("failed to create completed appointment: %w", err)
	}
	return r.cache.DeleteBatch(ctx, fmt.Sprintf("%s:stats:%d", dashboardCacheKey, appointment.YearID))
}

func (r *AppointmentRepository) Delete(ctx context.Context, id uint) error {
	result := database.DB.WithContext(ctx).Delete(&models.CompletedAppointment{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete completed appointment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAppointmentNotFound
	}
	// The row's year is gone with it, so drop every cached dashboard entry.
	return r.cache.DeleteAll(ctx, dashboardCacheKey+"*")
}

// Summaries aggregates projected and completed quantities per
// (eps, specialty) under the given filters.
func (r *AppointmentRepository) Summaries(ctx context.Context, yearID, epsID uint, month int) ([]AppointmentSummary, error) {
	projected := database.DB.WithContext(ctx).
		Model(&models.ProjectedAppointment{}).
		Select("eps_id, specialty_id, SUM(projected_qty) AS projected_qty").
		Group("eps_id, specialty_id")
	completed := database.DB.WithContext(ctx).
		Model(&models.CompletedAppointment{}).
		Select("eps_id, specialty_id, SUM(quantity) AS completed_qty").
		Group("eps_id, specialty_id")
	if yearID > 0 {
		projected = projected.Where("year_id = ?", yearID)
		completed = completed.Where("year_id = ?", yearID)
	}
	if epsID > 0 {
		projected = projected.Where("eps_id = ?", epsID)
		completed = completed.Where("eps_id = ?", epsID)
	}
	if month > 0 {
		projected = projected.Where("month = ?", month)
		completed = completed.Where("month = ?", month)
	}

	var projectedRows []AppointmentSummary
	if err := projected.Scan(&projectedRows).Error; err != nil {
		return nil, fmt.Errorf("failed to sum projected appointments: %w", err)
	}
	var completedRows []AppointmentSummary
	if err := completed.Scan(&completedRows).Error; err != nil {
		return nil, fmt.Errorf("failed to sum completed appointments: %w", err)
	}

	completedByKey := make(map[[2]uint]int, len(completedRows))
	for _, row := range completedRows {
		completedByKey[[2]uint{row.EPSID, row.SpecialtyID}] = row.CompletedQty
	}
	for i := range projectedRows {
		projectedRows[i].CompletedQty = completedByKey[[2]uint{projectedRows[i].EPSID, projectedRows[i].SpecialtyID}]
	}
	return projectedRows, nil
}

// ListSpecialties returns the full specialty catalogue for data entry.
func (r *AppointmentRepository) ListSpecialties(ctx context.Context) ([]models.Specialty, error) {
	var specialties []models.Specialty
	if err := database.DB.WithContext(ctx).Order("name").Find(&specialties).Error; err != nil {
		return nil, fmt.Errorf("failed to list specialties: %w", err)
	}
	return specialties, nil
}

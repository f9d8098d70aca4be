package repositories

import (
	"Pronostico/cache"
	"Pronostico/database"
	"Pronostico/forecast"
	"Pronostico/models"
	"context"
	"fmt"
	"time"
)

const (
	dashboardCacheKey    = "dashboard_cache"
	DashboardCacheExpiry = 5 * time.Minute
)

// ReportRepository runs the read-only aggregation queries behind reports
// and the dashboard.
type ReportRepository struct {
	cache *cache.Cache
}

func NewReportRepository(cache *cache.Cache) *ReportRepository {
	return &ReportRepository{cache: cache}
}

// PopulationStats are the per-EPS population totals shown on the EPS report.
type PopulationStats struct {
	TotalPopulation  int `json:"total_population"`
	ActivePopulation int `json:"active_population"`
}

// MonthlyTotals is one point of the dashboard compliance series.
type MonthlyTotals struct {
	Month        int `json:"month"`
	ProjectedQty int `json:"projected_qty"`
	CompletedQty int `json:"completed_qty"`
}

// SpecialtyTotal is one slice of the dashboard specialty distribution.
type SpecialtyTotal struct {
	Name         string `json:"name"`
	ProjectedQty int    `json:"projected_qty"`
}

// EPSTotals pairs projected and completed totals per EPS.
type EPSTotals struct {
	EPSID        uint   `json:"eps_id"`
	EPSName      string `json:"eps_name"`
	ProjectedQty int    `json:"projected_qty"`
	CompletedQty int    `json:"completed_qty"`
}

// DashboardStats are the headline numbers of the dashboard.
type DashboardStats struct {
	ActiveEPS       int64 `json:"active_eps"`
	TotalPopulation int   `json:"total_population"`
	TotalProjected  int   `json:"total_projected"`
	TotalCompleted  int   `json:"total_completed"`
}

// ProjectedTotals returns projected quantities grouped by (eps, specialty)
// for a fiscal-year month range. monthStart/monthEnd of 0 mean the whole
// year; epsID of 0 means all EPS.
func (r *ReportRepository) ProjectedTotals(ctx context.Context, yearID, epsID uint, monthStart, monthEnd int) ([]forecast.ProjectedTotal, error) {
	query := database.DB.WithContext(ctx).
		Model(&models.ProjectedAppointment{}).
		Select("projected_appointments.eps_id, eps.name AS eps_name, projected_appointments.specialty_id, specialties.name AS specialty_name, SUM(projected_appointments.projected_qty) AS projected_qty").
		Joins("JOIN eps ON eps.id = projected_appointments.eps_id").
		Joins("JOIN specialties ON specialties.id = projected_appointments.specialty_id").
		Where("projected_appointments.year_id = ?", yearID).
		Group("projected_appointments.eps_id, eps.name, projected_appointments.specialty_id, specialties.name").
		Order("eps.name, specialties.name")
	if monthStart > 0 && monthEnd > 0 {
		query = query.Where("projected_appointments.month BETWEEN ? AND ?", monthStart, monthEnd)
	}
	if epsID > 0 {
		query = query.Where("projected_appointments.eps_id = ?", epsID)
	}

	var totals []forecast.ProjectedTotal
	if err := query.Scan(&totals).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate projected appointments: %w", err)
	}
	return totals, nil
}

// CompletedTotals returns completed-appointment sums grouped by
// (eps, specialty) under the same filter semantics as ProjectedTotals.
func (r *ReportRepository) CompletedTotals(ctx context.Context, yearID, epsID uint, monthStart, monthEnd int) ([]forecast.CompletedTotal, error) {
	query := database.DB.WithContext(ctx).
		Model(&models.CompletedAppointment{}).
		Select("eps_id, specialty_id, SUM(quantity) AS completed_qty").
		Where("year_id = ?", yearID).
		Group("eps_id, specialty_id")
	if monthStart > 0 && monthEnd > 0 {
		query = query.Where("month BETWEEN ? AND ?", monthStart, monthEnd)
	}
	if epsID > 0 {
		query = query.Where("eps_id = ?", epsID)
	}

	var totals []forecast.CompletedTotal
	if err := query.Scan(&totals).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate completed appointments: %w", err)
	}
	return totals, nil
}

// PopulationTotals sums the population buckets of one EPS over the year.
func (r *ReportRepository) PopulationTotals(ctx context.Context, yearID, epsID uint) (PopulationStats, error) {
	var stats PopulationStats
	err := database.DB.WithContext(ctx).
		Model(&models.Population{}).
		Select("COALESCE(SUM(total_population), 0) AS total_population, COALESCE(SUM(active_population), 0) AS active_population").
		Where("year_id = ? AND eps_id = ?", yearID, epsID).
		Scan(&stats).Error
	if err != nil {
		return PopulationStats{}, fmt.Errorf("failed to sum population: %w", err)
	}
	return stats, nil
}

// Stats returns the dashboard headline numbers for a fiscal year, cached
// briefly since every dashboard load asks for them.
func (r *ReportRepository) Stats(ctx context.Context, yearID uint) (DashboardStats, error) {
	cacheKey := fmt.Sprintf("%s:stats:%d", dashboardCacheKey, yearID)
	var cached DashboardStats
	if found, _ := r.cache.GetJSON(ctx, cacheKey, &cached); found {
		return cached, nil
	}

	var stats DashboardStats
	if err := database.DB.WithContext(ctx).Model(&models.EPS{}).Where("active = ?", true).Count(&stats.ActiveEPS).Error; err != nil {
		return DashboardStats{}, fmt.Errorf("failed to count active EPS: %w", err)
	}
	err := database.DB.WithContext(ctx).
		Model(&models.Population{}).
		Select("COALESCE(SUM(total_population), 0)").
		Where("year_id = ?", yearID).
		Scan(&stats.TotalPopulation).Error
	if err != nil {
		return DashboardStats{}, fmt.Errorf("failed to sum population: %w", err)
	}
	err = database.DB.WithContext(ctx).
		Model(&models.ProjectedAppointment{}).
		Select("COALESCE(SUM(projected_qty), 0)").
		Where("year_id = ?", yearID).
		Scan(&stats.TotalProjected).Error
	if err != nil {
		return DashboardStats{}, fmt.Errorf("failed to sum projected appointments: %w", err)
	}
	err = database.DB.WithContext(ctx).
		Model(&models.CompletedAppointment{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("year_id = ?", yearID).
		Scan(&stats.TotalCompleted).Error
	if err != nil {
		return DashboardStats{}, fmt.Errorf("failed to sum completed appointments: %w", err)
	}

	r.cache.SetJSON(ctx, cacheKey, stats, DashboardCacheExpiry)
	return stats, nil
}

// MonthlySeries returns projected and completed totals per fiscal month.
func (r *ReportRepository) MonthlySeries(ctx context.Context, yearID uint) ([]MonthlyTotals, error) {
	var projected []MonthlyTotals
	err := database.DB.WithContext(ctx).
		Model(&models.ProjectedAppointment{}).
		Select("month, SUM(projected_qty) AS projected_qty").
		Where("year_id = ?", yearID).
		Group("month").
		Scan(&projected).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate projected by month: %w", err)
	}
	var completed []MonthlyTotals
	err = database.DB.WithContext(ctx).
		Model(&models.CompletedAppointment{}).
		Select("month, SUM(quantity) AS completed_qty").
		Where("year_id = ?", yearID).
		Group("month").
		Scan(&completed).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate completed by month: %w", err)
	}

	byMonth := make(map[int]*MonthlyTotals, 12)
	series := make([]MonthlyTotals, 12)
	for m := 1; m <= 12; m++ {
		series[m-1] = MonthlyTotals{Month: m}
		byMonth[m] = &series[m-1]
	}
	for _, row := range projected {
		if point, ok := byMonth[row.Month]; ok {
			point.ProjectedQty = row.ProjectedQty
		}
	}
	for _, row := range completed {
		if point, ok := byMonth[row.Month]; ok {
			point.CompletedQty = row.CompletedQty
		}
	}
	return series, nil
}

// SpecialtyDistribution returns the projected totals grouped by specialty.
func (r *ReportRepository) SpecialtyDistribution(ctx context.Context, yearID uint) ([]SpecialtyTotal, error) {
	var totals []SpecialtyTotal
	err := database.DB.WithContext(ctx).
		Model(&models.ProjectedAppointment{}).
		Select("specialties.name, SUM(projected_appointments.projected_qty) AS projected_qty").
		Joins("JOIN specialties ON specialties.id = projected_appointments.specialty_id").
		Where("projected_appointments.year_id = ?", yearID).
		Group("specialties.name").
		Order("specialties.name").
		Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate specialty distribution: %w", err)
	}
	return totals, nil
}

// EPSSeries returns projected and completed totals per EPS.
func (r *ReportRepository) EPSSeries(ctx context.Context, yearID uint) ([]EPSTotals, error) {
	var projected []EPSTotals
	err := database.DB.WithContext(ctx).
		Model(&models.ProjectedAppointment{}).
		Select("projected_appointments.eps_id, eps.name AS eps_name, SUM(projected_appointments.projected_qty) AS projected_qty").
		Joins("JOIN eps ON eps.id = projected_appointments.eps_id").
		Where("projected_appointments.year_id = ?", yearID).
		Group("projected_appointments.eps_id, eps.name").
		Order("eps.name").
		Scan(&projected).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate projected by EPS: %w", err)
	}
	var completed []EPSTotals
	err = database.DB.WithContext(ctx).
		Model(&models.CompletedAppointment{}).
		Select("eps_id, SUM(quantity) AS completed_qty").
		Where("year_id = ?", yearID).
		Group("eps_id").
		Scan(&completed).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate completed by EPS: %w", err)
	}

	completedByEPS := make(map[uint]int, len(completed))
	for _, row := range completed {
		completedByEPS[row.EPSID] = row.CompletedQty
	}
	for i := range projected {
		projected[i].CompletedQty = completedByEPS[projected[i].EPSID]
	}
	return projected, nil
}

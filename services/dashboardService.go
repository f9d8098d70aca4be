package services

import (
	"Pronostico/forecast"
	"Pronostico/repositories"
	"context"
)

// MonthlyCompliance is one point of the dashboard series, with the month
// name and compliance percentage already resolved.
type MonthlyCompliance struct {
	Month        int    `json:"month"`
	MonthName    string `json:"month_name"`
	ProjectedQty int    `json:"projected_qty"`
	CompletedQty int    `json:"completed_qty"`
	Compliance   int    `json:"compliance"`
}

// EPSCompliance summarises one provider's compliance for the dashboard.
type EPSCompliance struct {
	EPSID        uint   `json:"eps_id"`
	EPSName      string `json:"eps_name"`
	ProjectedQty int    `json:"projected_qty"`
	CompletedQty int    `json:"completed_qty"`
	Compliance   int    `json:"compliance"`
	Status       string `json:"status"`
}

type DashboardService struct {
	reports  *repositories.ReportRepository
	settings *repositories.SettingsRepository
}

func NewDashboardService(reports *repositories.ReportRepository, settings *repositories.SettingsRepository) *DashboardService {
	return &DashboardService{reports: reports, settings: settings}
}

func (s *DashboardService) Stats(ctx context.Context, yearID uint) (repositories.DashboardStats, error) {
	return s.reports.Stats(ctx, yearID)
}

func (s *DashboardService) MonthlySeries(ctx context.Context, yearID uint) ([]MonthlyCompliance, error) {
	totals, err := s.reports.MonthlySeries(ctx, yearID)
	if err != nil {
		return nil, err
	}
	series := make([]MonthlyCompliance, 0, len(totals))
	for _, point := range totals {
		series = append(series, MonthlyCompliance{
			Month:        point.Month,
			MonthName:    forecast.MonthName(point.Month),
			ProjectedQty: point.ProjectedQty,
			CompletedQty: point.CompletedQty,
			Compliance:   forecast.CalculateCompliance(point.CompletedQty, point.ProjectedQty),
		})
	}
	return series, nil
}

func (s *DashboardService) SpecialtyDistribution(ctx context.Context, yearID uint) ([]repositories.SpecialtyTotal, error) {
	return s.reports.SpecialtyDistribution(ctx, yearID)
}

func (s *DashboardService) EPSCompliance(ctx context.Context, yearID uint) ([]EPSCompliance, error) {
	totals, err := s.reports.EPSSeries(ctx, yearID)
	if err != nil {
		return nil, err
	}
	thresholds, err := s.settings.GetThresholds(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]EPSCompliance, 0, len(totals))
	for _, eps := range totals {
		compliance := forecast.CalculateCompliance(eps.CompletedQty, eps.ProjectedQty)
		rows = append(rows, EPSCompliance{
			EPSID:        eps.EPSID,
			EPSName:      eps.EPSName,
			ProjectedQty: eps.ProjectedQty,
			CompletedQty: eps.CompletedQty,
			Compliance:   compliance,
			Status:       forecast.ComplianceStatus(compliance, thresholds),
		})
	}
	return rows, nil
}

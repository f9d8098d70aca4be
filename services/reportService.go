package services

import (
	"Pronostico/forecast"
	"Pronostico/repositories"
	"context"
	"errors"
)

var ErrInvalidSemester = errors.New("semester must be 1 or 2")

// SpecialtySummary aggregates report rows across providers, one entry per
// specialty. Feeds the report charts.
type SpecialtySummary struct {
	SpecialtyID   uint   `json:"specialty_id"`
	SpecialtyName string `json:"specialty_name"`
	ProjectedQty  int    `json:"projected_qty"`
	CompletedQty  int    `json:"completed_qty"`
	Compliance    int    `json:"compliance"`
}

// ReportResult is a compliance report with the thresholds it was
// classified against and its per-specialty aggregation.
type ReportResult struct {
	Rows        []forecast.ReportRow `json:"rows"`
	BySpecialty []SpecialtySummary   `json:"by_specialty"`
	Thresholds  forecast.Thresholds  `json:"thresholds"`
}

// OverallCompliance is the grand-total compliance of a report.
type OverallCompliance struct {
	ProjectedQty int    `json:"projected_qty"`
	CompletedQty int    `json:"completed_qty"`
	Compliance   int    `json:"compliance"`
	Status       string `json:"status"`
}

// EPSReport is the single-provider report: the annual compliance rows plus
// the provider's population totals and overall compliance.
type EPSReport struct {
	ReportResult
	Population repositories.PopulationStats `json:"population"`
	Overall    OverallCompliance            `json:"overall"`
}

type ReportService struct {
	reports  *repositories.ReportRepository
	settings *repositories.SettingsRepository
}

func NewReportService(reports *repositories.ReportRepository, settings *repositories.SettingsRepository) *ReportService {
	return &ReportService{reports: reports, settings: settings}
}

// Monthly builds the compliance report for a single fiscal month.
func (s *ReportService) Monthly(ctx context.Context, yearID, epsID uint, month int) (*ReportResult, error) {
	return s.build(ctx, yearID, epsID, month, month)
}

// Semester builds the compliance report for fiscal months 1-6 or 7-12.
func (s *ReportService) Semester(ctx context.Context, yearID, epsID uint, semester int) (*ReportResult, error) {
	switch semester {
	case 1:
		return s.build(ctx, yearID, epsID, 1, 6)
	case 2:
		return s.build(ctx, yearID, epsID, 7, 12)
	default:
		return nil, ErrInvalidSemester
	}
}

// Annual builds the compliance report over the whole fiscal year.
func (s *ReportService) Annual(ctx context.Context, yearID, epsID uint) (*ReportResult, error) {
	return s.build(ctx, yearID, epsID, 0, 0)
}

// EPS builds the annual report of one provider with its population totals
// and overall compliance.
func (s *ReportService) EPS(ctx context.Context, yearID, epsID uint) (*EPSReport, error) {
	result, err := s.build(ctx, yearID, epsID, 0, 0)
	if err != nil {
		return nil, err
	}
	population, err := s.reports.PopulationTotals(ctx, yearID, epsID)
	if err != nil {
		return nil, err
	}

	var overall OverallCompliance
	for _, row := range result.Rows {
		overall.ProjectedQty += row.ProjectedQty
		overall.CompletedQty += row.CompletedQty
	}
	overall.Compliance = forecast.CalculateCompliance(overall.CompletedQty, overall.ProjectedQty)
	overall.Status = forecast.ComplianceStatus(overall.Compliance, result.Thresholds)

	return &EPSReport{ReportResult: *result, Population: population, Overall: overall}, nil
}

func (s *ReportService) build(ctx context.Context, yearID, epsID uint, monthStart, monthEnd int) (*ReportResult, error) {
	projected, err := s.reports.ProjectedTotals(ctx, yearID, epsID, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}
	completed, err := s.reports.CompletedTotals(ctx, yearID, epsID, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}
	thresholds, err := s.settings.GetThresholds(ctx)
	if err != nil {
		return nil, err
	}

	rows := forecast.BuildReport(projected, completed, thresholds)
	return &ReportResult{
		Rows:        rows,
		BySpecialty: summarizeBySpecialty(rows),
		Thresholds:  thresholds,
	}, nil
}

func summarizeBySpecialty(rows []forecast.ReportRow) []SpecialtySummary {
	index := make(map[uint]int, len(rows))
	summaries := make([]SpecialtySummary, 0)
	for _, row := range rows {
		i, ok := index[row.SpecialtyID]
		if !ok {
			i = len(summaries)
			index[row.SpecialtyID] = i
			summaries = append(summaries, SpecialtySummary{
				SpecialtyID:   row.SpecialtyID,
				SpecialtyName: row.SpecialtyName,
			})
		}
		summaries[i].ProjectedQty += row.ProjectedQty
		summaries[i].CompletedQty += row.CompletedQty
	}
	for i := range summaries {
		summaries[i].Compliance = forecast.CalculateCompliance(summaries[i].CompletedQty, summaries[i].ProjectedQty)
	}
	return summaries
}

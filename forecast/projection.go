package forecast

import (
	"Pronostico/models"
	"context"
	"fmt"
	"log"
	"math"
)

// fallbackMonthWeight is applied when the configured distribution vector
// has no slot for the requested month. The shipped default only covers the
// first six fiscal months, so the second half of the year relies on it.
const fallbackMonthWeight = 0.19

// featureSelector picks the population bucket a specialty's projection is
// derived from.
type featureSelector func(p models.Population) int

func adults(p models.Population) int           { return p.Adults }
func pediatric(p models.Population) int        { return p.PediatricDiagnosed + p.MinorsFollowUp }
func fertileWomen(p models.Population) int     { return p.FertileWomen }
func pregnantWomen(p models.Population) int    { return p.PregnantWomen }
func labPopulation(p models.Population) int    { return p.Adults + p.PediatricDiagnosed }
func activePopulation(p models.Population) int { return p.ActivePopulation }

// featureByCode maps specialty codes to their population feature. Codes not
// listed here (nursing, psychology, nutrition, social work, ...) fall back
// to the active population.
var featureByCode = map[string]featureSelector{
	"MIA": adults,
	"PSQ": adults,
	"ODO": adults,
	"MIP": pediatric,
	"PED": pediatric,
	"GIN": fertileWomen,
	"GIG": pregnantWomen,
	"LAB": labPopulation,
}

func featureCount(code string, p models.Population) int {
	if selector, ok := featureByCode[code]; ok {
		return selector(p)
	}
	return activePopulation(p)
}

// ProjectedQty applies the projection formula: population feature times the
// yearly contracted quantity, weighted by the month's distribution share,
// rounded up and clamped to a non-negative integer.
func ProjectedQty(feature, yearlyQty int, monthWeight float64) int {
	qty := int(math.Ceil(float64(feature) * float64(yearlyQty) * monthWeight))
	if qty < 0 {
		return 0
	}
	return qty
}

// MonthWeight resolves the distribution share for a fiscal month. Months
// without a configured slot get the fallback weight; that is reported so a
// short distribution vector does not silently shape half the year.
func MonthWeight(distribution []int, month int) float64 {
	if month < 1 || month > len(distribution) {
		log.Printf("Warning: no distribution percentage configured for month %d (%s), using fallback %d%%",
			month, MonthName(month), int(fallbackMonthWeight*100))
		return fallbackMonthWeight
	}
	return float64(distribution[month-1]) / 100
}

// ProjectionEngine computes projected appointment quantities per specialty
// from population counts.
type ProjectionEngine struct {
	store Store
}

func NewProjectionEngine(store Store) *ProjectionEngine {
	return &ProjectionEngine{store: store}
}

// ComputeProjection derives and persists the projected quantity for every
// contracted specialty of one (eps, year, month). Existing projections for
// the month are replaced. All upserts commit atomically; on any failure no
// projection for the month is changed. Returns ErrNoPopulationData when the
// month has no population row.
func (e *ProjectionEngine) ComputeProjection(ctx context.Context, epsID, yearID uint, month int) error {
	population, err := e.store.GetPopulation(ctx, epsID, yearID, month)
	if err != nil {
		return err
	}

	services, err := e.store.ListContractedServices(ctx, epsID)
	if err != nil {
		return fmt.Errorf("failed to load contracted services: %w", err)
	}

	distribution, err := e.store.Distribution(ctx)
	if err != nil {
		return fmt.Errorf("failed to load distribution percentages: %w", err)
	}
	weight := MonthWeight(distribution, month)

	return e.store.InTransaction(ctx, func(tx Store) error {
		for _, service := range services {
			qty := ProjectedQty(featureCount(service.Code, *population), service.YearlyQty, weight)
			if err := tx.UpsertProjection(ctx, epsID, yearID, month, service.SpecialtyID, qty); err != nil {
				return fmt.Errorf("failed to upsert projection for specialty %d: %w", service.SpecialtyID, err)
			}
		}
		return nil
	})
}

package forecast_test

import (
	"Pronostico/forecast"
	"Pronostico/models"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeProjectionAdultsFormula(t *testing.T) {
	store := newMemoryStore()
	store.setPopulation(1, 1, 1, models.Population{Adults: 1000})
	store.addContract(1, 10, "MIA", 2)

	engine := forecast.NewProjectionEngine(store)
	require.NoError(t, engine.ComputeProjection(context.Background(), 1, 1, 1))

	// ceil(1000 * 2 * 0.19) = 380
	qty, found, err := store.GetProjection(context.Background(), 1, 1, 1, 10)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 380, qty)
}

func TestComputeProjectionFeatureSelection(t *testing.T) {
	population := models.Population{
		TotalPopulation:    5000,
		ActivePopulation:   4000,
		FertileWomen:       800,
		PregnantWomen:      120,
		Adults:             2000,
		PediatricDiagnosed: 300,
		MinorsFollowUp:     100,
	}

	tests := []struct {
		code    string
		feature int
	}{
		{"MIA", 2000},
		{"PSQ", 2000},
		{"ODO", 2000},
		{"MIP", 400}, // pediatric_diagnosed + minors_follow_up
		{"PED", 400},
		{"GIN", 800},
		{"GIG", 120},
		{"LAB", 2300}, // adults + pediatric_diagnosed
		{"ENF", 4000}, // unknown code falls back to active population
		{"XYZ", 4000},
	}

	for _, tc := range tests {
		t.Run(tc.code, func(t *testing.T) {
			store := newMemoryStore()
			store.setPopulation(1, 1, 1, population)
			store.addContract(1, 7, tc.code, 1)

			engine := forecast.NewProjectionEngine(store)
			require.NoError(t, engine.ComputeProjection(context.Background(), 1, 1, 1))

			// yearly_qty 1 at 19% weight: ceil(feature * 0.19)
			expected := forecast.ProjectedQty(tc.feature, 1, 0.19)
			qty, found, err := store.GetProjection(context.Background(), 1, 1, 1, 7)
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, expected, qty)
		})
	}
}

func TestComputeProjectionNoPopulation(t *testing.T) {
	store := newMemoryStore()
	store.addContract(1, 10, "MIA", 2)

	engine := forecast.NewProjectionEngine(store)
	err := engine.ComputeProjection(context.Background(), 1, 1, 3)
	require.ErrorIs(t, err, forecast.ErrNoPopulationData)
	assert.Empty(t, store.projections, "a failed projection must not write")
}

func TestComputeProjectionReplacesExisting(t *testing.T) {
	store := newMemoryStore()
	store.setPopulation(1, 1, 1, models.Population{Adults: 1000})
	store.addContract(1, 10, "MIA", 2)

	engine := forecast.NewProjectionEngine(store)
	require.NoError(t, engine.ComputeProjection(context.Background(), 1, 1, 1))
	require.NoError(t, engine.ComputeProjection(context.Background(), 1, 1, 1))

	qty, _, err := store.GetProjection(context.Background(), 1, 1, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 380, qty, "recomputing with identical inputs must not accumulate")
}

func TestComputeProjectionRollsBackOnFailure(t *testing.T) {
	store := newMemoryStore()
	store.setPopulation(1, 1, 1, models.Population{Adults: 1000, ActivePopulation: 3000})
	store.addContract(1, 10, "MIA", 2)
	store.addContract(1, 11, "ENF", 12)
	store.failAfterUpserts = 1 // first upsert succeeds, second fails

	engine := forecast.NewProjectionEngine(store)
	err := engine.ComputeProjection(context.Background(), 1, 1, 1)
	require.ErrorIs(t, err, errInjected)
	assert.Empty(t, store.projections, "partial upserts must be rolled back")
}

func TestMonthWeightFallback(t *testing.T) {
	// Shipped default: six slots only.
	distribution := []int{19, 19, 19, 19, 19, 5}

	assert.InDelta(t, 0.19, forecast.MonthWeight(distribution, 1), 1e-9)
	assert.InDelta(t, 0.05, forecast.MonthWeight(distribution, 6), 1e-9)
	assert.InDelta(t, 0.19, forecast.MonthWeight(distribution, 7), 1e-9, "out-of-range month uses the fallback")
	assert.InDelta(t, 0.19, forecast.MonthWeight(distribution, 12), 1e-9)
}

func TestProjectedQty(t *testing.T) {
	assert.Equal(t, 380, forecast.ProjectedQty(1000, 2, 0.19))
	assert.Equal(t, 190, forecast.ProjectedQty(500, 2, 0.19))
	assert.Equal(t, 1, forecast.ProjectedQty(1, 1, 0.01), "fractions round up")
	assert.Equal(t, 0, forecast.ProjectedQty(0, 5, 0.19))
	assert.Equal(t, 0, forecast.ProjectedQty(100, 0, 0.19))
}

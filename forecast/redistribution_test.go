package forecast_test

import (
	"Pronostico/forecast"
	"Pronostico/models"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitPending(t *testing.T) {
	tests := []struct {
		name      string
		pending   int
		remaining int
		want      []int
	}{
		{"even with remainder", 10, 3, []int{4, 3, 3}},
		{"exact division", 9, 3, []int{3, 3, 3}},
		{"fewer than months", 2, 5, []int{1, 1, 0, 0, 0}},
		{"single month", 7, 1, []int{7}},
		{"no months left", 7, 0, nil},
		{"nothing pending", 0, 4, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := forecast.SplitPending(tc.pending, tc.remaining)
			assert.Equal(t, tc.want, got)

			total := 0
			for _, inc := range got {
				total += inc
			}
			if tc.remaining > 0 && tc.pending > 0 {
				assert.Equal(t, tc.pending, total, "increments must sum to pending")
			}
		})
	}
}

func TestRedistributeSpreadsShortfall(t *testing.T) {
	store := newMemoryStore()
	store.addContract(1, 10, "MIA", 2)
	store.projections[projKey{1, 1, 9, 10}] = 15
	store.completed[projKey{1, 1, 9, 10}] = 5

	engine := forecast.NewRedistributionEngine(store)
	require.NoError(t, engine.Redistribute(context.Background(), 1, 1, 9))

	// pending 10 over months 10..12: 4, 3, 3
	assert.Equal(t, 4, store.projections[projKey{1, 1, 10, 10}])
	assert.Equal(t, 3, store.projections[projKey{1, 1, 11, 10}])
	assert.Equal(t, 3, store.projections[projKey{1, 1, 12, 10}])
	assert.Equal(t, 15, store.projections[projKey{1, 1, 9, 10}], "source month is left untouched")
}

func TestRedistributeLastMonthDropsShortfall(t *testing.T) {
	store := newMemoryStore()
	store.addContract(1, 10, "MIA", 2)
	store.projections[projKey{1, 1, 12, 10}] = 40

	engine := forecast.NewRedistributionEngine(store)
	require.NoError(t, engine.Redistribute(context.Background(), 1, 1, 12))

	assert.Len(t, store.projections, 1, "month 12 has no later months to receive the shortfall")
	assert.Equal(t, 40, store.projections[projKey{1, 1, 12, 10}])
}

func TestRedistributeSkipsMissingProjection(t *testing.T) {
	store := newMemoryStore()
	store.addContract(1, 10, "MIA", 2)
	store.completed[projKey{1, 1, 5, 10}] = 30

	engine := forecast.NewRedistributionEngine(store)
	require.NoError(t, engine.Redistribute(context.Background(), 1, 1, 5))

	assert.Empty(t, store.projections)
}

func TestRedistributeSkipsMetProjection(t *testing.T) {
	store := newMemoryStore()
	store.addContract(1, 10, "MIA", 2)
	store.projections[projKey{1, 1, 5, 10}] = 20
	store.completed[projKey{1, 1, 5, 10}] = 25

	engine := forecast.NewRedistributionEngine(store)
	require.NoError(t, engine.Redistribute(context.Background(), 1, 1, 5))

	assert.Len(t, store.projections, 1, "over-delivery must not produce negative redistribution")
}

func TestRedistributeIsAdditiveAcrossRuns(t *testing.T) {
	store := newMemoryStore()
	store.addContract(1, 10, "MIA", 2)
	store.projections[projKey{1, 1, 11, 10}] = 6

	engine := forecast.NewRedistributionEngine(store)
	require.NoError(t, engine.Redistribute(context.Background(), 1, 1, 11))
	assert.Equal(t, 6, store.projections[projKey{1, 1, 12, 10}])

	// A second run for the same source month compounds the increment. That
	// is the intended catch-up behavior, not a defect.
	require.NoError(t, engine.Redistribute(context.Background(), 1, 1, 11))
	assert.Equal(t, 12, store.projections[projKey{1, 1, 12, 10}])
}

func TestRedistributeAllCoversProvidersAndMonths(t *testing.T) {
	store := newMemoryStore()
	store.addContract(1, 10, "MIA", 2)
	store.activeEPS = []uint{1, 2}
	store.projections[projKey{1, 1, 11, 10}] = 4
	store.projections[projKey{2, 1, 11, 10}] = 2

	engine := forecast.NewRedistributionEngine(store)
	require.NoError(t, engine.RedistributeAll(context.Background(), 1, 0, 0))

	assert.Equal(t, 4, store.projections[projKey{1, 1, 12, 10}])
	assert.Equal(t, 2, store.projections[projKey{2, 1, 12, 10}])
}

func TestRedistributeAllHonorsFilters(t *testing.T) {
	store := newMemoryStore()
	store.addContract(1, 10, "MIA", 2)
	store.activeEPS = []uint{1, 2}
	store.projections[projKey{1, 1, 11, 10}] = 4
	store.projections[projKey{2, 1, 11, 10}] = 2

	engine := forecast.NewRedistributionEngine(store)
	require.NoError(t, engine.RedistributeAll(context.Background(), 1, 1, 11))

	assert.Equal(t, 4, store.projections[projKey{1, 1, 12, 10}])
	_, found, err := store.GetProjection(context.Background(), 2, 1, 12, 10)
	require.NoError(t, err)
	assert.False(t, found, "filtered-out EPS must not be touched")
}

func TestRedistributeAllRollsBackWholeBatch(t *testing.T) {
	store := newMemoryStore()
	store.addContract(1, 10, "MIA", 2)
	store.activeEPS = []uint{1, 2}
	store.projections[projKey{1, 1, 10, 10}] = 10
	store.projections[projKey{2, 1, 10, 10}] = 10
	store.failAfterUpserts = 3

	engine := forecast.NewRedistributionEngine(store)
	err := engine.RedistributeAll(context.Background(), 1, 0, 0)
	require.ErrorIs(t, err, errInjected)

	assert.Equal(t, map[projKey]int{
		{1, 1, 10, 10}: 10,
		{2, 1, 10, 10}: 10,
	}, store.projections, "a failing batch must leave no partial increments")
}

// Full cycle from the February population entry to the redistributed
// shortfall: projection 190, 50 completed, 140 pending over 11 months.
func TestProjectionThenRedistributionScenario(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	store.setPopulation(1, 1, 1, models.Population{Adults: 500})
	store.addContract(1, 10, "MIA", 2)

	projection := forecast.NewProjectionEngine(store)
	require.NoError(t, projection.ComputeProjection(ctx, 1, 1, 1))

	qty, _, err := store.GetProjection(ctx, 1, 1, 1, 10)
	require.NoError(t, err)
	require.Equal(t, 190, qty)

	store.completed[projKey{1, 1, 1, 10}] = 50

	redistribution := forecast.NewRedistributionEngine(store)
	require.NoError(t, redistribution.Redistribute(ctx, 1, 1, 1))

	// 140 mod 11 = 8 months of 13, then 3 months of 12.
	total := 0
	for month := 2; month <= 12; month++ {
		increment := store.projections[projKey{1, 1, month, 10}]
		if month <= 9 {
			assert.Equal(t, 13, increment, "month %d", month)
		} else {
			assert.Equal(t, 12, increment, "month %d", month)
		}
		total += increment
	}
	assert.Equal(t, 140, total, "redistributed total must match pending exactly")
}

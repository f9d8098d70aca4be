package forecast

import (
	"context"
	"fmt"
)

// RedistributionEngine spreads a month's unmet projection across the
// remaining months of the fiscal year.
//
// Redistribution is additive: each run adds the current shortfall on top of
// whatever the later months already hold. Re-running it for a month whose
// shortfall was already pushed forward compounds the increments, so callers
// must recompute the month's projection baseline before repeating a run.
type RedistributionEngine struct {
	store Store
}

func NewRedistributionEngine(store Store) *RedistributionEngine {
	return &RedistributionEngine{store: store}
}

// SplitPending divides a pending quantity evenly over the remaining months.
// The first pending%remaining months receive one extra so the increments
// always sum to pending exactly. Returns nil when no months remain; the
// shortfall of the last fiscal month is dropped.
func SplitPending(pending, remaining int) []int {
	if remaining <= 0 || pending <= 0 {
		return nil
	}
	base := pending / remaining
	remainder := pending % remaining
	increments := make([]int, remaining)
	for i := range increments {
		increments[i] = base
		if i < remainder {
			increments[i]++
		}
	}
	return increments
}

// Redistribute pushes the shortfall of one (eps, year, month) forward, for
// every known specialty, inside a single transaction.
func (e *RedistributionEngine) Redistribute(ctx context.Context, epsID, yearID uint, month int) error {
	return e.store.InTransaction(ctx, func(tx Store) error {
		return redistributeMonth(ctx, tx, epsID, yearID, month)
	})
}

// RedistributeAll runs redistribution for every (eps, month) combination in
// one outer transaction. epsFilter and monthFilter narrow the batch when
// non-zero; otherwise all active EPS and all twelve months are processed.
func (e *RedistributionEngine) RedistributeAll(ctx context.Context, yearID, epsFilter uint, monthFilter int) error {
	return e.store.InTransaction(ctx, func(tx Store) error {
		var epsList []uint
		if epsFilter > 0 {
			epsList = []uint{epsFilter}
		} else {
			var err error
			epsList, err = tx.ListActiveEPS(ctx)
			if err != nil {
				return fmt.Errorf("failed to list active EPS: %w", err)
			}
		}

		months := make([]int, 0, 12)
		if monthFilter > 0 {
			months = append(months, monthFilter)
		} else {
			for m := 1; m <= 12; m++ {
				months = append(months, m)
			}
		}

		for _, epsID := range epsList {
			for _, month := range months {
				if err := redistributeMonth(ctx, tx, epsID, yearID, month); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func redistributeMonth(ctx context.Context, tx Store, epsID, yearID uint, month int) error {
	specialties, err := tx.ListSpecialties(ctx)
	if err != nil {
		return fmt.Errorf("failed to list specialties: %w", err)
	}

	remaining := 12 - month

	for _, specialty := range specialties {
		projected, found, err := tx.GetProjection(ctx, epsID, yearID, month, specialty.ID)
		if err != nil {
			return fmt.Errorf("failed to read projection for specialty %d: %w", specialty.ID, err)
		}
		if !found {
			// No projection, no shortfall to carry.
			continue
		}

		completed, err := tx.SumCompleted(ctx, epsID, yearID, month, specialty.ID)
		if err != nil {
			return fmt.Errorf("failed to sum completed appointments for specialty %d: %w", specialty.ID, err)
		}

		pending := projected - completed
		if pending <= 0 {
			continue
		}

		for i, increment := range SplitPending(pending, remaining) {
			if increment == 0 {
				continue
			}
			target := month + 1 + i
			if err := tx.AddToProjection(ctx, epsID, yearID, target, specialty.ID, increment); err != nil {
				return fmt.Errorf("failed to add %d to month %d for specialty %d: %w", increment, target, specialty.ID, err)
			}
		}
	}
	return nil
}

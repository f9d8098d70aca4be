package services

import (
	"Pronostico/database"
	"Pronostico/forecast"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
)

// ErrRecalculationInProgress is returned when another worker holds the
// projection or redistribution lock.
var ErrRecalculationInProgress = errors.New("a recalculation is already in progress")

const projectionLockTTL = 2 * time.Minute

// ProjectionService runs the projection and redistribution engines under
// a Redis lock so concurrent triggers never interleave their writes.
type ProjectionService struct {
	store forecast.Store
}

func NewProjectionService(store forecast.Store) *ProjectionService {
	return &ProjectionService{store: store}
}

// Recalculate recomputes the projected appointments of one EPS and month.
func (s *ProjectionService) Recalculate(ctx context.Context, epsID, yearID uint, month int) error {
	lockKey := fmt.Sprintf("projection_lock:%d:%d:%d", epsID, yearID, month)
	release, err := acquireLock(ctx, lockKey)
	if err != nil {
		return err
	}
	defer release()

	return forecast.NewProjectionEngine(s.store).ComputeProjection(ctx, epsID, yearID, month)
}

// Redistribute moves pending appointments of the given month into the
// remaining months of the year. epsID of 0 covers every active EPS and
// month of 0 covers every month.
func (s *ProjectionService) Redistribute(ctx context.Context, yearID, epsID uint, month int) error {
	lockKey := fmt.Sprintf("redistribution_lock:%d", yearID)
	release, err := acquireLock(ctx, lockKey)
	if err != nil {
		return err
	}
	defer release()

	return forecast.NewRedistributionEngine(s.store).RedistributeAll(ctx, yearID, epsID, month)
}

func acquireLock(ctx context.Context, key string) (func(), error) {
	value := uuid.NewString()
	acquired, err := database.NewLock(ctx, key, value, projectionLockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock %s: %w", key, err)
	}
	if !acquired {
		return nil, ErrRecalculationInProgress
	}
	return func() {
		if err := database.ReleaseLock(ctx, key, value); err != nil {
			log.Printf("Failed to release lock %s: %v", key, err)
		}
	}, nil
}

package forecast

import (
	"Pronostico/models"
	"context"
	"errors"
)

// Sentinel errors reported by engines and store implementations. Callers
// distinguish missing-data conditions from persistence failures with
// errors.Is.
var (
	// ErrNoPopulationData is returned when a projection is requested for a
	// (eps, year, month) key that has no population row.
	ErrNoPopulationData = errors.New("no population data for the requested month")

	// ErrNoActiveYear is returned when an operation needs the active fiscal
	// year and none is marked active.
	ErrNoActiveYear = errors.New("no active fiscal year")
)

// ContractedService is a contracted yearly appointment target joined with
// its specialty code.
type ContractedService struct {
	SpecialtyID uint
	Code        string
	YearlyQty   int
}

// SpecialtyRef identifies a specialty for redistribution.
type SpecialtyRef struct {
	ID   uint
	Code string
}

// Thresholds are the compliance classification boundaries, red < yellow.
type Thresholds struct {
	Red    int
	Yellow int
}

// Store is the data-access contract the engines run against. The gorm
// implementation lives in the repositories package; tests use an in-memory
// fake. All write methods are expected to be called inside InTransaction.
type Store interface {
	// InTransaction runs fn against a transactional view of the store.
	// Every write fn performs is committed together or rolled back together.
	InTransaction(ctx context.Context, fn func(tx Store) error) error

	GetPopulation(ctx context.Context, epsID, yearID uint, month int) (*models.Population, error)
	ListContractedServices(ctx context.Context, epsID uint) ([]ContractedService, error)
	ListSpecialties(ctx context.Context) ([]SpecialtyRef, error)
	ListActiveEPS(ctx context.Context) ([]uint, error)

	Distribution(ctx context.Context) ([]int, error)
	ComplianceThresholds(ctx context.Context) (Thresholds, error)

	// GetProjection reports the projected quantity for the key and whether a
	// projection row exists.
	GetProjection(ctx context.Context, epsID, yearID uint, month int, specialtyID uint) (int, bool, error)

	// UpsertProjection replaces the projected quantity for the key.
	UpsertProjection(ctx context.Context, epsID, yearID uint, month int, specialtyID uint, qty int) error

	// AddToProjection increments the projected quantity for the key,
	// creating the row with delta when it does not exist.
	AddToProjection(ctx context.Context, epsID, yearID uint, month int, specialtyID uint, delta int) error

	SumCompleted(ctx context.Context, epsID, yearID uint, month int, specialtyID uint) (int, error)
}

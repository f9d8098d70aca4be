package forecast_test

import (
	"Pronostico/forecast"
	"Pronostico/models"
	"context"
	"errors"
)

// projKey identifies a projection or completed-appointment aggregate.
type projKey struct {
	epsID       uint
	yearID      uint
	month       int
	specialtyID uint
}

type popKey struct {
	epsID  uint
	yearID uint
	month  int
}

var errInjected = errors.New("injected store failure")

// memoryStore is an in-memory Store used by the engine tests. Writes inside
// InTransaction are rolled back when fn fails, mirroring the gorm
// implementation. failAfterUpserts injects a persistence failure once that
// many upserts/increments have succeeded (-1 disables injection).
type memoryStore struct {
	populations  map[popKey]models.Population
	contracted   map[uint][]forecast.ContractedService
	specialties  []forecast.SpecialtyRef
	activeEPS    []uint
	distribution []int
	thresholds   forecast.Thresholds
	projections  map[projKey]int
	completed    map[projKey]int

	failAfterUpserts int
	upserts          int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		populations:      make(map[popKey]models.Population),
		contracted:       make(map[uint][]forecast.ContractedService),
		distribution:     []int{19, 19, 19, 19, 19, 5, 0, 0, 0, 0, 0, 0},
		thresholds:       forecast.Thresholds{Red: 70, Yellow: 90},
		projections:      make(map[projKey]int),
		completed:        make(map[projKey]int),
		failAfterUpserts: -1,
	}
}

func (m *memoryStore) InTransaction(ctx context.Context, fn func(tx forecast.Store) error) error {
	snapshot := make(map[projKey]int, len(m.projections))
	for k, v := range m.projections {
		snapshot[k] = v
	}
	if err := fn(m); err != nil {
		m.projections = snapshot
		return err
	}
	return nil
}

func (m *memoryStore) GetPopulation(ctx context.Context, epsID, yearID uint, month int) (*models.Population, error) {
	population, ok := m.populations[popKey{epsID, yearID, month}]
	if !ok {
		return nil, forecast.ErrNoPopulationData
	}
	return &population, nil
}

func (m *memoryStore) ListContractedServices(ctx context.Context, epsID uint) ([]forecast.ContractedService, error) {
	return m.contracted[epsID], nil
}

func (m *memoryStore) ListSpecialties(ctx context.Context) ([]forecast.SpecialtyRef, error) {
	return m.specialties, nil
}

func (m *memoryStore) ListActiveEPS(ctx context.Context) ([]uint, error) {
	return m.activeEPS, nil
}

func (m *memoryStore) Distribution(ctx context.Context) ([]int, error) {
	return m.distribution, nil
}

func (m *memoryStore) ComplianceThresholds(ctx context.Context) (forecast.Thresholds, error) {
	return m.thresholds, nil
}

func (m *memoryStore) GetProjection(ctx context.Context, epsID, yearID uint, month int, specialtyID uint) (int, bool, error) {
	qty, ok := m.projections[projKey{epsID, yearID, month, specialtyID}]
	return qty, ok, nil
}

func (m *memoryStore) UpsertProjection(ctx context.Context, epsID, yearID uint, month int, specialtyID uint, qty int) error {
	if err := m.countWrite(); err != nil {
		return err
	}
	m.projections[projKey{epsID, yearID, month, specialtyID}] = qty
	return nil
}

func (m *memoryStore) AddToProjection(ctx context.Context, epsID, yearID uint, month int, specialtyID uint, delta int) error {
	if err := m.countWrite(); err != nil {
		return err
	}
	m.projections[projKey{epsID, yearID, month, specialtyID}] += delta
	return nil
}

func (m *memoryStore) SumCompleted(ctx context.Context, epsID, yearID uint, month int, specialtyID uint) (int, error) {
	return m.completed[projKey{epsID, yearID, month, specialtyID}], nil
}

func (m *memoryStore) countWrite() error {
	if m.failAfterUpserts >= 0 && m.upserts >= m.failAfterUpserts {
		return errInjected
	}
	m.upserts++
	return nil
}

// setPopulation registers a population row with only the buckets a test
// cares about populated.
func (m *memoryStore) setPopulation(epsID, yearID uint, month int, p models.Population) {
	p.EPSID = epsID
	p.YearID = yearID
	p.Month = month
	m.populations[popKey{epsID, yearID, month}] = p
}

func (m *memoryStore) addContract(epsID, specialtyID uint, code string, yearlyQty int) {
	m.contracted[epsID] = append(m.contracted[epsID], forecast.ContractedService{
		SpecialtyID: specialtyID,
		Code:        code,
		YearlyQty:   yearlyQty,
	})
	m.specialties = append(m.specialties, forecast.SpecialtyRef{ID: specialtyID, Code: code})
}

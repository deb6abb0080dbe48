// Package memory is a process local store for development and tests.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/gpucatalog/gpucatalog/internal/catalogsrv/db/dberror"
	"github.com/gpucatalog/gpucatalog/internal/catalogsrv/db/models"
	"github.com/gpucatalog/gpucatalog/internal/common/apperrors"
)

// Store keeps every table in maps keyed by id. Ids are assigned from a
// single counter per table starting at 1, like serial columns. Returned rows
// are copies.
type Store struct {
	mu            sync.RWMutex
	manufacturers map[int64]models.Manufacturer
	gpus          map[int64]models.GPU
	specs         map[int64]models.Specification
	prices        map[int64]models.Price
	nextID        map[string]int64
}

func New() *Store {
	return &Store{
		manufacturers: make(map[int64]models.Manufacturer),
		gpus:          make(map[int64]models.GPU),
		specs:         make(map[int64]models.Specification),
		prices:        make(map[int64]models.Price),
		nextID:        make(map[string]int64),
	}
}

func (s *Store) id(table string) int64 {
	s.nextID[table]++
	return s.nextID[table]
}

func (s *Store) ListManufacturers(ctx context.Context) ([]models.Manufacturer, apperrors.Error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Manufacturer, 0, len(s.manufacturers))
	for _, id := range sortedKeys(s.manufacturers) {
		out = append(out, s.manufacturers[id])
	}
	return out, nil
}

func (s *Store) CreateManufacturer(ctx context.Context, m *models.Manufacturer) apperrors.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.manufacturers {
		if existing.Name == m.Name {
			return dberror.ErrAlreadyExists.Msg("manufacturer already exists")
		}
	}
	m.ID = s.id("manufacturers")
	s.manufacturers[m.ID] = *m
	return nil
}

func (s *Store) ListGPUs(ctx context.Context) ([]models.GPU, apperrors.Error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.GPU, 0, len(s.gpus))
	for _, id := range sortedKeys(s.gpus) {
		out = append(out, s.joined(s.gpus[id]))
	}
	return out, nil
}

func (s *Store) GetGPU(ctx context.Context, id int64) (*models.GPU, apperrors.Error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	gpu, ok := s.gpus[id]
	if !ok {
		return nil, dberror.ErrNotFound.Msg("GPU not found")
	}
	g := s.joined(gpu)
	return &g, nil
}

func (s *Store) CreateGPU(ctx context.Context, gpu *models.GPU) apperrors.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.manufacturers[gpu.ManufacturerID]; !ok {
		return dberror.ErrMissingReference.Msg("manufacturer does not exist")
	}
	gpu.ID = s.id("gpus")
	s.gpus[gpu.ID] = bare(*gpu)
	*gpu = s.joined(s.gpus[gpu.ID])
	return nil
}

func (s *Store) UpdateGPU(ctx context.Context, gpu *models.GPU) apperrors.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.gpus[gpu.ID]; !ok {
		return dberror.ErrNotFound.Msg("GPU not found")
	}
	if _, ok := s.manufacturers[gpu.ManufacturerID]; !ok {
		return dberror.ErrMissingReference.Msg("manufacturer does not exist")
	}
	s.gpus[gpu.ID] = bare(*gpu)
	*gpu = s.joined(s.gpus[gpu.ID])
	return nil
}

func (s *Store) DeleteGPU(ctx context.Context, id int64) apperrors.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.gpus[id]; !ok {
		return dberror.ErrNotFound.Msg("GPU not found")
	}
	delete(s.gpus, id)
	maps.DeleteFunc(s.specs, func(_ int64, spec models.Specification) bool { return spec.GPUID == id })
	maps.DeleteFunc(s.prices, func(_ int64, p models.Price) bool { return p.GPUID == id })
	return nil
}

func (s *Store) CreateSpecification(ctx context.Context, spec *models.Specification) apperrors.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.gpus[spec.GPUID]; !ok {
		return dberror.ErrMissingReference.Msg("GPU does not exist")
	}
	spec.ID = s.id("specifications")
	s.specs[spec.ID] = *spec
	return nil
}

func (s *Store) UpdateSpecification(ctx context.Context, spec *models.Specification) apperrors.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.specs[spec.ID]; !ok {
		return dberror.ErrNotFound.Msg("Specification not found")
	}
	if _, ok := s.gpus[spec.GPUID]; !ok {
		return dberror.ErrMissingReference.Msg("GPU does not exist")
	}
	s.specs[spec.ID] = *spec
	return nil
}

func (s *Store) CreatePrice(ctx context.Context, price *models.Price) apperrors.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.gpus[price.GPUID]; !ok {
		return dberror.ErrMissingReference.Msg("GPU does not exist")
	}
	price.ID = s.id("prices")
	s.prices[price.ID] = *price
	return nil
}

func (s *Store) UpdatePrice(ctx context.Context, price *models.Price) apperrors.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.prices[price.ID]; !ok {
		return dberror.ErrNotFound.Msg("Price not found")
	}
	if _, ok := s.gpus[price.GPUID]; !ok {
		return dberror.ErrMissingReference.Msg("GPU does not exist")
	}
	s.prices[price.ID] = *price
	return nil
}

func (s *Store) Close() error {
	return nil
}

// joined attaches the manufacturer, specifications and prices of gpu.
// Callers hold the lock.
func (s *Store) joined(gpu models.GPU) models.GPU {
	if m, ok := s.manufacturers[gpu.ManufacturerID]; ok {
		gpu.Manufacturer = &m
	}
	for _, id := range sortedKeys(s.specs) {
		if s.specs[id].GPUID == gpu.ID {
			gpu.Specifications = append(gpu.Specifications, s.specs[id])
		}
	}
	for _, id := range sortedKeys(s.prices) {
		if s.prices[id].GPUID == gpu.ID {
			gpu.Prices = append(gpu.Prices, s.prices[id])
		}
	}
	return gpu
}

func bare(gpu models.GPU) models.GPU {
	gpu.Manufacturer = nil
	gpu.Specifications = nil
	gpu.Prices = nil
	return gpu
}

func sortedKeys[V any](m map[int64]V) []int64 {
	return slices.Sorted(maps.Keys(m))
}

// Package store persists data sourcings and their state history.
package store

import (
	"context"
	"fmt"
	"sync"

	"sourcing/internal/request/models"
	id "sourcing/pkg/domain"
	"sourcing/pkg/platform/sentinel"
)

// InMemory enforces at most one non-final data sourcing per dimension, like
// the partial unique index in PostgreSQL.
type InMemory struct {
	mu        sync.RWMutex
	sourcings map[id.DataSourcingID]*models.DataSourcing
	history   map[id.DataSourcingID][]models.DataSourcingStateHistoryEntry
}

func NewInMemory() *InMemory {
	return &InMemory{
		sourcings: make(map[id.DataSourcingID]*models.DataSourcing),
		history:   make(map[id.DataSourcingID][]models.DataSourcingStateHistoryEntry),
	}
}

func (s *InMemory) Create(_ context.Context, ds *models.DataSourcing, entry models.DataSourcingStateHistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.sourcings[ds.ID]; exists {
		return fmt.Errorf("data sourcing %s: %w", ds.ID, sentinel.ErrConflict)
	}
	if err := s.checkActiveUnique(ds); err != nil {
		return err
	}
	cp := *ds
	s.sourcings[ds.ID] = &cp
	s.history[ds.ID] = append(s.history[ds.ID], entry)
	return nil
}

func (s *InMemory) Update(_ context.Context, ds *models.DataSourcing, entry models.DataSourcingStateHistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.sourcings[ds.ID]; !exists {
		return fmt.Errorf("data sourcing %s: %w", ds.ID, sentinel.ErrNotFound)
	}
	if err := s.checkActiveUnique(ds); err != nil {
		return err
	}
	cp := *ds
	s.sourcings[ds.ID] = &cp
	s.history[ds.ID] = append(s.history[ds.ID], entry)
	return nil
}

// UndoCreate removes a data sourcing written by Create.
func (s *InMemory) UndoCreate(sourcingID id.DataSourcingID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sourcings, sourcingID)
	delete(s.history, sourcingID)
}

// UndoUpdate restores previous and drops the history entry the update added.
func (s *InMemory) UndoUpdate(previous *models.DataSourcing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *previous
	s.sourcings[previous.ID] = &cp
	if h := s.history[previous.ID]; len(h) > 0 {
		s.history[previous.ID] = h[:len(h)-1]
	}
}

// Caller holds the write lock.
func (s *InMemory) checkActiveUnique(ds *models.DataSourcing) error {
	if ds.State.IsFinal() {
		return nil
	}
	for _, other := range s.sourcings {
		if other.ID != ds.ID && !other.State.IsFinal() && other.Dimension() == ds.Dimension() {
			return fmt.Errorf("active data sourcing for %s: %w", ds.Dimension(), sentinel.ErrConflict)
		}
	}
	return nil
}

func (s *InMemory) FindByID(_ context.Context, sourcingID id.DataSourcingID) (*models.DataSourcing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ds, ok := s.sourcings[sourcingID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *ds
	return &cp, nil
}

func (s *InMemory) FindActiveByDimension(_ context.Context, dim models.DataDimension) (*models.DataSourcing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ds := range s.sourcings {
		if !ds.State.IsFinal() && ds.Dimension() == dim {
			cp := *ds
			return &cp, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) ListHistory(_ context.Context, sourcingID id.DataSourcingID) ([]models.DataSourcingStateHistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.sourcings[sourcingID]; !ok {
		return nil, sentinel.ErrNotFound
	}
	return append([]models.DataSourcingStateHistoryEntry(nil), s.history[sourcingID]...), nil
}

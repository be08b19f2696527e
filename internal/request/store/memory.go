// Package store persists data requests and their state history.
package store

import (
	"context"
	"fmt"
	"sync"

	"sourcing/internal/request/models"
	id "sourcing/pkg/domain"
	"sourcing/pkg/platform/sentinel"
)

// InMemory mirrors the PostgreSQL constraints: one non-final request per user
// and dimension, and append-only history.
type InMemory struct {
	mu       sync.RWMutex
	requests map[id.RequestID]*models.Request
	history  map[id.RequestID][]models.RequestStateHistoryEntry
}

func NewInMemory() *InMemory {
	return &InMemory{
		requests: make(map[id.RequestID]*models.Request),
		history:  make(map[id.RequestID][]models.RequestStateHistoryEntry),
	}
}

func (s *InMemory) Create(_ context.Context, req *models.Request, entry models.RequestStateHistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.requests[req.ID]; exists {
		return fmt.Errorf("request %s: %w", req.ID, sentinel.ErrConflict)
	}
	if err := s.checkNonFinalUnique(req); err != nil {
		return err
	}
	s.requests[req.ID] = copyRequest(req)
	s.history[req.ID] = append(s.history[req.ID], entry)
	return nil
}

func (s *InMemory) Update(_ context.Context, req *models.Request, entry models.RequestStateHistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.requests[req.ID]; !exists {
		return fmt.Errorf("request %s: %w", req.ID, sentinel.ErrNotFound)
	}
	if err := s.checkNonFinalUnique(req); err != nil {
		return err
	}
	s.requests[req.ID] = copyRequest(req)
	s.history[req.ID] = append(s.history[req.ID], entry)
	return nil
}

// UndoCreate removes a request written by Create. The in-memory transaction
// calls it when its callback fails.
func (s *InMemory) UndoCreate(requestID id.RequestID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.requests, requestID)
	delete(s.history, requestID)
}

// UndoUpdate restores previous and drops the history entry the update added.
func (s *InMemory) UndoUpdate(previous *models.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests[previous.ID] = copyRequest(previous)
	if h := s.history[previous.ID]; len(h) > 0 {
		s.history[previous.ID] = h[:len(h)-1]
	}
}

// checkNonFinalUnique rejects a second Open or Processing request of the same
// user on the same dimension. Caller holds the write lock.
func (s *InMemory) checkNonFinalUnique(req *models.Request) error {
	if req.State.IsFinal() {
		return nil
	}
	for _, other := range s.requests {
		if other.ID == req.ID || other.UserID != req.UserID || other.State.IsFinal() {
			continue
		}
		if other.Dimension() == req.Dimension() {
			return fmt.Errorf("non-final request for %s: %w", req.Dimension(), sentinel.ErrConflict)
		}
	}
	return nil
}

func (s *InMemory) FindByID(_ context.Context, requestID id.RequestID) (*models.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	req, ok := s.requests[requestID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return copyRequest(req), nil
}

func (s *InMemory) ListByUser(_ context.Context, userID id.UserID) ([]*models.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Request, 0)
	for _, req := range s.requests {
		if req.UserID == userID {
			out = append(out, copyRequest(req))
		}
	}
	return out, nil
}

func (s *InMemory) ListByDataSourcing(_ context.Context, sourcingID id.DataSourcingID) ([]*models.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Request, 0)
	for _, req := range s.requests {
		if req.DataSourcingID != nil && *req.DataSourcingID == sourcingID {
			out = append(out, copyRequest(req))
		}
	}
	return out, nil
}

func (s *InMemory) FindNonFinal(_ context.Context, userID id.UserID, dims []models.DataDimension) (models.DimensionSet, error) {
	wanted := models.NewDimensionSet(dims...)
	s.mu.RLock()
	defer s.mu.RUnlock()
	found := models.NewDimensionSet()
	for _, req := range s.requests {
		if req.UserID != userID || req.State.IsFinal() {
			continue
		}
		if d := req.Dimension(); wanted.Contains(d) {
			found.Add(d)
		}
	}
	return found, nil
}

func (s *InMemory) ListHistory(_ context.Context, requestID id.RequestID) ([]models.RequestStateHistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.requests[requestID]; !ok {
		return nil, sentinel.ErrNotFound
	}
	return append([]models.RequestStateHistoryEntry(nil), s.history[requestID]...), nil
}

func copyRequest(req *models.Request) *models.Request {
	cp := *req
	if req.AdminComment != nil {
		c := *req.AdminComment
		cp.AdminComment = &c
	}
	if req.DataSourcingID != nil {
		dsID := *req.DataSourcingID
		cp.DataSourcingID = &dsID
	}
	return &cp
}

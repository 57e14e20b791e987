package store

import (
	"context"
	"fmt"
	"sync"

	"gatehouse/internal/visitor/models"
	id "gatehouse/pkg/domain"
	"gatehouse/pkg/platform/sentinel"
)

// InMemory stores visitor records in memory. It is the default backend for
// the demo environment and the substitute store for tests.
type InMemory struct {
	mu      sync.RWMutex
	records map[id.VisitorID]*models.VisitorRecord
}

// NewInMemory creates an in-memory visitor store.
func NewInMemory() *InMemory {
	return &InMemory{
		records: make(map[id.VisitorID]*models.VisitorRecord),
	}
}

// Create persists a new record, rejecting duplicate ids.
func (s *InMemory) Create(_ context.Context, record *models.VisitorRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[record.ID]; exists {
		return fmt.Errorf("visitor %s already registered: %w", record.ID, sentinel.ErrConflict)
	}
	s.records[record.ID] = record.Clone()
	return nil
}

// FindByID retrieves a record by visitor id.
// Returns sentinel.ErrNotFound if the visitor does not exist.
func (s *InMemory) FindByID(_ context.Context, visitorID id.VisitorID) (*models.VisitorRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.records[visitorID]; ok {
		return r.Clone(), nil
	}
	return nil, sentinel.ErrNotFound
}

// List returns a snapshot of all records.
func (s *InMemory) List(_ context.Context) ([]*models.VisitorRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.VisitorRecord, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r.Clone())
	}
	return out, nil
}

// Execute atomically validates and mutates a record under lock.
func (s *InMemory) Execute(_ context.Context, visitorID id.VisitorID, validate func(*models.VisitorRecord) error, mutate func(*models.VisitorRecord)) (*models.VisitorRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, exists := s.records[visitorID]
	if !exists {
		return nil, sentinel.ErrNotFound
	}

	working := record.Clone()
	if err := validate(working); err != nil {
		return nil, err
	}

	mutate(working)
	s.records[visitorID] = working
	return working.Clone(), nil
}

var _ VisitorStore = (*InMemory)(nil)

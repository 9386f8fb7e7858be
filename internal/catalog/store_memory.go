package catalog

import (
	"context"
	"sync"
)

// MemStore keeps the catalog in process memory. Appended garments are lost on
// restart.
type MemStore struct {
	mu       sync.RWMutex
	garments []Garment
}

func NewMemStore() *MemStore {
	return &MemStore{garments: []Garment{}}
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

// Initialize replaces the contents with records from a trusted source.
func (s *MemStore) Initialize(records []Garment) {
	cp := make([]Garment, len(records))
	copy(cp, records)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.garments = cp
}

func (s *MemStore) Append(ctx context.Context, g Garment) error {
	if err := g.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.garments = append(s.garments, g)
	return nil
}

// All returns a snapshot; later appends are not visible through it.
func (s *MemStore) All(ctx context.Context) ([]Garment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Garment, len(s.garments))
	copy(out, s.garments)
	return out, nil
}

func (s *MemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.garments)
}

package checkpoint

import (
	"context"
	"sync"
)

// MemoryStore keeps checkpoints in process memory. It is the default
// backing for single-process serving and for tests.
type MemoryStore struct {
	mu  sync.RWMutex
	cps map[string]*Checkpoint
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{cps: make(map[string]*Checkpoint)}
}

// Save stores a deep copy of the checkpoint, overwriting any previous value
// under the same id.
func (s *MemoryStore) Save(ctx context.Context, id string, cp *Checkpoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cps[id] = cp.Clone()
	return nil
}

// Load returns a deep copy of the checkpoint, or ErrNotFound.
func (s *MemoryStore) Load(ctx context.Context, id string) (*Checkpoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cp, ok := s.cps[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cp.Clone(), nil
}

// Has reports whether an id exists. Used for collision checks when minting
// new checkpoint ids.
func (s *MemoryStore) Has(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.cps[id]
	return ok
}

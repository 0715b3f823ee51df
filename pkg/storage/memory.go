package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStore is an in-memory Store for tests. Collections are kept as
// marshaled JSON so reads hand back copies, matching file-store semantics.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string][]byte
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string][]byte)}
}

// Read implements Store.
func (s *MemoryStore) Read(_ context.Context, collection string, out interface{}) error {
	s.mu.RLock()
	data, ok := s.collections[collection]
	s.mu.RUnlock()
	if !ok {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode collection %s: %w", collection, err)
	}
	return nil
}

// Write implements Store.
func (s *MemoryStore) Write(_ context.Context, collection string, records interface{}) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", collection, err)
	}
	s.mu.Lock()
	s.collections[collection] = data
	s.mu.Unlock()
	return nil
}

package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/natefinch/atomic"
)

// FileStore keeps each collection in <dir>/<collection>.json. Writes
// replace the file atomically so a crash mid-write never leaves a torn
// file, and a mutex serializes file IO within the process.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates the data directory if needed and returns a store.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Read implements Store.
func (s *FileStore) Read(_ context.Context, collection string, out interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(collection))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read collection %s: %w", collection, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode collection %s: %w", collection, err)
	}
	return nil
}

// Write implements Store.
func (s *FileStore) Write(_ context.Context, collection string, records interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", collection, err)
	}
	if err := atomic.WriteFile(s.path(collection), bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write collection %s: %w", collection, err)
	}
	return nil
}

func (s *FileStore) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

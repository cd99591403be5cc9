package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// LatestPlanKey is the single slot holding the current canonical plan.
const LatestPlanKey = "latest-plan"

// ChecksKey returns the storage key for the completion state of the plan
// with the given identity.
func ChecksKey(identity string) string {
	return "calendar-checks:" + identity
}

// Store is the key-value persistence surface. Values are JSON-serialized
// strings; a missing key reports ok=false rather than an error.
type Store interface {
	Get(key string) (value string, ok bool)
	Set(key, value string) error
	Remove(key string) error
}

// FileStore persists each key as a file under a base directory.
type FileStore struct {
	mu       sync.Mutex
	basePath string
}

// NewFileStore creates a FileStore and ensures the base directory exists.
func NewFileStore(basePath string) (*FileStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	return &FileStore{basePath: basePath}, nil
}

// sanitizeKey makes a store key safe for filenames.
func sanitizeKey(key string) string {
	return strings.NewReplacer(":", "-", "/", "-", "\\", "-").Replace(key)
}

func (s *FileStore) keyPath(key string) string {
	return filepath.Join(s.basePath, sanitizeKey(key)+".json")
}

func (s *FileStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.keyPath(key))
	if err != nil {
		return "", false
	}
	return string(data), true
}

func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.WriteFile(s.keyPath(key), []byte(value), 0644); err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}

func (s *FileStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.keyPath(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove key %s: %w", key, err)
	}
	return nil
}

// MemStore is an in-memory Store for tests.
type MemStore struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{values: make(map[string]string)}
}

func (s *MemStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *MemStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

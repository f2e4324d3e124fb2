package storage

import (
	"context"
	"errors"
	"sort"
	"sync"

	"todoshell/pkg/database"
)

// ErrNotFound is returned by Get when the key holds no value
var ErrNotFound = database.ErrNotFound

// Storage is a string key-value store
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// SQLStorage keeps values in the storage table of a sqlite3 or postgres database
type SQLStorage struct {
	db *database.DB
}

func NewSQLStorage(db *database.DB) *SQLStorage {
	return &SQLStorage{db: db}
}

func (s *SQLStorage) Get(ctx context.Context, key string) (string, error) {
	return database.GetValue(ctx, s.db, key)
}

func (s *SQLStorage) Set(ctx context.Context, key, value string) error {
	return database.SetValue(ctx, s.db, key, value)
}

func (s *SQLStorage) Remove(ctx context.Context, key string) error {
	return database.DeleteValue(ctx, s.db, key)
}

// MemoryStorage keeps values for the lifetime of the process
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

func (s *MemoryStorage) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *MemoryStorage) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemoryStorage) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// Keys returns the stored keys in sorted order
func (s *MemoryStorage) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// getRecord reads key and treats a missing key or a stored "null" as absent
func getRecord(ctx context.Context, s Storage, key string) (string, bool, error) {
	v, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if v == "" || v == "null" {
		return "", false, nil
	}
	return v, true, nil
}

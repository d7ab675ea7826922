package store

import (
	"bytes"
	"context"
	"docbridge-svc/src/internal/models"
	"sync"
	"time"
)

// memoryStore is an in-process KeyValue for single-instance deployments
// and tests. Expiry is checked lazily on access.
type memoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

func NewMemoryStore() KeyValue {
	return &memoryStore{entries: make(map[string]memoryEntry)}
}

func (e memoryEntry) expired() bool {
	return !e.expiresAt.IsZero() && time.Now().After(e.expiresAt)
}

func (s *memoryStore) Put(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := memoryEntry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	s.entries[key] = entry

	return nil
}

func (s *memoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok || entry.expired() {
		delete(s.entries, key)
		return nil, models.ErrRecordNotFound
	}

	return append([]byte(nil), entry.value...), nil
}

func (s *memoryStore) TakeOnce(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok || entry.expired() {
		delete(s.entries, key)
		return nil, models.ErrRecordNotFound
	}

	delete(s.entries, key)
	return entry.value, nil
}

func (s *memoryStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}

func (s *memoryStore) RemoveIf(_ context.Context, key string, expected []byte) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok || entry.expired() {
		delete(s.entries, key)
		return false, nil
	}

	if !bytes.Equal(entry.value, expected) {
		return false, nil
	}

	delete(s.entries, key)
	return true, nil
}

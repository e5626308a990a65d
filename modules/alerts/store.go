package alerts

import (
	"context"
	"sync"
	"time"
)

// Store is the last-value cache: one entry per key with server-side expiry.
// Concurrent writers to the same key follow last-writer-wins; no cross-key
// coordination is required of implementations.
type Store interface {
	// Put stores the value under the key with the given TTL, replacing any
	// previous entry.
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Get returns the stored value, or ErrNotFound when the key is absent
	// or its entry has expired.
	Get(ctx context.Context, key string) ([]byte, error)
}

// MemoryStore is an in-process Store for tests and single-node development.
// Expired entries are treated as absent on read; no background sweeping.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// NewMemoryStoreWithClock creates a MemoryStore with an injected clock.
func NewMemoryStoreWithClock(now func() time.Time) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     now,
	}
}

func (s *MemoryStore) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	cp := make([]byte, len(value))
	copy(cp, value)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = memoryEntry{
		value:     cp,
		expiresAt: s.now().Add(ttl),
	}
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	if !s.now().Before(entry.expiresAt) {
		s.mu.Lock()
		// Re-check under the write lock; another Put may have refreshed it.
		if cur, ok := s.entries[key]; ok && !s.now().Before(cur.expiresAt) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, ErrNotFound
	}
	return entry.value, nil
}

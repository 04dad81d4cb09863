package blacklist

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	userID        string
	blacklistedAt time.Time
	expiresAt     time.Time
}

// MemoryStore is a process-local Store. Stale entries are dropped
// lazily on lookup and in bulk by the sweep goroutine, so memory use
// stays bounded by the number of tokens still inside their validity
// window.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry

	stopOnce sync.Once
	stop     chan struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]entry),
		stop:    make(chan struct{}),
	}
}

func (s *MemoryStore) Blacklist(_ context.Context, token, userID string, expiresAt time.Time) error {
	id := DeriveTokenID(token)

	s.mu.Lock()
	s.entries[id] = entry{
		userID:        userID,
		blacklistedAt: time.Now(),
		expiresAt:     expiresAt,
	}
	s.mu.Unlock()

	return nil
}

func (s *MemoryStore) IsBlacklisted(_ context.Context, token string) (bool, error) {
	id := DeriveTokenID(token)

	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()

	if !ok {
		return false, nil
	}

	if time.Now().After(e.expiresAt) {
		s.mu.Lock()
		// Re-check under the write lock; the entry may have been
		// overwritten with a later expiry in between.
		if e, ok := s.entries[id]; ok && time.Now().After(e.expiresAt) {
			delete(s.entries, id)
		}
		s.mu.Unlock()

		return false, nil
	}

	return true, nil
}

// StartSweeping purges expired entries every interval until Stop is
// called.
func (s *MemoryStore) StartSweeping(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.sweep()
			case <-s.stop:
				return
			}
		}
	}()
}

func (s *MemoryStore) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
}

func (s *MemoryStore) sweep() {
	now := time.Now()

	s.mu.Lock()
	for id, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, id)
		}
	}
	s.mu.Unlock()
}

func (s *MemoryStore) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}

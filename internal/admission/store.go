package admission

import (
	"sync"
	"time"
)

// Store persists per-key request timestamps for the rolling window.
// Implementations are not required to be atomic across calls; the Gate
// serializes the prune/count/append sequence itself.
type Store interface {
	// Count returns the number of recorded instants at or after cutoff,
	// discarding older entries.
	Count(key string, cutoff time.Time) int

	// Append records a request instant for key.
	Append(key string, t time.Time)
}

// MemoryStore is the in-process Store backing for single-node deployments.
// Records are created on first request from a key and pruned lazily on
// every Count; a key whose entries all age out keeps no state.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string][]time.Time
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string][]time.Time),
	}
}

// Count prunes entries older than cutoff and returns the remaining count
func (s *MemoryStore) Count(key string, cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.records[key]
	kept := entries[:0]
	for _, t := range entries {
		if !t.Before(cutoff) {
			kept = append(kept, t)
		}
	}

	if len(kept) == 0 {
		delete(s.records, key)
		return 0
	}
	s.records[key] = kept
	return len(kept)
}

// Append records a request instant for key
func (s *MemoryStore) Append(key string, t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = append(s.records[key], t)
}

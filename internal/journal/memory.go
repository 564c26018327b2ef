package journal

import (
	"context"
	"sort"
	"sync"
	"time"

	mdwerror "github.com/msto63/vmel/foundation/core/error"
)

// MemoryStore implements Store in memory, for tests and for runs without a
// journal file
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]*Entry)}
}

// Record stores a copy of entry
func (s *MemoryStore) Record(ctx context.Context, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prepare(entry)
	if _, exists := s.entries[entry.ID]; exists {
		return mdwerror.New("run already recorded").
			WithCode(mdwerror.CodeDuplicateEntry).
			WithOperation("journal.Record").
			WithDetail("id", entry.ID)
	}
	clone := *entry
	s.entries[entry.ID] = &clone
	return nil
}

// List returns entries newest first
func (s *MemoryStore) List(ctx context.Context, filter Filter) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*Entry
	for _, e := range s.entries {
		if filter.Origin != "" && e.Origin != filter.Origin {
			continue
		}
		if !filter.Since.IsZero() && e.Timestamp.Before(filter.Since) {
			continue
		}
		if filter.OnlyErrors && e.ErrorCount == 0 {
			continue
		}
		clone := *e
		result = append(result, &clone)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Timestamp.After(result[j].Timestamp)
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(result) {
			return nil, nil
		}
		result = result[filter.Offset:]
	}
	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}

// Get returns the entry with the given id
func (s *MemoryStore) Get(ctx context.Context, id string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, mdwerror.New("run not found").
			WithCode(mdwerror.CodeNotFound).
			WithOperation("journal.Get").
			WithDetail("id", id)
	}
	clone := *e
	return &clone, nil
}

// Prune deletes entries older than the given age
func (s *MemoryStore) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-olderThan)
	var removed int64
	for id, e := range s.entries {
		if e.Timestamp.Before(cutoff) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed, nil
}

// Ping always succeeds
func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// Close is a no-op
func (s *MemoryStore) Close() error {
	return nil
}

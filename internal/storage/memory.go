package storage

import (
	"context"
	"sync"
)

// MemoryRepository keeps records in process memory. Used for dry runs.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[uint32]MatchRecord
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[uint32]MatchRecord)}
}

func (m *MemoryRepository) UpsertMatch(_ context.Context, rec *MatchRecord) (Outcome, error) {
	if err := rec.Verify(); err != nil {
		return Unchanged, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	old, exists := m.records[rec.MatchID]
	if exists && old.CheckSum == rec.CheckSum {
		return Unchanged, nil
	}
	m.records[rec.MatchID] = *rec
	if exists {
		return Updated, nil
	}
	return Inserted, nil
}

func (m *MemoryRepository) KnownChecksum(_ context.Context, matchID uint32) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[matchID]
	return rec.CheckSum, ok, nil
}

func (m *MemoryRepository) CountMatches(context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records), nil
}

// Get returns a copy of the stored record.
func (m *MemoryRepository) Get(matchID uint32) (MatchRecord, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[matchID]
	return rec, ok
}

func (m *MemoryRepository) Close() error { return nil }

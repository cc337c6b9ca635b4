package profile

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps profiles in process memory. It backs the console player
// and tests.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]Profile
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profiles: make(map[string]Profile)}
}

// LoadProfile implements Store.
func (m *MemoryStore) LoadProfile(ctx context.Context, key string) (*Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.profiles[key]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// CreateProfile implements Store.
func (m *MemoryStore) CreateProfile(ctx context.Context, key string, p Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.profiles[key] = p
	return nil
}

// SaveProgress implements Store.
func (m *MemoryStore) SaveProgress(ctx context.Context, key string, update Progress, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.profiles[key]
	if !ok {
		p = Default()
	}
	m.profiles[key] = p.Apply(update, at)
	return nil
}

// Len returns the number of stored profiles.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.profiles)
}

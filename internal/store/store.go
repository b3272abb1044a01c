package store

import (
	"context"
	"sync"
	"time"
)

// Store mirrors the host page state the bridge reads: the current location
// and whether the unsaved changes tracker is initialized.
type Store interface {
	SetLocation(ctx context.Context, sessionID, href string, ttl time.Duration) error
	GetLocation(ctx context.Context, sessionID string) (string, error)
	SetUnloadInitialized(ctx context.Context, sessionID string, initialized bool, ttl time.Duration) error
	UnloadInitialized(ctx context.Context, sessionID string) (bool, error)
	Forget(ctx context.Context, sessionID string) error
}

type entry struct {
	value    string
	expireAt time.Time
}

type MemoryStore struct {
	mu        sync.RWMutex
	locations map[string]entry
	unload    map[string]entry
	now       func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		locations: make(map[string]entry),
		unload:    make(map[string]entry),
		now:       time.Now,
	}
}

func (m *MemoryStore) SetLocation(_ context.Context, sessionID, href string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locations[sessionID] = entry{value: href, expireAt: m.now().Add(ttl)}
	return nil
}

func (m *MemoryStore) GetLocation(_ context.Context, sessionID string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.locations[sessionID]
	if !ok || !m.now().Before(e.expireAt) {
		return "", nil
	}
	return e.value, nil
}

func (m *MemoryStore) SetUnloadInitialized(_ context.Context, sessionID string, initialized bool, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := "0"
	if initialized {
		v = "1"
	}
	m.unload[sessionID] = entry{value: v, expireAt: m.now().Add(ttl)}
	return nil
}

func (m *MemoryStore) UnloadInitialized(_ context.Context, sessionID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.unload[sessionID]
	if !ok || !m.now().Before(e.expireAt) {
		return false, nil
	}
	return e.value == "1", nil
}

func (m *MemoryStore) Forget(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locations, sessionID)
	delete(m.unload, sessionID)
	return nil
}

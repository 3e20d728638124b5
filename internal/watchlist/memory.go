package watchlist

import (
	"context"
	"slices"
	"sync"
	"time"
)

// MemoryBackend keeps lists in process.  It is used when Redis is not
// configured; lists do not survive a restart.
type MemoryBackend struct {
	mu    sync.Mutex
	now   func() time.Time
	lists map[string]memoryEntry
}

type memoryEntry struct {
	films   []string
	expires time.Time
}

// NewMemoryBackend returns an empty backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{now: time.Now, lists: make(map[string]memoryEntry)}
}

func (m *MemoryBackend) PutNew(_ context.Context, code string, films []string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.live(code); ok {
		return false, nil
	}
	m.lists[code] = memoryEntry{films: slices.Clone(films), expires: m.now().Add(ttl)}
	return true, nil
}

func (m *MemoryBackend) Replace(_ context.Context, code string, films []string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.live(code); !ok {
		return false, nil
	}
	m.lists[code] = memoryEntry{films: slices.Clone(films), expires: m.now().Add(ttl)}
	return true, nil
}

func (m *MemoryBackend) Get(_ context.Context, code string) ([]string, time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.live(code)
	if !ok {
		return nil, time.Time{}, ErrNotFound
	}
	return slices.Clone(e.films), e.expires, nil
}

// live returns the entry for code, dropping it if expired.  m.mu must be
// held.
func (m *MemoryBackend) live(code string) (memoryEntry, bool) {
	e, ok := m.lists[code]
	if !ok {
		return memoryEntry{}, false
	}
	if !m.now().Before(e.expires) {
		delete(m.lists, code)
		return memoryEntry{}, false
	}
	return e, true
}

package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// Memory es un caché en memoria con expiración por TTL.
// La expiración se revisa en cada lectura; Sweep permite una limpieza completa.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	stats   Stats
	now     func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		m.stats.Misses++
		return nil, false
	}
	if !e.expiresAt.After(m.now()) {
		delete(m.entries, key)
		m.stats.Misses++
		return nil, false
	}

	m.stats.Hits++
	return e.data, true
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = memoryEntry{
		data:      value,
		expiresAt: m.now().Add(ttl),
	}
	m.stats.Sets++
}

func (m *Memory) Delete(_ context.Context, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[key]; ok {
		delete(m.entries, key)
		m.stats.Deletes++
	}
}

func (m *Memory) DeletePattern(_ context.Context, pattern string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	deleted := 0
	for k := range m.entries {
		if strings.Contains(k, pattern) {
			delete(m.entries, k)
			deleted++
		}
	}
	m.stats.Deletes += int64(deleted)
	return deleted
}

// Sweep elimina todas las entradas vencidas. Pensado para llamarse periódicamente.
func (m *Memory) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for k, e := range m.entries {
		if !e.expiresAt.After(now) {
			delete(m.entries, k)
			removed++
		}
	}
	return removed
}

func (m *Memory) Stats(_ context.Context) Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := m.stats
	s.Entries = len(m.entries)
	return s.withHitRate()
}

package repository

import "sync"

// MemoryCache is a process-local CacheRepository used when Redis is not
// configured and in tests.
type MemoryCache struct {
	mu   sync.RWMutex
	Data map[string]string
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		Data: make(map[string]string),
	}
}

func (m *MemoryCache) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MemoryCache) Set(key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
	return nil
}

func (m *MemoryCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.Data)
}

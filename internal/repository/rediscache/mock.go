package rediscache

import (
	"context"
	"sync"
	"time"
)

// MockCache is an in-memory domain.EstimateCache for demo mode and tests.
// TTLs are ignored.
type MockCache struct {
	mu   sync.Mutex
	data map[string]string
}

// NewMockCache creates a new in-memory cache
func NewMockCache() *MockCache {
	return &MockCache{
		data: make(map[string]string),
	}
}

func (m *MockCache) Get(ctx context.Context, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.data[key]
	return val, ok
}

func (m *MockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

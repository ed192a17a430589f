package cache

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-process Store for single-node runs (redis.addr: memory).
// Entries are not shared between processes.
type Memory struct {
	mu    sync.Mutex
	items map[string]memItem
	gens  map[string]int64
	now   func() time.Time
}

type memItem struct {
	val []byte
	exp time.Time
}

func NewMemory() *Memory {
	return &Memory{items: make(map[string]memItem), gens: make(map[string]int64), now: time.Now}
}

func (m *Memory) GetOrLoad(ctx context.Context, key string, ttl time.Duration, load func(context.Context) ([]byte, error)) ([]byte, error) {
	m.mu.Lock()
	it, ok := m.items[key]
	m.mu.Unlock()
	if ok && m.now().Before(it.exp) {
		return it.val, nil
	}
	b, err := load(ctx)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.items[key] = memItem{val: b, exp: m.now().Add(ttl)}
	m.mu.Unlock()
	return b, nil
}

func (m *Memory) Gen(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gens[key], nil
}

// Bump also drops expired entries; keys of older generations are never read
// again and would otherwise stay forever.
func (m *Memory) Bump(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gens[key]++
	now := m.now()
	for k, it := range m.items {
		if !now.Before(it.exp) {
			delete(m.items, k)
		}
	}
	return nil
}

func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

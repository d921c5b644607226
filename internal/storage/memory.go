package storage

import (
	"context"
	"sync"
)

// MemoryBackend is an in-process backend with no durability, used in
// tests and for ephemeral runs.
type MemoryBackend struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

func NewMemory() *MemoryBackend {
	return &MemoryBackend{entries: make(map[string][]byte)}
}

func (b *MemoryBackend) Read(_ context.Context, key string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	payload, ok := b.entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(payload))
	copy(out, payload)
	return out, nil
}

func (b *MemoryBackend) Write(_ context.Context, key string, payload []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	stored := make([]byte, len(payload))
	copy(stored, payload)
	b.entries[key] = stored
	return nil
}

func (b *MemoryBackend) Close() error { return nil }

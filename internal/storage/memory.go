package storage

import (
	"context"
	"sync"
)

// DefaultQuotaBytes mirrors the per-origin budget browsers give local storage.
const DefaultQuotaBytes = 5 * 1024 * 1024

// MemoryBackend keeps every namespace in process memory.
type MemoryBackend struct {
	mu         sync.RWMutex
	namespaces map[string]map[string][]byte
	quota      int
}

// NewMemoryBackend builds a backend whose namespaces may each hold quotaBytes of
// keys plus values. A quota ≤ 0 disables the check.
func NewMemoryBackend(quotaBytes int) *MemoryBackend {
	return &MemoryBackend{
		namespaces: make(map[string]map[string][]byte),
		quota:      quotaBytes,
	}
}

func (b *MemoryBackend) Session(sessionID string) Store {
	return &memoryStore{backend: b, namespace: sessionID}
}

func (b *MemoryBackend) Ping(context.Context) error { return nil }

func (b *MemoryBackend) Close() error { return nil }

type memoryStore struct {
	backend   *MemoryBackend
	namespace string
}

func (s *memoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.backend.mu.RLock()
	defer s.backend.mu.RUnlock()
	ns := s.backend.namespaces[s.namespace]
	if ns == nil {
		return nil, false, nil
	}
	val, ok := ns[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, true, nil
}

func (s *memoryStore) Set(_ context.Context, key string, value []byte) error {
	s.backend.mu.Lock()
	defer s.backend.mu.Unlock()
	ns := s.backend.namespaces[s.namespace]
	if ns == nil {
		ns = make(map[string][]byte)
		s.backend.namespaces[s.namespace] = ns
	}
	if s.backend.quota > 0 {
		used := len(key) + len(value)
		for k, v := range ns {
			if k == key {
				continue
			}
			used += len(k) + len(v)
		}
		if used > s.backend.quota {
			return ErrQuotaExceeded
		}
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	ns[key] = stored
	return nil
}

func (s *memoryStore) Remove(_ context.Context, key string) error {
	s.backend.mu.Lock()
	defer s.backend.mu.Unlock()
	if ns := s.backend.namespaces[s.namespace]; ns != nil {
		delete(ns, key)
	}
	return nil
}

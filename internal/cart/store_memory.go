package cart

import (
	"context"
	"sync"
)

type MemStore struct {
	mu        sync.RWMutex
	snapshots map[string][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{snapshots: make(map[string][]byte)}
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) Load(ctx context.Context, ownerID string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.snapshots[ownerID]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, true, nil
}

func (s *MemStore) Save(ctx context.Context, ownerID string, snapshot []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := make([]byte, len(snapshot))
	copy(data, snapshot)
	s.snapshots[ownerID] = data
	return nil
}

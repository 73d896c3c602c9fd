package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"portal/internal/partner"
	"portal/pkg/platform/sentinel"
)

// InMemory keeps partner keys in a map, ordered by id on listing.
type InMemory struct {
	mu   sync.RWMutex
	keys map[partner.KeyID]partner.Key
}

func NewInMemory(keys ...partner.Key) *InMemory {
	s := &InMemory{keys: make(map[partner.KeyID]partner.Key, len(keys))}
	for _, k := range keys {
		s.keys[k.ID] = k
	}
	return s
}

func (s *InMemory) ListKeys(_ context.Context) ([]partner.Key, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]partner.Key, 0, len(s.keys))
	for _, k := range s.keys {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].ID < keys[j].ID })
	return keys, nil
}

func (s *InMemory) FindKey(_ context.Context, id partner.KeyID) (*partner.Key, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	k, ok := s.keys[id]
	if !ok {
		return nil, fmt.Errorf("partner key %s: %w", id, sentinel.ErrNotFound)
	}
	return &k, nil
}

func (s *InMemory) SaveKey(_ context.Context, key partner.Key) error {
	if key.ID.IsNil() {
		return fmt.Errorf("partner key id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.keys[key.ID]; exists {
		return fmt.Errorf("partner key %s: %w", key.ID, sentinel.ErrConflict)
	}
	s.keys[key.ID] = key
	return nil
}

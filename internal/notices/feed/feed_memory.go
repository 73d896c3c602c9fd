package feed

import (
	"context"
	"sync"

	"portal/internal/notices"
)

// InMemory keeps at most capacity notices.
type InMemory struct {
	mu       sync.RWMutex
	items    []notices.Notice
	capacity int
}

func NewInMemory(capacity int) *InMemory {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &InMemory{capacity: capacity}
}

func (f *InMemory) Publish(_ context.Context, n notices.Notice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, n)
	if over := len(f.items) - f.capacity; over > 0 {
		f.items = append([]notices.Notice(nil), f.items[over:]...)
	}
	return nil
}

func (f *InMemory) Recent(_ context.Context, limit int) ([]notices.Notice, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	start := 0
	if limit > 0 && len(f.items) > limit {
		start = len(f.items) - limit
	}
	return append([]notices.Notice{}, f.items[start:]...), nil
}

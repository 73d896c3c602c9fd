package state

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Store owns a state value of type S. Reducer runs are serialized by a mutex;
// handlers and subscribers run after the fold, outside the lock, so they may
// dispatch again. Concurrent receipts are applied in arrival order (last
// write wins).
type Store[S any] struct {
	mu       sync.Mutex
	state    S
	reducer  Reducer[S]
	handlers map[ActionType][]Handler

	subMu       sync.RWMutex
	subscribers map[int]func(S)
	nextSubID   int

	logger   *slog.Logger
	observer func(action Action, elapsed time.Duration)
}

// Option configures a Store.
type Option[S any] func(*Store[S])

// WithLogger sets the logger used for dispatch tracing.
func WithLogger[S any](logger *slog.Logger) Option[S] {
	return func(s *Store[S]) {
		s.logger = logger
	}
}

// WithObserver registers a hook called after every reducer run.
func WithObserver[S any](fn func(action Action, elapsed time.Duration)) Option[S] {
	return func(s *Store[S]) {
		s.observer = fn
	}
}

// New creates a store seeded with initial.
func New[S any](reducer Reducer[S], initial S, opts ...Option[S]) *Store[S] {
	s := &Store[S]{
		state:       initial,
		reducer:     reducer,
		handlers:    make(map[ActionType][]Handler),
		subscribers: make(map[int]func(S)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handle registers handlers for an action type. Handlers run in registration order.
func (s *Store[S]) Handle(actionType ActionType, handlers ...Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[actionType] = append(s.handlers[actionType], handlers...)
}

// State returns the current state value.
func (s *Store[S]) State() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to be called with the new state after every dispatch.
// The returned function removes the subscription.
func (s *Store[S]) Subscribe(fn func(S)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subscribers, id)
	}
}

// Dispatch reduces action into the state, notifies subscribers, then runs the
// handlers registered for the action type.
func (s *Store[S]) Dispatch(ctx context.Context, action Action) {
	if action == nil {
		return
	}

	s.mu.Lock()
	start := time.Now()
	s.state = s.reducer(s.state, action)
	next := s.state
	handlers := append([]Handler(nil), s.handlers[action.Type()]...)
	s.mu.Unlock()

	if s.observer != nil {
		s.observer(action, time.Since(start))
	}
	if s.logger != nil {
		s.logger.DebugContext(ctx, "action dispatched",
			"type", string(action.Type()),
			"handlers", len(handlers),
		)
	}

	s.subMu.RLock()
	subs := make([]func(S), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.subMu.RUnlock()
	for _, fn := range subs {
		fn(next)
	}

	for _, h := range handlers {
		h.Handle(ctx, action, s)
	}
}

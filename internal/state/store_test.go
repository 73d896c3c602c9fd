package state

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	typeIncrement ActionType = "INCREMENT"
	typeReset     ActionType = "RESET"
	typeNoop      ActionType = "NOOP"
)

type testAction struct {
	t ActionType
}

func (a testAction) Type() ActionType { return a.t }

type counter struct {
	Count int
}

func reduceCounter(s counter, a Action) counter {
	switch a.Type() {
	case typeIncrement:
		return counter{Count: s.Count + 1}
	case typeReset:
		return counter{}
	}
	return s
}

func TestStore_Dispatch(t *testing.T) {
	ctx := context.Background()

	t.Run("starts with initial state", func(t *testing.T) {
		s := New(reduceCounter, counter{Count: 3})
		assert.Equal(t, 3, s.State().Count)
	})

	t.Run("folds actions through the reducer", func(t *testing.T) {
		s := New(reduceCounter, counter{})
		s.Dispatch(ctx, testAction{typeIncrement})
		s.Dispatch(ctx, testAction{typeIncrement})
		assert.Equal(t, 2, s.State().Count)

		s.Dispatch(ctx, testAction{typeReset})
		assert.Equal(t, 0, s.State().Count)
	})

	t.Run("unknown action leaves state unchanged", func(t *testing.T) {
		s := New(reduceCounter, counter{Count: 5})
		s.Dispatch(ctx, testAction{typeNoop})
		assert.Equal(t, 5, s.State().Count)
	})

	t.Run("nil action is ignored", func(t *testing.T) {
		s := New(reduceCounter, counter{Count: 1})
		s.Dispatch(ctx, nil)
		assert.Equal(t, 1, s.State().Count)
	})
}

func TestStore_Handlers(t *testing.T) {
	ctx := context.Background()

	t.Run("handler runs after the reducer", func(t *testing.T) {
		s := New(reduceCounter, counter{})
		var seen int
		s.Handle(typeIncrement, HandlerFunc(func(_ context.Context, _ Action, _ Dispatcher) {
			seen = s.State().Count
		}))

		s.Dispatch(ctx, testAction{typeIncrement})
		assert.Equal(t, 1, seen)
	})

	t.Run("handler may dispatch follow-up actions", func(t *testing.T) {
		s := New(reduceCounter, counter{})
		s.Handle(typeNoop, HandlerFunc(func(ctx context.Context, _ Action, d Dispatcher) {
			d.Dispatch(ctx, testAction{typeIncrement})
		}))

		s.Dispatch(ctx, testAction{typeNoop})
		assert.Equal(t, 1, s.State().Count)
	})

	t.Run("handlers only run for their action type", func(t *testing.T) {
		s := New(reduceCounter, counter{})
		calls := 0
		s.Handle(typeReset, HandlerFunc(func(context.Context, Action, Dispatcher) { calls++ }))

		s.Dispatch(ctx, testAction{typeIncrement})
		assert.Equal(t, 0, calls)
		s.Dispatch(ctx, testAction{typeReset})
		assert.Equal(t, 1, calls)
	})

	t.Run("handlers run in registration order", func(t *testing.T) {
		s := New(reduceCounter, counter{})
		var order []string
		s.Handle(typeNoop,
			HandlerFunc(func(context.Context, Action, Dispatcher) { order = append(order, "first") }),
			HandlerFunc(func(context.Context, Action, Dispatcher) { order = append(order, "second") }),
		)
		s.Dispatch(ctx, testAction{typeNoop})
		assert.Equal(t, []string{"first", "second"}, order)
	})
}

func TestStore_Subscribe(t *testing.T) {
	ctx := context.Background()
	s := New(reduceCounter, counter{})

	var got []int
	unsubscribe := s.Subscribe(func(c counter) { got = append(got, c.Count) })

	s.Dispatch(ctx, testAction{typeIncrement})
	s.Dispatch(ctx, testAction{typeIncrement})
	unsubscribe()
	s.Dispatch(ctx, testAction{typeIncrement})

	assert.Equal(t, []int{1, 2}, got)
}

func TestStore_Observer(t *testing.T) {
	ctx := context.Background()
	var types []ActionType
	s := New(reduceCounter, counter{}, WithObserver[counter](func(a Action, elapsed time.Duration) {
		types = append(types, a.Type())
		assert.GreaterOrEqual(t, elapsed, time.Duration(0))
	}))

	s.Dispatch(ctx, testAction{typeIncrement})
	s.Dispatch(ctx, testAction{typeNoop})

	assert.Equal(t, []ActionType{typeIncrement, typeNoop}, types)
}

func TestStore_ConcurrentDispatchIsSerialized(t *testing.T) {
	ctx := context.Background()
	s := New(reduceCounter, counter{})

	const goroutines = 50
	const perGoroutine = 20
	var wg sync.WaitGroup
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perGoroutine {
				s.Dispatch(ctx, testAction{typeIncrement})
			}
		}()
	}
	wg.Wait()

	require.Equal(t, goroutines*perGoroutine, s.State().Count)
}

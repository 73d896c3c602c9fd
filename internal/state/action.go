// Package state is the single mutation gate for application state.
//
// State changes only by dispatching an Action through a Store: the store folds
// the action into the current state with a pure Reducer, then runs any
// Handlers registered for the action type. Handlers perform side effects
// (HTTP calls, feeds) and report outcomes by dispatching further actions.
package state

import "context"

// ActionType names an action. Reducers and handlers switch on it.
type ActionType string

// Action is a dispatched message. Intent actions request a side effect;
// receipt actions carry the outcome of one.
type Action interface {
	Type() ActionType
}

// Dispatcher accepts actions. Implementations must be safe for concurrent use.
type Dispatcher interface {
	Dispatch(ctx context.Context, action Action)
}

// DispatchFunc adapts a function to Dispatcher.
type DispatchFunc func(ctx context.Context, action Action)

func (f DispatchFunc) Dispatch(ctx context.Context, action Action) {
	f(ctx, action)
}

// Reducer folds an action into a state value. It must not mutate its input
// and must return the input unchanged for action types it does not handle.
type Reducer[S any] func(state S, action Action) S

// Handler reacts to a dispatched action after it has been reduced.
type Handler interface {
	Handle(ctx context.Context, action Action, d Dispatcher)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, action Action, d Dispatcher)

func (f HandlerFunc) Handle(ctx context.Context, action Action, d Dispatcher) {
	f(ctx, action, d)
}

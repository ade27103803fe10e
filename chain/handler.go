package chain

import (
	"context"

	"github.com/nomis52/chainkit/result"
)

// Outcome is the two-valued signal a handler returns to the engine.
type Outcome int

const (
	// Continue hands the state to the next handler in the chain.
	Continue Outcome = iota
	// Stop ends the run early; remaining handlers are never visited.
	Stop
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case Continue:
		return "continue"
	case Stop:
		return "stop"
	default:
		return "unknown"
	}
}

// Handler is a single unit of work operating on the shared state object.
//
// Implementations may mutate state freely; the engine never copies it.
// Handlers should honor ctx cancellation cooperatively - the engine checks
// the context between handlers but does not abort a handler in flight.
type Handler interface {
	Handle(ctx context.Context, state any) (Outcome, error)
}

// HandlerFunc adapts an ordinary function to the Handler interface.
type HandlerFunc func(ctx context.Context, state any) (Outcome, error)

// Handle calls f(ctx, state).
func (f HandlerFunc) Handle(ctx context.Context, state any) (Outcome, error) {
	return f(ctx, state)
}

// ResultHandler is the second handler shape: instead of an Outcome it
// produces a result.Result, which the engine translates via an adapter
// (success means Continue, failure means Stop). Register implementations
// with AddResultHandler or AddConditionalResultHandler.
type ResultHandler interface {
	Handle(ctx context.Context, state any) (result.Result, error)
}

// Condition is a guard predicate over the state, deciding whether a
// handler runs this invocation. It must not mutate the state.
type Condition func(state any) bool

package chain

import "errors"

var (
	// ErrNilState is returned by Run when the state object is nil.
	ErrNilState = errors.New("chain state must not be nil")

	// ErrNilResolver is reported by Build when the builder was created
	// without a resolver.
	ErrNilResolver = errors.New("resolver must not be nil")

	// ErrNilCondition is reported by Build when a conditional registration
	// was given a nil predicate.
	ErrNilCondition = errors.New("condition must not be nil")

	// ErrNilCallback is reported by Build when UseErrorHandler or
	// UseDiagnostics was given a nil callback.
	ErrNilCallback = errors.New("callback must not be nil")

	// ErrNotRegistered is returned by Registry.Resolve for unknown keys.
	ErrNotRegistered = errors.New("handler not registered")

	// ErrDuplicateKey is returned by Registry.Register when the key is
	// already taken.
	ErrDuplicateKey = errors.New("handler key already registered")

	// ErrNotHandler is returned at run time when a resolved instance does
	// not implement Handler.
	ErrNotHandler = errors.New("resolved instance does not implement chain.Handler")

	// ErrNotResultHandler is returned at run time when a resolved instance
	// does not implement ResultHandler.
	ErrNotResultHandler = errors.New("resolved instance does not implement chain.ResultHandler")
)

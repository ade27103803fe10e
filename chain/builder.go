package chain

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/nomis52/chainkit/result"
)

// ErrorHandler is the chain-level error callback. It receives every handler
// error together with the state the handler was operating on. After the
// callback returns, the run continues with the next handler.
type ErrorHandler func(ctx context.Context, err error, state any)

// DiagnosticsSink receives the completed Diagnostics snapshot of a run.
type DiagnosticsSink func(d Diagnostics)

// descriptor binds a handler factory, an optional guard condition, and the
// registration key used for diagnostics and error messages.
type descriptor struct {
	name      string
	condition Condition
	factory   func(Resolver) (Handler, error)
}

// Builder accumulates handler registrations and produces an immutable
// Chain. All Add/Use methods return the builder for fluent chaining;
// argument errors (nil predicates or callbacks) are recorded and surface
// from Build.
//
// The builder never checks that a key is actually resolvable - that failure
// surfaces at run time, when the handler's factory executes.
type Builder struct {
	resolver      Resolver
	logger        *slog.Logger
	descriptors   []descriptor
	onError       ErrorHandler
	onDiagnostics DiagnosticsSink
	err           error
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithLogger sets the logger used by chains built from this builder.
func WithLogger(logger *slog.Logger) BuilderOption {
	return func(b *Builder) {
		b.logger = logger.With("component", "chain")
	}
}

// NewBuilder creates a Builder that resolves handler keys through resolver.
func NewBuilder(resolver Resolver, opts ...BuilderOption) *Builder {
	b := &Builder{
		resolver: resolver,
		logger:   slog.Default().With("component", "chain"),
	}
	if resolver == nil {
		b.setErr(ErrNilResolver)
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// AddHandler appends an unconditional handler registered under key.
func (b *Builder) AddHandler(key string) *Builder {
	return b.add(key, nil, handlerFactory(key))
}

// AddConditionalHandler appends a handler guarded by condition; when the
// condition evaluates false for the current state the handler is skipped
// without being instantiated.
func (b *Builder) AddConditionalHandler(key string, condition Condition) *Builder {
	if condition == nil {
		return b.setErr(fmt.Errorf("add conditional handler %q: %w", key, ErrNilCondition))
	}
	return b.add(key, condition, handlerFactory(key))
}

// AddResultHandler appends a ResultHandler registered under key, wrapped so
// that a successful Result continues the chain and a failed one stops it.
// An optional observer callback receives the raw Result of every
// invocation, before translation.
func (b *Builder) AddResultHandler(key string, onResult ...func(result.Result)) *Builder {
	var observer func(result.Result)
	if len(onResult) > 0 {
		observer = onResult[0]
	}
	return b.add(key, nil, resultHandlerFactory(key, observer))
}

// AddConditionalResultHandler combines AddResultHandler with a guard
// condition.
func (b *Builder) AddConditionalResultHandler(key string, condition Condition) *Builder {
	if condition == nil {
		return b.setErr(fmt.Errorf("add conditional result handler %q: %w", key, ErrNilCondition))
	}
	return b.add(key, condition, resultHandlerFactory(key, nil))
}

// UseErrorHandler registers the chain-level error callback. While one is
// registered, handler errors no longer terminate the run. At most one
// callback is effective; the last registration wins.
func (b *Builder) UseErrorHandler(fn ErrorHandler) *Builder {
	if fn == nil {
		return b.setErr(fmt.Errorf("use error handler: %w", ErrNilCallback))
	}
	b.onError = fn
	return b
}

// UseDiagnostics registers the diagnostics sink. At most one sink is
// effective; the last registration wins.
func (b *Builder) UseDiagnostics(fn DiagnosticsSink) *Builder {
	if fn == nil {
		return b.setErr(fmt.Errorf("use diagnostics: %w", ErrNilCallback))
	}
	b.onDiagnostics = fn
	return b
}

// Build returns an immutable Chain snapshotting the current registrations,
// or the first argument error recorded by the fluent methods. The
// descriptor list is copied, so mutating the builder afterwards never
// affects an already-built Chain. Build may be called multiple times; each
// call yields an independent Chain.
func (b *Builder) Build() (*Chain, error) {
	if b.err != nil {
		return nil, b.err
	}
	return &Chain{
		resolver:      b.resolver,
		descriptors:   slices.Clone(b.descriptors),
		onError:       b.onError,
		onDiagnostics: b.onDiagnostics,
		logger:        b.logger,
	}, nil
}

// add appends a descriptor. Registration order is execution order.
func (b *Builder) add(key string, condition Condition, factory func(Resolver) (Handler, error)) *Builder {
	b.descriptors = append(b.descriptors, descriptor{
		name:      key,
		condition: condition,
		factory:   factory,
	})
	return b
}

// setErr records the first argument error; later errors are dropped so that
// Build reports the original mistake.
func (b *Builder) setErr(err error) *Builder {
	if b.err == nil {
		b.err = err
	}
	return b
}

// handlerFactory resolves key and asserts the Handler shape.
func handlerFactory(key string) func(Resolver) (Handler, error) {
	return func(r Resolver) (Handler, error) {
		instance, err := r.Resolve(key)
		if err != nil {
			return nil, err
		}
		h, ok := instance.(Handler)
		if !ok {
			return nil, fmt.Errorf("handler %q: %w", key, ErrNotHandler)
		}
		return h, nil
	}
}

// resultHandlerFactory resolves key, asserts the ResultHandler shape, and
// wraps the instance in the result adapter.
func resultHandlerFactory(key string, onResult func(result.Result)) func(Resolver) (Handler, error) {
	return func(r Resolver) (Handler, error) {
		instance, err := r.Resolve(key)
		if err != nil {
			return nil, err
		}
		rh, ok := instance.(ResultHandler)
		if !ok {
			return nil, fmt.Errorf("handler %q: %w", key, ErrNotResultHandler)
		}
		return &resultAdapter{inner: rh, onResult: onResult}, nil
	}
}

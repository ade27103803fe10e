package chain

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Chain is the executable produced by Builder.Build. It holds the frozen
// descriptor list, the resolver, and the two optional callbacks. A Chain
// carries no per-run mutable state: concurrent Run calls over independent
// state objects are safe. Concurrent runs over the same state object are
// the caller's problem - the engine never locks or copies the state.
type Chain struct {
	resolver      Resolver
	descriptors   []descriptor
	onError       ErrorHandler
	onDiagnostics DiagnosticsSink
	logger        *slog.Logger
}

// Len returns the number of registered handlers.
func (c *Chain) Len() int {
	return len(c.descriptors)
}

// Run walks the handler list in registration order against state.
//
// For each handler the engine checks ctx, evaluates the guard, resolves the
// instance, and invokes Handle. A Stop outcome ends the run normally; a
// handler error either terminates the run (no error handler registered,
// error returned verbatim) or is handed to the error callback after which
// the run continues. Resolution failures always terminate the run and are
// never absorbed by the error callback.
//
// Returns ErrNilState for a nil state, an error wrapping ctx.Err() when the
// context is cancelled between handlers, a handler error as described
// above, or nil.
func (c *Chain) Run(ctx context.Context, state any) error {
	if state == nil {
		return ErrNilState
	}

	// Diagnostics bookkeeping exists only when a sink is registered. The
	// deferred finalization delivers the snapshot exactly once on every
	// exit path, including propagating errors.
	var diag *Diagnostics
	if c.onDiagnostics != nil {
		diag = &Diagnostics{}
		start := time.Now()
		defer func() {
			diag.TotalExecutionTime = time.Since(start)
			c.onDiagnostics(*diag)
		}()
	}

	for i := range c.descriptors {
		d := &c.descriptors[i]

		// Cancellation is checked before the guard, so even a run of
		// all-skipped handlers stops scanning once cancelled.
		select {
		case <-ctx.Done():
			c.logger.Warn("chain cancelled", "handler", d.name, "error", ctx.Err())
			return fmt.Errorf("chain cancelled before handler %q: %w", d.name, ctx.Err())
		default:
		}

		if d.condition != nil && !d.condition(state) {
			c.logger.Debug("handler skipped", "handler", d.name)
			if diag != nil {
				diag.Handlers = append(diag.Handlers, HandlerDiagnostics{
					Name:    d.name,
					Skipped: true,
				})
			}
			continue
		}

		handler, err := d.factory(c.resolver)
		if err != nil {
			c.logger.Error("handler resolution failed", "handler", d.name, "error", err)
			if diag != nil {
				diag.Handlers = append(diag.Handlers, HandlerDiagnostics{
					Name:   d.name,
					Failed: true,
					Err:    err.Error(),
				})
			}
			return err
		}

		c.logger.Debug("executing handler", "handler", d.name)
		started := time.Now()
		outcome, err := handler.Handle(ctx, state)
		elapsed := time.Since(started)

		if err != nil {
			if diag != nil {
				diag.Handlers = append(diag.Handlers, HandlerDiagnostics{
					Name:          d.name,
					ExecutionTime: elapsed,
					Failed:        true,
					Err:           err.Error(),
				})
			}
			if c.onError == nil {
				c.logger.Error("handler failed", "handler", d.name, "error", err)
				return err
			}
			c.logger.Warn("handler failed, continuing", "handler", d.name, "error", err)
			c.onError(ctx, err, state)
			continue
		}

		if diag != nil {
			diag.Handlers = append(diag.Handlers, HandlerDiagnostics{
				Name:          d.name,
				ExecutionTime: elapsed,
				Outcome:       outcome,
			})
		}

		if outcome == Stop {
			c.logger.Info("chain stopped early", "handler", d.name)
			if diag != nil {
				diag.StoppedEarly = true
				diag.EarlyStopReason = fmt.Sprintf("handler %q returned Stop", d.name)
			}
			return nil
		}
	}

	c.logger.Debug("chain completed", "handler_count", len(c.descriptors))
	return nil
}

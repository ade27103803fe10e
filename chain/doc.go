// Package chain provides a sequential chain-of-responsibility execution
// engine. An ordered list of handlers processes a shared mutable state
// object; each handler decides whether processing continues or stops.
//
// # Core Concepts
//
// A Handler is a single unit of work. It receives the caller-supplied state
// and returns an Outcome: Continue to hand the state to the next handler,
// or Stop to end the run early.
//
// A Builder assembles an ordered list of handlers, each registered under a
// string key that a Resolver turns into a live instance at run time.
// Handlers may be registered with a guard condition; when the condition
// evaluates false for the current state the handler is skipped without ever
// being instantiated.
//
// Build produces an immutable Chain. A Chain may be run any number of
// times; runs over independent state objects are fully independent and safe
// to execute concurrently, since the Chain holds no per-run mutable state.
//
//	reg := chain.NewRegistry()
//	reg.MustRegister("audit", func() any { return &AuditHandler{} })
//
//	c, err := chain.NewBuilder(reg).
//		AddHandler("audit").
//		AddConditionalHandler("review", needsReview).
//		Build()
//	if err != nil {
//		return err
//	}
//	err = c.Run(ctx, state)
//
// # Error Routing
//
// Handler errors and the Stop outcome are distinct control-flow channels.
// Stop always halts the run. An error halts the run and propagates verbatim
// from Run unless an error handler was registered with UseErrorHandler, in
// which case the error is handed to the callback and the run continues with
// the next handler. A handler that wants its errors to be fatal must simply
// not register a chain-level error handler.
//
// # Diagnostics
//
// When a sink is registered with UseDiagnostics, every run produces a
// Diagnostics snapshot: one record per visited handler (skipped handlers
// included) in visitation order, plus total wall-clock time and early-stop
// detail. The sink is invoked exactly once per run, on every exit path.
// Without a sink there is no diagnostics bookkeeping at all.
package chain

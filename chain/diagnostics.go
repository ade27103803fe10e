package chain

import "time"

// Diagnostics is the observability snapshot produced for a single run when
// a sink is registered via UseDiagnostics. It is created fresh per run and
// handed to the sink exactly once, after the run completes - including runs
// that end with a propagating error.
type Diagnostics struct {
	// Handlers holds one record per visited handler, in visitation order.
	// Skipped handlers are included; handlers after an early stop are not.
	Handlers []HandlerDiagnostics

	// TotalExecutionTime is the wall-clock duration of the whole run.
	TotalExecutionTime time.Duration

	// StoppedEarly is true iff some handler returned Stop.
	StoppedEarly bool

	// EarlyStopReason names the handler that stopped the chain. Empty when
	// StoppedEarly is false.
	EarlyStopReason string
}

// HandlerDiagnostics records what happened to a single handler during a
// run. Exactly one of three shapes holds per record: skipped (Skipped set,
// zero execution time), normal execution (Outcome meaningful), or failure
// (Failed set, Err carries the message).
type HandlerDiagnostics struct {
	// Name is the handler's registration key.
	Name string

	// ExecutionTime is how long Handle ran. Zero for skipped handlers; for
	// failed handlers it covers the time up to the error.
	ExecutionTime time.Duration

	// Outcome is the value Handle returned. Meaningless when Skipped or
	// Failed is set.
	Outcome Outcome

	// Skipped is true when the guard condition evaluated false and the
	// handler was never instantiated.
	Skipped bool

	// Failed is true when instantiation or Handle returned an error.
	Failed bool

	// Err is the error message when Failed is set.
	Err string
}

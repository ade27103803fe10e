// Package result provides the binary success/failure value produced by
// result handlers. A Result is distinct from the chain's Continue/Stop
// outcome; the chain package translates between the two (success continues
// the chain, failure stops it).
package result

import "fmt"

// Result is an immutable success/failure value with an optional failure
// message. The zero value is a failure with no message; use the
// constructors instead.
type Result struct {
	success bool
	message string
}

// Success returns a successful Result.
func Success() Result {
	return Result{success: true}
}

// Failure returns a failed Result carrying a human-readable description.
func Failure(message string) Result {
	return Result{message: message}
}

// Failuref returns a failed Result with a formatted description.
func Failuref(format string, args ...any) Result {
	return Result{message: fmt.Sprintf(format, args...)}
}

// IsSuccess reports whether the Result is successful.
func (r Result) IsSuccess() bool {
	return r.success
}

// Message returns the failure description. Empty for successful Results.
func (r Result) Message() string {
	return r.message
}

// String implements fmt.Stringer for log output.
func (r Result) String() string {
	if r.success {
		return "success"
	}
	if r.message == "" {
		return "failure"
	}
	return "failure: " + r.message
}

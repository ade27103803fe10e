package chain

import (
	"context"

	"github.com/nomis52/chainkit/result"
)

// resultAdapter lets a ResultHandler satisfy the Handler interface:
// a successful Result continues the chain, a failed one stops it.
type resultAdapter struct {
	inner ResultHandler

	// onResult, when set, observes the raw Result before translation.
	onResult func(result.Result)
}

// Handle invokes the inner handler and translates its Result. Errors from
// the inner handler propagate unchanged; on the error path no Result exists
// and the observer is not invoked.
func (a *resultAdapter) Handle(ctx context.Context, state any) (Outcome, error) {
	res, err := a.inner.Handle(ctx, state)
	if err != nil {
		return Stop, err
	}
	if a.onResult != nil {
		a.onResult(res)
	}
	if res.IsSuccess() {
		return Continue, nil
	}
	return Stop, nil
}

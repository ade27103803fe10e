package orders

import (
	"context"
	"log/slog"

	"github.com/nomis52/chainkit/chain"
)

// StopOnHold halts the chain when the order is flagged on hold. Stopping is
// a normal outcome here, not an error: later handlers simply never run.
type StopOnHold struct {
	Logger *slog.Logger
}

func (h *StopOnHold) Handle(_ context.Context, state any) (chain.Outcome, error) {
	order, err := orderState(state)
	if err != nil {
		return chain.Stop, err
	}

	order.Log = append(order.Log, KeyStopOnHold)

	if order.OnHold {
		h.Logger.Info("order is on hold, stopping", "order", order.ID)
		return chain.Stop, nil
	}
	return chain.Continue, nil
}

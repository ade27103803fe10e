package orders

import (
	"context"
	"log/slog"

	"github.com/nomis52/chainkit/result"
)

// ValidateOrder checks the order for basic consistency. It reports the
// outcome as a Result: a non-positive amount fails validation and stops the
// chain without being an error.
type ValidateOrder struct {
	Logger *slog.Logger
}

func (h *ValidateOrder) Handle(_ context.Context, state any) (result.Result, error) {
	order, err := orderState(state)
	if err != nil {
		return result.Result{}, err
	}

	order.Log = append(order.Log, KeyValidateOrder)

	if order.Amount <= 0 {
		h.Logger.Warn("order failed validation", "order", order.ID, "amount", order.Amount)
		return result.Failuref("invalid amount %.2f: must be positive", order.Amount), nil
	}

	h.Logger.Debug("order validated", "order", order.ID, "amount", order.Amount)
	return result.Success(), nil
}

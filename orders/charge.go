package orders

import (
	"context"
	"log/slog"

	"github.com/nomis52/chainkit/chain"
)

// ChargePayment charges the order amount and marks the order as charged.
type ChargePayment struct {
	Logger *slog.Logger
}

func (h *ChargePayment) Handle(_ context.Context, state any) (chain.Outcome, error) {
	order, err := orderState(state)
	if err != nil {
		return chain.Stop, err
	}

	order.Log = append(order.Log, KeyChargePayment)
	order.Charged = true

	h.Logger.Info("payment charged", "order", order.ID, "amount", order.Amount)
	return chain.Continue, nil
}

package orders

import (
	"context"
	"log/slog"

	"github.com/nomis52/chainkit/chain"
)

// ShipOrder marks the order as shipped. Last step of the standard chain.
type ShipOrder struct {
	Logger *slog.Logger
}

func (h *ShipOrder) Handle(_ context.Context, state any) (chain.Outcome, error) {
	order, err := orderState(state)
	if err != nil {
		return chain.Stop, err
	}

	order.Log = append(order.Log, KeyShipOrder)
	order.Shipped = true

	h.Logger.Info("order shipped", "order", order.ID)
	return chain.Continue, nil
}

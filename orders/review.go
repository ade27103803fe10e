package orders

import (
	"context"
	"log/slog"

	"github.com/nomis52/chainkit/chain"
)

// HighValueReview flags the order as manually reviewed. It is meant to run
// behind an AmountAbove guard so that low-value orders skip it entirely.
type HighValueReview struct {
	Logger *slog.Logger
}

func (h *HighValueReview) Handle(_ context.Context, state any) (chain.Outcome, error) {
	order, err := orderState(state)
	if err != nil {
		return chain.Stop, err
	}

	order.Log = append(order.Log, KeyHighValueReview)
	order.Reviewed = true

	h.Logger.Info("high value order reviewed", "order", order.ID, "amount", order.Amount)
	return chain.Continue, nil
}

// Package orders contains the sample order-processing handlers used by the
// demo CLI and by the documentation examples. Each handler operates on the
// shared *Order state and is registered in the Registry returned by
// NewRegistry under the key constants below.
package orders

import (
	"fmt"
	"log/slog"

	"github.com/nomis52/chainkit/chain"
)

// Registration keys for the order handlers.
const (
	KeyValidateOrder   = "validate-order"
	KeyChargePayment   = "charge-payment"
	KeyHighValueReview = "high-value-review"
	KeyShipOrder       = "ship-order"
	KeyStopOnHold      = "stop-on-hold"
)

// Order is the mutable state threaded through an order-processing chain.
type Order struct {
	ID     string
	Amount float64
	OnHold bool

	Charged  bool
	Reviewed bool
	Shipped  bool

	// Log records which handlers ran, in order.
	Log []string
}

// AmountAbove returns a guard condition that passes when the order amount
// exceeds threshold. Non-Order states fail the guard rather than panic.
func AmountAbove(threshold float64) chain.Condition {
	return func(state any) bool {
		order, ok := state.(*Order)
		return ok && order.Amount > threshold
	}
}

// NewRegistry returns a Registry with all order handlers registered. Each
// resolve produces a fresh handler instance sharing the given logger.
func NewRegistry(logger *slog.Logger) *chain.Registry {
	registry := chain.NewRegistry()
	registry.MustRegister(KeyValidateOrder, func() any {
		return &ValidateOrder{Logger: logger}
	})
	registry.MustRegister(KeyChargePayment, func() any {
		return &ChargePayment{Logger: logger}
	})
	registry.MustRegister(KeyHighValueReview, func() any {
		return &HighValueReview{Logger: logger}
	})
	registry.MustRegister(KeyShipOrder, func() any {
		return &ShipOrder{Logger: logger}
	})
	registry.MustRegister(KeyStopOnHold, func() any {
		return &StopOnHold{Logger: logger}
	})
	return registry
}

// orderState asserts the shared state shape. Handlers receiving anything
// other than *Order return an error instead of panicking.
func orderState(state any) (*Order, error) {
	order, ok := state.(*Order)
	if !ok {
		return nil, fmt.Errorf("expected *orders.Order state, got %T", state)
	}
	return order, nil
}

package logging

import (
	"log/slog"

	"github.com/nomis52/chainkit/chain"
)

// Sink returns a diagnostics sink that logs a summary record per run and a
// debug record per visited handler. chainName labels every record so that
// multiple chains can share one logger.
func Sink(logger *slog.Logger, chainName string) chain.DiagnosticsSink {
	return func(d chain.Diagnostics) {
		logger.Info("chain run complete",
			"chain", chainName,
			"handlers", len(d.Handlers),
			"duration", d.TotalExecutionTime,
			"stopped_early", d.StoppedEarly,
			"early_stop_reason", d.EarlyStopReason,
		)

		for _, h := range d.Handlers {
			switch {
			case h.Skipped:
				logger.Debug("handler skipped", "chain", chainName, "handler", h.Name)
			case h.Failed:
				logger.Warn("handler failed",
					"chain", chainName,
					"handler", h.Name,
					"duration", h.ExecutionTime,
					"error", h.Err,
				)
			default:
				logger.Debug("handler executed",
					"chain", chainName,
					"handler", h.Name,
					"duration", h.ExecutionTime,
					"outcome", h.Outcome.String(),
				)
			}
		}
	}
}

package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/nomis52/chainkit/chain"
)

// Run outcome label values.
const (
	outcomeCompleted = "completed"
	outcomeStopped   = "stopped"
)

// Recorder records chain run diagnostics as Prometheus metrics. Create one
// Recorder per process and attach a per-chain sink via Sink:
//
//	rec, err := metrics.NewRecorder(registry)
//	builder.UseDiagnostics(rec.Sink("order"))
type Recorder struct {
	runsTotal       CounterVec // chain, outcome
	runDuration     GaugeVec   // chain
	handlerDuration GaugeVec   // chain, handler
	handlerFailures CounterVec // chain, handler
	handlersSkipped CounterVec // chain, handler
	lastRun         Gauge
}

// NewRecorder creates the chain run metrics on the given registry.
func NewRecorder(registry Registry) (*Recorder, error) {
	runsTotal, err := registry.NewCounterVec(prometheus.CounterOpts{
		Name: "chain_runs_total",
		Help: "Total number of chain runs by outcome.",
	}, []string{"chain", "outcome"})
	if err != nil {
		return nil, fmt.Errorf("creating runs counter: %w", err)
	}

	runDuration, err := registry.NewGaugeVec(prometheus.GaugeOpts{
		Name: "chain_run_duration_seconds",
		Help: "Wall-clock duration of the most recent chain run.",
	}, []string{"chain"})
	if err != nil {
		return nil, fmt.Errorf("creating run duration gauge: %w", err)
	}

	handlerDuration, err := registry.NewGaugeVec(prometheus.GaugeOpts{
		Name: "chain_handler_duration_seconds",
		Help: "Execution time of each handler in the most recent run.",
	}, []string{"chain", "handler"})
	if err != nil {
		return nil, fmt.Errorf("creating handler duration gauge: %w", err)
	}

	handlerFailures, err := registry.NewCounterVec(prometheus.CounterOpts{
		Name: "chain_handler_failures_total",
		Help: "Total number of handler failures.",
	}, []string{"chain", "handler"})
	if err != nil {
		return nil, fmt.Errorf("creating handler failures counter: %w", err)
	}

	handlersSkipped, err := registry.NewCounterVec(prometheus.CounterOpts{
		Name: "chain_handlers_skipped_total",
		Help: "Total number of handlers skipped by their guard condition.",
	}, []string{"chain", "handler"})
	if err != nil {
		return nil, fmt.Errorf("creating skipped counter: %w", err)
	}

	lastRun, err := registry.NewGauge(prometheus.GaugeOpts{
		Name: "chain_last_run_timestamp_seconds",
		Help: "Unix timestamp of the most recent chain run.",
	})
	if err != nil {
		return nil, fmt.Errorf("creating last run gauge: %w", err)
	}

	return &Recorder{
		runsTotal:       runsTotal,
		runDuration:     runDuration,
		handlerDuration: handlerDuration,
		handlerFailures: handlerFailures,
		handlersSkipped: handlersSkipped,
		lastRun:         lastRun,
	}, nil
}

// Sink returns a diagnostics sink recording runs of the named chain.
func (r *Recorder) Sink(chainName string) chain.DiagnosticsSink {
	return func(d chain.Diagnostics) {
		outcome := outcomeCompleted
		if d.StoppedEarly {
			outcome = outcomeStopped
		}
		r.runsTotal.With(prometheus.Labels{"chain": chainName, "outcome": outcome}).Inc()
		r.runDuration.With(prometheus.Labels{"chain": chainName}).Set(d.TotalExecutionTime.Seconds())
		r.lastRun.Set(float64(time.Now().Unix()))

		for _, h := range d.Handlers {
			labels := prometheus.Labels{"chain": chainName, "handler": h.Name}
			switch {
			case h.Skipped:
				r.handlersSkipped.With(labels).Inc()
			case h.Failed:
				r.handlerFailures.With(labels).Inc()
				r.handlerDuration.With(labels).Set(h.ExecutionTime.Seconds())
			default:
				r.handlerDuration.With(labels).Set(h.ExecutionTime.Seconds())
			}
		}
	}
}

package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Job pairs a named Runnable with its cron schedule.
type Job struct {
	Name     string
	Spec     string
	Runnable Runnable
}

// Manager owns one Trigger per scheduled job.
type Manager struct {
	triggers []*Trigger
	logger   *slog.Logger
}

// NewManager creates a Manager from the given jobs. Returns an error if any
// job has an invalid cron spec or a nil runnable.
func NewManager(jobs []Job, logger *slog.Logger) (*Manager, error) {
	triggers := make([]*Trigger, 0, len(jobs))
	for _, job := range jobs {
		if job.Runnable == nil {
			return nil, fmt.Errorf("job %q: runnable must not be nil", job.Name)
		}

		trigger, err := NewTrigger(job.Spec, job.Runnable, logger.With("job", job.Name))
		if err != nil {
			return nil, fmt.Errorf("creating trigger for %q: %w", job.Name, err)
		}
		triggers = append(triggers, trigger)

		logger.Info("trigger registered",
			"job", job.Name,
			"schedule", job.Spec,
			"next_run", trigger.NextRun(),
		)
	}

	return &Manager{
		triggers: triggers,
		logger:   logger,
	}, nil
}

// Start launches all triggers. Each trigger runs in its own goroutine.
// Returns immediately. All goroutines exit when ctx is cancelled.
func (m *Manager) Start(ctx context.Context) {
	for _, trigger := range m.triggers {
		trigger.Start(ctx)
	}
}

// NextRun returns the earliest scheduled run time across all triggers.
// Returns zero time if there are no triggers.
func (m *Manager) NextRun() time.Time {
	if len(m.triggers) == 0 {
		return time.Time{}
	}

	earliest := m.triggers[0].NextRun()
	for i := 1; i < len(m.triggers); i++ {
		next := m.triggers[i].NextRun()
		if next.Before(earliest) {
			earliest = next
		}
	}

	return earliest
}

package cron

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRunnable is a test implementation of Runnable.
type mockRunnable struct {
	runCount atomic.Int32
	runErr   error
}

func (m *mockRunnable) Run(_ context.Context) error {
	m.runCount.Add(1)
	return m.runErr
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

func TestNewTrigger(t *testing.T) {
	runnable := &mockRunnable{}

	tests := []struct {
		name    string
		spec    string
		wantErr bool
	}{
		{
			name:    "valid spec - daily at 2am",
			spec:    "0 2 * * *",
			wantErr: false,
		},
		{
			name:    "valid spec - every hour",
			spec:    "0 * * * *",
			wantErr: false,
		},
		{
			name:    "valid spec - every minute",
			spec:    "* * * * *",
			wantErr: false,
		},
		{
			name:    "invalid spec - empty",
			spec:    "",
			wantErr: true,
		},
		{
			name:    "invalid spec - wrong format",
			spec:    "not a cron spec",
			wantErr: true,
		},
		{
			name:    "invalid spec - too few fields",
			spec:    "0 2 *",
			wantErr: true,
		},
		{
			name:    "invalid spec - invalid value",
			spec:    "60 2 * * *",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trigger, err := NewTrigger(tt.spec, runnable, testLogger())

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidCronSpec)
				assert.Nil(t, trigger)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, trigger)
				assert.Equal(t, tt.spec, trigger.spec)
			}
		})
	}
}

func TestTrigger_NextRun(t *testing.T) {
	trigger, err := NewTrigger("0 2 * * *", &mockRunnable{}, testLogger())
	require.NoError(t, err)

	nextRun := trigger.NextRun()
	assert.True(t, nextRun.After(time.Now()), "next run should be in the future")
	assert.Equal(t, 2, nextRun.Hour(), "next run should be at 2am")
	assert.Equal(t, 0, nextRun.Minute(), "next run should be at minute 0")
}

func TestTrigger_Start_CancellationStopsLoop(t *testing.T) {
	runnable := &mockRunnable{}
	trigger, err := NewTrigger("* * * * *", runnable, testLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	trigger.Start(ctx)
	cancel()

	// Give the loop a moment to observe cancellation; the trigger must not
	// fire after shutdown.
	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, runnable.runCount.Load())
}

func TestRunnableFunc(t *testing.T) {
	calls := 0
	var r Runnable = RunnableFunc(func(context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, r.Run(context.Background()))
	assert.Equal(t, 1, calls)
}

func TestNewManager(t *testing.T) {
	jobs := []Job{
		{Name: "order", Spec: "0 2 * * *", Runnable: &mockRunnable{}},
		{Name: "refund", Spec: "0 3 * * *", Runnable: &mockRunnable{}},
	}

	manager, err := NewManager(jobs, testLogger())
	require.NoError(t, err)
	require.NotNil(t, manager)

	nextRun := manager.NextRun()
	assert.Equal(t, 2, nextRun.Hour(), "earliest trigger wins")
}

func TestNewManager_InvalidSpec(t *testing.T) {
	jobs := []Job{
		{Name: "order", Spec: "bogus", Runnable: &mockRunnable{}},
	}

	manager, err := NewManager(jobs, testLogger())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCronSpec)
	assert.Nil(t, manager)
}

func TestNewManager_NilRunnable(t *testing.T) {
	jobs := []Job{
		{Name: "order", Spec: "0 2 * * *"},
	}

	_, err := NewManager(jobs, testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "runnable must not be nil")
}

func TestManager_NoJobs(t *testing.T) {
	manager, err := NewManager(nil, testLogger())
	require.NoError(t, err)
	assert.True(t, manager.NextRun().IsZero())
}

package chain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomis52/chainkit/result"
)

// stubResultHandler returns a fixed Result or error and records whether it
// ran.
type stubResultHandler struct {
	res result.Result
	err error
	ran bool
}

func (h *stubResultHandler) Handle(_ context.Context, _ any) (result.Result, error) {
	h.ran = true
	return h.res, h.err
}

func TestResultAdapter_SuccessContinues(t *testing.T) {
	adapter := &resultAdapter{inner: &stubResultHandler{res: result.Success()}}

	outcome, err := adapter.Handle(context.Background(), &runState{})
	require.NoError(t, err)
	assert.Equal(t, Continue, outcome)
}

func TestResultAdapter_FailureStops(t *testing.T) {
	adapter := &resultAdapter{inner: &stubResultHandler{res: result.Failure("x")}}

	outcome, err := adapter.Handle(context.Background(), &runState{})
	require.NoError(t, err, "a failed Result is not an error")
	assert.Equal(t, Stop, outcome)
}

func TestResultAdapter_ObserverSeesRawResult(t *testing.T) {
	tests := []struct {
		name string
		res  result.Result
	}{
		{name: "success", res: result.Success()},
		{name: "failure", res: result.Failure("x")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var observed []result.Result
			adapter := &resultAdapter{
				inner:    &stubResultHandler{res: tt.res},
				onResult: func(r result.Result) { observed = append(observed, r) },
			}

			_, err := adapter.Handle(context.Background(), &runState{})
			require.NoError(t, err)
			require.Len(t, observed, 1, "observer invoked exactly once")
			assert.Equal(t, tt.res.IsSuccess(), observed[0].IsSuccess())
			assert.Equal(t, tt.res.Message(), observed[0].Message())
		})
	}
}

func TestResultAdapter_ErrorPropagatesUnchanged(t *testing.T) {
	boom := errors.New("validation service down")
	observerCalls := 0
	adapter := &resultAdapter{
		inner:    &stubResultHandler{err: boom},
		onResult: func(result.Result) { observerCalls++ },
	}

	_, err := adapter.Handle(context.Background(), &runState{})
	require.Error(t, err)
	assert.Equal(t, boom, err, "inner errors are not wrapped")
	assert.Zero(t, observerCalls, "no Result exists on the error path")
}

func TestChain_ResultHandlerIntegration(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register("validate", func() any {
		return &stubResultHandler{res: result.Failure("amount must be positive")}
	}))
	after := &countingFactory{handler: &appendHandler{name: "pay"}}
	require.NoError(t, reg.Register("pay", after.factory))

	var observed *result.Result
	var diag Diagnostics
	c, err := NewBuilder(reg, WithLogger(testLogger())).
		AddResultHandler("validate", func(r result.Result) { observed = &r }).
		AddHandler("pay").
		UseDiagnostics(func(d Diagnostics) { diag = d }).
		Build()
	require.NoError(t, err)

	require.NoError(t, c.Run(context.Background(), &runState{}))

	require.NotNil(t, observed)
	assert.False(t, observed.IsSuccess())
	assert.Equal(t, "amount must be positive", observed.Message())
	assert.Zero(t, after.count, "failed Result stops the chain")
	assert.True(t, diag.StoppedEarly)
	assert.Contains(t, diag.EarlyStopReason, "validate")
}

func TestChain_WrongResultHandlerShape(t *testing.T) {
	reg := NewRegistry()
	// A plain Handler registered where a ResultHandler is expected.
	require.NoError(t, reg.Register("plain", func() any { return &appendHandler{name: "plain"} }))

	c, err := NewBuilder(reg, WithLogger(testLogger())).
		AddResultHandler("plain").
		Build()
	require.NoError(t, err)

	err = c.Run(context.Background(), &runState{})
	require.ErrorIs(t, err, ErrNotResultHandler)
}

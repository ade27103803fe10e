package chain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_NilResolver(t *testing.T) {
	c, err := NewBuilder(nil).AddHandler("a").Build()
	require.ErrorIs(t, err, ErrNilResolver)
	assert.Nil(t, c)
}

func TestBuilder_NilCondition(t *testing.T) {
	reg := NewRegistry()

	c, err := NewBuilder(reg).AddConditionalHandler("a", nil).Build()
	require.ErrorIs(t, err, ErrNilCondition)
	assert.Nil(t, c)

	c, err = NewBuilder(reg).AddConditionalResultHandler("a", nil).Build()
	require.ErrorIs(t, err, ErrNilCondition)
	assert.Nil(t, c)
}

func TestBuilder_NilCallbacks(t *testing.T) {
	reg := NewRegistry()

	_, err := NewBuilder(reg).UseErrorHandler(nil).Build()
	require.ErrorIs(t, err, ErrNilCallback)

	_, err = NewBuilder(reg).UseDiagnostics(nil).Build()
	require.ErrorIs(t, err, ErrNilCallback)
}

func TestBuilder_FirstErrorWins(t *testing.T) {
	// A nil condition followed by a nil callback reports the condition.
	_, err := NewBuilder(NewRegistry()).
		AddConditionalHandler("a", nil).
		UseDiagnostics(nil).
		Build()
	require.ErrorIs(t, err, ErrNilCondition)
	assert.NotErrorIs(t, err, ErrNilCallback)
}

func TestBuilder_LastCallbackWins(t *testing.T) {
	reg := newTestRegistry(t, "a")

	firstCalls, secondCalls := 0, 0
	c, err := NewBuilder(reg, WithLogger(testLogger())).
		AddHandler("a").
		UseDiagnostics(func(Diagnostics) { firstCalls++ }).
		UseDiagnostics(func(Diagnostics) { secondCalls++ }).
		Build()
	require.NoError(t, err)

	require.NoError(t, c.Run(context.Background(), &runState{}))
	assert.Zero(t, firstCalls, "earlier sink replaced")
	assert.Equal(t, 1, secondCalls, "last registration wins")
}

func TestBuilder_BuildSnapshotsDescriptors(t *testing.T) {
	reg := newTestRegistry(t, "a", "b")

	b := NewBuilder(reg, WithLogger(testLogger())).AddHandler("a")
	first, err := b.Build()
	require.NoError(t, err)

	// Mutating the builder after Build must not affect the built chain.
	b.AddHandler("b")
	second, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, 1, first.Len())
	assert.Equal(t, 2, second.Len())

	state := &runState{}
	require.NoError(t, first.Run(context.Background(), state))
	assert.Equal(t, []string{"a"}, state.log, "first chain unaffected by later registrations")

	state = &runState{}
	require.NoError(t, second.Run(context.Background(), state))
	assert.Equal(t, []string{"a", "b"}, state.log)
}

func TestBuilder_Fluent(t *testing.T) {
	reg := newTestRegistry(t, "a")

	// Every configuration method returns the same builder.
	b := NewBuilder(reg)
	assert.Same(t, b, b.AddHandler("a"))
	assert.Same(t, b, b.AddConditionalHandler("a", func(any) bool { return true }))
	assert.Same(t, b, b.AddResultHandler("a"))
	assert.Same(t, b, b.UseErrorHandler(func(context.Context, error, any) {}))
	assert.Same(t, b, b.UseDiagnostics(func(Diagnostics) {}))
}

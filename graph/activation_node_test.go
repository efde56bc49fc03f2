package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zerfoo/cortex/activation"
)

func TestActivationNodeSumsInputsBeforeApplying(t *testing.T) {
	act, err := NewActivationNode(2, activation.TANH)
	require.NoError(t, err)

	e1, err := NewEdge(2)
	require.NoError(t, err)
	e2, err := NewEdge(2)
	require.NoError(t, err)

	require.NoError(t, act.AddInput(e1))
	require.NoError(t, act.AddInput(e2))

	require.NoError(t, e1.PushForward([]float64{0.1, -0.2}))
	require.NoError(t, e2.PushForward([]float64{0.3, 0.2}))

	require.NoError(t, act.Forward())

	want := activation.TANH.Activations([]float64{0.4, 0.0})
	got := act.OutputEdges()[0].ForwardValues()
	assert.InDelta(t, want[0], got[0], 1e-9)
	assert.InDelta(t, want[1], got[1], 1e-9)
}

func TestActivationNodeBackwardFansOutToEveryInput(t *testing.T) {
	act, err := NewActivationNode(1, activation.Sigmoid)
	require.NoError(t, err)

	e1, err := NewEdge(1)
	require.NoError(t, err)
	e2, err := NewEdge(1)
	require.NoError(t, err)

	require.NoError(t, act.AddInput(e1))
	require.NoError(t, act.AddInput(e2))

	require.NoError(t, e1.PushForward([]float64{0}))
	require.NoError(t, e2.PushForward([]float64{0}))
	require.NoError(t, act.Forward())

	require.NoError(t, act.OutputEdges()[0].PushBackward([]float64{1.0}))
	require.NoError(t, act.Backward())

	want := activation.Sigmoid.Derivatives(act.OutputEdges()[0].ForwardValues())[0]
	assert.InDelta(t, want, e1.BackwardDeltas()[0], 1e-9)
	assert.InDelta(t, want, e2.BackwardDeltas()[0], 1e-9)
}

func TestActivationNodeRejectsMismatchedInputSize(t *testing.T) {
	act, err := NewActivationNode(2, activation.Sigmoid)
	require.NoError(t, err)

	e, err := NewEdge(3)
	require.NoError(t, err)

	require.Error(t, act.AddInput(e))
}

func TestActivationNodeRequiresAtLeastOneInput(t *testing.T) {
	act, err := NewActivationNode(1, activation.Sigmoid)
	require.NoError(t, err)

	require.ErrorIs(t, act.Forward(), ErrInvalidInputCount)
}

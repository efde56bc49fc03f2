package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zerfoo/cortex/activation"
)

// Scenario 2: bias-only cell, all weights zeroed.
func TestBiasOnlyCell(t *testing.T) {
	w, err := NewWeightsNode(1, 2, WeightsOptions{})
	require.NoError(t, err)
	w.SetWeight(0, 0, 0.0)
	w.SetWeight(0, 1, 0.0)

	bias, err := NewBiasNode(2)
	require.NoError(t, err)

	biasEdge, err := NewEdge(2)
	require.NoError(t, err)
	bias.AddOutput(biasEdge)

	act, err := NewActivationNode(2, activation.Sigmoid)
	require.NoError(t, err)
	require.NoError(t, act.AddInput(w.OutputEdges()[0]))
	require.NoError(t, act.AddInput(bias.OutputEdges()[0]))

	require.NoError(t, w.InputEdges()[0].PushForward([]float64{7.0}))
	require.NoError(t, w.Forward())
	require.NoError(t, bias.Forward())
	require.NoError(t, act.Forward())

	out := act.OutputEdges()[0].ForwardValues()
	want := activation.Sigmoid.Activations([]float64{1.0})[0]
	assert.InDelta(t, want, out[0], 1e-9)
	assert.InDelta(t, want, out[1], 1e-9)
	assert.InDelta(t, 0.7310585786, out[0], 1e-9)
}

func TestBiasImmutableAcrossBackward(t *testing.T) {
	b, err := NewBiasNode(3)
	require.NoError(t, err)

	e, err := NewEdge(3)
	require.NoError(t, err)
	b.AddOutput(e)

	require.NoError(t, b.Forward())
	before := append([]float64(nil), e.ForwardValues()...)

	require.NoError(t, e.PushBackward([]float64{9, 9, 9}))
	require.NoError(t, b.Backward())

	require.NoError(t, b.Forward())
	after := e.ForwardValues()

	assert.Equal(t, before, after)
	assert.Equal(t, []float64{1, 1, 1}, after)
}

func TestBiasRequiresAtLeastOneOutput(t *testing.T) {
	b, err := NewBiasNode(2)
	require.NoError(t, err)

	require.ErrorIs(t, b.Forward(), ErrInvalidInputCount)
}

func TestBiasFeedsMultipleOutputs(t *testing.T) {
	b, err := NewBiasNode(1)
	require.NoError(t, err)

	e1, err := NewEdge(1)
	require.NoError(t, err)
	b.AddOutput(e1)

	e2, err := NewEdge(1)
	require.NoError(t, err)
	b.AddOutput(e2)

	require.Len(t, b.OutputEdges(), 2)

	require.NoError(t, b.Forward())
	assert.Equal(t, []float64{1}, b.OutputEdges()[0].ForwardValues())
	assert.Equal(t, []float64{1}, e2.ForwardValues())
}

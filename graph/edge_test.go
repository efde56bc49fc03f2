package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEdgeSizeInvariance(t *testing.T) {
	e, err := NewEdge(3)
	require.NoError(t, err)

	require.Error(t, e.PushForward([]float64{1, 2}))
	require.NoError(t, e.PushForward([]float64{1, 2, 3}))
	assert.Equal(t, []float64{1, 2, 3}, e.ForwardValues())
	assert.Equal(t, []float64{0, 0, 0}, e.BackwardDeltas())
}

func TestEdgeZeroSizeRejected(t *testing.T) {
	_, err := NewEdge(0)
	require.ErrorIs(t, err, ErrZeroSize)
}

// Scenario 4: unfold bookkeeping.
func TestEdgeUnfoldBookkeeping(t *testing.T) {
	e, err := NewEdge(3)
	require.NoError(t, err)

	require.NoError(t, e.PushForward([]float64{1, 2, 3}))
	require.NoError(t, e.PushForward([]float64{4, 5, 6}))
	assert.Equal(t, []float64{4, 5, 6}, e.ForwardValues())

	e.Unfold()
	assert.Equal(t, []float64{1, 2, 3}, e.ForwardValues())

	e.Unfold()
	assert.Equal(t, []float64{0, 0, 0}, e.ForwardValues())
}

func TestEdgeUnfoldIdempotentOnEmpty(t *testing.T) {
	e, err := NewEdge(2)
	require.NoError(t, err)

	e.Unfold()
	e.Unfold()
	assert.Equal(t, []float64{0, 0}, e.ForwardValues())
	assert.Equal(t, 0, e.ForwardQueueLen())
}

// Queue conservation: after k pushes and j unfolds (j <= k), length is k-j.
func TestEdgeQueueConservation(t *testing.T) {
	e, err := NewEdge(1)
	require.NoError(t, err)

	const pushes = 5

	for i := 0; i < pushes; i++ {
		require.NoError(t, e.PushForward([]float64{float64(i)}))
	}

	const unfolds = 3
	for i := 0; i < unfolds; i++ {
		e.Unfold()
	}

	assert.Equal(t, pushes-unfolds, e.ForwardQueueLen())
}

func TestEdgeRoles(t *testing.T) {
	e, err := NewEdge(1)
	require.NoError(t, err)

	assert.True(t, e.IsInput())
	assert.True(t, e.IsOutput())
	assert.False(t, e.IsTransfer())

	bias, err := NewBiasNode(1)
	require.NoError(t, err)
	e.SetInputNode(bias)

	assert.False(t, e.IsInput())
	assert.False(t, e.IsTransfer())
	assert.True(t, e.IsOutput())
}

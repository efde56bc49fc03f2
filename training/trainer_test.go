package training

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zerfoo/cortex/activation"
	"github.com/zerfoo/cortex/cell"
	"github.com/zerfoo/cortex/graph"
	"github.com/zerfoo/cortex/network"
	"github.com/zerfoo/cortex/pattern"
)

func singleNeuronNetwork(t *testing.T) (*network.Network, *graph.WeightsNode) {
	t.Helper()

	c, err := cell.RNN(1, 1, activation.Sigmoid, cell.Hyperparameters{Eta: 0.1})
	require.NoError(t, err)

	var weights *graph.WeightsNode

	for _, n := range c.Nodes() {
		if w, ok := n.(*graph.WeightsNode); ok {
			weights = w
		}
	}

	require.NotNil(t, weights)

	net := network.New()
	net.AddCell(c)

	return net, weights
}

func TestTrainerRejectsMissingNetwork(t *testing.T) {
	source := pattern.NewSliceSource(nil)
	tr := NewTrainer(nil, source, TrainerConfig{Epochs: 1})

	err := tr.Execute()
	require.ErrorIs(t, err, ErrNoNetwork)
	assert.Equal(t, StateFailed, tr.State())
}

func TestTrainerRejectsMissingSource(t *testing.T) {
	net, _ := singleNeuronNetwork(t)
	tr := NewTrainer(net, nil, TrainerConfig{Epochs: 1})

	err := tr.Execute()
	require.ErrorIs(t, err, ErrNoSource)
}

func TestTrainerRejectsNegativeEpochs(t *testing.T) {
	net, _ := singleNeuronNetwork(t)
	source := pattern.NewSliceSource(nil)
	tr := NewTrainer(net, source, TrainerConfig{Epochs: -1})

	err := tr.Execute()
	require.ErrorIs(t, err, ErrInvalidEpochs)
}

// Epochs=0 boundary: initialization and terminal progress happen, but no
// pattern is ever read and no weight changes.
func TestTrainerZeroEpochsIsANoOp(t *testing.T) {
	net, weights := singleNeuronNetwork(t)
	weights.SetWeight(0, 0, 0.0)

	source := pattern.NewSliceSource([]pattern.Pattern{
		{Inputs: [][]float64{{0.5}}, ExpectedOutputs: [][]float64{{1.0}}},
	})

	tr := NewTrainer(net, source, TrainerConfig{Epochs: 0})

	require.NoError(t, tr.Execute())
	assert.Equal(t, StateSucceeded, tr.State())
	assert.Equal(t, 0.0, weights.Weights()[0][0])
}

func TestTrainerRunsAnEpochAndSucceeds(t *testing.T) {
	net, weights := singleNeuronNetwork(t)
	weights.SetWeight(0, 0, 0.0)

	source := pattern.NewSliceSource([]pattern.Pattern{
		{Inputs: [][]float64{{0.5}}, ExpectedOutputs: [][]float64{{1.0}}},
		{Inputs: [][]float64{{0.25}}, ExpectedOutputs: [][]float64{{0.0}}},
	})

	tr := NewTrainer(net, source, TrainerConfig{Epochs: 1})

	require.NoError(t, tr.Execute())
	assert.Equal(t, StateSucceeded, tr.State())
	assert.NotEqual(t, 0.0, weights.Weights()[0][0])
}

// cancelAfter requests cancellation once Progress has fired `at` times,
// i.e. once `at` patterns have completed their backward pass.
type cancelAfter struct {
	NopProgressListener

	task  *Task
	at    int
	count int
}

func (l *cancelAfter) Progress(_, increment, _ int) {
	l.count += increment
	if l.count == l.at {
		l.task.RequestCancel()
	}
}

// Scenario 6: a source of 1000 patterns, epochs=10, cancellation requested
// after the 17th pattern of epoch 3 (the 2017th pattern overall). The
// trainer must terminate CANCELLED having completed exactly 2017 pattern
// updates.
func TestTrainerCancelDuringEpochStopsAtExactPatternCount(t *testing.T) {
	net, _ := singleNeuronNetwork(t)

	const patternsPerEpoch = 1000

	source := pattern.NewFuncSource(patternsPerEpoch, func(i int) (pattern.Pattern, error) {
		return pattern.Pattern{
			Inputs:          [][]float64{{float64(i%7) / 7}},
			ExpectedOutputs: [][]float64{{1.0}},
		}, nil
	})

	listener := &cancelAfter{at: 2*patternsPerEpoch + 17}

	tr := NewTrainer(net, source, TrainerConfig{Epochs: 10}, WithProgressListener(listener))
	listener.task = tr.Task

	require.NoError(t, tr.Execute())

	assert.Equal(t, StateCancelled, tr.State())
	assert.Equal(t, 2*patternsPerEpoch+17, listener.count)
}

func TestTrainerPropagatesSourceError(t *testing.T) {
	net, _ := singleNeuronNetwork(t)

	boom := assert.AnError
	source := pattern.NewFuncSource(1, func(int) (pattern.Pattern, error) {
		return pattern.Pattern{}, boom
	})

	tr := NewTrainer(net, source, TrainerConfig{Epochs: 1})

	err := tr.Execute()
	require.ErrorIs(t, err, boom)
	assert.Equal(t, StateFailed, tr.State())
}

// Package cell builds canonical graph.Cell shapes: the dense, optionally
// biased, optionally recurrent arrangement of Weights/Bias/Activation nodes
// used throughout a network, configured through functional options the same
// way a fully-connected layer composes WithBias/WithActivation.
package cell

import (
	"fmt"

	"github.com/zerfoo/cortex/activation"
	"github.com/zerfoo/cortex/graph"
)

// Hyperparameters configures the learning rate, momentum, and decay shared
// by every WeightsNode a factory function creates.
type Hyperparameters struct {
	Eta, Alpha, Lambda float64
}

func (h Hyperparameters) weightsOptions() graph.WeightsOptions {
	return graph.WeightsOptions{Eta: h.Eta, Alpha: h.Alpha, Lambda: h.Lambda}
}

// Option configures an RNN cell's shape beyond its dimensions, activation,
// and hyperparameters.
type Option func(*rnnConfig)

type rnnConfig struct {
	bias      bool
	recurrent bool
}

// WithBias adds a BiasNode(out) summed into the cell's activation.
func WithBias() Option {
	return func(c *rnnConfig) { c.bias = true }
}

// WithRecurrence closes the cell into a one-step recurrence: the
// activation's output feeds a second WeightsNode(out,out) whose output
// feeds back into the activation, and the cell exposes no external output
// edge.
func WithRecurrence() Option {
	return func(c *rnnConfig) { c.recurrent = true }
}

// RNN constructs the canonical cell shape: a WeightsNode(in,out) feeding an
// ActivationNode(out) across a transfer edge, optionally summed with a
// BiasNode(out) (WithBias), optionally closed into a one-step recurrence
// through a second WeightsNode(out,out) (WithRecurrence).
//
// The WeightsNode(in,out)'s input edge has no input node and becomes a
// network input, exposed as the cell's derived InputEdges. Without
// WithRecurrence, the ActivationNode's output edge has no output node and
// becomes a network output, exposed as the cell's derived OutputEdges; with
// WithRecurrence, that edge feeds the recurrent WeightsNode instead and the
// cell has no output edge.
func RNN(in, out int, act activation.Activation, hp Hyperparameters, opts ...Option) (*graph.Cell, error) {
	if in <= 0 || out <= 0 {
		return nil, fmt.Errorf("cell: rnn in=%d out=%d must be positive", in, out)
	}

	if act == nil {
		return nil, fmt.Errorf("cell: rnn activation is required")
	}

	cfg := &rnnConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	name := rnnName(in, out, act, cfg.recurrent, cfg.bias)

	c, err := graph.NewCell(name)
	if err != nil {
		return nil, err
	}

	weights, err := graph.NewWeightsNode(in, out, hp.weightsOptions())
	if err != nil {
		return nil, fmt.Errorf("cell %s: %w", name, err)
	}

	c.AddNode(weights)

	activationNode, err := graph.NewActivationNode(out, act)
	if err != nil {
		return nil, fmt.Errorf("cell %s: %w", name, err)
	}

	c.AddNode(activationNode)

	if err := activationNode.AddInput(weights.OutputEdges()[0]); err != nil {
		return nil, fmt.Errorf("cell %s: wiring weights to activation: %w", name, err)
	}

	if cfg.bias {
		biasNode, err := graph.NewBiasNode(out)
		if err != nil {
			return nil, fmt.Errorf("cell %s: %w", name, err)
		}

		c.AddNode(biasNode)

		biasEdge, err := graph.NewEdge(out)
		if err != nil {
			return nil, err
		}

		biasNode.AddOutput(biasEdge)

		if err := activationNode.AddInput(biasEdge); err != nil {
			return nil, fmt.Errorf("cell %s: wiring bias to activation: %w", name, err)
		}
	}

	if cfg.recurrent {
		recurrentWeights, err := graph.NewWeightsNode(out, out, hp.weightsOptions())
		if err != nil {
			return nil, fmt.Errorf("cell %s: %w", name, err)
		}

		c.AddNode(recurrentWeights)

		forward, err := graph.NewEdge(out)
		if err != nil {
			return nil, err
		}

		activationNode.AttachOutput(forward)
		recurrentWeights.AttachInput(forward)

		if err := activationNode.AddInput(recurrentWeights.OutputEdges()[0]); err != nil {
			return nil, fmt.Errorf("cell %s: wiring recurrence back to activation: %w", name, err)
		}
	}

	return c, nil
}

func rnnName(in, out int, act activation.Activation, recurrent, bias bool) string {
	name := fmt.Sprintf("RNN-%d-%d-%s", in, out, act.Name())

	if recurrent {
		name += "-REC"
	}

	if bias {
		name += "-BIAS"
	}

	return name
}

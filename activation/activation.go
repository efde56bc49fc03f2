// Package activation provides the closed catalog of elementwise activation
// functions used by ActivationNode. Each activation is a small, stateless
// value pair of pure operations, following the one-file-per-activation
// shape of the teacher's layers/activations package, generalized from
// tensor-valued to plain []float64-valued since this engine's edges carry
// fixed-size vectors rather than N-dimensional tensors.
package activation

import "fmt"

// Activation is a pure, stateless pair of operations over fixed-size vectors.
type Activation interface {
	// Name identifies the activation for persistence and diagnostics.
	Name() string
	// Activations computes the elementwise output for a vector of triggers.
	Activations(triggers []float64) []float64
	// Derivatives computes the elementwise derivative as a function of the
	// already-computed outputs (not the original triggers).
	Derivatives(outputs []float64) []float64
}

// ByName resolves a persisted activation name to its catalog value, for use
// when restoring a network snapshot.
func ByName(name string) (Activation, error) {
	switch name {
	case Sigmoid.Name():
		return Sigmoid, nil
	case TANH.Name():
		return TANH, nil
	case BipolarSigmoid.Name():
		return BipolarSigmoid, nil
	case LeakyReLU.Name():
		return LeakyReLU, nil
	case LeakyReLUCorrected.Name():
		return LeakyReLUCorrected, nil
	case SoftMax.Name():
		return SoftMax, nil
	default:
		return nil, fmt.Errorf("activation: unknown activation %q", name)
	}
}

func apply(f func(float64) float64, in []float64) []float64 {
	out := make([]float64, len(in))
	for i, x := range in {
		out[i] = f(x)
	}

	return out
}

package activation

import "math"

// maxExponent bounds the argument to math.Exp to avoid overflow on large triggers.
const maxExponent = 60.0

type softMaxActivation struct{}

// SoftMax implements y_i = e^{x_i}/Σe^{x_j}, with exponents clamped before
// Exp to avoid overflow. Clamping also keeps every exponential at least
// e^-60, so the sum is zero only for an empty trigger vector; in that case
// the output is left unnormalized (an empty vector of zeros) rather than
// dividing by zero.
//
// Derivatives returns a vector of ones rather than the true softmax
// Jacobian. This reflects a paired-use convention with a cross-entropy-style
// loss that already folds the Jacobian into its own gradient; using SoftMax
// inside an ActivationNode whose upstream delta was not computed with that
// convention in mind will silently produce an incorrect gradient.
var SoftMax Activation = softMaxActivation{}

func (softMaxActivation) Name() string { return "SoftMax" }

func (softMaxActivation) Activations(triggers []float64) []float64 {
	exps := make([]float64, len(triggers))

	var sum float64

	for i, x := range triggers {
		clamped := x
		if clamped > maxExponent {
			clamped = maxExponent
		} else if clamped < -maxExponent {
			clamped = -maxExponent
		}

		exps[i] = math.Exp(clamped)
		sum += exps[i]
	}

	out := make([]float64, len(triggers))
	if sum == 0 {
		return out
	}

	for i, e := range exps {
		out[i] = e / sum
	}

	return out
}

func (softMaxActivation) Derivatives(outputs []float64) []float64 {
	ones := make([]float64, len(outputs))
	for i := range ones {
		ones[i] = 1.0
	}

	return ones
}

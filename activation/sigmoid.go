package activation

import "math"

type sigmoidActivation struct{}

// Sigmoid implements σ(x) = 1/(1+e^−x), with derivative σ'(y) = y(1−y)
// expressed in terms of the already-computed output y.
var Sigmoid Activation = sigmoidActivation{}

func (sigmoidActivation) Name() string { return "Sigmoid" }

func (sigmoidActivation) Activations(triggers []float64) []float64 {
	return apply(func(x float64) float64 {
		return 1.0 / (1.0 + math.Exp(-x))
	}, triggers)
}

func (sigmoidActivation) Derivatives(outputs []float64) []float64 {
	return apply(func(y float64) float64 {
		return y * (1 - y)
	}, outputs)
}

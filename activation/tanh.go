package activation

import "math"

type tanhActivation struct{}

// TANH implements tanh(x) = (e^x−e^−x)/(e^x+e^−x), with derivative
// d(y) = (1+y)(1−y) expressed in terms of the already-computed output y.
var TANH Activation = tanhActivation{}

func (tanhActivation) Name() string { return "TANH" }

func (tanhActivation) Activations(triggers []float64) []float64 {
	return apply(math.Tanh, triggers)
}

func (tanhActivation) Derivatives(outputs []float64) []float64 {
	return apply(func(y float64) float64 {
		return (1 + y) * (1 - y)
	}, outputs)
}

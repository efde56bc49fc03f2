package activation

import "math"

type bipolarSigmoidActivation struct {
	sigma float64
}

// BipolarSigmoid implements (1−e^−σx)/(1+e^−σx) with σ=1, with derivative
// σ/2·(1+y)(1−y) expressed in terms of the already-computed output y.
var BipolarSigmoid Activation = bipolarSigmoidActivation{sigma: 1.0}

func (b bipolarSigmoidActivation) Name() string { return "BipolarSigmoid" }

func (b bipolarSigmoidActivation) Activations(triggers []float64) []float64 {
	return apply(func(x float64) float64 {
		e := math.Exp(-b.sigma * x)

		return (1 - e) / (1 + e)
	}, triggers)
}

func (b bipolarSigmoidActivation) Derivatives(outputs []float64) []float64 {
	return apply(func(y float64) float64 {
		return (b.sigma / 2) * (1 + y) * (1 - y)
	}, outputs)
}

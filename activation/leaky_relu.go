package activation

type leakyReLUActivation struct {
	alpha float64
}

// LeakyReLU implements x if x>0 else α·x (default α=0.1).
//
// Its Derivatives method reproduces the source's literal (and, per the
// specification's own open question, almost certainly buggy) derivative:
// 0 when α=0, else 1 unconditionally, ignoring the sign of the output. This
// is kept for exact behavioral parity with anything trained against it; see
// LeakyReLUCorrected for the mathematically correct piecewise derivative.
var LeakyReLU Activation = leakyReLUActivation{alpha: 0.1}

func (l leakyReLUActivation) Name() string { return "LeakyReLU" }

func (l leakyReLUActivation) Activations(triggers []float64) []float64 {
	return apply(func(x float64) float64 {
		if x > 0 {
			return x
		}

		return l.alpha * x
	}, triggers)
}

func (l leakyReLUActivation) Derivatives(outputs []float64) []float64 {
	d := 1.0
	if l.alpha == 0 {
		d = 0.0
	}

	return apply(func(float64) float64 { return d }, outputs)
}

type leakyReLUCorrectedActivation struct {
	alpha float64
}

// LeakyReLUCorrected implements the same forward function as LeakyReLU but
// with the mathematically correct piecewise derivative: 1 if the output is
// positive, else α. Additive: selecting this activation does not change the
// behavior of LeakyReLU.
var LeakyReLUCorrected Activation = leakyReLUCorrectedActivation{alpha: 0.1}

func (l leakyReLUCorrectedActivation) Name() string { return "LeakyReLUCorrected" }

func (l leakyReLUCorrectedActivation) Activations(triggers []float64) []float64 {
	return apply(func(x float64) float64 {
		if x > 0 {
			return x
		}

		return l.alpha * x
	}, triggers)
}

func (l leakyReLUCorrectedActivation) Derivatives(outputs []float64) []float64 {
	return apply(func(y float64) float64 {
		if y > 0 {
			return 1.0
		}

		return l.alpha
	}, outputs)
}

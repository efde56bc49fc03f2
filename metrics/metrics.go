// Package metrics accumulates absolute error and match statistics across
// repeated expected/actual comparisons, in the same plain-stdlib-statistics
// style as a model-evaluation report: mean and standard deviation computed
// by hand, no external numerics library.
package metrics

import (
	"fmt"
	"math"
)

// Matcher is a domain-specific boolean predicate over expected and actual
// output vectors, e.g. arg-max agreement.
type Matcher interface {
	Match(expected, actual [][]float64) bool
}

// Metrics accumulates absolute error and match counts across repeated calls
// to Compute, each call comparing one pattern's expected and actual network
// outputs.
type Metrics struct {
	Label   string
	lengths []int
	matcher Matcher

	accumulator [][]float64
	matches     int
	calls       int
	errorAvg    float64
	errorStd    float64
}

// New creates a Metrics accumulator for a schedule of expected output
// vector lengths (one per network output edge) and a matcher used to decide
// whether a given comparison counts as a match.
func New(label string, lengths []int, matcher Matcher) *Metrics {
	accumulator := make([][]float64, len(lengths))
	for i, l := range lengths {
		accumulator[i] = make([]float64, l)
	}

	return &Metrics{Label: label, lengths: lengths, matcher: matcher, accumulator: accumulator}
}

// Compute validates expected and actual against the configured length
// schedule, accumulates elementwise absolute error, evaluates the matcher,
// and recomputes errorAvg/errorStd over the accumulator normalized by the
// call count so far.
func (m *Metrics) Compute(expected, actual [][]float64) error {
	if len(expected) != len(m.lengths) || len(actual) != len(m.lengths) {
		return fmt.Errorf("metrics %s: expected %d output vectors, got expected=%d actual=%d",
			m.Label, len(m.lengths), len(expected), len(actual))
	}

	for i, l := range m.lengths {
		if len(expected[i]) != l || len(actual[i]) != l {
			return fmt.Errorf("metrics %s: output %d: expected length %d, got expected=%d actual=%d",
				m.Label, i, l, len(expected[i]), len(actual[i]))
		}
	}

	for i := range m.lengths {
		for j := range m.accumulator[i] {
			m.accumulator[i][j] += math.Abs(expected[i][j] - actual[i][j])
		}
	}

	if m.matcher != nil && m.matcher.Match(expected, actual) {
		m.matches++
	}

	m.calls++
	m.recomputeSummary()

	return nil
}

func (m *Metrics) recomputeSummary() {
	var flat []float64

	for _, row := range m.accumulator {
		for _, v := range row {
			flat = append(flat, v/float64(m.calls))
		}
	}

	if len(flat) == 0 {
		m.errorAvg, m.errorStd = 0, 0

		return
	}

	mean := calculateMean(flat)
	m.errorAvg = mean
	m.errorStd = calculateStandardDeviation(flat)
}

// AccumulatedError returns the raw per-output-vector absolute error sums
// accumulated across every Compute call so far (not normalized by calls).
func (m *Metrics) AccumulatedError() [][]float64 {
	out := make([][]float64, len(m.accumulator))
	for i, row := range m.accumulator {
		out[i] = append([]float64(nil), row...)
	}

	return out
}

// Matches returns the number of Compute calls the matcher judged a match.
func (m *Metrics) Matches() int { return m.matches }

// Calls returns the total number of Compute calls.
func (m *Metrics) Calls() int { return m.calls }

// ErrorAvg returns the mean of the flattened, call-normalized accumulator.
func (m *Metrics) ErrorAvg() float64 { return m.errorAvg }

// ErrorStd returns the standard deviation of the flattened, call-normalized accumulator.
func (m *Metrics) ErrorStd() float64 { return m.errorStd }

// calculateMean computes the mean of a slice.
func calculateMean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, v := range data {
		sum += v
	}

	return sum / float64(len(data))
}

// calculateStandardDeviation computes standard deviation.
func calculateStandardDeviation(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}

	meanVal := calculateMean(data)
	sumSquares := 0.0

	for _, x := range data {
		diff := x - meanVal
		sumSquares += diff * diff
	}

	return math.Sqrt(sumSquares / float64(len(data)))
}

package metrics

import "math"

// CategoryMatcher matches iff, for every output vector, the arg-max index
// of expected equals the arg-max index of actual. Ties are broken by first
// occurrence.
type CategoryMatcher struct{}

// Match implements Matcher.
func (CategoryMatcher) Match(expected, actual [][]float64) bool {
	for i := range expected {
		if argmax(expected[i]) != argmax(actual[i]) {
			return false
		}
	}

	return true
}

func argmax(v []float64) int {
	best := 0

	for i := 1; i < len(v); i++ {
		if v[i] > v[best] {
			best = i
		}
	}

	return best
}

// ToleranceMatcher matches iff every elementwise absolute difference
// between expected and actual is within Tolerance, a coarser, regression-style
// alternative to CategoryMatcher for non-categorical outputs.
type ToleranceMatcher struct {
	Tolerance float64
}

// Match implements Matcher.
func (m ToleranceMatcher) Match(expected, actual [][]float64) bool {
	for i := range expected {
		for j := range expected[i] {
			if math.Abs(expected[i][j]-actual[i][j]) > m.Tolerance {
				return false
			}
		}
	}

	return true
}

var (
	_ Matcher = CategoryMatcher{}
	_ Matcher = ToleranceMatcher{}
)

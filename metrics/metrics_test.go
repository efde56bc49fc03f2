package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Scenario 5: category match.
func TestMetricsCategoryMatchScenario(t *testing.T) {
	m := New("category", []int{3, 3}, CategoryMatcher{})

	expected := [][]float64{{0, 1, 0}, {1, 0, 0}}
	actual := [][]float64{{0.1, 0.7, 0.2}, {0.8, 0.1, 0.1}}

	require.NoError(t, m.Compute(expected, actual))

	assert.Equal(t, 1, m.Matches())
	assert.Equal(t, 1, m.Calls())

	got := m.AccumulatedError()
	assert.InDeltaSlice(t, []float64{0.1, 0.3, 0.2}, got[0], 1e-9)
	assert.InDeltaSlice(t, []float64{0.2, 0.1, 0.1}, got[1], 1e-9)
}

func TestMetricsRejectsShapeMismatch(t *testing.T) {
	m := New("shape", []int{2}, CategoryMatcher{})

	err := m.Compute([][]float64{{1, 2, 3}}, [][]float64{{1, 2, 3}})
	require.Error(t, err)
}

func TestMetricsAccumulatesAcrossCalls(t *testing.T) {
	m := New("acc", []int{1}, CategoryMatcher{})

	require.NoError(t, m.Compute([][]float64{{1}}, [][]float64{{0.5}}))
	require.NoError(t, m.Compute([][]float64{{1}}, [][]float64{{0.25}}))

	assert.Equal(t, 2, m.Calls())
	assert.InDelta(t, 0.75, m.AccumulatedError()[0][0], 1e-9)
}

func TestMetricsErrorAvgAndStd(t *testing.T) {
	m := New("summary", []int{2}, CategoryMatcher{})

	require.NoError(t, m.Compute([][]float64{{1, 1}}, [][]float64{{0, 2}}))

	assert.InDelta(t, 1.0, m.ErrorAvg(), 1e-9)
	assert.InDelta(t, 0.0, m.ErrorStd(), 1e-9)
}

func TestCategoryMatcherTieBreaksOnFirstOccurrence(t *testing.T) {
	matcher := CategoryMatcher{}

	// expected ties at indices 0 and 1; first occurrence picks 0, which is
	// also actual's arg-max.
	expected := [][]float64{{1, 1, 0}}
	actual := [][]float64{{1, 0.5, 0}}

	assert.True(t, matcher.Match(expected, actual))
}

func TestCategoryMatcherDisagreement(t *testing.T) {
	matcher := CategoryMatcher{}

	expected := [][]float64{{0, 1, 0}}
	actual := [][]float64{{1, 0, 0}}

	assert.False(t, matcher.Match(expected, actual))
}

func TestToleranceMatcher(t *testing.T) {
	matcher := ToleranceMatcher{Tolerance: 0.1}

	assert.True(t, matcher.Match([][]float64{{1.0}}, [][]float64{{1.05}}))
	assert.False(t, matcher.Match([][]float64{{1.0}}, [][]float64{{1.2}}))
}

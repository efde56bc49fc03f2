package pattern

import "math/rand/v2"

// SliceSource iterates a fixed, in-memory slice of patterns, optionally
// reshuffling the order on every Reset.
type SliceSource struct {
	patterns []Pattern
	order    []int
	pos      int

	shuffle bool
	rand    *rand.Rand
}

// NewSliceSource creates a Source over patterns, iterated in the given
// order on every Reset.
func NewSliceSource(patterns []Pattern) *SliceSource {
	return &SliceSource{patterns: patterns}
}

// WithShuffle enables reshuffling the iteration order on every Reset, using
// a PCG source seeded from seed1/seed2 for reproducibility.
func (s *SliceSource) WithShuffle(seed1, seed2 uint64) *SliceSource {
	s.shuffle = true
	s.rand = rand.New(rand.NewPCG(seed1, seed2))

	return s
}

// Reset rewinds to the first pattern, reshuffling the order first if
// WithShuffle was called.
func (s *SliceSource) Reset() {
	s.order = make([]int, len(s.patterns))
	for i := range s.order {
		s.order[i] = i
	}

	if s.shuffle {
		s.rand.Shuffle(len(s.order), func(i, j int) {
			s.order[i], s.order[j] = s.order[j], s.order[i]
		})
	}

	s.pos = 0
}

// HasNext reports whether Next would return a pattern.
func (s *SliceSource) HasNext() bool {
	return s.pos < len(s.order)
}

// Next returns the current pattern and advances the cursor.
func (s *SliceSource) Next() (Pattern, error) {
	if !s.HasNext() {
		return Pattern{}, ErrExhausted
	}

	p := s.patterns[s.order[s.pos]]
	s.pos++

	return p, nil
}

// Size returns the total number of patterns in the underlying slice.
func (s *SliceSource) Size() int {
	return len(s.patterns)
}

var _ Source = (*SliceSource)(nil)

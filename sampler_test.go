package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testExtents() []Extent {
	return []Extent{{Lo: 0, Hi: 10}, {Lo: 0, Hi: 10}}
}

func drain(s Sampler) []Config {
	var out []Config
	for {
		c, ok := s.Next()
		if !ok {
			return out
		}
		out = append(out, c)
	}
}

func TestSamplerUnknownStrategy(t *testing.T) {
	_, err := NewSampler("levy-flight", testExtents(), 10, 0)
	require.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestSamplerSequencesAreDeterministic(t *testing.T) {
	for _, strategy := range []string{"uniform", "halton"} {
		t.Run(strategy, func(t *testing.T) {
			first, err := NewSampler(strategy, testExtents(), 25, 42)
			require.NoError(t, err)
			second, err := NewSampler(strategy, testExtents(), 25, 42)
			require.NoError(t, err)

			a, b := drain(first), drain(second)
			require.Len(t, a, 25)
			require.Equal(t, a, b, "same seed must replay the same sequence")
		})
	}
}

func TestSamplerResetReplays(t *testing.T) {
	for _, strategy := range []string{"uniform", "halton"} {
		t.Run(strategy, func(t *testing.T) {
			s, err := NewSampler(strategy, testExtents(), 10, 7)
			require.NoError(t, err)
			a := drain(s)
			s.Reset()
			b := drain(s)
			require.Equal(t, a, b)
		})
	}
}

func TestSamplerStaysWithinExtents(t *testing.T) {
	extents := []Extent{{Lo: -3, Hi: 3}, {Lo: 5, Hi: 9}}
	for _, strategy := range []string{"uniform", "halton"} {
		s, err := NewSampler(strategy, extents, 100, 1)
		require.NoError(t, err)
		for _, c := range drain(s) {
			require.Len(t, c, 2)
			for i, ext := range extents {
				require.GreaterOrEqual(t, c[i], ext.Lo)
				require.LessOrEqual(t, c[i], ext.Hi)
			}
		}
	}
}

func TestHaltonCoversSpaceEvenly(t *testing.T) {
	s, err := NewSampler("halton", testExtents(), 64, 0)
	require.NoError(t, err)

	// Every quadrant of the extents should receive samples.
	counts := map[[2]bool]int{}
	for _, c := range drain(s) {
		counts[[2]bool{c[0] < 5, c[1] < 5}]++
	}
	require.Len(t, counts, 4)
	for quadrant, n := range counts {
		require.Greater(t, n, 4, "quadrant %v undersampled", quadrant)
	}
}

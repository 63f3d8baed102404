package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlanarSpaceDistanceAndInterpolate(t *testing.T) {
	space := NewPlanarSpace(NewFreeGrid(10, 10), 0)

	a := Config{0, 0}
	b := Config{3, 4}
	require.InDelta(t, 5.0, space.Distance(a, b), 1e-12)

	mid := space.Interpolate(a, b, 0.5)
	require.InDelta(t, 1.5, mid[0], 1e-12)
	require.InDelta(t, 2.0, mid[1], 1e-12)
}

func TestCheckConfigErrors(t *testing.T) {
	space := NewPlanarSpace(NewFreeGrid(10, 10), 0)

	require.ErrorIs(t, CheckConfig(space, Config{1, 2, 3}), ErrInvalidConfiguration)
	require.ErrorIs(t, CheckConfig(space, Config{-1, 2}), ErrOutOfBounds)
	require.ErrorIs(t, CheckConfig(space, Config{1, 11}), ErrOutOfBounds)
	require.NoError(t, CheckConfig(space, Config{1, 2}))
}

func TestPlanarValidityAgainstGrid(t *testing.T) {
	grid := NewFreeGrid(10, 10)
	grid.Block(5, 5)
	space := NewPlanarSpace(grid, 0)

	require.True(t, space.IsValid(Config{4.9, 4.9}))
	require.False(t, space.IsValid(Config{5.5, 5.5}))
	// Out of bounds is never valid.
	require.False(t, space.IsValid(Config{-0.1, 3}))
	require.False(t, space.IsValid(Config{3, 10.1}))
}

func TestLocalPathValidityShortCircuitsOnWall(t *testing.T) {
	grid := NewFreeGrid(10, 10)
	for y := 0; y < 10; y++ {
		grid.Block(5, y)
	}
	space := NewPlanarSpace(grid, 0)

	// Straight segment crossing the wall column must fail even though both
	// endpoints are valid.
	require.True(t, space.IsValid(Config{2, 5}))
	require.True(t, space.IsValid(Config{8, 5}))
	require.False(t, IsLocalPathValid(space, Config{2, 5}, Config{8, 5}))

	// A segment on one side of the wall passes.
	require.True(t, IsLocalPathValid(space, Config{1, 1}, Config{4, 8}))
}

func TestLocalPathSampleCountGrowsWithLength(t *testing.T) {
	space := NewPlanarSpace(NewFreeGrid(100, 100), 0.5)

	short := space.LocalPath(Config{0, 0}, Config{2, 0})
	long := space.LocalPath(Config{0, 0}, Config{40, 0})
	require.Greater(t, len(long), len(short))
	// Distance-proportional: roughly one sample per half unit.
	require.InDelta(t, 80, len(long)-1, 2)
}

func TestDubinsMetricExceedsPlanarWhenHeadingFlips(t *testing.T) {
	grid := NewFreeGrid(10, 10)
	planar := NewPlanarSpace(grid, 0)
	dubins := NewDubinsSpace(grid, 0, 1.0)

	a := Config{2, 2, 0}
	b := Config{7, 2, math.Pi}
	planarDist := planar.Distance(a[:2], b[:2])
	dubinsDist := dubins.Distance(a, b)

	require.Greater(t, dubinsDist, planarDist,
		"heading term must contribute positively to the metric")
}

func TestDubinsSpaceLocalPathEndpoints(t *testing.T) {
	dubins := NewDubinsSpace(NewFreeGrid(20, 20), 0, 1.0)

	a := Config{2, 2, 0}
	b := Config{10, 8, math.Pi / 2}
	samples := dubins.LocalPath(a, b)
	require.GreaterOrEqual(t, len(samples), 2)

	first, last := samples[0], samples[len(samples)-1]
	require.InDelta(t, a[0], first[0], 1e-6)
	require.InDelta(t, a[1], first[1], 1e-6)
	require.InDelta(t, b[0], last[0], 1e-6)
	require.InDelta(t, b[1], last[1], 1e-6)
	require.InDelta(t, 0, normalizeAngle(last[2]-b[2]), 1e-6)
}

func TestDubinsSpaceZeroDistanceToSelf(t *testing.T) {
	dubins := NewDubinsSpace(NewFreeGrid(10, 10), 0, 1.0)
	c := Config{3, 4, 1.0}
	require.Equal(t, 0.0, dubins.Distance(c, c))
}

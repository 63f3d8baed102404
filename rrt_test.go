package main

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRRTFullGoalBiasConnectsQuickly(t *testing.T) {
	space := NewPlanarSpace(NewFreeGrid(10, 10), 0)
	start := Config{0.5, 0.5}
	goal := Config{8.5, 8.5}
	opts := RRTOptions{Bias: 1.0, Eta: 1.0, MaxIter: 50, GoalRadius: 1.0}

	path, evaluated, err := PlanRRT(space, start, goal, opts, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.Equal(t, start, path[0])
	require.Equal(t, goal, path[len(path)-1])

	// With bias 1 the tree marches straight at the goal in eta-sized steps:
	// ~12 units of straight-line distance means roughly that many nodes.
	straight := space.Distance(start, goal)
	require.LessOrEqual(t, len(path), int(straight/opts.Eta)+3)
	require.Greater(t, evaluated, 0)
}

func TestRRTFailsAcrossWall(t *testing.T) {
	space := NewPlanarSpace(wallGrid(), 0)
	opts := RRTOptions{Bias: 0.1, Eta: 1.0, MaxIter: 50, GoalRadius: 1.0}

	path, _, err := PlanRRT(space, Config{0.5, 0.5}, Config{9.5, 9.5}, opts, rand.New(rand.NewSource(7)))
	require.ErrorIs(t, err, ErrNoPathFound)
	require.Nil(t, path)
}

func TestRRTDeterministicUnderSeed(t *testing.T) {
	space := NewPlanarSpace(NewFreeGrid(10, 10), 0)
	opts := RRTOptions{Bias: 0.2, Eta: 1.5, MaxIter: 500, GoalRadius: 1.0}

	first, _, err := PlanRRT(space, Config{1, 1}, Config{9, 9}, opts, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	second, _, err := PlanRRT(space, Config{1, 1}, Config{9, 9}, opts, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestRRTValidatesEveryCommittedSegment(t *testing.T) {
	grid := NewFreeGrid(10, 10)
	for x := 3; x <= 6; x++ {
		grid.Block(x, 5)
	}
	space := NewPlanarSpace(grid, 0)
	opts := RRTOptions{Bias: 0.3, Eta: 1.0, MaxIter: 2000, GoalRadius: 1.0}

	path, _, err := PlanRRT(space, Config{5, 1}, Config{5, 9}, opts, rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	for i := 0; i+1 < len(path); i++ {
		require.True(t, IsLocalPathValid(space, path[i], path[i+1]))
	}
}

func TestRRTRejectsBadEndpoints(t *testing.T) {
	space := NewPlanarSpace(NewFreeGrid(10, 10), 0)
	rng := rand.New(rand.NewSource(1))

	_, _, err := PlanRRT(space, Config{-1, 0}, Config{5, 5}, RRTOptions{}, rng)
	require.ErrorIs(t, err, ErrOutOfBounds)
	_, _, err = PlanRRT(space, Config{1, 1}, Config{5}, RRTOptions{}, rng)
	require.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestRRTOnDubinsSpace(t *testing.T) {
	space := NewDubinsSpace(NewFreeGrid(20, 20), 0, 1.0)
	opts := RRTOptions{Bias: 0.3, Eta: 2.0, MaxIter: 3000, GoalRadius: 2.0}

	start := Config{2, 2, 0}
	goal := Config{16, 16, math.Pi / 2}
	path, _, err := PlanRRT(space, start, goal, opts, rand.New(rand.NewSource(11)))
	require.NoError(t, err)
	require.Equal(t, goal, path[len(path)-1])
	for i := 0; i+1 < len(path); i++ {
		require.True(t, IsLocalPathValid(space, path[i], path[i+1]))
	}
}

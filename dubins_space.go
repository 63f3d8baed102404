package main

import (
	"math"
	"math/rand"
)

// DubinsSpace is the rigid-body-with-heading configuration space. The metric
// is the length of the shortest curvature-constrained path between two
// poses, so the heading difference contributes positively to every distance
// and the A* heuristic stays admissible. Curvature is the inverse of the
// minimum turning radius: larger curvature makes tight turns cheaper.
type DubinsSpace struct {
	grid       *OccupancyGrid
	resolution float64
	curvature  float64
}

// NewDubinsSpace builds a rigid-body space over an occupancy grid with the
// given turning curvature. Zero resolution falls back to DefaultResolution;
// non-positive curvature defaults to 1.
func NewDubinsSpace(grid *OccupancyGrid, resolution, curvature float64) *DubinsSpace {
	if resolution <= 0 {
		resolution = DefaultResolution
	}
	if curvature <= 0 {
		curvature = 1
	}
	return &DubinsSpace{grid: grid, resolution: resolution, curvature: curvature}
}

// Dimension returns 3: x, y and heading.
func (s *DubinsSpace) Dimension() int { return 3 }

// Curvature returns the configured turning curvature.
func (s *DubinsSpace) Curvature() float64 { return s.curvature }

// rho is the minimum turning radius implied by the curvature.
func (s *DubinsSpace) rho() float64 { return 1 / s.curvature }

// Extents covers the grid plus the normalized heading range.
func (s *DubinsSpace) Extents() []Extent {
	return []Extent{
		{Lo: 0, Hi: float64(s.grid.Width())},
		{Lo: 0, Hi: float64(s.grid.Height())},
		{Lo: -math.Pi, Hi: math.Pi},
	}
}

// Distance is the shortest Dubins path length from a to b.
func (s *DubinsSpace) Distance(a, b Config) float64 {
	if a[0] == b[0] && a[1] == b[1] && normalizeAngle(a[2]-b[2]) == 0 {
		return 0
	}
	path, ok := ShortestDubinsPath(a, b, s.rho())
	if !ok {
		// Degenerate pair; fall back to the positional distance.
		return math.Hypot(a[0]-b[0], a[1]-b[1])
	}
	return path.Length()
}

// Interpolate returns the pose a fraction t along the Dubins path from a to
// b, not the straight line between them.
func (s *DubinsSpace) Interpolate(a, b Config, t float64) Config {
	path, ok := ShortestDubinsPath(a, b, s.rho())
	if !ok {
		return a.Clone()
	}
	return path.At(t * path.Length())
}

// IsValid checks the pose position against the occupancy grid.
func (s *DubinsSpace) IsValid(c Config) bool {
	return s.grid.Free(c[0], c[1])
}

// LocalPath samples the curved local path from a to b at the space
// resolution. Edge validity must inspect these intermediate poses: the arcs
// can sweep through cells the straight segment between a and b never touches.
func (s *DubinsSpace) LocalPath(a, b Config) []Config {
	path, ok := ShortestDubinsPath(a, b, s.rho())
	if !ok {
		return []Config{a.Clone(), b.Clone()}
	}
	length := path.Length()
	steps := int(math.Ceil(length / s.resolution))
	if steps < 1 {
		steps = 1
	}
	samples := make([]Config, 0, steps+1)
	for i := 0; i <= steps; i++ {
		samples = append(samples, path.At(length*float64(i)/float64(steps)))
	}
	return samples
}

// SampleUniform draws a pose uniformly: position inside the grid, heading in
// [-π, π).
func (s *DubinsSpace) SampleUniform(rng *rand.Rand) Config {
	return Config{
		rng.Float64() * float64(s.grid.Width()),
		rng.Float64() * float64(s.grid.Height()),
		rng.Float64()*2*math.Pi - math.Pi,
	}
}

package main

import (
	"math"
	"math/rand"
)

// Config is a point in the planning space: (x, y) for planar problems,
// (x, y, heading) for rigid-body problems. Treated as immutable once created.
type Config []float64

// Clone returns an independent copy of the configuration.
func (c Config) Clone() Config {
	out := make(Config, len(c))
	copy(out, c)
	return out
}

// Extent is a per-dimension closed interval of permissible values.
type Extent struct {
	Lo float64 `json:"lo"`
	Hi float64 `json:"hi"`
}

// Space is the configuration-space capability set shared by all planners:
// a metric, interpolation, a validity oracle, steering and extents.
type Space interface {
	// Dimension returns the number of components in a configuration.
	Dimension() int

	// Extents returns the per-dimension bounds of the space.
	Extents() []Extent

	// Distance returns the metric cost of moving from a to b.
	Distance(a, b Config) float64

	// Interpolate returns the configuration a fraction t along the local
	// path from a to b, with t in [0, 1].
	Interpolate(a, b Config, t float64) Config

	// IsValid reports whether a single configuration is collision-free.
	IsValid(c Config) bool

	// LocalPath returns sample configurations along the local path from a
	// to b, spaced by the space resolution, endpoints included. Long paths
	// get proportionally more samples.
	LocalPath(a, b Config) []Config

	// SampleUniform draws a uniform random configuration within the extents.
	SampleUniform(rng *rand.Rand) Config
}

// CheckConfig validates a configuration against a space: dimensionality
// first, then extents. Raised eagerly at construction/insertion time and
// never retried.
func CheckConfig(s Space, c Config) error {
	if len(c) != s.Dimension() {
		return ErrInvalidConfiguration
	}
	for i, ext := range s.Extents() {
		if c[i] < ext.Lo || c[i] > ext.Hi {
			return ErrOutOfBounds
		}
	}
	return nil
}

// IsLocalPathValid checks every sample point along the local path from a to
// b, short-circuiting at the first invalid sample. This is the single edge
// collision check shared by the roadmap, the shortcutter and the RRT.
func IsLocalPathValid(s Space, a, b Config) bool {
	for _, q := range s.LocalPath(a, b) {
		if !s.IsValid(q) {
			return false
		}
	}
	return true
}

// DefaultResolution is the spacing between collision-check samples along a
// local path, in world units.
const DefaultResolution = 0.1

// PlanarSpace is the translation-only configuration space: Euclidean metric,
// straight-line local paths, validity against an occupancy grid.
type PlanarSpace struct {
	grid       *OccupancyGrid
	resolution float64
}

// NewPlanarSpace builds a planar space over an occupancy grid. A resolution
// of zero falls back to DefaultResolution.
func NewPlanarSpace(grid *OccupancyGrid, resolution float64) *PlanarSpace {
	if resolution <= 0 {
		resolution = DefaultResolution
	}
	return &PlanarSpace{grid: grid, resolution: resolution}
}

// Dimension returns 2.
func (s *PlanarSpace) Dimension() int { return 2 }

// Extents covers the whole grid.
func (s *PlanarSpace) Extents() []Extent {
	return []Extent{
		{Lo: 0, Hi: float64(s.grid.Width())},
		{Lo: 0, Hi: float64(s.grid.Height())},
	}
}

// Distance is the Euclidean distance between the two positions.
func (s *PlanarSpace) Distance(a, b Config) float64 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	return math.Sqrt(dx*dx + dy*dy)
}

// Interpolate moves linearly from a toward b.
func (s *PlanarSpace) Interpolate(a, b Config, t float64) Config {
	return Config{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
	}
}

// IsValid checks the configuration against the occupancy grid.
func (s *PlanarSpace) IsValid(c Config) bool {
	return s.grid.Free(c[0], c[1])
}

// LocalPath discretizes the straight segment from a to b at the space
// resolution. The sample count grows with the segment length so long edges
// are checked as densely as short ones.
func (s *PlanarSpace) LocalPath(a, b Config) []Config {
	steps := int(math.Ceil(s.Distance(a, b) / s.resolution))
	if steps < 1 {
		steps = 1
	}
	samples := make([]Config, 0, steps+1)
	for i := 0; i <= steps; i++ {
		samples = append(samples, s.Interpolate(a, b, float64(i)/float64(steps)))
	}
	return samples
}

// SampleUniform draws a position uniformly inside the grid extents.
func (s *PlanarSpace) SampleUniform(rng *rand.Rand) Config {
	return Config{
		rng.Float64() * float64(s.grid.Width()),
		rng.Float64() * float64(s.grid.Height()),
	}
}

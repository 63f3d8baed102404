package main

import (
	"math/rand"
)

// RRTOptions are the tree-growth parameters. Zero values fall back to the
// defaults below.
type RRTOptions struct {
	Bias       float64 `json:"bias"`       // probability of sampling the goal directly
	Eta        float64 `json:"eta"`        // maximum extension step per iteration
	MaxIter    int     `json:"maxIter"`    // iteration budget before giving up
	GoalRadius float64 `json:"goalRadius"` // metric radius for attempting the goal connection
}

const (
	defaultRRTBias       = 0.05
	defaultRRTEta        = 1.0
	defaultRRTMaxIter    = 1000
	defaultRRTGoalRadius = 1.0
)

func (o RRTOptions) withDefaults() RRTOptions {
	if o.Bias <= 0 {
		o.Bias = defaultRRTBias
	}
	if o.Eta <= 0 {
		o.Eta = defaultRRTEta
	}
	if o.MaxIter <= 0 {
		o.MaxIter = defaultRRTMaxIter
	}
	if o.GoalRadius <= 0 {
		o.GoalRadius = defaultRRTGoalRadius
	}
	return o
}

// rrtTree is a parent-pointer tree rooted at the start configuration. Local
// paths are validated before a node is committed, so unlike the roadmap
// there is no deferred validity here.
type rrtTree struct {
	configs []Config
	parent  []int
}

func (t *rrtTree) add(c Config, parent int) int {
	t.configs = append(t.configs, c.Clone())
	t.parent = append(t.parent, parent)
	return len(t.configs) - 1
}

// nearest returns the tree node closest to the target under the space
// metric. Linear scan: the metric (Dubins in the rigid-body case) is what
// matters, not Euclidean proximity.
func (t *rrtTree) nearest(space Space, target Config) int {
	best, bestDist := -1, 0.0
	for i, c := range t.configs {
		d := space.Distance(c, target)
		if best == -1 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// PlanRRT grows a rapidly-exploring random tree from start toward goal.
// Each iteration samples the goal with probability Bias or a uniform random
// configuration otherwise, steers from the nearest tree node toward the
// sample by at most Eta, and commits the new node only if the local path to
// it is fully valid. Once a committed node falls within GoalRadius of the
// goal and the local path to the goal validates, the plan is the parent
// chain from the goal back to the root, reversed.
//
// Returns the configuration path, the number of edge collision checks
// performed, and ErrNoPathFound on MaxIter exhaustion.
func PlanRRT(space Space, start, goal Config, opts RRTOptions, rng *rand.Rand) ([]Config, int, error) {
	if err := CheckConfig(space, start); err != nil {
		return nil, 0, err
	}
	if err := CheckConfig(space, goal); err != nil {
		return nil, 0, err
	}
	opts = opts.withDefaults()

	tree := &rrtTree{}
	tree.add(start, -1)
	evaluated := 0

	for iter := 0; iter < opts.MaxIter; iter++ {
		var target Config
		if rng.Float64() < opts.Bias {
			target = goal
		} else {
			target = space.SampleUniform(rng)
		}

		nearID := tree.nearest(space, target)
		near := tree.configs[nearID]

		// Steer toward the sample, clamped to Eta along the local path.
		candidate := target
		if d := space.Distance(near, target); d > opts.Eta {
			candidate = space.Interpolate(near, target, opts.Eta/d)
		}

		evaluated++
		if !IsLocalPathValid(space, near, candidate) {
			continue
		}
		newID := tree.add(candidate, nearID)

		d := space.Distance(candidate, goal)
		if d == 0 {
			// The biased sample reached the goal exactly.
			return tree.extract(newID), evaluated, nil
		}
		if d <= opts.GoalRadius {
			evaluated++
			if IsLocalPathValid(space, candidate, goal) {
				goalID := tree.add(goal, newID)
				return tree.extract(goalID), evaluated, nil
			}
		}
	}

	return nil, evaluated, ErrNoPathFound
}

// extract walks parent pointers from a node to the root and reverses.
func (t *rrtTree) extract(id int) []Config {
	var path []Config
	for node := id; node != -1; node = t.parent[node] {
		path = append(path, t.configs[node])
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

package main

import "math/rand"

// Sampler produces a finite, restartable sequence of configurations inside
// a set of extents. Sequences are pure: no shared state, and a fixed seed
// makes the sequence identical across runs.
type Sampler interface {
	// Next returns the next configuration, or false once the sequence has
	// produced its full count.
	Next() (Config, bool)

	// Reset rewinds the sequence to its beginning. A reset sequence replays
	// the exact same configurations.
	Reset()
}

// samplerConstructor builds a strategy for the given extents, count and seed.
type samplerConstructor func(extents []Extent, count int, seed int64) Sampler

// samplerStrategies is the closed table of registered strategies. Adding a
// strategy means adding a row here; there is no dynamic registry.
var samplerStrategies = map[string]samplerConstructor{
	"uniform": NewUniformSampler,
	"halton":  NewHaltonSampler,
}

// NewSampler instantiates a named strategy from the table.
func NewSampler(strategy string, extents []Extent, count int, seed int64) (Sampler, error) {
	ctor, ok := samplerStrategies[strategy]
	if !ok {
		return nil, ErrUnknownStrategy
	}
	return ctor(extents, count, seed), nil
}

// UniformSampler draws pseudo-random configurations uniformly within the
// extents from a dedicated seeded generator.
type UniformSampler struct {
	extents []Extent
	count   int
	seed    int64
	rng     *rand.Rand
	emitted int
}

// NewUniformSampler returns a uniform random sequence of the given length.
func NewUniformSampler(extents []Extent, count int, seed int64) Sampler {
	return &UniformSampler{
		extents: extents,
		count:   count,
		seed:    seed,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// Next draws the next configuration.
func (u *UniformSampler) Next() (Config, bool) {
	if u.emitted >= u.count {
		return nil, false
	}
	u.emitted++
	c := make(Config, len(u.extents))
	for i, ext := range u.extents {
		c[i] = ext.Lo + u.rng.Float64()*(ext.Hi-ext.Lo)
	}
	return c, true
}

// Reset rewinds and reseeds so the replay is bit-identical.
func (u *UniformSampler) Reset() {
	u.rng = rand.New(rand.NewSource(u.seed))
	u.emitted = 0
}

// haltonBases are the first primes, one radical-inverse base per dimension.
var haltonBases = []int{2, 3, 5, 7, 11}

// HaltonSampler is a deterministic low-discrepancy sequence: successive
// points fill the extents far more evenly than uniform random draws, which
// improves roadmap coverage for the same node count. The seed offsets the
// start index within the infinite Halton sequence.
type HaltonSampler struct {
	extents []Extent
	count   int
	offset  int
	emitted int
}

// NewHaltonSampler returns a Halton sequence of the given length. The seed
// is used as an index offset, so it selects a window of the sequence rather
// than perturbing it.
func NewHaltonSampler(extents []Extent, count int, seed int64) Sampler {
	offset := int(seed)
	if offset < 0 {
		offset = -offset
	}
	return &HaltonSampler{extents: extents, count: count, offset: offset}
}

// radicalInverse reflects the base-b digits of i about the radix point.
func radicalInverse(base, i int) float64 {
	inv := 0.0
	f := 1.0 / float64(base)
	for i > 0 {
		inv += f * float64(i%base)
		i /= base
		f /= float64(base)
	}
	return inv
}

// Next returns the next low-discrepancy point.
func (h *HaltonSampler) Next() (Config, bool) {
	if h.emitted >= h.count {
		return nil, false
	}
	// Index 0 of the raw sequence is the origin corner; skip it.
	idx := h.offset + h.emitted + 1
	h.emitted++

	c := make(Config, len(h.extents))
	for dim, ext := range h.extents {
		c[dim] = ext.Lo + radicalInverse(haltonBases[dim%len(haltonBases)], idx)*(ext.Hi-ext.Lo)
	}
	return c, true
}

// Reset rewinds the sequence.
func (h *HaltonSampler) Reset() {
	h.emitted = 0
}

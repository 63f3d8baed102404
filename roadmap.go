package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"os"
	"sort"
	"time"
)

// EdgeState is the lazy tri-state validity of a roadmap edge. It moves from
// unknown to valid or invalid exactly once and never reverts.
type EdgeState uint8

const (
	EdgeUnknown EdgeState = iota
	EdgeValid
	EdgeInvalid
)

// edgeRecord lives in the flat edge arena, indexed by edge id. An invalid
// edge is logically removed from the graph but its weight is retained for
// diagnostics.
type edgeRecord struct {
	U      int       `json:"u"`
	V      int       `json:"v"`
	Weight float64   `json:"weight"`
	State  EdgeState `json:"state"`
}

// Neighbor is one incident edge as seen from a node.
type Neighbor struct {
	To     int
	Weight float64
}

// Roadmap is a sampled undirected simple graph over a configuration space.
// Nodes get dense zero-based identifiers in insertion order; candidate edges
// join every pair within the connection radius under the space metric. In
// lazy mode edge collision checks are deferred until a search traverses the
// edge; otherwise edges are validated at insertion and invalid ones dropped
// on the spot. A roadmap serves exactly one planning query and is discarded.
type Roadmap struct {
	space  Space
	radius float64
	lazy   bool

	nodes    []Config
	edges    []edgeRecord
	incident [][]int // node id -> edge ids, including invalidated edges
	index    *NodeIndex

	evaluated int
}

// NewRoadmap creates an empty roadmap over the given space.
func NewRoadmap(space Space, radius float64, lazy bool) *Roadmap {
	return &Roadmap{
		space:  space,
		radius: radius,
		lazy:   lazy,
		index:  NewNodeIndex(),
	}
}

// Space returns the configuration space the roadmap was built over.
func (rm *Roadmap) Space() Space { return rm.space }

// Lazy reports whether edge validation is deferred to search time.
func (rm *Roadmap) Lazy() bool { return rm.lazy }

// NodeCount returns the number of nodes, sampled plus injected.
func (rm *Roadmap) NodeCount() int { return len(rm.nodes) }

// Node returns the configuration of a node.
func (rm *Roadmap) Node(id int) Config { return rm.nodes[id] }

// EdgesEvaluated returns how many edge collision checks have actually run.
func (rm *Roadmap) EdgesEvaluated() int { return rm.evaluated }

// AddNode inserts a configuration, assigns the next identifier and connects
// it to every existing node within the connection radius. Injected start and
// goal nodes go through this same path after sampling, so they connect
// against the already-present graph. Candidate edge weights use the local
// path from the lower-numbered to the higher-numbered endpoint, which keeps
// the undirected graph deterministic even under the asymmetric Dubins
// metric.
func (rm *Roadmap) AddNode(c Config) (int, error) {
	if err := CheckConfig(rm.space, c); err != nil {
		return -1, err
	}
	id := len(rm.nodes)
	rm.nodes = append(rm.nodes, c.Clone())
	rm.incident = append(rm.incident, nil)

	// Euclidean box prefilter, then the real metric. Sorted for determinism:
	// the R-tree does not guarantee result order.
	candidates := rm.index.Within(c, rm.radius)
	sort.Ints(candidates)

	for _, other := range candidates {
		weight := rm.space.Distance(rm.nodes[other], rm.nodes[id])
		if weight > rm.radius {
			continue
		}
		state := EdgeUnknown
		if !rm.lazy {
			rm.evaluated++
			if !IsLocalPathValid(rm.space, rm.nodes[other], rm.nodes[id]) {
				continue // dropped immediately, never enters the graph
			}
			state = EdgeValid
		}
		eid := len(rm.edges)
		rm.edges = append(rm.edges, edgeRecord{U: other, V: id, Weight: weight, State: state})
		rm.incident[other] = append(rm.incident[other], eid)
		rm.incident[id] = append(rm.incident[id], eid)
	}

	rm.index.Insert(id, c)
	return id, nil
}

// findEdge returns the arena index of the edge between u and v, or -1.
// Invalidated edges are still found so their cached outcome stays reachable.
func (rm *Roadmap) findEdge(u, v int) int {
	if u < 0 || v < 0 || u >= len(rm.nodes) || v >= len(rm.nodes) || u == v {
		return -1
	}
	for _, eid := range rm.incident[u] {
		e := rm.edges[eid]
		if (e.U == u && e.V == v) || (e.U == v && e.V == u) {
			return eid
		}
	}
	return -1
}

// NearestNode returns the identifier of the node closest to c and the metric
// distance to it: positional nearest from the index, re-measured under the
// space metric. Returns -1 on an empty roadmap.
func (rm *Roadmap) NearestNode(c Config) (int, float64) {
	id := rm.index.Nearest(c)
	if id < 0 {
		return -1, math.Inf(1)
	}
	return id, rm.space.Distance(rm.nodes[id], c)
}

// HasEdge reports whether a currently-usable edge joins u and v.
func (rm *Roadmap) HasEdge(u, v int) bool {
	eid := rm.findEdge(u, v)
	return eid >= 0 && rm.edges[eid].State != EdgeInvalid
}

// EdgesFrom returns the incident edges of a node, excluding edges already
// marked invalid.
func (rm *Roadmap) EdgesFrom(id int) []Neighbor {
	if id < 0 || id >= len(rm.nodes) {
		return nil
	}
	neighbors := make([]Neighbor, 0, len(rm.incident[id]))
	for _, eid := range rm.incident[id] {
		e := rm.edges[eid]
		if e.State == EdgeInvalid {
			continue
		}
		to := e.U
		if to == id {
			to = e.V
		}
		neighbors = append(neighbors, Neighbor{To: to, Weight: e.Weight})
	}
	return neighbors
}

// IsEdgeValid returns the validity of the edge between u and v, running the
// collision check on first use and caching the outcome. Each edge is checked
// at most once no matter how many search iterations revisit it; cached
// answers cost nothing and do not move the evaluated counter.
func (rm *Roadmap) IsEdgeValid(u, v int) (bool, error) {
	eid := rm.findEdge(u, v)
	if eid < 0 {
		return false, ErrDisconnectedPath
	}
	e := &rm.edges[eid]
	switch e.State {
	case EdgeValid:
		return true, nil
	case EdgeInvalid:
		return false, nil
	}

	rm.evaluated++
	if IsLocalPathValid(rm.space, rm.nodes[e.U], rm.nodes[e.V]) {
		e.State = EdgeValid
		return true, nil
	}
	e.State = EdgeInvalid
	return false, nil
}

// RemoveEdge logically deletes the edge between u and v. The node count and
// the recorded weight are untouched.
func (rm *Roadmap) RemoveEdge(u, v int) {
	if eid := rm.findEdge(u, v); eid >= 0 {
		rm.edges[eid].State = EdgeInvalid
	}
}

// TryConnect attempts to create a new, already-validated edge between two
// nodes that are not yet neighbors. Used by the shortcutter. The collision
// check counts toward the evaluated total. Returns the edge weight and
// whether the connection succeeded.
func (rm *Roadmap) TryConnect(u, v int) (float64, bool) {
	if u == v {
		return 0, false
	}
	if eid := rm.findEdge(u, v); eid >= 0 {
		e := rm.edges[eid]
		if e.State == EdgeInvalid {
			return 0, false
		}
		valid, _ := rm.IsEdgeValid(u, v)
		return e.Weight, valid
	}

	lo, hi := u, v
	if lo > hi {
		lo, hi = hi, lo
	}
	weight := rm.space.Distance(rm.nodes[lo], rm.nodes[hi])
	rm.evaluated++
	if !IsLocalPathValid(rm.space, rm.nodes[lo], rm.nodes[hi]) {
		return 0, false
	}
	eid := len(rm.edges)
	rm.edges = append(rm.edges, edgeRecord{U: lo, V: hi, Weight: weight, State: EdgeValid})
	rm.incident[lo] = append(rm.incident[lo], eid)
	rm.incident[hi] = append(rm.incident[hi], eid)
	return weight, true
}

// PathLength sums the edge weights along a node-identifier sequence. A
// missing or removed edge between consecutive nodes fails with
// ErrDisconnectedPath.
func (rm *Roadmap) PathLength(path []int) (float64, error) {
	total := 0.0
	for i := 0; i+1 < len(path); i++ {
		eid := rm.findEdge(path[i], path[i+1])
		if eid < 0 || rm.edges[eid].State == EdgeInvalid {
			return 0, ErrDisconnectedPath
		}
		total += rm.edges[eid].Weight
	}
	return total, nil
}

// Edges returns the (u, v, weight) arena, including invalidated edges, for
// diagnostics and visualization.
func (rm *Roadmap) Edges() []edgeRecord {
	out := make([]edgeRecord, len(rm.edges))
	copy(out, rm.edges)
	return out
}

// BuildRoadmap samples the space through the sampler and connects each valid
// sample within the connection radius. Invalid samples are skipped, as the
// sequence length is fixed. Start and goal are injected afterwards by the
// caller through AddNode.
func BuildRoadmap(space Space, sampler Sampler, radius float64, lazy bool) *Roadmap {
	startTime := time.Now()
	rm := NewRoadmap(space, radius, lazy)

	skipped := 0
	for {
		c, ok := sampler.Next()
		if !ok {
			break
		}
		if !space.IsValid(c) {
			skipped++
			continue
		}
		if _, err := rm.AddNode(c); err != nil {
			skipped++
		}
	}

	log.Printf("🗺️  Roadmap built: %d nodes, %d candidate edges (lazy=%v)\n",
		rm.NodeCount(), len(rm.edges), rm.lazy)
	if skipped > 0 {
		log.Printf("   ℹ️  Skipped %d samples inside obstacles\n", skipped)
	}
	log.Printf("   ⏱️  Build time: %.2f seconds\n", time.Since(startTime).Seconds())
	return rm
}

// Clone deep-copies the roadmap so a planning query can inject its start and
// goal nodes and invalidate edges without touching the shared build.
func (rm *Roadmap) Clone() *Roadmap {
	out := NewRoadmap(rm.space, rm.radius, rm.lazy)
	out.nodes = make([]Config, len(rm.nodes))
	for i, c := range rm.nodes {
		out.nodes[i] = c.Clone()
	}
	out.edges = make([]edgeRecord, len(rm.edges))
	copy(out.edges, rm.edges)
	out.incident = make([][]int, len(rm.incident))
	for i, eids := range rm.incident {
		out.incident[i] = append([]int(nil), eids...)
	}
	for id, c := range out.nodes {
		out.index.Insert(id, c)
	}
	out.evaluated = rm.evaluated
	return out
}

// roadmapSnapshot is the JSON persistence format.
type roadmapSnapshot struct {
	Nodes     []Config     `json:"nodes"`
	Edges     []edgeRecord `json:"edges"`
	Radius    float64      `json:"connectionRadius"`
	Lazy      bool         `json:"lazy"`
	Evaluated int          `json:"edgesEvaluated"`
}

// SaveRoadmap serializes the roadmap to a JSON file so an expensive build
// can be reused across runs.
func SaveRoadmap(rm *Roadmap, filename string) error {
	log.Printf("💾 Saving roadmap to %s...\n", filename)
	snap := roadmapSnapshot{
		Nodes:     rm.nodes,
		Edges:     rm.edges,
		Radius:    rm.radius,
		Lazy:      rm.lazy,
		Evaluated: rm.evaluated,
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal roadmap: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	log.Printf("   ✅ Roadmap saved (%d bytes)\n", len(data))
	return nil
}

// LoadRoadmap restores a roadmap snapshot over the given space, rebuilding
// the incidence lists and the spatial index.
func LoadRoadmap(filename string, space Space) (*Roadmap, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	var snap roadmapSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal roadmap: %w", err)
	}

	rm := NewRoadmap(space, snap.Radius, snap.Lazy)
	rm.nodes = snap.Nodes
	rm.edges = snap.Edges
	rm.evaluated = snap.Evaluated
	rm.incident = make([][]int, len(snap.Nodes))
	for id, c := range rm.nodes {
		rm.index.Insert(id, c)
	}
	for eid, e := range rm.edges {
		rm.incident[e.U] = append(rm.incident[e.U], eid)
		rm.incident[e.V] = append(rm.incident[e.V], eid)
	}

	log.Printf("📂 Roadmap loaded: %d nodes, %d edges\n", len(rm.nodes), len(rm.edges))
	return rm, nil
}

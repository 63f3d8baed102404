package main

import (
	"github.com/dhconnelly/rtreego"
)

// nodeEntry wraps a roadmap node position for R-tree storage.
type nodeEntry struct {
	id  int
	loc rtreego.Point
}

// Bounds implements rtreego.Spatial.
func (e *nodeEntry) Bounds() rtreego.Rect {
	return e.loc.ToRect(1e-9)
}

// NodeIndex answers positional queries over roadmap nodes. It indexes the
// (x, y) components only, so its radius query is a Euclidean prefilter: the
// caller re-checks candidates under the real space metric. That prefilter is
// a correct superset for the Dubins metric too, since a curvature-
// constrained path is never shorter than the straight line.
type NodeIndex struct {
	tree *rtreego.Rtree
}

// NewNodeIndex creates an empty 2-D node index.
func NewNodeIndex() *NodeIndex {
	return &NodeIndex{tree: rtreego.NewTree(2, 25, 50)}
}

// Insert adds a node position under the given identifier.
func (idx *NodeIndex) Insert(id int, c Config) {
	idx.tree.Insert(&nodeEntry{id: id, loc: rtreego.Point{c[0], c[1]}})
}

// Within returns the identifiers of all nodes whose position lies inside the
// axis-aligned box of half-width r centered on c.
func (idx *NodeIndex) Within(c Config, r float64) []int {
	bbox, err := rtreego.NewRect(
		rtreego.Point{c[0] - r, c[1] - r},
		[]float64{2 * r, 2 * r},
	)
	if err != nil {
		return nil
	}

	results := idx.tree.SearchIntersect(bbox)
	ids := make([]int, 0, len(results))
	for _, item := range results {
		ids = append(ids, item.(*nodeEntry).id)
	}
	return ids
}

// Nearest returns the identifier of the positionally closest node, or -1 on
// an empty index.
func (idx *NodeIndex) Nearest(c Config) int {
	item := idx.tree.NearestNeighbor(rtreego.Point{c[0], c[1]})
	if item == nil {
		return -1
	}
	return item.(*nodeEntry).id
}

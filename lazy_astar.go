package main

import (
	"container/heap"
)

// searchNode is one A* frontier entry over the roadmap graph.
type searchNode struct {
	ID     int     // roadmap node identifier
	G      float64 // cost from start to this node
	H      float64 // heuristic cost from this node to the goal
	F      float64 // total cost (G + H)
	Parent *searchNode
	Index  int // index in the heap
}

// searchQueue implements heap.Interface for the A* open set.
type searchQueue []*searchNode

func (pq searchQueue) Len() int { return len(pq) }

func (pq searchQueue) Less(i, j int) bool {
	if pq[i].F != pq[j].F {
		return pq[i].F < pq[j].F
	}
	// Deterministic tie-break: lower node identifier wins.
	return pq[i].ID < pq[j].ID
}

func (pq searchQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].Index = i
	pq[j].Index = j
}

func (pq *searchQueue) Push(x interface{}) {
	n := len(*pq)
	node := x.(*searchNode)
	node.Index = n
	*pq = append(*pq, node)
}

func (pq *searchQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.Index = -1
	*pq = old[0 : n-1]
	return node
}

// astarOnRoadmap runs standard A* over the roadmap's current graph using
// cached edge weights. Edges already marked invalid are absent. The
// heuristic is the space metric from each node to the goal configuration,
// which lower-bounds the remaining path cost in both space variants.
func astarOnRoadmap(rm *Roadmap, startID, goalID int) ([]int, bool) {
	if rm.NodeCount() == 0 {
		return nil, false
	}
	space := rm.Space()
	goalConfig := rm.Node(goalID)

	openSet := &searchQueue{}
	heap.Init(openSet)

	h0 := space.Distance(rm.Node(startID), goalConfig)
	startNode := &searchNode{ID: startID, G: 0, H: h0, F: h0}
	heap.Push(openSet, startNode)

	closedSet := make(map[int]bool)
	openSetMap := map[int]*searchNode{startID: startNode}

	for openSet.Len() > 0 {
		current := heap.Pop(openSet).(*searchNode)
		delete(openSetMap, current.ID)

		if current.ID == goalID {
			path := []int{}
			for node := current; node != nil; node = node.Parent {
				path = append([]int{node.ID}, path...)
			}
			return path, true
		}

		closedSet[current.ID] = true

		for _, edge := range rm.EdgesFrom(current.ID) {
			if closedSet[edge.To] {
				continue
			}

			tentativeG := current.G + edge.Weight

			neighbor, exists := openSetMap[edge.To]
			if !exists {
				neighbor = &searchNode{
					ID:     edge.To,
					G:      tentativeG,
					H:      space.Distance(rm.Node(edge.To), goalConfig),
					Parent: current,
				}
				neighbor.F = neighbor.G + neighbor.H
				heap.Push(openSet, neighbor)
				openSetMap[edge.To] = neighbor
			} else if tentativeG < neighbor.G {
				neighbor.G = tentativeG
				neighbor.F = neighbor.G + neighbor.H
				neighbor.Parent = current
				heap.Fix(openSet, neighbor.Index)
			}
		}
	}

	return nil, false
}

// LazyShortestPath finds a fully valid shortest path between two roadmap
// nodes. It repeatedly runs A* over the current graph, then walks the
// candidate path edge by edge, validating any edge still unknown. The first
// invalid edge is removed and the search restarts from scratch; a candidate
// whose edges all validate is final. Each restart strictly grows the finite
// set of known-invalid edges, so the loop terminates. On a non-lazy roadmap
// every edge is already valid and a single A* pass suffices.
//
// Returns the node-identifier path and the roadmap's total evaluated-edge
// count, or ErrNoPathFound once the surviving graph no longer connects the
// endpoints.
func LazyShortestPath(rm *Roadmap, startID, goalID int) ([]int, int, error) {
	for {
		path, ok := astarOnRoadmap(rm, startID, goalID)
		if !ok {
			return nil, rm.EdgesEvaluated(), ErrNoPathFound
		}

		valid := true
		for i := 0; i+1 < len(path); i++ {
			edgeOK, err := rm.IsEdgeValid(path[i], path[i+1])
			if err != nil {
				return nil, rm.EdgesEvaluated(), err
			}
			if !edgeOK {
				// Drop exactly this edge and replan; the rest of the
				// candidate path is discarded unexamined.
				rm.RemoveEdge(path[i], path[i+1])
				valid = false
				break
			}
		}
		if valid {
			return path, rm.EdgesEvaluated(), nil
		}
	}
}

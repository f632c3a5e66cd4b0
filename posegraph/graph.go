// Package posegraph composes pairwise relative-pose measurements between
// panoramas into consistent per-building global poses: an adjacency over
// integer node ids with one relative similarity transform per edge, and a
// greedy spanning-tree synchronizer that propagates those measurements into
// world-frame poses.
package posegraph

import (
	"sort"

	"github.com/pkg/errors"
)

// Transform is the algebra a relative-pose edge must support: composition
// and inversion, both closed over the same type.
type Transform[T any] interface {
	Compose(T) T
	Invert() T
}

// EdgeKey canonically identifies an unordered node pair, with I1 < I2.
type EdgeKey struct {
	I1, I2 int
}

// Graph is an undirected pose graph: integer node ids with at most one
// relative transform per unordered pair. The transform stored at canonical
// key (i1, i2), i1 < i2, expresses node i1's frame in node i2's frame.
// Edges are immutable once added.
type Graph[T Transform[T]] struct {
	edges     map[EdgeKey]T
	adjacency map[int][]int
}

// NewGraph returns an empty pose graph.
func NewGraph[T Transform[T]]() *Graph[T] {
	return &Graph[T]{
		edges:     map[EdgeKey]T{},
		adjacency: map[int][]int{},
	}
}

// AddEdge records the measured transform expressing i1's frame in i2's
// frame. Inserting with i1 > i2 stores the canonical key and the inverted
// transform, so both insertion directions describe the same measurement.
func (g *Graph[T]) AddEdge(i1, i2 int, t T) error {
	if i1 < 0 || i2 < 0 {
		return errors.Errorf("node ids must be non-negative, got (%d, %d)", i1, i2)
	}
	if i1 == i2 {
		return errors.Errorf("cannot add an edge from node %d to itself", i1)
	}
	if i1 > i2 {
		i1, i2 = i2, i1
		t = t.Invert()
	}
	key := EdgeKey{I1: i1, I2: i2}
	if _, ok := g.edges[key]; ok {
		return errors.Errorf("edge (%d, %d) already present", i1, i2)
	}
	g.edges[key] = t
	g.adjacency[i1] = append(g.adjacency[i1], i2)
	g.adjacency[i2] = append(g.adjacency[i2], i1)
	return nil
}

// Edge returns the transform stored at the canonical key (i1 < i2).
func (g *Graph[T]) Edge(i1, i2 int) (T, bool) {
	t, ok := g.edges[EdgeKey{I1: i1, I2: i2}]
	return t, ok
}

// NumEdges returns the number of edges.
func (g *Graph[T]) NumEdges() int {
	return len(g.edges)
}

// Nodes returns every node id with at least one edge, ascending.
func (g *Graph[T]) Nodes() []int {
	nodes := make([]int, 0, len(g.adjacency))
	for n := range g.adjacency {
		nodes = append(nodes, n)
	}
	sort.Ints(nodes)
	return nodes
}

// MaxNodeID returns the largest node id present, or -1 for an empty graph.
func (g *Graph[T]) MaxNodeID() int {
	maxID := -1
	for n := range g.adjacency {
		if n > maxID {
			maxID = n
		}
	}
	return maxID
}

// LargestConnectedComponent returns the node ids of the largest connected
// component, ascending. A tie between equal-size components goes to the one
// containing the smallest node id. An empty graph returns nil.
func (g *Graph[T]) LargestConnectedComponent() []int {
	parent := map[int]int{}
	for n := range g.adjacency {
		parent[n] = n
	}
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}
	for key := range g.edges {
		r1, r2 := find(key.I1), find(key.I2)
		if r1 != r2 {
			parent[r1] = r2
		}
	}

	components := map[int][]int{}
	for n := range g.adjacency {
		root := find(n)
		components[root] = append(components[root], n)
	}
	var best []int
	for _, members := range components {
		sort.Ints(members)
		if best == nil ||
			len(members) > len(best) ||
			(len(members) == len(best) && members[0] < best[0]) {
			best = members
		}
	}
	return best
}

// ShortestPath returns an unweighted shortest path from src to dst over the
// edge set, inclusive of both endpoints, or nil when dst is unreachable.
// Neighbors are expanded in ascending id order, so the returned path is
// deterministic for a given edge set; which of several equal-length paths
// gets returned remains an arbitrary choice, which only matters when the
// edge measurements are noisy.
func (g *Graph[T]) ShortestPath(src, dst int) []int {
	if _, ok := g.adjacency[src]; !ok {
		return nil
	}
	if src == dst {
		return []int{src}
	}
	visited := map[int]bool{src: true}
	cameFrom := map[int]int{}
	queue := []int{src}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, nbr := range g.sortedNeighbors(cur) {
			if visited[nbr] {
				continue
			}
			visited[nbr] = true
			cameFrom[nbr] = cur
			if nbr == dst {
				path := []int{dst}
				for path[len(path)-1] != src {
					path = append(path, cameFrom[path[len(path)-1]])
				}
				for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
					path[i], path[j] = path[j], path[i]
				}
				return path
			}
			queue = append(queue, nbr)
		}
	}
	return nil
}

func (g *Graph[T]) sortedNeighbors(n int) []int {
	nbrs := append([]int(nil), g.adjacency[n]...)
	sort.Ints(nbrs)
	return nbrs
}

package posegraph

import (
	"github.com/edaniels/golog"
)

// SynchronizeSpanningTree greedily assembles a spanning tree (not a minimum
// spanning tree) over the graph's largest connected component, assigning a
// global pose to every node in it: the component's smallest node id becomes
// the origin with the identity pose, and every other node's pose is the
// composition of relative edge transforms along the BFS shortest path from
// the origin.
//
// The result is indexed by node id and has length MaxNodeID()+1; nodes
// outside the component stay nil. An empty edge set yields a nil result.
// The graph is never mutated and the routine uses no randomness, so
// repeated calls return identical results.
func SynchronizeSpanningTree[T Transform[T]](g *Graph[T], identity T, logger golog.Logger) []*T {
	if g.NumEdges() == 0 {
		return nil
	}
	component := g.LargestConnectedComponent()
	if len(component) == 0 {
		return nil
	}

	globalPoses := make([]*T, g.MaxNodeID()+1)
	origin := component[0]
	originPose := identity
	globalPoses[origin] = &originPose

	for _, dst := range component[1:] {
		path := g.ShortestPath(origin, dst)
		logger.Debugf("path from %d->%d: %v", origin, dst, path)

		wTd := identity
		for i := 0; i+1 < len(path); i++ {
			a, b := path[i], path[i+1]
			// The canonical edge expresses the lower id's frame in the
			// higher id's frame; walking low->high needs its inverse.
			var aTb T
			if a < b {
				edge, _ := g.Edge(a, b)
				aTb = edge.Invert()
			} else {
				edge, _ := g.Edge(b, a)
				aTb = edge
			}
			wTd = wTd.Compose(aTb)
		}
		pose := wTd
		globalPoses[dst] = &pose
	}
	return globalPoses
}

package posegraph

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"go.viam.com/test"

	"panosync/spatialmath"
)

func edgeSim2(theta float64) spatialmath.Sim2 {
	return spatialmath.NewSim2FromThetaDegrees(theta, mgl64.Vec2{}, 1)
}

func TestAddEdgeValidation(t *testing.T) {
	g := NewGraph[spatialmath.Sim2]()
	test.That(t, g.AddEdge(0, 0, edgeSim2(0)), test.ShouldNotBeNil)
	test.That(t, g.AddEdge(-1, 2, edgeSim2(0)), test.ShouldNotBeNil)
	test.That(t, g.AddEdge(0, 1, edgeSim2(10)), test.ShouldBeNil)
	test.That(t, g.AddEdge(0, 1, edgeSim2(20)), test.ShouldNotBeNil)
	test.That(t, g.AddEdge(1, 0, edgeSim2(20)), test.ShouldNotBeNil)
	test.That(t, g.NumEdges(), test.ShouldEqual, 1)
}

func TestAddEdgeCanonicalizes(t *testing.T) {
	g := NewGraph[spatialmath.Sim2]()
	tf := spatialmath.NewSim2FromThetaDegrees(30, mgl64.Vec2{1, 2}, 2)
	test.That(t, g.AddEdge(4, 1, tf), test.ShouldBeNil)

	stored, ok := g.Edge(1, 4)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, spatialmath.Sim2AlmostEqual(stored, tf.Invert(), 1e-12), test.ShouldBeTrue)

	_, ok = g.Edge(4, 1)
	test.That(t, ok, test.ShouldBeFalse)
}

func TestNodesAndMaxNodeID(t *testing.T) {
	g := NewGraph[spatialmath.Sim2]()
	test.That(t, g.Nodes(), test.ShouldHaveLength, 0)
	test.That(t, g.MaxNodeID(), test.ShouldEqual, -1)

	test.That(t, g.AddEdge(5, 2, edgeSim2(0)), test.ShouldBeNil)
	test.That(t, g.AddEdge(2, 9, edgeSim2(0)), test.ShouldBeNil)
	test.That(t, g.Nodes(), test.ShouldResemble, []int{2, 5, 9})
	test.That(t, g.MaxNodeID(), test.ShouldEqual, 9)
}

func TestLargestConnectedComponent(t *testing.T) {
	g := NewGraph[spatialmath.Sim2]()
	test.That(t, g.LargestConnectedComponent(), test.ShouldBeNil)

	// component {0,1,2} vs component {5,6}
	test.That(t, g.AddEdge(0, 1, edgeSim2(0)), test.ShouldBeNil)
	test.That(t, g.AddEdge(1, 2, edgeSim2(0)), test.ShouldBeNil)
	test.That(t, g.AddEdge(5, 6, edgeSim2(0)), test.ShouldBeNil)
	test.That(t, g.LargestConnectedComponent(), test.ShouldResemble, []int{0, 1, 2})
}

func TestLargestConnectedComponentTieBreak(t *testing.T) {
	g := NewGraph[spatialmath.Sim2]()
	// two components of size 2; the one containing node 1 wins
	test.That(t, g.AddEdge(3, 7, edgeSim2(0)), test.ShouldBeNil)
	test.That(t, g.AddEdge(1, 9, edgeSim2(0)), test.ShouldBeNil)
	test.That(t, g.LargestConnectedComponent(), test.ShouldResemble, []int{1, 9})
}

func TestShortestPath(t *testing.T) {
	g := NewGraph[spatialmath.Sim2]()
	test.That(t, g.AddEdge(0, 1, edgeSim2(0)), test.ShouldBeNil)
	test.That(t, g.AddEdge(1, 2, edgeSim2(0)), test.ShouldBeNil)
	test.That(t, g.AddEdge(2, 3, edgeSim2(0)), test.ShouldBeNil)
	test.That(t, g.AddEdge(0, 4, edgeSim2(0)), test.ShouldBeNil)
	test.That(t, g.AddEdge(4, 3, edgeSim2(0)), test.ShouldBeNil)

	test.That(t, g.ShortestPath(0, 2), test.ShouldResemble, []int{0, 1, 2})
	test.That(t, g.ShortestPath(0, 3), test.ShouldResemble, []int{0, 4, 3})
	test.That(t, g.ShortestPath(2, 2), test.ShouldResemble, []int{2})
	test.That(t, g.ShortestPath(0, 99), test.ShouldBeNil)
	test.That(t, g.ShortestPath(99, 0), test.ShouldBeNil)
}

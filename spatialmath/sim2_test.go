package spatialmath

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"go.viam.com/test"
)

func TestSim2Identity(t *testing.T) {
	identity := NewSim2()
	test.That(t, identity.Scale(), test.ShouldEqual, 1.0)
	test.That(t, identity.ThetaDegrees(), test.ShouldEqual, 0.0)
	p := mgl64.Vec2{3, -4}
	test.That(t, identity.TransformPoint(p), test.ShouldResemble, p)
}

func TestSim2RoundTrip(t *testing.T) {
	transforms := []Sim2{
		NewSim2(),
		NewSim2FromThetaDegrees(90, mgl64.Vec2{1, 2}, 1),
		NewSim2FromThetaDegrees(-45, mgl64.Vec2{-10, 0.5}, 2.5),
		NewSim2FromThetaDegrees(173, mgl64.Vec2{1e3, -1e3}, 0.01),
	}
	for _, tf := range transforms {
		test.That(t, Sim2AlmostEqual(tf.Compose(tf.Invert()), NewSim2(), 1e-6), test.ShouldBeTrue)
		test.That(t, Sim2AlmostEqual(tf.Invert().Compose(tf), NewSim2(), 1e-6), test.ShouldBeTrue)
	}
}

func TestSim2Compose(t *testing.T) {
	a := NewSim2FromThetaDegrees(90, mgl64.Vec2{1, 0}, 2)
	b := NewSim2FromThetaDegrees(90, mgl64.Vec2{0, 1}, 3)

	c := a.Compose(b)
	test.That(t, c.Scale(), test.ShouldAlmostEqual, 6)
	test.That(t, c.ThetaDegrees(), test.ShouldAlmostEqual, 180)
	// t = t_a + s_a * R_a * t_b = (1,0) + 2*R(90)*(0,1) = (-1, 0)
	test.That(t, c.Translation()[0], test.ShouldAlmostEqual, -1)
	test.That(t, c.Translation()[1], test.ShouldAlmostEqual, 0)

	// composition is associative
	d := NewSim2FromThetaDegrees(30, mgl64.Vec2{5, 5}, 0.5)
	test.That(t, Sim2AlmostEqual(a.Compose(b).Compose(d), a.Compose(b.Compose(d)), 1e-9), test.ShouldBeTrue)
}

func TestSim2TransformPoint(t *testing.T) {
	tf := NewSim2FromThetaDegrees(90, mgl64.Vec2{1, 2}, 2)
	// 2 * R(90) * (1,0) + (1,2) = (1, 4)
	got := tf.TransformPoint(mgl64.Vec2{1, 0})
	test.That(t, got[0], test.ShouldAlmostEqual, 1)
	test.That(t, got[1], test.ShouldAlmostEqual, 4)

	pts := tf.TransformPoints([]mgl64.Vec2{{1, 0}, {0, 1}})
	test.That(t, pts, test.ShouldHaveLength, 2)
	test.That(t, pts[1][0], test.ShouldAlmostEqual, -1)
	test.That(t, pts[1][1], test.ShouldAlmostEqual, 2)
}

func TestSim2ThetaDegrees(t *testing.T) {
	for _, theta := range []float64{0, 30, 90, 179, -30, -90, -179} {
		tf := NewSim2FromThetaDegrees(theta, mgl64.Vec2{}, 1)
		test.That(t, tf.ThetaDegrees(), test.ShouldAlmostEqual, theta, 1e-9)
	}
	test.That(t, math.Abs(NewSim2FromThetaDegrees(180, mgl64.Vec2{}, 1).ThetaDegrees()), test.ShouldAlmostEqual, 180)
}

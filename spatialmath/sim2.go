// Package spatialmath implements the similarity-transform algebra used for
// pose-graph synchronization: Sim(2) for in-plane panorama poses, and
// Pose3/Sim(3) for aligning an estimated pose set against a reference one.
package spatialmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const radToDeg = 180 / math.Pi
const degToRad = math.Pi / 180

// Sim2 is a 2-D similarity transform: rotation, translation and a uniform
// strictly positive scale. Applying it to a point computes s*R*p + t.
type Sim2 struct {
	rotation    mgl64.Mat2
	translation mgl64.Vec2
	scale       float64
}

// NewSim2 returns the identity Sim(2) transform. Since the zero value
// carries a zero scale, this should be used instead of Sim2{}.
func NewSim2() Sim2 {
	return Sim2{rotation: mgl64.Ident2(), scale: 1}
}

// NewSim2FromParts returns a Sim(2) with the given rotation matrix,
// translation and scale. The scale must be strictly positive.
func NewSim2FromParts(r mgl64.Mat2, t mgl64.Vec2, s float64) Sim2 {
	return Sim2{rotation: r, translation: t, scale: s}
}

// NewSim2FromThetaDegrees returns a Sim(2) rotating counterclockwise by the
// given angle in degrees.
func NewSim2FromThetaDegrees(thetaDeg float64, t mgl64.Vec2, s float64) Sim2 {
	return Sim2{rotation: mgl64.Rotate2D(thetaDeg * degToRad), translation: t, scale: s}
}

// Rotation returns the rotation matrix.
func (t Sim2) Rotation() mgl64.Mat2 {
	return t.rotation
}

// Translation returns the translation vector.
func (t Sim2) Translation() mgl64.Vec2 {
	return t.translation
}

// Scale returns the uniform scale.
func (t Sim2) Scale() float64 {
	return t.scale
}

// ThetaDegrees returns the rotation angle in degrees in (-180, 180].
func (t Sim2) ThetaDegrees() float64 {
	return math.Atan2(t.rotation.At(1, 0), t.rotation.At(0, 0)) * radToDeg
}

// Compose returns the transform equivalent to applying o first, then t.
func (t Sim2) Compose(o Sim2) Sim2 {
	return Sim2{
		rotation:    t.rotation.Mul2(o.rotation),
		translation: t.translation.Add(t.rotation.Mul2x1(o.translation).Mul(t.scale)),
		scale:       t.scale * o.scale,
	}
}

// Invert returns the inverse transform, such that t.Compose(t.Invert()) is
// the identity up to floating point error.
func (t Sim2) Invert() Sim2 {
	rInv := t.rotation.Transpose()
	return Sim2{
		rotation:    rInv,
		translation: rInv.Mul2x1(t.translation).Mul(-1 / t.scale),
		scale:       1 / t.scale,
	}
}

// TransformPoint applies the transform to a single point.
func (t Sim2) TransformPoint(p mgl64.Vec2) mgl64.Vec2 {
	return t.rotation.Mul2x1(p).Mul(t.scale).Add(t.translation)
}

// TransformPoints applies the transform to every point, returning a fresh
// slice.
func (t Sim2) TransformPoints(pts []mgl64.Vec2) []mgl64.Vec2 {
	out := make([]mgl64.Vec2, 0, len(pts))
	for _, p := range pts {
		out = append(out, t.TransformPoint(p))
	}
	return out
}

// Sim2AlmostEqual reports whether two Sim(2) transforms agree elementwise
// within tol.
func Sim2AlmostEqual(a, b Sim2, tol float64) bool {
	for i := range a.rotation {
		if math.Abs(a.rotation[i]-b.rotation[i]) > tol {
			return false
		}
	}
	return math.Abs(a.translation[0]-b.translation[0]) <= tol &&
		math.Abs(a.translation[1]-b.translation[1]) <= tol &&
		math.Abs(a.scale-b.scale) <= tol
}

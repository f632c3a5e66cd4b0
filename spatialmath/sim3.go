package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Sim3 is a 3-D similarity transform factored as a rigid pose plus a
// uniform strictly positive scale. Applying it to a point computes
// s*R*p + t.
type Sim3 struct {
	pose  Pose3
	scale float64
}

// NewSim3 returns the identity Sim(3) transform. Since the zero value
// carries a zero scale, this should be used instead of Sim3{}.
func NewSim3() Sim3 {
	return Sim3{pose: NewPose3(), scale: 1}
}

// NewSim3FromParts returns a Sim(3) with the given rigid part and scale.
// The scale must be strictly positive.
func NewSim3FromParts(pose Pose3, scale float64) Sim3 {
	return Sim3{pose: pose, scale: scale}
}

// Pose returns the rigid part of the transform.
func (t Sim3) Pose() Pose3 {
	return t.pose
}

// Rotation returns the rotation quaternion.
func (t Sim3) Rotation() quat.Number {
	return t.pose.rotation
}

// Translation returns the translation vector.
func (t Sim3) Translation() r3.Vector {
	return t.pose.translation
}

// Scale returns the uniform scale.
func (t Sim3) Scale() float64 {
	return t.scale
}

// Compose returns the transform equivalent to applying o first, then t.
func (t Sim3) Compose(o Sim3) Sim3 {
	return Sim3{
		pose: Pose3{
			rotation:    quat.Mul(t.pose.rotation, o.pose.rotation),
			translation: t.pose.translation.Add(RotateVector(t.pose.rotation, o.pose.translation).Mul(t.scale)),
		},
		scale: t.scale * o.scale,
	}
}

// Invert returns the inverse transform, such that t.Compose(t.Invert()) is
// the identity up to floating point error.
func (t Sim3) Invert() Sim3 {
	rInv := quat.Conj(t.pose.rotation)
	return Sim3{
		pose: Pose3{
			rotation:    rInv,
			translation: RotateVector(rInv, t.pose.translation).Mul(-1 / t.scale),
		},
		scale: 1 / t.scale,
	}
}

// TransformPoint applies the transform to a single point.
func (t Sim3) TransformPoint(p r3.Vector) r3.Vector {
	return RotateVector(t.pose.rotation, p).Mul(t.scale).Add(t.pose.translation)
}

// TransformPose maps a pose expressed in the transform's source frame into
// its target frame: the orientation composes with the rotation, while the
// translation is carried through the full similarity.
func (t Sim3) TransformPose(p Pose3) Pose3 {
	return Pose3{
		rotation:    quat.Mul(t.pose.rotation, p.rotation),
		translation: t.TransformPoint(p.translation),
	}
}

// Sim3AlmostEqual reports whether two Sim(3) transforms agree within tol.
func Sim3AlmostEqual(a, b Sim3, tol float64) bool {
	return Pose3AlmostEqual(a.pose, b.pose, tol) && math.Abs(a.scale-b.scale) <= tol
}

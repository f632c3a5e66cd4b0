package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Pose3 is a rigid 3-D pose: a unit quaternion rotation and a translation.
type Pose3 struct {
	rotation    quat.Number
	translation r3.Vector
}

// NewPose3 returns the identity pose. Since the zero value carries a zero
// rotation quaternion, this should be used instead of Pose3{}.
func NewPose3() Pose3 {
	return Pose3{rotation: quat.Number{Real: 1}}
}

// NewPose3FromParts returns the pose with the given rotation and
// translation. The rotation is normalized to a unit quaternion.
func NewPose3FromParts(r quat.Number, t r3.Vector) Pose3 {
	return Pose3{rotation: Normalize(r), translation: t}
}

// Rotation returns the rotation quaternion.
func (p Pose3) Rotation() quat.Number {
	return p.rotation
}

// Translation returns the translation vector.
func (p Pose3) Translation() r3.Vector {
	return p.translation
}

// Compose returns the pose equivalent to applying o within p's frame.
func (p Pose3) Compose(o Pose3) Pose3 {
	return Pose3{
		rotation:    quat.Mul(p.rotation, o.rotation),
		translation: p.translation.Add(RotateVector(p.rotation, o.translation)),
	}
}

// Invert returns the inverse pose, such that p.Compose(p.Invert()) is the
// identity up to floating point error.
func (p Pose3) Invert() Pose3 {
	rInv := quat.Conj(p.rotation)
	return Pose3{
		rotation:    rInv,
		translation: RotateVector(rInv, p.translation).Mul(-1),
	}
}

// TransformPoint applies the pose to a single point.
func (p Pose3) TransformPoint(pt r3.Vector) r3.Vector {
	return RotateVector(p.rotation, pt).Add(p.translation)
}

// AngleBetweenDegrees returns the angular magnitude of the relative rotation
// between the two poses' orientations, in degrees in [0, 180].
func AngleBetweenDegrees(a, b Pose3) float64 {
	rel := quat.Mul(a.rotation, quat.Conj(b.rotation))
	imag := math.Sqrt(rel.Imag*rel.Imag + rel.Jmag*rel.Jmag + rel.Kmag*rel.Kmag)
	return 2 * math.Atan2(imag, math.Abs(rel.Real)) * radToDeg
}

// Pose3AlmostEqual reports whether two poses agree in rotation and
// translation within tol.
func Pose3AlmostEqual(a, b Pose3, tol float64) bool {
	return QuaternionAlmostEqual(a.rotation, b.rotation, tol) &&
		a.translation.Sub(b.translation).Norm() <= tol
}

// RotateVector rotates v by the unit quaternion q.
func RotateVector(q quat.Number, v r3.Vector) r3.Vector {
	qv := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	r := quat.Mul(quat.Mul(q, qv), quat.Conj(q))
	return r3.Vector{X: r.Imag, Y: r.Jmag, Z: r.Kmag}
}

package spatialmath

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// Normalize returns a unit quaternion pointing in the same direction as q.
// The zero quaternion normalizes to the identity rotation.
func Normalize(q quat.Number) quat.Number {
	n := quat.Abs(q)
	if n == 0 {
		return quat.Number{Real: 1}
	}
	return quat.Scale(1/n, q)
}

// QuaternionAlmostEqual reports whether two unit quaternions represent the
// same rotation within tol, accounting for the q/-q double cover.
func QuaternionAlmostEqual(a, b quat.Number, tol float64) bool {
	dot := a.Real*b.Real + a.Imag*b.Imag + a.Jmag*b.Jmag + a.Kmag*b.Kmag
	return 1-math.Abs(dot) <= tol
}

// MeanOfQuaternions returns the chordal mean of the given unit quaternions,
// sign-aligning each term against the running sum first. The second return
// is false when no mean is defined: an empty input, or rotations so spread
// out that their sum cancels.
func MeanOfQuaternions(qs []quat.Number) (quat.Number, bool) {
	if len(qs) == 0 {
		return quat.Number{}, false
	}
	sum := qs[0]
	for _, q := range qs[1:] {
		if sum.Real*q.Real+sum.Imag*q.Imag+sum.Jmag*q.Jmag+sum.Kmag*q.Kmag < 0 {
			q = quat.Scale(-1, q)
		}
		sum = quat.Add(sum, q)
	}
	if quat.Abs(sum) < 1e-9 {
		return quat.Number{}, false
	}
	return Normalize(sum), true
}

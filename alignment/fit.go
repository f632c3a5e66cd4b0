// Package alignment robustly aligns an estimated pose set onto a reference
// pose set with a single Sim(3) transform, tolerating missing and outlier
// entries, and reports scalar rotation/translation error metrics between
// aligned pose sets.
package alignment

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"panosync/spatialmath"
)

// minFitPairs is the fewest pose correspondences that constrain a Sim(3)
// fit: the rotation averages over per-pair relative rotations, so two pairs
// already pin rotation, scale and translation.
const minFitPairs = 2

// AlignPoses fits a single closed-form Sim(3) transform mapping the
// estimate pose set onto the reference pose set over the indices present in
// both, and returns every present estimate entry carried through that
// transform. Entries missing from the estimate stay nil in the output.
// Neither input is mutated.
//
// The fit uses the pose-pair formulation: the rotation is the chordal mean
// of the per-pair relative rotations, then scale and translation follow by
// least squares over the matched translation point sets.
func AlignPoses(ref, est []*spatialmath.Pose3) ([]*spatialmath.Pose3, spatialmath.Sim3, error) {
	if len(ref) != len(est) {
		return nil, spatialmath.NewSim3(), ErrLengthMismatch
	}
	aSb, err := fitSimilarity(ref, est)
	if err != nil {
		return nil, spatialmath.NewSim3(), err
	}
	return applyAlignment(aSb, est), aSb, nil
}

// applyAlignment maps every present estimate entry through aSb.
func applyAlignment(aSb spatialmath.Sim3, est []*spatialmath.Pose3) []*spatialmath.Pose3 {
	aligned := make([]*spatialmath.Pose3, len(est))
	for i, p := range est {
		if p == nil {
			continue
		}
		ap := aSb.TransformPose(*p)
		aligned[i] = &ap
	}
	return aligned
}

// fitSimilarity computes the closed-form Sim(3) from the estimate frame
// into the reference frame over jointly-valid indices. Degenerate geometry
// (too few pairs, cancelling rotations, coincident translations,
// non-positive scale) comes back as ErrDegenerateFit for the caller to
// skip.
func fitSimilarity(ref, est []*spatialmath.Pose3) (spatialmath.Sim3, error) {
	var refT, estT []r3.Vector
	var relRots []quat.Number
	for i := range ref {
		if ref[i] == nil || est[i] == nil {
			continue
		}
		refT = append(refT, ref[i].Translation())
		estT = append(estT, est[i].Translation())
		relRots = append(relRots, quat.Mul(ref[i].Rotation(), quat.Conj(est[i].Rotation())))
	}
	identity := spatialmath.NewSim3()
	if len(refT) < minFitPairs {
		return identity, ErrDegenerateFit
	}
	aRb, ok := spatialmath.MeanOfQuaternions(relRots)
	if !ok {
		return identity, ErrDegenerateFit
	}

	var refCentroid, estCentroid r3.Vector
	for i := range refT {
		refCentroid = refCentroid.Add(refT[i])
		estCentroid = estCentroid.Add(estT[i])
	}
	n := float64(len(refT))
	refCentroid = refCentroid.Mul(1 / n)
	estCentroid = estCentroid.Mul(1 / n)

	var x, y float64
	for i := range refT {
		da := refT[i].Sub(refCentroid)
		db := spatialmath.RotateVector(aRb, estT[i].Sub(estCentroid))
		y += da.Dot(db)
		x += db.Dot(db)
	}
	if x < 1e-12 {
		// every estimate translation coincides with the centroid
		return identity, ErrDegenerateFit
	}
	s := y / x
	if math.IsNaN(s) || s <= 0 {
		return identity, ErrDegenerateFit
	}
	t := refCentroid.Sub(spatialmath.RotateVector(aRb, estCentroid).Mul(s))
	return spatialmath.NewSim3FromParts(spatialmath.NewPose3FromParts(aRb, t), s), nil
}

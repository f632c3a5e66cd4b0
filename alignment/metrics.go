package alignment

import (
	"math"

	"github.com/montanaflynn/stats"

	"panosync/spatialmath"
)

// ComputePoseErrors reports the mean rotation error in degrees and the mean
// Euclidean translation error between two already-aligned pose sets, over
// the indices present in both. Indices missing from either set are excluded
// from the means rather than scored as zero. When no index is jointly
// valid, both means are NaN.
func ComputePoseErrors(ref, aligned []*spatialmath.Pose3) (float64, float64) {
	n := len(ref)
	if len(aligned) < n {
		n = len(aligned)
	}
	var rotErrs, transErrs []float64
	for i := 0; i < n; i++ {
		if ref[i] == nil || aligned[i] == nil {
			continue
		}
		rotErrs = append(rotErrs, spatialmath.AngleBetweenDegrees(*ref[i], *aligned[i]))
		transErrs = append(transErrs, ref[i].Translation().Sub(aligned[i].Translation()).Norm())
	}
	meanRot, err := stats.Mean(rotErrs)
	if err != nil {
		meanRot = math.NaN()
	}
	meanTrans, err := stats.Mean(transErrs)
	if err != nil {
		meanTrans = math.NaN()
	}
	return meanRot, meanTrans
}

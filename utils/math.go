// Package utils contains math and parallelization helpers shared by the
// pose-graph and alignment packages.
package utils

import (
	"math"
	"math/rand"
)

// DegToRad converts degrees to radians.
func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(radians float64) float64 {
	return radians * 180 / math.Pi
}

// AngleDiffDeg returns the closest difference from the two given
// angles. The arguments are commutative.
func AngleDiffDeg(a1, a2 float64) float64 {
	return float64(180) - math.Abs(math.Abs(a1-a2)-float64(180))
}

// SampleWithoutReplacement returns n distinct elements drawn uniformly from
// values without replacement. It panics if n exceeds len(values).
func SampleWithoutReplacement(values []int, n int, r *rand.Rand) []int {
	if n > len(values) {
		panic("cannot sample more values than provided without replacement")
	}
	sampled := make([]int, 0, n)
	for _, i := range r.Perm(len(values))[:n] {
		sampled = append(sampled, values[i])
	}
	return sampled
}

package alignment

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"panosync/spatialmath"
)

func TestComputePoseErrors(t *testing.T) {
	ref := []*spatialmath.Pose3{
		posePtr(quatRotZ(0), r3.Vector{}),
		posePtr(quatRotZ(0), r3.Vector{X: 1}),
	}
	aligned := []*spatialmath.Pose3{
		posePtr(quatRotZ(30), r3.Vector{Y: 3}),
		posePtr(quatRotZ(60), r3.Vector{X: 1, Z: 4}),
	}
	rotErr, transErr := ComputePoseErrors(ref, aligned)
	test.That(t, rotErr, test.ShouldAlmostEqual, 45, 1e-9)
	test.That(t, transErr, test.ShouldAlmostEqual, 3.5, 1e-9)
}

func TestComputePoseErrorsExcludesMissing(t *testing.T) {
	ref := []*spatialmath.Pose3{
		posePtr(quatRotZ(0), r3.Vector{}),
		posePtr(quatRotZ(0), r3.Vector{}),
		posePtr(quatRotZ(0), r3.Vector{}),
		nil,
	}
	aligned := []*spatialmath.Pose3{
		posePtr(quatRotZ(10), r3.Vector{X: 1}),
		nil, // index 1 absent from aligned
		posePtr(quatRotZ(30), r3.Vector{X: 3}),
		posePtr(quatRotZ(90), r3.Vector{X: 100}),
	}
	rotErr, transErr := ComputePoseErrors(ref, aligned)
	// only indices 0 and 2 are jointly valid
	test.That(t, rotErr, test.ShouldAlmostEqual, 20, 1e-9)
	test.That(t, transErr, test.ShouldAlmostEqual, 2, 1e-9)
}

func TestComputePoseErrorsNoValidIndices(t *testing.T) {
	ref := []*spatialmath.Pose3{nil, posePtr(quatRotZ(0), r3.Vector{})}
	aligned := []*spatialmath.Pose3{posePtr(quatRotZ(0), r3.Vector{}), nil}
	rotErr, transErr := ComputePoseErrors(ref, aligned)
	test.That(t, math.IsNaN(rotErr), test.ShouldBeTrue)
	test.That(t, math.IsNaN(transErr), test.ShouldBeTrue)
}

package alignment

import (
	"math"
	"math/rand"

	"github.com/edaniels/golog"
	goutils "go.viam.com/utils"

	"panosync/spatialmath"
	"panosync/utils"
)

// Defaults for RobustAlignConfig.
const (
	DefaultNumIterations         = 1000
	DefaultDeleteFraction        = 0.33
	DefaultMinPosesAfterDeletion = 3
	DefaultSeed                  = 1
)

// minValidPoses is the fewest jointly-valid pose pairs the robust aligner
// will attempt anything with.
const minValidPoses = 3

// RobustAlignConfig tunes RobustAlignPoses. The zero value means defaults.
type RobustAlignConfig struct {
	// NumIterations caps the number of trials and thereby wall-clock cost.
	NumIterations int
	// DeleteFraction is the fraction of valid estimate entries nulled out
	// per trial.
	DeleteFraction float64
	// MinPosesAfterDeletion guards the degenerate path: when no more than
	// this many valid entries would survive a deletion round, the sampling
	// loop is skipped in favor of one closed-form fit over everything
	// present.
	MinPosesAfterDeletion int
	// Parallelism spreads trials over this many workers. Worker w samples
	// from Seed+w, so a fixed seed and parallelism reproduce exactly;
	// 1 keeps trial order identical to the sequential algorithm.
	Parallelism int
	// Seed seeds the trial sampler.
	Seed int64
}

func (c RobustAlignConfig) withDefaults() RobustAlignConfig {
	if c.NumIterations <= 0 {
		c.NumIterations = DefaultNumIterations
	}
	if c.DeleteFraction <= 0 {
		c.DeleteFraction = DefaultDeleteFraction
	}
	if c.MinPosesAfterDeletion <= 0 {
		c.MinPosesAfterDeletion = DefaultMinPosesAfterDeletion
	}
	if c.Parallelism <= 0 {
		c.Parallelism = 1
	}
	if c.Seed == 0 {
		c.Seed = DefaultSeed
	}
	return c
}

// trialResult is one candidate alignment and its score.
type trialResult struct {
	aligned  []*spatialmath.Pose3
	aSb      spatialmath.Sim3
	rotErr   float64
	transErr float64
	ok       bool
}

func noResult() trialResult {
	return trialResult{rotErr: math.Inf(1), transErr: math.Inf(1)}
}

func (r trialResult) unpack() ([]*spatialmath.Pose3, spatialmath.Sim3, error) {
	if !r.ok {
		return nil, spatialmath.NewSim3(), ErrNoValidFit
	}
	return r.aligned, r.aSb, nil
}

// RobustAlignPoses aligns the estimate pose set onto the reference pose set
// with a sampling loop over closed-form Sim(3) fits, tolerating missing and
// outlier entries. ref and est must have equal length and are index
// aligned: entry i of each refers to node i. Neither input is mutated.
//
// Each trial deep-copies both sets for isolation, nulls out a random subset
// of the valid estimate entries in the copy, fits on what remains (a
// degenerate fit discards the trial), and scores the candidate against the
// full reference over indices valid in both. A candidate replaces the
// incumbent only when both its mean rotation error and its mean translation
// error are no worse than the incumbent's. That strict joint-dominance rule
// comes from the source method and can anchor on an early trial; it is kept
// as-is rather than swapped for a scalarized or Pareto criterion.
//
// Structural precondition violations come back as ErrLengthMismatch or
// ErrInsufficientData; ErrNoValidFit means every trial's fit was
// degenerate.
func RobustAlignPoses(
	ref, est []*spatialmath.Pose3,
	cfg RobustAlignConfig,
	logger golog.Logger,
) ([]*spatialmath.Pose3, spatialmath.Sim3, error) {
	cfg = cfg.withDefaults()
	if len(ref) != len(est) {
		return nil, spatialmath.NewSim3(), ErrLengthMismatch
	}
	jointlyValid := 0
	for i := range ref {
		if ref[i] != nil && est[i] != nil {
			jointlyValid++
		}
	}
	if jointlyValid < minValidPoses {
		return nil, spatialmath.NewSim3(), ErrInsufficientData
	}

	var validIdxs []int
	for i, p := range est {
		if p != nil {
			validIdxs = append(validIdxs, i)
		}
	}
	numToDelete := int(math.Ceil(cfg.DeleteFraction * float64(len(validIdxs))))
	if len(validIdxs)-numToDelete <= cfg.MinPosesAfterDeletion {
		// Too few poses would survive a deletion round for sampling to help.
		logger.Debugf("only %d of %d poses would survive deletion; fitting directly",
			len(validIdxs)-numToDelete, len(validIdxs))
		return AlignPoses(ref, est)
	}

	if cfg.Parallelism == 1 {
		r := rand.New(rand.NewSource(cfg.Seed))
		best := noResult()
		for iter := 0; iter < cfg.NumIterations; iter++ {
			cand, ok := runTrial(ref, est, validIdxs, numToDelete, r)
			if !ok {
				continue
			}
			if mergeBest(&best, cand) {
				logger.Debugf("trial %d improved alignment: rot err %.4f deg, trans err %.4f",
					iter, cand.rotErr, cand.transErr)
			}
		}
		return best.unpack()
	}

	bests := make([]trialResult, cfg.Parallelism)
	// member work never errors; degenerate trials are skips
	goutils.UncheckedError(utils.GroupWorkParallel(cfg.NumIterations, cfg.Parallelism,
		nil,
		func(groupNum, groupSize, from, to int) (utils.MemberWorkFunc, utils.GroupWorkDoneFunc) {
			r := rand.New(rand.NewSource(cfg.Seed + int64(groupNum)))
			best := noResult()
			return func(memberNum, workNum int) error {
					if cand, ok := runTrial(ref, est, validIdxs, numToDelete, r); ok {
						mergeBest(&best, cand)
					}
					return nil
				}, func(groupNum int) {
					bests[groupNum] = best
				}
		}))

	best := noResult()
	for _, cand := range bests {
		if cand.ok {
			mergeBest(&best, cand)
		}
	}
	return best.unpack()
}

// runTrial runs one sampling trial on private copies of the inputs. The
// second return is false when the trial's fit was degenerate.
func runTrial(
	ref, est []*spatialmath.Pose3,
	validIdxs []int,
	numToDelete int,
	r *rand.Rand,
) (trialResult, bool) {
	refCopy := clonePoseSet(ref)
	estCopy := clonePoseSet(est)
	for _, del := range utils.SampleWithoutReplacement(validIdxs, numToDelete, r) {
		estCopy[del] = nil
	}
	aligned, aSb, err := AlignPoses(refCopy, estCopy)
	if err != nil {
		return trialResult{}, false
	}
	// deleted indices are nil in aligned and therefore excluded here
	rotErr, transErr := ComputePoseErrors(ref, aligned)
	return trialResult{aligned: aligned, aSb: aSb, rotErr: rotErr, transErr: transErr, ok: true}, true
}

// mergeBest installs cand as the new best only under strict joint
// dominance: both error metrics at or below the incumbent's. The reduction
// is associative and commutative, so partial bests can merge in any order.
func mergeBest(best *trialResult, cand trialResult) bool {
	if cand.rotErr <= best.rotErr && cand.transErr <= best.transErr {
		*best = cand
		return true
	}
	return false
}

func clonePoseSet(poses []*spatialmath.Pose3) []*spatialmath.Pose3 {
	out := make([]*spatialmath.Pose3, len(poses))
	for i, p := range poses {
		if p == nil {
			continue
		}
		cp := *p
		out[i] = &cp
	}
	return out
}

package alignment

import "errors"

var (
	// ErrLengthMismatch means the reference and estimate pose sets differ in
	// length; pose sets are index aligned, so there is nothing sane to do.
	ErrLengthMismatch = errors.New("reference and estimate pose sets differ in length")

	// ErrInsufficientData means fewer than the minimum jointly-valid pose
	// pairs exist before any deletion.
	ErrInsufficientData = errors.New("not enough jointly-valid poses to attempt alignment")

	// ErrDegenerateFit means the available pose correspondences cannot
	// constrain a similarity transform.
	ErrDegenerateFit = errors.New("degenerate pose correspondences for similarity fit")

	// ErrNoValidFit means no trial ever produced a usable fit.
	ErrNoValidFit = errors.New("no alignment trial produced a valid fit")
)

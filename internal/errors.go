package internal

import "errors"

// Every failure returned by the fitting pipeline wraps exactly one of these
// sentinels. Callers match them with errors.Is; context is added with
// fmt.Errorf("...: %w", ErrX) at the point of failure.
var (
	// ErrDegenerateInput covers too few points, zero-length segments,
	// non-positive weights and malformed knot vectors.
	ErrDegenerateInput = errors.New("nurbsfit: degenerate input")

	// ErrInvalidDegree is returned when a degree is below 1 or not smaller
	// than the number of points it has to span.
	ErrInvalidDegree = errors.New("nurbsfit: invalid degree")

	// ErrDimensionMismatch signals incompatible operand shapes, ragged grids
	// and parameter/point count disagreements.
	ErrDimensionMismatch = errors.New("nurbsfit: dimension mismatch")

	// ErrSingularSystem is returned when a basis matrix cannot be inverted.
	ErrSingularSystem = errors.New("nurbsfit: singular system")

	// ErrUnknownStrategy is returned for unrecognized parameterization or
	// knot placement names.
	ErrUnknownStrategy = errors.New("nurbsfit: unknown strategy")
)

const (
	// Epsilon is the smallest difference between two knots or parameters
	// that is treated as significant.
	Epsilon = 1e-10

	// Tolerance is the geometric tolerance used for point comparisons.
	Tolerance = 1e-6

	// pivotEpsilon is relative to the largest matrix entry.
	pivotEpsilon = 1e-12
)

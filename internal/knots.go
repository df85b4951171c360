package internal

import (
	"fmt"
	"strings"
)

// KnotStrategy selects how interior knots are placed.
type KnotStrategy int

const (
	// KnotEqual places interior knots uniformly, ignoring the parameters.
	KnotEqual KnotStrategy = iota
	// KnotAverage places each interior knot at the mean of degree
	// consecutive parameters.
	KnotAverage
	// KnotDerivative adds two knots so end tangents can be prescribed.
	KnotDerivative
)

var knotStrategyNames = [...]string{
	KnotEqual:      "equal",
	KnotAverage:    "average",
	KnotDerivative: "derivative",
}

func (this KnotStrategy) String() string {
	if this < 0 || int(this) >= len(knotStrategyNames) {
		return fmt.Sprintf("KnotStrategy(%d)", int(this))
	}
	return knotStrategyNames[this]
}

// ParseKnotStrategy maps a case-insensitive name onto a KnotStrategy.
func ParseKnotStrategy(name string) (KnotStrategy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for s, n := range knotStrategyNames {
		if n == name {
			return KnotStrategy(s), nil
		}
	}
	return 0, fmt.Errorf("knot placement %q: %w", name, ErrUnknownStrategy)
}

// ExtraControlPoints is the number of control points a strategy adds on top
// of one per data point.
func (this KnotStrategy) ExtraControlPoints() int {
	if this == KnotDerivative {
		return 2
	}
	return 0
}

// ClampedUniform returns the clamped knot vector with uniformly spaced
// interior knots over [0, 1] for nCon control points.
func ClampedUniform(nCon, degree int) KnotVec {
	knots := make(KnotVec, nCon+degree+1)
	interior := nCon - degree
	for i := 1; i < interior; i++ {
		knots[degree+i] = float64(i) / float64(interior)
	}
	for i := nCon; i < len(knots); i++ {
		knots[i] = 1
	}

	return knots
}

// BuildKnots produces the clamped knot vector for interpolating points with
// the given parameters. Derivative placement yields len(params)+degree+3
// knots, the others len(params)+degree+1.
//
// **params**
// + strictly increasing parameters from Parameterize
// + integer degree, at least 1 and below len(params)
// + knot placement strategy
//
// **returns**
// + clamped, non-decreasing knot vector over [0, 1]
func BuildKnots(params []float64, degree int, strategy KnotStrategy) (KnotVec, error) {
	n := len(params)
	if n < 2 {
		return nil, fmt.Errorf("knots for %d parameters: %w", n, ErrDegenerateInput)
	}
	if degree < 1 || degree >= n {
		return nil, fmt.Errorf("degree %d for %d points: %w", degree, n, ErrInvalidDegree)
	}

	switch strategy {
	case KnotEqual:
		return ClampedUniform(n, degree), nil
	case KnotAverage:
		return averageKnots(params, degree), nil
	case KnotDerivative:
		// the averaging window collapses onto the end parameters for lines
		if degree < 2 {
			return nil, fmt.Errorf("derivative knots need degree >= 2, got %d: %w", degree, ErrInvalidDegree)
		}
		return derivativeKnots(params, degree), nil
	default:
		return nil, fmt.Errorf("knot placement %v: %w", strategy, ErrUnknownStrategy)
	}
}

// (corresponds to equation 9.8 from The NURBS book, Piegl & Tiller 2nd edition)
func averageKnots(params []float64, degree int) KnotVec {
	n := len(params)
	knots := make(KnotVec, n+degree+1)

	for i := 1; i < n-degree; i++ {
		knots[i+degree] = mean(params[i : i+degree])
	}
	for i := n; i < len(knots); i++ {
		knots[i] = 1
	}

	return knots
}

// (corresponds to equation 9.22 from The NURBS book, Piegl & Tiller 2nd edition)
func derivativeKnots(params []float64, degree int) KnotVec {
	n := len(params)
	knots := make(KnotVec, n+degree+3)

	for i := 0; i <= n-degree; i++ {
		knots[i+degree+1] = mean(params[i : i+degree])
	}
	for i := n + 2; i < len(knots); i++ {
		knots[i] = 1
	}

	return knots
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

package nurbsfit

import (
	"github.com/alexozer/nurbsfit/internal"
	"github.com/ungerik/go3d/float64/vec3"
)

// ParamStrategy selects how parameter values are assigned to data points.
type ParamStrategy = internal.ParamStrategy

const (
	ParamEqual       = internal.ParamEqual
	ParamChord       = internal.ParamChord
	ParamCentripetal = internal.ParamCentripetal
)

// KnotStrategy selects how interior knots are placed.
type KnotStrategy = internal.KnotStrategy

const (
	KnotEqual      = internal.KnotEqual
	KnotAverage    = internal.KnotAverage
	KnotDerivative = internal.KnotDerivative
)

// ParseParamStrategy accepts "equal", "chord" or "centripetal".
func ParseParamStrategy(name string) (ParamStrategy, error) {
	return internal.ParseParamStrategy(name)
}

// ParseKnotStrategy accepts "equal", "average" or "derivative".
func ParseKnotStrategy(name string) (KnotStrategy, error) {
	return internal.ParseKnotStrategy(name)
}

// CurveFitOptions configures FitCurve.
type CurveFitOptions struct {
	Parameterization ParamStrategy
	KnotPlacement    KnotStrategy

	// End tangents, read only with KnotDerivative. A nil tangent is
	// estimated from the neighbouring chord and parameter step.
	D0, DN *vec3.T

	// Weights attaches one rational weight per resulting control point.
	// The interpolation system itself is solved without weights. Nil means
	// all ones.
	Weights []float64
}

var defaultCurveFitOptions = CurveFitOptions{
	Parameterization: ParamChord,
	KnotPlacement:    KnotAverage,
}

// SurfaceFitOptions configures FitSurface. Grids are indexed grid[i][j]
// with i running along u and j along v.
type SurfaceFitOptions struct {
	ParamU, ParamV ParamStrategy
	KnotsU, KnotsV KnotStrategy

	// Separable rational weights: control point (i, j) gets
	// WeightsU[i]*WeightsV[j]. Nil means all ones.
	WeightsU, WeightsV []float64

	// Cross derivatives along the four edges, read only for derivative
	// knot placement in the matching direction. DU0/DUN hold one tangent
	// per grid column, DV0/DVN one per grid row. Nil edges are estimated
	// by finite differences.
	DU0, DUN []vec3.T
	DV0, DVN []vec3.T
}

var defaultSurfaceFitOptions = SurfaceFitOptions{
	ParamU: ParamChord,
	ParamV: ParamChord,
	KnotsU: KnotAverage,
	KnotsV: KnotAverage,
}

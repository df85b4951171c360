package nurbsfit

import (
	"fmt"

	"github.com/alexozer/nurbsfit/internal"
	"github.com/ungerik/go3d/float64/vec3"
)

// Parameterize assigns a parameter in [0, 1] to each point.
func Parameterize(points []vec3.T, strategy ParamStrategy) ([]float64, error) {
	return internal.Parameterize(points, strategy)
}

// BuildKnots builds the clamped knot vector used to interpolate points at
// the given parameters.
func BuildKnots(params []float64, degree int, strategy KnotStrategy) ([]float64, error) {
	return internal.BuildKnots(params, degree, strategy)
}

// FitCurve interpolates points with a curve of the given degree. With nil
// options the points are parameterized by chord length and knots are
// averaged.
//
// With KnotDerivative placement the curve gets two extra control points and
// its end tangents equal opts.D0 and opts.DN.
func FitCurve(points []vec3.T, degree int, opts *CurveFitOptions) (*Curve, error) {
	if opts == nil {
		opts = &defaultCurveFitOptions
	}

	params, err := internal.Parameterize(points, opts.Parameterization)
	if err != nil {
		return nil, fmt.Errorf("fit curve: %w", err)
	}

	knots, err := internal.BuildKnots(params, degree, opts.KnotPlacement)
	if err != nil {
		return nil, fmt.Errorf("fit curve: %w", err)
	}

	n := len(points)
	d0 := tangentOrChord(opts.D0, points[0], points[1], params[1]-params[0])
	dn := tangentOrChord(opts.DN, points[n-2], points[n-1], params[n-1]-params[n-2])

	Logger().Debug("fit curve",
		"points", n,
		"degree", degree,
		"param", opts.Parameterization,
		"knots", opts.KnotPlacement,
		"knotCount", len(knots),
	)

	ctrl, err := internal.SolveCurve(points, params, knots, degree, d0, dn, internal.NewBasisWorkspace(n, degree))
	if err != nil {
		return nil, fmt.Errorf("fit curve: %w", err)
	}

	weights := opts.Weights
	if weights == nil {
		weights = ones(len(ctrl))
	}
	if err := checkCurve(degree, ctrl, weights, knots); err != nil {
		return nil, fmt.Errorf("fit curve: %w", err)
	}

	return NewCurveUnchecked(degree, ctrl, weights, knots), nil
}

// FitSurface interpolates a grid of points, grid[i][j] lying on the i-th u
// line and j-th v line, with a surface of degree (degreeU, degreeV). With
// nil options both directions use chord length parameters and averaged
// knots.
func FitSurface(grid [][]vec3.T, degreeU, degreeV int, opts *SurfaceFitOptions) (*Surface, error) {
	if opts == nil {
		opts = &defaultSurfaceFitOptions
	}

	us, vs, err := internal.ParameterizeGrid(grid, opts.ParamU, opts.ParamV)
	if err != nil {
		return nil, fmt.Errorf("fit surface: %w", err)
	}

	knotsU, err := internal.BuildKnots(us, degreeU, opts.KnotsU)
	if err != nil {
		return nil, fmt.Errorf("fit surface: u: %w", err)
	}
	knotsV, err := internal.BuildKnots(vs, degreeV, opts.KnotsV)
	if err != nil {
		return nil, fmt.Errorf("fit surface: v: %w", err)
	}

	nU, nV := len(us), len(vs)
	tangents := &internal.SurfaceTangents{
		DU0: opts.DU0,
		DUN: opts.DUN,
		DV0: opts.DV0,
		DVN: opts.DVN,
	}
	if opts.KnotsU == KnotDerivative {
		tangents.DU0 = edgeOrChords(opts.DU0, nV, func(j int) vec3.T {
			return chordTangent(grid[0][j], grid[1][j], us[1]-us[0])
		})
		tangents.DUN = edgeOrChords(opts.DUN, nV, func(j int) vec3.T {
			return chordTangent(grid[nU-2][j], grid[nU-1][j], us[nU-1]-us[nU-2])
		})
	}
	if opts.KnotsV == KnotDerivative {
		tangents.DV0 = edgeOrChords(opts.DV0, nU, func(i int) vec3.T {
			return chordTangent(grid[i][0], grid[i][1], vs[1]-vs[0])
		})
		tangents.DVN = edgeOrChords(opts.DVN, nU, func(i int) vec3.T {
			return chordTangent(grid[i][nV-2], grid[i][nV-1], vs[nV-1]-vs[nV-2])
		})
	}

	Logger().Debug("fit surface",
		"rows", nU,
		"columns", nV,
		"degreeU", degreeU,
		"degreeV", degreeV,
		"knotsU", opts.KnotsU,
		"knotsV", opts.KnotsV,
	)

	ws := internal.NewBasisWorkspace(max(nU, nV), max(degreeU, degreeV))
	ctrl, err := internal.SolveSurface(grid, us, vs, knotsU, knotsV, degreeU, degreeV, tangents, ws)
	if err != nil {
		return nil, fmt.Errorf("fit surface: %w", err)
	}

	weightsU, weightsV := opts.WeightsU, opts.WeightsV
	if weightsU == nil {
		weightsU = ones(len(ctrl))
	}
	if weightsV == nil {
		weightsV = ones(len(ctrl[0]))
	}
	if err := checkSurface(degreeU, degreeV, ctrl, weightsU, weightsV, knotsU, knotsV); err != nil {
		return nil, fmt.Errorf("fit surface: %w", err)
	}

	return NewSurfaceUnchecked(degreeU, degreeV, ctrl, weightsU, weightsV, knotsU, knotsV), nil
}

func tangentOrChord(tangent *vec3.T, a, b vec3.T, du float64) vec3.T {
	if tangent != nil {
		return *tangent
	}
	return chordTangent(a, b, du)
}

func chordTangent(a, b vec3.T, du float64) vec3.T {
	chord := vec3.Sub(&b, &a)
	return chord.Scaled(1 / du)
}

// edgeOrChords keeps a caller supplied edge as is, so that SolveSurface can
// reject a wrong length, and estimates a missing one.
func edgeOrChords(edge []vec3.T, n int, estimate func(int) vec3.T) []vec3.T {
	if edge != nil {
		return edge
	}

	edge = make([]vec3.T, n)
	for i := range edge {
		edge[i] = estimate(i)
	}
	return edge
}

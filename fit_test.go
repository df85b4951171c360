package nurbsfit

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ungerik/go3d/float64/vec3"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func assertNear(t *testing.T, want, got vec3.T, delta float64, msgAndArgs ...any) {
	t.Helper()
	for c := 0; c < 3; c++ {
		assert.InDelta(t, want[c], got[c], delta, msgAndArgs...)
	}
}

func wave(n int) []vec3.T {
	pts := make([]vec3.T, n)
	for i := range pts {
		x := float64(i) * 0.7
		pts[i] = vec3.T{x, math.Sin(x) * (1 + 0.1*x), math.Cos(2*x) / 3}
	}
	return pts
}

func TestFitCurveCollinearQuadratic(t *testing.T) {
	points := []vec3.T{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}, {3, 0, 0}}

	curve, err := FitCurve(points, 2, &CurveFitOptions{Parameterization: ParamEqual, KnotPlacement: KnotAverage})
	require.NoError(t, err)

	diff(t, []float64{0, 0, 0, 0.5, 1, 1, 1}, curve.Knots(), approx)
	assertNear(t, vec3.T{1.5, 0, 0}, curve.Point(0.5), 1e-9)
}

func TestFitCurveInterpolates(t *testing.T) {
	points := wave(11)

	for _, ps := range []ParamStrategy{ParamEqual, ParamChord, ParamCentripetal} {
		for _, ks := range []KnotStrategy{KnotEqual, KnotAverage, KnotDerivative} {
			for _, degree := range []int{2, 3, 5} {
				opts := &CurveFitOptions{Parameterization: ps, KnotPlacement: ks}
				curve, err := FitCurve(points, degree, opts)
				require.NoError(t, err, "%v/%v degree %d", ps, ks, degree)

				params, err := Parameterize(points, ps)
				require.NoError(t, err)

				assert.Equal(t, len(points)+ks.ExtraControlPoints(), curve.NumControlPoints())
				assert.Len(t, curve.Knots(), curve.NumControlPoints()+degree+1)
				for i, u := range params {
					assertNear(t, points[i], curve.Point(u), 1e-6, "%v/%v degree %d point %d", ps, ks, degree, i)
				}
			}
		}
	}
}

func TestFitCurveEndTangents(t *testing.T) {
	points := wave(7)
	d0, dn := vec3.T{1, 3, 0}, vec3.T{0, -2, 1}

	curve, err := FitCurve(points, 3, &CurveFitOptions{
		Parameterization: ParamCentripetal,
		KnotPlacement:    KnotDerivative,
		D0:               &d0,
		DN:               &dn,
	})
	require.NoError(t, err)

	assertNear(t, d0, curve.Tangent(0), 1e-8)
	assertNear(t, dn, curve.Tangent(1), 1e-8)
	assertNear(t, points[0], curve.Point(0), 1e-9)
	assertNear(t, points[len(points)-1], curve.Point(1), 1e-9)
}

func TestFitCurveEstimatedTangents(t *testing.T) {
	// a straight line keeps its direction when tangents are estimated
	points := []vec3.T{{0, 0, 0}, {1, 1, 0}, {2, 2, 0}, {3, 3, 0}, {4, 4, 0}}

	curve, err := FitCurve(points, 2, &CurveFitOptions{Parameterization: ParamChord, KnotPlacement: KnotDerivative})
	require.NoError(t, err)

	assertNear(t, vec3.T{4, 4, 0}, curve.Tangent(0), 1e-8)
	assertNear(t, vec3.T{2, 2, 0}, curve.Point(0.5), 1e-8)
}

func TestFitCurveRejects(t *testing.T) {
	tests := []struct {
		name   string
		points []vec3.T
		degree int
		opts   *CurveFitOptions
		want   error
	}{
		{"single point", []vec3.T{{1, 1, 1}}, 1, nil, ErrDegenerateInput},
		{"coincident", []vec3.T{{0, 0, 0}, {1, 0, 0}, {1, 0, 0}, {2, 0, 0}}, 2, nil, ErrDegenerateInput},
		{"degree too high", wave(4), 4, nil, ErrInvalidDegree},
		{"degree zero", wave(4), 0, nil, ErrInvalidDegree},
		{"unknown parameterization", wave(4), 2, &CurveFitOptions{Parameterization: ParamStrategy(7)}, ErrUnknownStrategy},
		{"unknown knots", wave(4), 2, &CurveFitOptions{KnotPlacement: KnotStrategy(7)}, ErrUnknownStrategy},
		{"weights", wave(4), 2, &CurveFitOptions{Weights: []float64{1, 1}}, ErrDimensionMismatch},
		{"negative weight", wave(4), 2, &CurveFitOptions{Weights: []float64{1, -1, 1, 1}}, ErrDegenerateInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			curve, err := FitCurve(tt.points, tt.degree, tt.opts)
			require.ErrorIs(t, err, tt.want)
			assert.Nil(t, curve)
		})
	}
}

func TestParseStrategies(t *testing.T) {
	ps, err := ParseParamStrategy("chord")
	require.NoError(t, err)
	assert.Equal(t, ParamChord, ps)

	ks, err := ParseKnotStrategy("average")
	require.NoError(t, err)
	assert.Equal(t, KnotAverage, ks)

	_, err = ParseParamStrategy("uniformish")
	require.ErrorIs(t, err, ErrUnknownStrategy)
}

func bumpGrid(nU, nV int) [][]vec3.T {
	grid := make([][]vec3.T, nU)
	for i := range grid {
		grid[i] = make([]vec3.T, nV)
		for j := range grid[i] {
			x, y := float64(i), float64(j)*1.5
			grid[i][j] = vec3.T{x, y, math.Sin(x/2) * math.Cos(y/3)}
		}
	}
	return grid
}

func TestFitSurfaceInterpolates(t *testing.T) {
	grid := bumpGrid(6, 5)

	for _, opts := range []*SurfaceFitOptions{
		nil,
		{ParamU: ParamEqual, ParamV: ParamCentripetal, KnotsU: KnotEqual, KnotsV: KnotAverage},
		{ParamU: ParamChord, ParamV: ParamChord, KnotsU: KnotDerivative, KnotsV: KnotDerivative},
		{ParamU: ParamChord, ParamV: ParamEqual, KnotsU: KnotAverage, KnotsV: KnotDerivative},
	} {
		surface, err := FitSurface(grid, 3, 2, opts)
		require.NoError(t, err)

		resolved := opts
		if resolved == nil {
			resolved = &defaultSurfaceFitOptions
		}
		nU, nV := surface.Dimensions()
		assert.Equal(t, 6+resolved.KnotsU.ExtraControlPoints(), nU)
		assert.Equal(t, 5+resolved.KnotsV.ExtraControlPoints(), nV)

		us := columnParams(t, grid, resolved.ParamU)
		vs := rowParams(t, grid, resolved.ParamV)
		for i := range grid {
			for j := range grid[i] {
				assertNear(t, grid[i][j], surface.Point(UV{us[i], vs[j]}), 1e-6, "(%d,%d)", i, j)
			}
		}
	}
}

// columnParams and rowParams recompute the averaged grid parameters.
func columnParams(t *testing.T, grid [][]vec3.T, s ParamStrategy) []float64 {
	t.Helper()
	avg := make([]float64, len(grid))
	for j := range grid[0] {
		col := make([]vec3.T, len(grid))
		for i := range grid {
			col[i] = grid[i][j]
		}
		params, err := Parameterize(col, s)
		require.NoError(t, err)
		for i := range params {
			avg[i] += params[i] / float64(len(grid[0]))
		}
	}
	avg[0], avg[len(avg)-1] = 0, 1
	return avg
}

func rowParams(t *testing.T, grid [][]vec3.T, s ParamStrategy) []float64 {
	t.Helper()
	avg := make([]float64, len(grid[0]))
	for i := range grid {
		params, err := Parameterize(grid[i], s)
		require.NoError(t, err)
		for j := range params {
			avg[j] += params[j] / float64(len(grid))
		}
	}
	avg[0], avg[len(avg)-1] = 0, 1
	return avg
}

func planarGrid() [][]vec3.T {
	grid := make([][]vec3.T, 4)
	for i := range grid {
		grid[i] = make([]vec3.T, 4)
		for j := range grid[i] {
			grid[i][j] = vec3.T{float64(i), float64(j), 0}
		}
	}
	return grid
}

func repeat(v vec3.T, n int) []vec3.T {
	out := make([]vec3.T, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestFitSurfaceEdgeTangentsOnPlane(t *testing.T) {
	surface, err := FitSurface(planarGrid(), 2, 2, &SurfaceFitOptions{
		ParamU: ParamEqual, ParamV: ParamEqual,
		KnotsU: KnotDerivative, KnotsV: KnotDerivative,
		DU0: repeat(vec3.T{3, 0, 0}, 4), DUN: repeat(vec3.T{3, 0, 0}, 4),
		DV0: repeat(vec3.T{0, 3, 0}, 4), DVN: repeat(vec3.T{0, 3, 0}, 4),
	})
	require.NoError(t, err)

	nU, nV := surface.Dimensions()
	assert.Equal(t, 6, nU)
	assert.Equal(t, 6, nV)

	assertNear(t, vec3.T{1.5, 1.5, 0}, surface.Point(UV{0.5, 0.5}), 1e-9)
	for _, v := range []float64{0, 0.37, 1} {
		ders := surface.Derivatives(UV{0, v}, 1)
		assertNear(t, vec3.T{3, 0, 0}, ders[1][0], 1e-8, "v=%v", v)
		assertNear(t, vec3.T{0, 3, 0}, ders[0][1], 1e-8, "v=%v", v)
	}
}

func TestFitSurfaceZeroCornerTwist(t *testing.T) {
	grid := bumpGrid(5, 5)
	du := make([]vec3.T, 5)
	for j := range du {
		du[j] = vec3.T{4, 0, float64(j) - 2}
	}

	surface, err := FitSurface(grid, 3, 3, &SurfaceFitOptions{
		ParamU: ParamChord, ParamV: ParamChord,
		KnotsU: KnotDerivative, KnotsV: KnotDerivative,
		DU0: du, DUN: du,
	})
	require.NoError(t, err)

	// the u tangent rows get zero v derivatives at their ends
	for _, uv := range []UV{{0, 0}, {0, 1}, {1, 0}, {1, 1}} {
		twist := surface.Derivatives(uv, 2)[1][1]
		assertNear(t, vec3.T{}, twist, 1e-7, "corner %v", uv)
	}

	// the prescribed u tangents hold along the u = 0 edge
	vs := rowParams(t, grid, ParamChord)
	for j, v := range vs {
		assertNear(t, du[j], surface.Derivatives(UV{0, v}, 1)[1][0], 1e-7, "column %d", j)
	}
}

func TestFitSurfaceRejects(t *testing.T) {
	grid := bumpGrid(4, 4)

	_, err := FitSurface(grid, 4, 2, nil)
	require.ErrorIs(t, err, ErrInvalidDegree)

	_, err = FitSurface([][]vec3.T{{{0, 0, 0}, {1, 0, 0}}, {{0, 1, 0}}}, 1, 1, nil)
	require.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = FitSurface(grid[:1], 1, 1, nil)
	require.ErrorIs(t, err, ErrDegenerateInput)

	_, err = FitSurface(grid, 2, 2, &SurfaceFitOptions{KnotsU: KnotDerivative, DU0: make([]vec3.T, 3)})
	require.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = FitSurface(grid, 2, 2, &SurfaceFitOptions{WeightsU: []float64{1, 1, 0, 1}})
	require.ErrorIs(t, err, ErrDegenerateInput)

	_, err = FitSurface(grid, 2, 2, &SurfaceFitOptions{ParamV: ParamStrategy(5)})
	require.ErrorIs(t, err, ErrUnknownStrategy)
}

func BenchmarkFitCurve(b *testing.B) {
	points := wave(200)
	for i := 0; i < b.N; i++ {
		if _, err := FitCurve(points, 3, nil); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFitSurface(b *testing.B) {
	grid := bumpGrid(30, 30)
	for i := 0; i < b.N; i++ {
		if _, err := FitSurface(grid, 3, 3, nil); err != nil {
			b.Fatal(err)
		}
	}
}

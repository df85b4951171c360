package internal

import (
	"fmt"

	"github.com/ungerik/go3d/float64/vec3"
)

// SolveCurve computes the control points of the degree-p curve through
// points at params over knots. When knots carries two more basis functions
// than there are points, the extra rows pin the end tangents to d0 and dn.
//
// **params**
// + data points
// + one parameter per data point
// + clamped knot vector from BuildKnots
// + integer degree
// + start and end tangents, only read for derivative knot vectors
// + optional basis workspace
//
// **returns**
// + the control points, one per basis function
func SolveCurve(points []vec3.T, params []float64, knots KnotVec, degree int, d0, dn vec3.T, ws *BasisWorkspace) ([]vec3.T, error) {
	n := len(points)
	if len(params) != n {
		return nil, fmt.Errorf("%d parameters for %d points: %w", len(params), n, ErrDimensionMismatch)
	}

	nCon := knots.NumBasis(degree)
	derivative := nCon == n+2
	if !derivative && nCon != n {
		return nil, fmt.Errorf("%d basis functions for %d points: %w", nCon, n, ErrDimensionMismatch)
	}

	N, err := BasisMatrix(knots, degree, params, ws)
	if err != nil {
		return nil, err
	}

	pts := points
	if derivative {
		if N, err = addDerivativeRows(N, knots, degree); err != nil {
			return nil, err
		}
		pts = addDerivativePoints(points, knots, degree, d0, dn)
	}

	Ninv, err := N.Invert()
	if err != nil {
		return nil, fmt.Errorf("curve basis: %w", err)
	}

	ctrl, err := Mul(Ninv, DenseFromPoints(pts))
	if err != nil {
		return nil, err
	}

	return ctrl.Points(), nil
}

// SurfaceTangents holds the prescribed cross derivatives along the four
// edges of an interpolated surface. DU0 and DUN run along the v = const
// columns and need one entry per column of the grid; DV0 and DVN need one
// entry per row. A nil slice is replaced by zero vectors.
type SurfaceTangents struct {
	DU0, DUN []vec3.T
	DV0, DVN []vec3.T
}

// SolveSurface computes the control net of the tensor-product surface
// through grid, solving the u direction first and the v direction on the
// intermediate result. grid[i][j] sits at (us[i], vs[j]).
//
// When both directions carry derivative knots, the two extra rows added by
// the u pass receive zero v derivatives: the surface is built with zero
// twist at the corners.
func SolveSurface(grid [][]vec3.T, us, vs []float64, knotsU, knotsV KnotVec, p, q int, tangents *SurfaceTangents, ws *BasisWorkspace) ([][]vec3.T, error) {
	P, err := DenseFromGrid(grid)
	if err != nil {
		return nil, err
	}

	nU, nV := P.Rows(), P.Cols()
	if len(us) != nU || len(vs) != nV {
		return nil, fmt.Errorf("%dx%d parameters for %dx%d grid: %w", len(us), len(vs), nU, nV, ErrDimensionMismatch)
	}
	if tangents == nil {
		tangents = new(SurfaceTangents)
	}

	nuCon, nvCon := knotsU.NumBasis(p), knotsV.NumBasis(q)
	uDeriv, vDeriv := nuCon == nU+2, nvCon == nV+2
	if !uDeriv && nuCon != nU {
		return nil, fmt.Errorf("%d u basis functions for %d rows: %w", nuCon, nU, ErrDimensionMismatch)
	}
	if !vDeriv && nvCon != nV {
		return nil, fmt.Errorf("%d v basis functions for %d columns: %w", nvCon, nV, ErrDimensionMismatch)
	}

	NU, err := BasisMatrix(knotsU, p, us, ws)
	if err != nil {
		return nil, err
	}
	NV, err := BasisMatrix(knotsV, q, vs, ws)
	if err != nil {
		return nil, err
	}

	if uDeriv {
		du0, err := edgeTangents(tangents.DU0, nV, "DU0")
		if err != nil {
			return nil, err
		}
		duN, err := edgeTangents(tangents.DUN, nV, "DUN")
		if err != nil {
			return nil, err
		}

		if NU, err = addDerivativeRows(NU, knotsU, p); err != nil {
			return nil, err
		}

		augmented := NewDense(nuCon, nV, 3)
		for j := 0; j < nV; j++ {
			col := addDerivativePoints(P.Col(j), knotsU, p, du0[j], duN[j])
			if err := augmented.SetCol(j, col); err != nil {
				return nil, err
			}
		}
		P = augmented
	}

	if vDeriv {
		dv0, err := edgeTangents(tangents.DV0, nU, "DV0")
		if err != nil {
			return nil, err
		}
		dvN, err := edgeTangents(tangents.DVN, nU, "DVN")
		if err != nil {
			return nil, err
		}

		if NV, err = addDerivativeRows(NV, knotsV, q); err != nil {
			return nil, err
		}

		augmented := NewDense(P.Rows(), nvCon, 3)
		var count int
		for i := 0; i < P.Rows(); i++ {
			var start, end vec3.T
			if !uDeriv || (i != 1 && i != P.Rows()-2) {
				start, end = dv0[count], dvN[count]
				count++
			}

			row := addDerivativePoints(P.Row(i), knotsV, q, start, end)
			if err := augmented.SetRow(i, row); err != nil {
				return nil, err
			}
		}
		P = augmented
	}

	NUinv, err := NU.Invert()
	if err != nil {
		return nil, fmt.Errorf("u basis: %w", err)
	}
	NVinv, err := NV.Invert()
	if err != nil {
		return nil, fmt.Errorf("v basis: %w", err)
	}

	tmp, err := Mul(NUinv, P)
	if err != nil {
		return nil, err
	}
	ctrl, err := Mul(NVinv, tmp.Transpose())
	if err != nil {
		return nil, err
	}

	return ctrl.Transpose().Grid(), nil
}

func edgeTangents(tangents []vec3.T, n int, name string) ([]vec3.T, error) {
	if tangents == nil {
		return make([]vec3.T, n), nil
	}
	if len(tangents) != n {
		return nil, fmt.Errorf("%s has %d tangents, want %d: %w", name, len(tangents), n, ErrDimensionMismatch)
	}
	return tangents, nil
}

// addDerivativeRows splices the two end tangent constraints into an
// n x (n+2) basis matrix, producing the square system
//
//	row 0          N(u_0)
//	row 1          -1, 1, 0 ...
//	rows 2..n      N(u_1) .. N(u_{n-2})
//	row n          ... 0, -1, 1
//	row n+1        N(u_{n-1})
func addDerivativeRows(N *Dense, knots KnotVec, degree int) (*Dense, error) {
	nCon := knots.NumBasis(degree)
	if N.Cols() != nCon || N.Rows() != nCon-2 || nCon < 4 {
		return nil, fmt.Errorf("derivative rows for %dx%d basis: %w", N.Rows(), N.Cols(), ErrDimensionMismatch)
	}

	out := NewDense(nCon, nCon, 1)
	copyRow := func(dst, src int) {
		for j := 0; j < nCon; j++ {
			out.Set(dst, j, N.At(src, j))
		}
	}

	copyRow(0, 0)
	out.Set(1, 0, -1)
	out.Set(1, 1, 1)
	for i := 2; i < nCon-2; i++ {
		copyRow(i, i-1)
	}
	out.Set(nCon-2, nCon-2, -1)
	out.Set(nCon-2, nCon-1, 1)
	copyRow(nCon-1, nCon-3)

	return out, nil
}

// addDerivativePoints builds the right hand side matching addDerivativeRows.
// The tangents are scaled so the control polygon legs reproduce them:
// P1 - P0 = (u_{p+1} - u_0)/p * D0.
func addDerivativePoints(points []vec3.T, knots KnotVec, degree int, d0, dn vec3.T) []vec3.T {
	n := len(points)
	m := len(knots) - 1
	p := float64(degree)

	out := make([]vec3.T, 0, n+2)
	out = append(out, points[0], d0.Scaled((knots[degree+1]-knots[0])/p))
	out = append(out, points[1:n-1]...)
	out = append(out, dn.Scaled((knots[m]-knots[m-degree-1])/p), points[n-1])

	return out
}

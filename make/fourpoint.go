package make

import (
	"fmt"

	"github.com/alexozer/nurbsfit"
	"github.com/ungerik/go3d/float64/vec3"
)

// bilinear blends four counter-clockwise corners: (0,0) is p1, (1,0) is p2,
// (1,1) is p3 and (0,1) is p4.
func bilinear(p1, p2, p3, p4 *vec3.T, s, t float64) vec3.T {
	p1p2 := vec3.Interpolate(p1, p2, s)
	p4p3 := vec3.Interpolate(p4, p3, s)
	return vec3.Interpolate(&p1p2, &p4p3, t)
}

// Generate the control points, weights, and knots of a surface defined by 4 points
//
// **params**
// + first point in counter-clockwise form
// + second point in counter-clockwise form
// + third point in counter-clockwise form
// + forth point in counter-clockwise form
// + degree in both directions, 3 when nil
//
// **returns**
// + a bilinear patch expressed as a single span surface of the given degree
func FourPointSurface(p1, p2, p3, p4 *vec3.T, _degree *int) (*nurbsfit.Surface, error) {
	degree := 3
	if _degree != nil {
		degree = *_degree
	}
	if degree < 1 {
		return nil, fmt.Errorf("four point surface of degree %d: %w", degree, nurbsfit.ErrInvalidDegree)
	}
	degreeFloat := float64(degree)

	pts := make([][]vec3.T, degree+1)
	for i := range pts {
		pts[i] = make([]vec3.T, degree+1)
		for j := range pts[i] {
			pts[i][j] = bilinear(p1, p2, p3, p4, float64(i)/degreeFloat, float64(j)/degreeFloat)
		}
	}

	knots := make([]float64, 2*(degree+1))
	for i := degree + 1; i < len(knots); i++ {
		knots[i] = 1
	}

	return nurbsfit.NewSurface(degree, degree, pts, nil, nil, knots, knots)
}

// BilinearGrid samples the bilinear patch spanned by four counter-clockwise
// corners on an nU x nV grid, ready to be passed to nurbsfit.FitSurface.
func BilinearGrid(p1, p2, p3, p4 *vec3.T, nU, nV int) ([][]vec3.T, error) {
	if nU < 2 || nV < 2 {
		return nil, fmt.Errorf("bilinear grid %dx%d: %w", nU, nV, nurbsfit.ErrDegenerateInput)
	}

	grid := make([][]vec3.T, nU)
	for i := range grid {
		grid[i] = make([]vec3.T, nV)
		for j := range grid[i] {
			grid[i][j] = bilinear(p1, p2, p3, p4, float64(i)/float64(nU-1), float64(j)/float64(nV-1))
		}
	}

	return grid, nil
}

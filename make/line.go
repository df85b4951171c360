package make

import (
	"fmt"

	"github.com/alexozer/nurbsfit"
	"github.com/ungerik/go3d/float64/vec3"
)

func Line(first, last *vec3.T) (*nurbsfit.Curve, error) {
	return Polyline([]vec3.T{*first, *last})
}

// Generate the control points, weights, and knots of a polyline curve
//
// **params**
// + array of points in curve
//
// **returns**
// + a degree 1 curve whose knots follow the chord lengths
func Polyline(pts []vec3.T) (*nurbsfit.Curve, error) {
	if len(pts) < 2 {
		return nil, fmt.Errorf("polyline of %d points: %w", len(pts), nurbsfit.ErrDegenerateInput)
	}

	knots := make([]float64, len(pts)+2)

	var lsum float64
	for i := 0; i < len(pts)-1; i++ {
		lsum += vec3.Distance(&pts[i], &pts[i+1])
		knots[i+2] = lsum
	}
	knots[len(knots)-1] = lsum

	if lsum == 0 {
		return nil, fmt.Errorf("polyline has zero length: %w", nurbsfit.ErrDegenerateInput)
	}

	// normalize the knot array
	for i := range knots {
		knots[i] /= lsum
	}

	return nurbsfit.NewCurve(1, pts, nil, knots)
}

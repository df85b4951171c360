package make

import (
	"github.com/alexozer/nurbsfit"
	"github.com/ungerik/go3d/float64/vec3"
)

// Generate the control points, weights, and knots of an extruded surface
//
// **params**
// + axis of the extrusion
// + length of the extrusion
// + profile curve
//
// **returns**
// + a surface that is quadratic along the extrusion (u) and follows the profile along v
func ExtrudedSurface(axis *vec3.T, length float64, profile *nurbsfit.Curve) *nurbsfit.Surface {
	profControlPoints := profile.ControlPoints()

	controlPoints := make([][]vec3.T, 3)
	for i := range controlPoints {
		controlPoints[i] = make([]vec3.T, len(profControlPoints))
	}

	translation := axis.Scaled(length)
	halfTranslation := translation.Scaled(0.5)

	for j := range profControlPoints {
		controlPoints[2][j] = profControlPoints[j]
		controlPoints[1][j] = vec3.Add(&halfTranslation, &profControlPoints[j])
		controlPoints[0][j] = vec3.Add(&translation, &profControlPoints[j])
	}

	return nurbsfit.NewSurfaceUnchecked(
		2, profile.Degree(),
		controlPoints, []float64{1, 1, 1}, profile.Weights(),
		[]float64{0, 0, 0, 1, 1, 1}, profile.Knots(),
	)
}

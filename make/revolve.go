package make

import (
	"fmt"

	"github.com/alexozer/nurbsfit"
	"github.com/ungerik/go3d/float64/vec3"
)

// Generate the control points, weights, and knots of a revolved surface
// (Corresponds to Algorithm A8.1 from Piegl & Tiller)
//
// **params**
// + the generatrix
// + a point on the rotation axis
// + unit direction of the rotation axis
// + angle to revolve around the axis, at most a full turn
//
// **returns**
// + a surface that is a rational quadratic arc along u and follows the profile along v
func RevolvedSurface(profile *nurbsfit.Curve, center *vec3.T, axis *vec3.T, theta float64) (*nurbsfit.Surface, error) {
	profControlPoints := profile.ControlPoints()
	unitAxis := axis.Normalized()

	var controlPoints [][]vec3.T
	var weightsU, knotsU []float64

	// for each pt in the generatrix
	for j := range profControlPoints {
		// the closest point of the generatrix point on the axis
		toPt := vec3.Sub(&profControlPoints[j], center)
		along := unitAxis.Scaled(vec3.Dot(&toPt, &unitAxis))
		O := vec3.Add(center, &along)

		// X reaches from the axis to the generatrix point, Y completes the frame
		X := vec3.Sub(&profControlPoints[j], &O)
		Y := vec3.Cross(&unitAxis, &X)

		net, err := newArcNet(O, X, Y, 0, theta)
		if err != nil {
			return nil, fmt.Errorf("revolve: %w", err)
		}

		if controlPoints == nil {
			controlPoints = make([][]vec3.T, len(net.points))
			for i := range controlPoints {
				controlPoints[i] = make([]vec3.T, len(profControlPoints))
			}
			weightsU, knotsU = net.weights, net.knots
		}

		for i := range net.points {
			controlPoints[i][j] = net.points[i]
		}
	}

	return nurbsfit.NewSurface(2, profile.Degree(), controlPoints, weightsU, profile.Weights(), knotsU, profile.Knots())
}

//
// Generate the control points, weights, and knots of a cone
//
// **params**
// + normalized axis of cone
// + direction from the base center to the rim
// + position of base of cone
// + height from base to tip
// + radius at the base of the cone
// + angle swept around the axis
//
func ConicalSurface(axis, xaxis *vec3.T, base *vec3.T, height, radius, theta float64) (*nurbsfit.Surface, error) {
	heightCompon := axis.Scaled(height)
	radiusCompon := xaxis.Normalized()
	radiusCompon.Scale(radius)

	tip, rim := vec3.Add(base, &heightCompon), vec3.Add(base, &radiusCompon)
	prof, err := Line(&tip, &rim)
	if err != nil {
		return nil, err
	}

	return RevolvedSurface(prof, base, axis, theta)
}

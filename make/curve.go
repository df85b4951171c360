package make

import (
	"fmt"
	"math"

	"github.com/alexozer/nurbsfit"
	"github.com/ungerik/go3d/float64/vec3"
)

// Generate the control points, weights, and knots of an arbitrary arc
// (Corresponds to Algorithm A7.1 from Piegl & Tiller)
//
// **params**
// + the center of the arc
// + the xaxis of the arc
// + orthogonal yaxis of the arc
// + radius of the arc
// + start angle of the arc
// + end angle of the arc, greater than the start angle and at most a full turn past it
//
// **returns**
// + a rational quadratic curve
func Arc(center *vec3.T, xaxis, yaxis *vec3.T, radius float64, startAngle, endAngle float64) (*nurbsfit.Curve, error) {
	if !(radius > 0) {
		return nil, fmt.Errorf("arc radius %v: %w", radius, nurbsfit.ErrDegenerateInput)
	}

	xaxisScaled, yaxisScaled := xaxis.Normalized(), yaxis.Normalized()
	xaxisScaled.Scale(radius)
	yaxisScaled.Scale(radius)
	return EllipseArc(center, &xaxisScaled, &yaxisScaled, startAngle, endAngle)
}

// Generate the control points, weights, and knots of an elliptical arc
//
// **params**
// + the center
// + the scaled x axis
// + the scaled y axis
// + start angle of the ellipse arc, where 0 points at the xaxis
// + end angle of the arc, greater than the start angle and at most a full turn past it
//
// **returns**
// + a rational quadratic curve
func EllipseArc(center *vec3.T, xaxis, yaxis *vec3.T, startAngle, endAngle float64) (*nurbsfit.Curve, error) {
	net, err := newArcNet(*center, *xaxis, *yaxis, startAngle, endAngle)
	if err != nil {
		return nil, err
	}

	return nurbsfit.NewCurve(2, net.points, net.weights, net.knots)
}

type arcNet struct {
	points  []vec3.T
	weights []float64
	knots   []float64
}

// newArcNet splits the sweep into at most four pieces of no more than a
// quarter turn each. The middle control point of every piece sits where the
// end tangents meet, which for an affine image of the unit circle is the
// mid-angle direction scaled by 1/cos(dtheta/2).
func newArcNet(center, xaxis, yaxis vec3.T, startAngle, endAngle float64) (*arcNet, error) {
	theta := endAngle - startAngle
	if !(theta > 0) || theta > 2*math.Pi+1e-12 {
		return nil, fmt.Errorf("arc sweep %v: %w", theta, nurbsfit.ErrDegenerateInput)
	}

	// how many arcs?
	numArcs := int(math.Ceil(theta / (math.Pi / 2)))
	numArcs = min(max(numArcs, 1), 4)

	dtheta := theta / float64(numArcs)
	w1 := math.Cos(dtheta / 2)

	at := func(angle, scale float64) vec3.T {
		x := xaxis.Scaled(scale * math.Cos(angle))
		y := yaxis.Scaled(scale * math.Sin(angle))
		offset := vec3.Add(&x, &y)
		return vec3.Add(&center, &offset)
	}

	net := &arcNet{
		points:  make([]vec3.T, 2*numArcs+1),
		weights: make([]float64, 2*numArcs+1),
		knots:   make([]float64, 2*numArcs+4),
	}

	net.points[0], net.weights[0] = at(startAngle, 1), 1
	angle := startAngle
	for i := 1; i <= numArcs; i++ {
		net.points[2*i-1], net.weights[2*i-1] = at(angle+dtheta/2, 1/w1), w1
		angle += dtheta
		net.points[2*i], net.weights[2*i] = at(angle, 1), 1
	}
	// land exactly on the requested end angle
	net.points[2*numArcs] = at(endAngle, 1)

	j := 2*numArcs + 1
	for i := 0; i < 3; i++ {
		net.knots[i+j] = 1
	}
	for i := 1; i < numArcs; i++ {
		net.knots[2*i+1] = float64(i) / float64(numArcs)
		net.knots[2*i+2] = float64(i) / float64(numArcs)
	}

	return net, nil
}

// generate the control points, weights, and knots for a bezier curve of any degree
//
// **params**
// + control points, at least two
//
// **returns**
// + a curve of degree len(controlPoints)-1 with a single span
func BezierCurve(controlPoints []vec3.T) (*nurbsfit.Curve, error) {
	if len(controlPoints) < 2 {
		return nil, fmt.Errorf("bezier curve with %d control points: %w", len(controlPoints), nurbsfit.ErrDegenerateInput)
	}

	degree := len(controlPoints) - 1

	knots := make([]float64, 2*degree+2)
	for i := degree + 1; i < len(knots); i++ {
		knots[i] = 1
	}

	return nurbsfit.NewCurve(degree, controlPoints, nil, knots)
}

package nurbsfit

import (
	"fmt"
	"math"

	"github.com/alexozer/nurbsfit/internal"
	"github.com/ungerik/go3d/float64/mat4"
	"github.com/ungerik/go3d/float64/vec3"
)

// KnotMultiplicity is a distinct knot value and how often it repeats.
type KnotMultiplicity = internal.KnotMultiplicity

// Curve is an immutable clamped NURBS curve.
type Curve struct {
	// degree of curve
	degree int

	// slice of control points, each a homogeneous coordinate
	controlPoints []internal.HomoPoint

	// slice of nondecreasing knot values
	knots internal.KnotVec
}

// NewCurve validates its arguments and builds a curve. A nil weights slice
// makes the curve non-rational.
func NewCurve(degree int, controlPoints []vec3.T, weights []float64, knots []float64) (*Curve, error) {
	if weights == nil {
		weights = ones(len(controlPoints))
	}
	if err := checkCurve(degree, controlPoints, weights, knots); err != nil {
		return nil, err
	}

	return NewCurveUnchecked(degree, controlPoints, weights, knots), nil
}

// NewCurveUnchecked builds a curve without validation; the caller
// guarantees len(knots) == len(controlPoints)+degree+1, clamped knots and
// one positive weight per control point.
func NewCurveUnchecked(degree int, controlPoints []vec3.T, weights []float64, knots []float64) *Curve {
	return &Curve{degree, internal.Homogenize1d(controlPoints, weights), internal.KnotVec(knots).Clone()}
}

func (this *Curve) Degree() int {
	return this.degree
}

func (this *Curve) ControlPoints() []vec3.T {
	return internal.Dehomogenize1d(this.controlPoints)
}

func (this *Curve) Weights() []float64 {
	return internal.Weight1d(this.controlPoints)
}

func (this *Curve) Knots() []float64 {
	return []float64(this.knots.Clone())
}

func (this *Curve) NumControlPoints() int {
	return len(this.controlPoints)
}

// ControlPoint returns the Cartesian position and weight of control point i.
func (this *Curve) ControlPoint(i int) (vec3.T, float64, error) {
	if i < 0 || i >= len(this.controlPoints) {
		return vec3.T{}, 0, fmt.Errorf("control point %d of %d: %w", i, len(this.controlPoints), ErrDimensionMismatch)
	}
	return this.controlPoints[i].Dehomogenized(), this.controlPoints[i].W, nil
}

// Determine the valid domain of the curve
//
// **returns**
// + the first and last knot
func (this *Curve) Domain() (min, max float64) {
	return this.knots.Domain()
}

// Multiplicities lists every distinct knot with its multiplicity.
func (this *Curve) Multiplicities() []KnotMultiplicity {
	return this.knots.Multiplicities()
}

func checkCurve(degree int, controlPoints []vec3.T, weights []float64, knots []float64) error {
	if len(controlPoints) == 0 {
		return fmt.Errorf("curve without control points: %w", ErrDegenerateInput)
	}

	if degree < 1 || degree >= len(controlPoints) {
		return fmt.Errorf("curve degree %d with %d control points: %w", degree, len(controlPoints), ErrInvalidDegree)
	}

	if len(weights) != len(controlPoints) {
		return fmt.Errorf("%d weights for %d control points: %w", len(weights), len(controlPoints), ErrDimensionMismatch)
	}

	if err := checkWeights(weights); err != nil {
		return err
	}

	return internal.KnotVec(knots).Check(degree, len(controlPoints))
}

func checkWeights(weights []float64) error {
	for i, w := range weights {
		if !(w > 0) || math.IsInf(w, 0) {
			return fmt.Errorf("weight %d is %v: %w", i, w, ErrDegenerateInput)
		}
	}
	return nil
}

func (this *Curve) Transform(mat *mat4.T) *Curve {
	pts := internal.Dehomogenize1d(this.controlPoints)

	for i := range pts {
		pts[i] = mat.MulVec3(&pts[i])
	}

	return &Curve{
		this.degree,
		internal.Homogenize1d(pts, internal.Weight1d(this.controlPoints)),
		this.knots.Clone(),
	}
}

// Tangent returns the first derivative of the curve at u.
func (this *Curve) Tangent(u float64) vec3.T {
	return this.Derivatives(u, 1)[1]
}

//
// Determine the derivatives of a NURBS curve at a given parameter
//
// **params**
// + parameter on the curve at which the point is to be evaluated
// + number of derivatives to evaluate, negative counts act as zero
//
// **returns**
// + the point followed by numDerivs derivatives
//
func (this *Curve) Derivatives(u float64, numDerivs int) []vec3.T {
	numDerivs = max(numDerivs, 0)
	ders := this.nonRationalDerivatives(u, numDerivs)
	ck := make([]vec3.T, 0, numDerivs+1)

	for k := 0; k <= numDerivs; k++ {
		v := ders[k].Vec3

		for i := 1; i <= k; i++ {
			scaled := ck[k-i].Scaled(binomial(k, i) * ders[i].W)
			v.Sub(&scaled)
		}
		v.Scale(1 / ders[0].W)
		ck = append(ck, v)
	}

	return ck
}

// Compute a point on a NURBS curve
//
// **params**
// + parameter on the curve at which the point is to be evaluated
//
// **returns**
// + the Cartesian point
func (this *Curve) Point(u float64) vec3.T {
	homoPt := this.nonRationalPoint(u)
	return homoPt.Dehomogenized()
}

// Determine the derivatives of a non-uniform, non-rational B-spline curve at a given parameter
// (corresponds to algorithm 3.2 from The NURBS book, Piegl & Tiller 2nd edition)
//
// Derivatives above the degree vanish and are returned as zero.
func (this *Curve) nonRationalDerivatives(u float64, numDerivs int) []internal.HomoPoint {
	degree := this.degree
	controlPoints := this.controlPoints
	knots := this.knots
	n := len(controlPoints) - 1

	du := min(numDerivs, degree)

	ck := make([]internal.HomoPoint, numDerivs+1)
	knotSpanIndex := knots.SpanGivenN(n, degree, u)
	nders := internal.DerivativeBasisFunctionsGivenNI(knotSpanIndex, u, degree, du, knots)

	for k := 0; k <= du; k++ {
		for j := 0; j <= degree; j++ {
			scaled := controlPoints[knotSpanIndex-degree+j]
			scaled.Scale(nders[k][j])
			ck[k].Add(&scaled)
		}
	}

	return ck
}

// Compute a point on a non-uniform, non-rational b-spline curve
// (corresponds to algorithm 3.1 from The NURBS book, Piegl & Tiller 2nd edition)
func (this *Curve) nonRationalPoint(u float64) internal.HomoPoint {
	degree := this.degree
	controlPoints := this.controlPoints
	knots := this.knots

	knotSpanIndex := knots.SpanGivenN(len(controlPoints)-1, degree, u)
	basisValues := internal.BasisFunctionsGivenKnotSpanIndex(knotSpanIndex, u, degree, knots)
	var position internal.HomoPoint

	for j := 0; j <= degree; j++ {
		scaled := controlPoints[knotSpanIndex-degree+j]
		scaled.Scale(basisValues[j])
		position.Add(&scaled)
	}

	return position
}

func ones(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 1
	}
	return w
}

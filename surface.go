package nurbsfit

import (
	"fmt"

	"github.com/alexozer/nurbsfit/internal"
	"github.com/ungerik/go3d/float64/mat4"
	"github.com/ungerik/go3d/float64/vec3"
)

// UV is a surface parameter pair.
type UV [2]float64

// Surface is an immutable clamped tensor-product NURBS surface whose weights
// factor into one weight per u row and one per v column.
type Surface struct {
	// integer degree of surface in u direction
	degreeU int

	// integer degree of surface in v direction
	degreeV int

	// 2d array of control points, the vertical direction (u) increases from top to bottom, the v direction from left to right
	controlPoints [][]internal.HomoPoint

	// per-axis weights; controlPoints carries their products
	weightsU, weightsV []float64

	// array of nondecreasing knot values in u direction
	knotsU internal.KnotVec

	// array of nondecreasing knot values in v direction
	knotsV internal.KnotVec
}

// NewSurface validates its arguments and builds a surface. controlPoints is
// indexed [u][v]. Nil weight slices mean unit weights along that axis.
func NewSurface(degreeU, degreeV int, controlPoints [][]vec3.T, weightsU, weightsV []float64, knotsU, knotsV []float64) (*Surface, error) {
	if len(controlPoints) == 0 || len(controlPoints[0]) == 0 {
		return nil, fmt.Errorf("surface without control points: %w", ErrDegenerateInput)
	}
	if weightsU == nil {
		weightsU = ones(len(controlPoints))
	}
	if weightsV == nil {
		weightsV = ones(len(controlPoints[0]))
	}

	if err := checkSurface(degreeU, degreeV, controlPoints, weightsU, weightsV, knotsU, knotsV); err != nil {
		return nil, err
	}

	return NewSurfaceUnchecked(degreeU, degreeV, controlPoints, weightsU, weightsV, knotsU, knotsV), nil
}

// NewSurfaceUnchecked builds a surface without validation.
func NewSurfaceUnchecked(degreeU, degreeV int, controlPoints [][]vec3.T, weightsU, weightsV []float64, knotsU, knotsV []float64) *Surface {
	return &Surface{
		degreeU, degreeV,
		internal.HomogenizeSeparable(controlPoints, weightsU, weightsV),
		append([]float64(nil), weightsU...), append([]float64(nil), weightsV...),
		internal.KnotVec(knotsU).Clone(), internal.KnotVec(knotsV).Clone(),
	}
}

func (this *Surface) DegreeU() int {
	return this.degreeU
}

func (this *Surface) DegreeV() int {
	return this.degreeV
}

func (this *Surface) ControlPoints() [][]vec3.T {
	return internal.Dehomogenize2d(this.controlPoints)
}

// Weights returns the full weight of every control point.
func (this *Surface) Weights() [][]float64 {
	return internal.Weight2d(this.controlPoints)
}

func (this *Surface) WeightsU() []float64 {
	return append([]float64(nil), this.weightsU...)
}

func (this *Surface) WeightsV() []float64 {
	return append([]float64(nil), this.weightsV...)
}

func (this *Surface) KnotsU() []float64 {
	return []float64(this.knotsU.Clone())
}

func (this *Surface) KnotsV() []float64 {
	return []float64(this.knotsV.Clone())
}

// Dimensions returns the number of control points along u and v.
func (this *Surface) Dimensions() (nU, nV int) {
	return len(this.controlPoints), len(this.controlPoints[0])
}

func (this *Surface) ControlPoint(i, j int) (vec3.T, float64, error) {
	nU, nV := this.Dimensions()
	if i < 0 || i >= nU || j < 0 || j >= nV {
		return vec3.T{}, 0, fmt.Errorf("control point (%d,%d) of %dx%d: %w", i, j, nU, nV, ErrDimensionMismatch)
	}
	hpt := this.controlPoints[i][j]
	return hpt.Dehomogenized(), hpt.W, nil
}

func (this *Surface) DomainU() (min, max float64) {
	return this.knotsU.Domain()
}

func (this *Surface) DomainV() (min, max float64) {
	return this.knotsV.Domain()
}

func (this *Surface) MultiplicitiesU() []KnotMultiplicity {
	return this.knotsU.Multiplicities()
}

func (this *Surface) MultiplicitiesV() []KnotMultiplicity {
	return this.knotsV.Multiplicities()
}

func checkSurface(degreeU, degreeV int, controlPoints [][]vec3.T, weightsU, weightsV []float64, knotsU, knotsV []float64) error {
	nU, nV := len(controlPoints), len(controlPoints[0])
	for i, row := range controlPoints {
		if len(row) != nV {
			return fmt.Errorf("control row %d has %d points, want %d: %w", i, len(row), nV, ErrDimensionMismatch)
		}
	}

	if degreeU < 1 || degreeU >= nU {
		return fmt.Errorf("degreeU %d with %d control rows: %w", degreeU, nU, ErrInvalidDegree)
	}
	if degreeV < 1 || degreeV >= nV {
		return fmt.Errorf("degreeV %d with %d control columns: %w", degreeV, nV, ErrInvalidDegree)
	}

	if len(weightsU) != nU || len(weightsV) != nV {
		return fmt.Errorf("%dx%d weights for %dx%d control points: %w", len(weightsU), len(weightsV), nU, nV, ErrDimensionMismatch)
	}
	if err := checkWeights(weightsU); err != nil {
		return fmt.Errorf("u: %w", err)
	}
	if err := checkWeights(weightsV); err != nil {
		return fmt.Errorf("v: %w", err)
	}

	if err := internal.KnotVec(knotsU).Check(degreeU, nU); err != nil {
		return fmt.Errorf("knotsU: %w", err)
	}
	if err := internal.KnotVec(knotsV).Check(degreeV, nV); err != nil {
		return fmt.Errorf("knotsV: %w", err)
	}

	return nil
}

func (this *Surface) Transform(mat *mat4.T) *Surface {
	pts := internal.Dehomogenize2d(this.controlPoints)

	for i := range pts {
		for j := range pts[i] {
			pts[i][j] = mat.MulVec3(&pts[i][j])
		}
	}

	return NewSurfaceUnchecked(this.degreeU, this.degreeV, pts, this.weightsU, this.weightsV, this.knotsU, this.knotsV)
}

// Normal returns the unnormalized surface normal Su x Sv at uv.
func (this *Surface) Normal(uv UV) vec3.T {
	derivs := this.Derivatives(uv, 1)
	return vec3.Cross(&derivs[1][0], &derivs[0][1])
}

// Compute the derivatives at a point on a NURBS surface
//
// **params**
// + u and v parameters at which to evaluate the derivatives
// + number of derivatives to evaluate, negative counts act as zero
//
// **returns**
// + skl[k][l] is the derivative taken k times in u and l times in v, for k+l <= numDerivs
func (this *Surface) Derivatives(uv UV, numDerivs int) [][]vec3.T {
	numDerivs = max(numDerivs, 0)
	ders := this.nonRationalDerivatives(uv, numDerivs)
	wders := internal.Weight2d(ders)
	skl := make([][]vec3.T, numDerivs+1)

	for k := 0; k <= numDerivs; k++ {
		skl[k] = make([]vec3.T, numDerivs-k+1)

		for l := 0; l <= numDerivs-k; l++ {
			v := ders[k][l].Vec3

			for j := 1; j <= l; j++ {
				scaled := skl[k][l-j].Scaled(binomial(l, j) * wders[0][j])
				v.Sub(&scaled)
			}

			for i := 1; i <= k; i++ {
				scaled := skl[k-i][l].Scaled(binomial(k, i) * wders[i][0])
				v.Sub(&scaled)

				var v2 vec3.T

				for j := 1; j <= l; j++ {
					scaled := skl[k-i][l-j].Scaled(binomial(l, j) * wders[i][j])
					v2.Add(&scaled)
				}

				scaled = v2.Scaled(binomial(k, i))
				v.Sub(&scaled)
			}

			v.Scale(1 / wders[0][0])
			skl[k][l] = v
		}
	}

	return skl
}

// Point evaluates the surface at uv.
func (this *Surface) Point(uv UV) vec3.T {
	homoPt := this.nonRationalPoint(uv)
	return homoPt.Dehomogenized()
}

// Compute the derivatives on a non-uniform, non-rational B spline surface
// (corresponds to algorithm 3.6 from The NURBS book, Piegl & Tiller 2nd edition)
//
// The result is square with side numDerivs+1; entries above either degree
// are zero.
func (this *Surface) nonRationalDerivatives(uv UV, numDerivs int) [][]internal.HomoPoint {
	degreeU := this.degreeU
	degreeV := this.degreeV
	controlPoints := this.controlPoints
	knotsU := this.knotsU
	knotsV := this.knotsV
	n, m := len(controlPoints)-1, len(controlPoints[0])-1

	du := min(numDerivs, degreeU)
	dv := min(numDerivs, degreeV)

	skl := make([][]internal.HomoPoint, numDerivs+1)
	for i := range skl {
		skl[i] = make([]internal.HomoPoint, numDerivs+1)
	}

	knotSpanIndexU := knotsU.SpanGivenN(n, degreeU, uv[0])
	knotSpanIndexV := knotsV.SpanGivenN(m, degreeV, uv[1])
	uders := internal.DerivativeBasisFunctionsGivenNI(knotSpanIndexU, uv[0], degreeU, du, knotsU)
	vders := internal.DerivativeBasisFunctionsGivenNI(knotSpanIndexV, uv[1], degreeV, dv, knotsV)
	temp := make([]internal.HomoPoint, degreeV+1)

	for k := 0; k <= du; k++ {
		for s := range temp {
			temp[s] = internal.HomoPoint{}

			for r := 0; r <= degreeU; r++ {
				scaled := controlPoints[knotSpanIndexU-degreeU+r][knotSpanIndexV-degreeV+s]
				scaled.Scale(uders[k][r])
				temp[s].Add(&scaled)
			}
		}

		dd := min(numDerivs-k, dv)
		for l := 0; l <= dd; l++ {
			for s := 0; s <= degreeV; s++ {
				scaled := temp[s]
				scaled.Scale(vders[l][s])
				skl[k][l].Add(&scaled)
			}
		}
	}

	return skl
}

// Compute a point on a non-uniform, non-rational B spline surface
// (corresponds to algorithm 3.5 from The NURBS book, Piegl & Tiller 2nd edition)
func (this *Surface) nonRationalPoint(uv UV) internal.HomoPoint {
	degreeU := this.degreeU
	degreeV := this.degreeV
	controlPoints := this.controlPoints
	knotsU := this.knotsU
	knotsV := this.knotsV

	knotSpanIndexU := knotsU.SpanGivenN(len(controlPoints)-1, degreeU, uv[0])
	knotSpanIndexV := knotsV.SpanGivenN(len(controlPoints[0])-1, degreeV, uv[1])
	uBasisVals := internal.BasisFunctionsGivenKnotSpanIndex(knotSpanIndexU, uv[0], degreeU, knotsU)
	vBasisVals := internal.BasisFunctionsGivenKnotSpanIndex(knotSpanIndexV, uv[1], degreeV, knotsV)
	uind := knotSpanIndexU - degreeU
	var position internal.HomoPoint

	for l := 0; l <= degreeV; l++ {
		var temp internal.HomoPoint
		vind := knotSpanIndexV - degreeV + l

		// sample u isoline
		for k := 0; k <= degreeU; k++ {
			scaled := controlPoints[uind+k][vind]
			scaled.Scale(uBasisVals[k])
			temp.Add(&scaled)
		}

		// add point from u isoline
		temp.Scale(vBasisVals[l])
		position.Add(&temp)
	}

	return position
}

package internal

import "github.com/ungerik/go3d/float64/vec3"

// HomoPoint is a control point in homogeneous form (w*p, w).
type HomoPoint struct {
	Vec3 vec3.T
	W    float64
}

func (this *HomoPoint) Add(pt *HomoPoint) *HomoPoint {
	this.Vec3.Add(&pt.Vec3)
	this.W += pt.W

	return this
}

func (this *HomoPoint) Scale(scale float64) *HomoPoint {
	this.Vec3.Scale(scale)
	this.W *= scale

	return this
}

func Homogenized(pt vec3.T, w float64) HomoPoint {
	return HomoPoint{pt.Scaled(w), w}
}

func (this *HomoPoint) Dehomogenized() vec3.T {
	return this.Vec3.Scaled(1 / this.W)
}

// Homogenize1d pairs every point with its weight.
//
// **params**
// + control points
// + one weight per control point
//
// **returns**
// + (w_i*p_i, w_i) for every point
func Homogenize1d(pts []vec3.T, weights []float64) []HomoPoint {
	homoPts := make([]HomoPoint, 0, len(pts))
	for i, pt := range pts {
		homoPts = append(homoPts, Homogenized(pt, weights[i]))
	}

	return homoPts
}

// HomogenizeSeparable homogenizes a control net whose weights factor into
// one weight per u row and one per v column: w_ij = weightsU[i]*weightsV[j].
func HomogenizeSeparable(pts [][]vec3.T, weightsU, weightsV []float64) [][]HomoPoint {
	homoPts := make([][]HomoPoint, len(pts))
	row := make([]float64, len(weightsV))
	for i := range homoPts {
		for j := range row {
			row[j] = weightsU[i] * weightsV[j]
		}
		homoPts[i] = Homogenize1d(pts[i], row)
	}

	return homoPts
}

func Dehomogenize1d(homoPoints []HomoPoint) []vec3.T {
	result := make([]vec3.T, 0, len(homoPoints))
	for _, homoPt := range homoPoints {
		result = append(result, homoPt.Dehomogenized())
	}

	return result
}

func Dehomogenize2d(homoPoints [][]HomoPoint) [][]vec3.T {
	result := make([][]vec3.T, len(homoPoints))
	for i := range result {
		result[i] = Dehomogenize1d(homoPoints[i])
	}

	return result
}

func Weight1d(homoPoints []HomoPoint) (weights []float64) {
	weights = make([]float64, len(homoPoints))
	for i := range weights {
		weights[i] = homoPoints[i].W
	}

	return
}

func Weight2d(homoPoints [][]HomoPoint) (weights [][]float64) {
	weights = make([][]float64, len(homoPoints))
	for i := range weights {
		weights[i] = Weight1d(homoPoints[i])
	}

	return
}

// HomoInterpolated blends two homogeneous points, weights included:
// (1-t)*hpt0 + t*hpt1.
func HomoInterpolated(hpt0, hpt1 *HomoPoint, t float64) HomoPoint {
	return HomoPoint{
		vec3.Interpolate(&hpt0.Vec3, &hpt1.Vec3, t),
		(1-t)*hpt0.W + t*hpt1.W,
	}
}

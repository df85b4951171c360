package internal

import "fmt"

// Compute the non-vanishing basis functions
// (corresponds to algorithm 2.2 from The NURBS book, Piegl & Tiller 2nd edition)
//
// **params**
// + integer knot span index
// + float parameter
// + integer degree of function
// + array of nondecreasing knot values
//
// **returns**
// + the degree+1 basis functions N_{span-degree..span, degree}(u)
//
func BasisFunctionsGivenKnotSpanIndex(knotSpanIndex int, u float64, degree int, knots KnotVec) []float64 {
	basisFunctions := make([]float64, degree+1)
	left := make([]float64, degree+1)
	right := make([]float64, degree+1)

	basisFunctions[0] = 1

	for j := 1; j <= degree; j++ {
		left[j] = u - knots[knotSpanIndex+1-j]
		right[j] = knots[knotSpanIndex+j] - u
		var saved float64

		for r := 0; r < j; r++ {
			temp := safeDiv(basisFunctions[r], right[r+1]+left[j-r])
			basisFunctions[r] = saved + right[r+1]*temp
			saved = left[j-r] * temp
		}

		basisFunctions[j] = saved
	}

	return basisFunctions
}

// Compute the non-vanishing basis functions and their derivatives
// (corresponds to algorithm 2.3 from The NURBS book, Piegl & Tiller 2nd edition)
//
// **params**
// + integer knot span index
// + float parameter
// + integer degree
// + integer number of derivatives to compute
// + array of nondecreasing knot values
//
// **returns**
// + 2d array of size (n+1, p+1); row k holds the kth derivatives and row 0 the basis values
//
func DerivativeBasisFunctionsGivenNI(knotSpanIndex int, u float64, p, n int, knots KnotVec) [][]float64 {
	ndu := zeros2d(p+1, p+1)

	left := make([]float64, p+1)
	right := make([]float64, p+1)

	ndu[0][0] = 1

	for j := 1; j <= p; j++ {
		left[j] = u - knots[knotSpanIndex+1-j]
		right[j] = knots[knotSpanIndex+j] - u
		var saved float64

		for r := 0; r < j; r++ {
			ndu[j][r] = right[r+1] + left[j-r]
			temp := safeDiv(ndu[r][j-1], ndu[j][r])

			ndu[r][j] = saved + right[r+1]*temp
			saved = left[j-r] * temp
		}
		ndu[j][j] = saved
	}

	ders := zeros2d(n+1, p+1)

	for j := 0; j <= p; j++ {
		ders[0][j] = ndu[j][p]
	}

	a := zeros2d(2, p+1)
	var j1, j2 int

	for r := 0; r <= p; r++ {
		s1, s2 := 0, 1
		a[0][0] = 1

		for k := 1; k <= n; k++ {
			var d float64
			rk := r - k
			pk := p - k

			if r >= k {
				a[s2][0] = safeDiv(a[s1][0], ndu[pk+1][rk])
				d = a[s2][0] * ndu[rk][pk]
			}

			if rk >= -1 {
				j1 = 1
			} else {
				j1 = -rk
			}

			if r-1 <= pk {
				j2 = k - 1
			} else {
				j2 = p - r
			}

			for j := j1; j <= j2; j++ {
				a[s2][j] = safeDiv(a[s1][j]-a[s1][j-1], ndu[pk+1][rk+j])
				d += a[s2][j] * ndu[rk+j][pk]
			}

			if r <= pk {
				a[s2][k] = safeDiv(-a[s1][k-1], ndu[pk+1][r])
				d += a[s2][k] * ndu[r][pk]
			}

			ders[k][r] = d

			s1, s2 = s2, s1
		}
	}

	acc := p
	for k := 1; k <= n; k++ {
		for j := 0; j <= p; j++ {
			ders[k][j] *= float64(acc)
		}
		acc *= (p - k)
	}

	return ders
}

// BasisWorkspace holds the scratch buffers of the vectorized single-basis
// evaluation so that repeated calls over many sample sets do not allocate.
// A workspace is not safe for concurrent use; give each goroutine its own.
type BasisWorkspace struct {
	table  []float64
	saved  []float64
	width  int
	active int
}

func NewBasisWorkspace(samples, degree int) *BasisWorkspace {
	ws := new(BasisWorkspace)
	ws.Reset(samples, degree)
	return ws
}

// Reset sizes the workspace for samples points at the given degree, growing
// the buffers only when they are too small.
func (this *BasisWorkspace) Reset(samples, degree int) {
	this.width = degree + 1
	this.active = this.width

	if need := samples * this.width; cap(this.table) < need {
		this.table = make([]float64, need)
	} else {
		this.table = this.table[:need]
	}

	if cap(this.saved) < samples {
		this.saved = make([]float64, samples)
	} else {
		this.saved = this.saved[:samples]
	}
}

// OneBasisFunction writes N_{k,degree}(us[s]) into out[s] for every sample,
// carrying all samples through each level of the recurrence together.
// (corresponds to algorithm 2.4 from The NURBS book, Piegl & Tiller 2nd edition)
//
// Like the scalar algorithm it treats every knot interval as half-open, so a
// sample sitting exactly on the last knot evaluates to zero everywhere.
func (this *BasisWorkspace) OneBasisFunction(knots KnotVec, degree, k int, us, out []float64) error {
	if degree < 0 {
		return fmt.Errorf("basis of degree %d: %w", degree, ErrInvalidDegree)
	}
	if nCon := knots.NumBasis(degree); k < 0 || k >= nCon {
		return fmt.Errorf("basis index %d of %d: %w", k, nCon, ErrDimensionMismatch)
	}
	if len(out) != len(us) {
		return fmt.Errorf("%d outputs for %d samples: %w", len(out), len(us), ErrDimensionMismatch)
	}

	this.Reset(len(us), degree)
	w, N, saved := this.width, this.table, this.saved

	// degree zero functions N_{k+j,0}
	for s, u := range us {
		row := N[s*w : s*w+w]
		for j := 0; j <= degree; j++ {
			if knots[k+j] <= u && u < knots[k+j+1] {
				row[j] = 1
			} else {
				row[j] = 0
			}
		}
	}

	for level := 1; level <= degree; level++ {
		this.active = degree - level + 1

		first := knots[k+level] - knots[k]
		for s, u := range us {
			if N[s*w] != 0 && first != 0 {
				saved[s] = (u - knots[k]) * N[s*w] / first
			} else {
				saved[s] = 0
			}
		}

		for j := 0; j < this.active; j++ {
			uLeft, uRight := knots[k+j+1], knots[k+j+level+1]
			span := uRight - uLeft

			for s, u := range us {
				row := N[s*w : s*w+w]
				if row[j+1] == 0 || span == 0 {
					row[j] = saved[s]
					saved[s] = 0
					continue
				}

				temp := row[j+1] / span
				row[j] = saved[s] + (uRight-u)*temp
				saved[s] = (u - uLeft) * temp
			}
		}
	}

	for s := range us {
		out[s] = min(max(N[s*w], 0), 1)
	}

	return nil
}

// BasisMatrix evaluates every basis function of the knot vector at every
// sample: entry (s, j) is N_{j,degree}(us[s]). Samples at or past the end of
// the domain are assigned entirely to the last basis function.
func BasisMatrix(knots KnotVec, degree int, us []float64, ws *BasisWorkspace) (*Dense, error) {
	nCon := knots.NumBasis(degree)
	if nCon < 1 {
		return nil, fmt.Errorf("%d knots cannot carry degree %d: %w", len(knots), degree, ErrDegenerateInput)
	}
	if ws == nil {
		ws = NewBasisWorkspace(len(us), degree)
	}

	N := NewDense(len(us), nCon, 1)
	col := make([]float64, len(us))
	for k := 0; k < nCon; k++ {
		if err := ws.OneBasisFunction(knots, degree, k, us, col); err != nil {
			return nil, err
		}
		for s, v := range col {
			N.Set(s, k, v)
		}
	}

	end := knots[len(knots)-1]
	for s, u := range us {
		if u >= end {
			N.Set(s, nCon-1, 1)
		}
	}

	return N, nil
}

func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

func zeros2d(n, m int) [][]float64 {
	result := make([][]float64, n)
	for i := range result {
		result[i] = make([]float64, m)
	}

	return result
}

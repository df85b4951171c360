package nurbsfit

import (
	"fmt"
	"math"
	"slices"

	"github.com/alexozer/nurbsfit/internal"
)

// checkInsertion reports whether knot u may be inserted r more times. u must
// lie strictly inside the domain and end with a multiplicity of at most the
// degree. It returns u snapped onto an existing knot within Epsilon, together
// with that knot's current multiplicity.
func (this *Curve) checkInsertion(u float64, r int) (float64, int, error) {
	if r < 1 {
		return 0, 0, fmt.Errorf("insert knot %v %d times: %w", u, r, ErrDegenerateInput)
	}

	min, max := this.Domain()
	if math.IsNaN(u) || u <= min+internal.Epsilon || u >= max-internal.Epsilon {
		return 0, 0, fmt.Errorf("insert knot %v outside the open domain (%v, %v): %w", u, min, max, ErrDegenerateInput)
	}

	var s int
	for _, knot := range this.knots {
		if math.Abs(knot-u) < internal.Epsilon {
			u = knot
			s++
		}
	}

	if r+s > this.degree {
		return 0, 0, fmt.Errorf("knot %v would reach multiplicity %d above degree %d: %w", u, r+s, this.degree, ErrDegenerateInput)
	}

	return u, s, nil
}

// Insert a knot along a rational curve without changing its shape
// (corresponds to algorithm A5.1 from The NURBS book, Piegl & Tiller 2nd edition)
//
// **params**
// + parameter at which to insert the knot, strictly inside the domain
// + number of times to insert it, at least one; the resulting multiplicity may not exceed the degree
//
// **returns**
// + a new curve with r more control points and knots
func (this *Curve) InsertKnot(u float64, r int) (*Curve, error) {
	u, s, err := this.checkInsertion(u, r)
	if err != nil {
		return nil, err
	}

	degree := this.degree
	controlPoints := this.controlPoints
	knots := this.knots

	numPts := len(controlPoints)
	k := knots.Span(degree, u)
	knotsPost := make(internal.KnotVec, len(knots)+r)
	controlPointsPost := make([]internal.HomoPoint, numPts+r)
	temp := make([]internal.HomoPoint, degree-s+1)

	copy(knotsPost, knots[:k+1])
	for i := 1; i <= r; i++ {
		knotsPost[k+i] = u
	}
	copy(knotsPost[k+r+1:], knots[k+1:])

	// control points outside the affected span are kept as they are
	copy(controlPointsPost, controlPoints[:k-degree+1])
	copy(controlPointsPost[k-s+r:], controlPoints[k-s:])
	copy(temp, controlPoints[k-degree:k-s+1])

	var L int
	for j := 1; j <= r; j++ {
		L = k - degree + j

		for i := 0; i <= degree-j-s; i++ {
			alpha := (u - knots[L+i]) / (knots[i+k+1] - knots[L+i])
			temp[i] = internal.HomoInterpolated(&temp[i], &temp[i+1], alpha)
		}

		controlPointsPost[L] = temp[0]
		controlPointsPost[k+r-j-s] = temp[degree-j-s]
	}

	for i := L + 1; i < k-s; i++ {
		controlPointsPost[i] = temp[i-L]
	}

	Logger().Debug("insert knot", "u", u, "times", r, "controlPoints", len(controlPointsPost))

	return &Curve{degree, controlPointsPost, knotsPost}, nil
}

// Insert a collection of knots on a curve without changing its shape
// (corresponds to algorithm A5.4 from The NURBS book, Piegl & Tiller 2nd edition)
//
// **params**
// + knots to insert in any order, each strictly inside the domain; no knot may end above the degree in multiplicity
//
// **returns**
// + a new curve with one more control point per inserted knot
func (this *Curve) InsertKnots(knotsToInsert []float64) (*Curve, error) {
	if len(knotsToInsert) == 0 {
		return &Curve{this.degree, slices.Clone(this.controlPoints), this.knots.Clone()}, nil
	}

	X := slices.Clone(knotsToInsert)
	slices.Sort(X)
	for i := 0; i < len(X); {
		j := i + 1
		for j < len(X) && math.Abs(X[j]-X[i]) < internal.Epsilon {
			j++
		}

		u, _, err := this.checkInsertion(X[i], j-i)
		if err != nil {
			return nil, err
		}
		for ; i < j; i++ {
			X[i] = u
		}
	}

	degree := this.degree
	controlPoints := this.controlPoints
	knots := this.knots

	n := len(controlPoints) - 1
	m := n + degree + 1
	r := len(X) - 1
	a := knots.Span(degree, X[0])
	b := knots.Span(degree, X[r]) + 1

	controlPointsPost := make([]internal.HomoPoint, n+r+2)
	knotsPost := make(internal.KnotVec, m+r+2)

	copy(controlPointsPost, controlPoints[:a-degree+1])
	copy(controlPointsPost[b+r:], controlPoints[b-1:])
	copy(knotsPost, knots[:a+1])
	copy(knotsPost[b+degree+r+1:], knots[b+degree:])

	i := b + degree - 1
	k := b + degree + r

	for j := r; j >= 0; j-- {
		for X[j] <= knots[i] && i > a {
			controlPointsPost[k-degree-1] = controlPoints[i-degree-1]
			knotsPost[k] = knots[i]
			k--
			i--
		}

		controlPointsPost[k-degree-1] = controlPointsPost[k-degree]

		for l := 1; l <= degree; l++ {
			ind := k - degree + l
			alpha := knotsPost[k+l] - X[j]

			if math.Abs(alpha) < internal.Epsilon {
				controlPointsPost[ind-1] = controlPointsPost[ind]
			} else {
				alpha /= knotsPost[k+l] - knots[i-degree+l]
				controlPointsPost[ind-1] = internal.HomoInterpolated(&controlPointsPost[ind], &controlPointsPost[ind-1], alpha)
			}
		}

		knotsPost[k] = X[j]
		k--
	}

	Logger().Debug("refine knots", "inserted", len(X), "controlPoints", len(controlPointsPost))

	return &Curve{degree, controlPointsPost, knotsPost}, nil
}

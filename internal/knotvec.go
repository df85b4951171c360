package internal

import (
	"fmt"
	"math"
)

type KnotVec []float64

func (this KnotVec) Clone() KnotVec {
	return append(KnotVec(nil), this...)
}

// NumBasis returns the number of basis functions (control points) a knot
// vector of this length supports at the given degree.
func (this KnotVec) NumBasis(degree int) int {
	return len(this) - degree - 1
}

func (this KnotVec) Domain() (min, max float64) {
	return this[0], this[len(this)-1]
}

// Find the span on the knot Array without supplying n
//
// **params**
// + integer degree of function
// + float parameter
//
// **returns**
// + the index of the knot span
//
func (this KnotVec) Span(degree int, u float64) int {
	return this.SpanGivenN(this.NumBasis(degree)-1, degree, u)
}

// Find the span on the knot Array knots of the given parameter
// (corresponds to algorithm 2.1 from The NURBS book, Piegl & Tiller 2nd edition)
//
// Parameters at or beyond the end of the domain map to the last span, those
// before the start map to the first.
//
// **params**
// + integer number of basis functions - 1 = knots.length - degree - 2
// + integer degree of function
// + parameter
//
// **returns**
// + the index of the knot span
//
func (this KnotVec) SpanGivenN(n int, degree int, u float64) int {
	if u >= this[n+1] {
		return n
	}

	if u < this[degree] {
		return degree
	}

	low, high := degree, n+1
	mid := (low + high) / 2

	for u < this[mid] || u >= this[mid+1] {
		if u < this[mid] {
			high = mid
		} else {
			low = mid
		}

		mid = (low + high) / 2
	}

	return mid
}

// Determine the multiplicities of the values in a knot vector
//
// **returns**
// + one entry per distinct knot value, in order
//
func (this KnotVec) Multiplicities() []KnotMultiplicity {
	if len(this) == 0 {
		return nil
	}

	mults := []KnotMultiplicity{{this[0], 0}}

	var currI int
	for _, knot := range this {
		if math.Abs(knot-mults[currI].Knot) > Epsilon {
			mults = append(mults, KnotMultiplicity{knot, 0})
			currI++
		}

		mults[currI].Mult++
	}

	return mults
}

// Check reports why a knot vector cannot carry nCon basis functions of the
// given degree, or nil if it can. Valid vectors are non-decreasing and
// clamped: the first and last degree+1 knots coincide.
func (this KnotVec) Check(degree, nCon int) error {
	if want := nCon + degree + 1; len(this) != want {
		return fmt.Errorf("%d knots for %d control points of degree %d, want %d: %w", len(this), nCon, degree, want, ErrDimensionMismatch)
	}
	if !this.IsValid(degree) {
		return fmt.Errorf("knot vector is not clamped and non-decreasing: %w", ErrDegenerateInput)
	}
	if this[len(this)-1]-this[0] < Epsilon {
		return fmt.Errorf("knot vector has an empty domain: %w", ErrDegenerateInput)
	}

	return nil
}

func (this KnotVec) IsValid(degree int) bool {
	if len(this) == 0 {
		return false
	}

	if len(this) < (degree+1)*2 {
		return false
	}

	for _, knot := range this {
		if math.IsNaN(knot) || math.IsInf(knot, 0) {
			return false
		}
	}

	rep := this[0]

	for _, knot := range this[:degree+1] {
		if math.Abs(knot-rep) > Epsilon {
			return false
		}
	}

	rep = this[len(this)-1]

	for _, knot := range this[len(this)-degree-1:] {
		if math.Abs(knot-rep) > Epsilon {
			return false
		}
	}

	return this.IsNonDecreasing()
}

func (this KnotVec) IsNonDecreasing() bool {
	rep := this[0]
	for _, knot := range this[1:] {
		if knot < rep-Epsilon {
			return false
		}
		rep = knot
	}
	return true
}

type KnotMultiplicity struct {
	Knot float64
	Mult int
}

package nurbsfit

import (
	"math"

	"github.com/alexozer/nurbsfit/internal"
	"github.com/ungerik/go3d/float64/vec3"
)

// BoundingBox is an axis-aligned box. The zero value is empty; adding the
// first point initializes it.
type BoundingBox struct {
	Min, Max    vec3.T
	initialized bool
}

// Empty reports whether no point has been added yet.
func (this *BoundingBox) Empty() bool {
	return !this.initialized
}

// Adds a point to the bounding box, expanding the bounding box if the point is outside of it.
//
// **returns**
// + This BoundingBox for chaining
func (this *BoundingBox) Add(point *vec3.T) *BoundingBox {
	if !this.initialized {
		this.Min, this.Max = *point, *point
		this.initialized = true

		return this
	}

	for i, val := range point {
		this.Max[i] = math.Max(this.Max[i], val)
		this.Min[i] = math.Min(this.Min[i], val)
	}

	return this
}

func (this *BoundingBox) AddRange(points []vec3.T) *BoundingBox {
	for i := range points {
		this.Add(&points[i])
	}

	return this
}

// Contains reports whether point lies in the box grown by tol on every side.
func (this *BoundingBox) Contains(point *vec3.T, tol float64) bool {
	if !this.initialized {
		return false
	}

	for i, val := range point {
		if val < this.Min[i]-tol || val > this.Max[i]+tol {
			return false
		}
	}

	return true
}

// Determines if this bounding box intersects with another
//
// **params**
// + BoundingBox to check for intersection with this one
// + slack added to both boxes
//
// **returns**
// + true if the two bounding boxes intersect, otherwise false
func (this *BoundingBox) Intersects(bb *BoundingBox, tol float64) bool {
	if !this.initialized || !bb.initialized {
		return false
	}

	for i := range this.Min {
		if this.Max[i]+tol < bb.Min[i]-tol || bb.Max[i]+tol < this.Min[i]-tol {
			return false
		}
	}

	return true
}

// Get length of given axis.
//
// **returns**
// + Length of the given axis.  If axis is out of bounds, returns 0.
func (this *BoundingBox) AxisLength(i int) float64 {
	if i < 0 || i > len(this.Min)-1 {
		return 0
	}
	return this.Max[i] - this.Min[i]
}

// Get longest axis of bounding box
func (this *BoundingBox) LongestAxis() int {
	id, max := 0, 0.0

	for i := range this.Min {
		l := this.AxisLength(i)
		if l > max {
			max = l
			id = i
		}
	}

	return id
}

// ControlBox bounds the control polygon. Positive weights keep the curve
// inside the convex hull of its control points, so the box bounds the curve
// too.
func (this *Curve) ControlBox() BoundingBox {
	var bb BoundingBox
	bb.AddRange(internal.Dehomogenize1d(this.controlPoints))
	return bb
}

// ControlBox bounds the control net and therefore the surface.
func (this *Surface) ControlBox() BoundingBox {
	var bb BoundingBox
	for _, row := range internal.Dehomogenize2d(this.controlPoints) {
		bb.AddRange(row)
	}
	return bb
}

func (this *Mesh) BoundingBox() BoundingBox {
	var bb BoundingBox
	bb.AddRange(this.Points)
	return bb
}

func (this *Polyline) BoundingBox() BoundingBox {
	var bb BoundingBox
	bb.AddRange(this.Points)
	return bb
}

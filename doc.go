// Package nurbsfit fits clamped NURBS curves and surfaces through ordered
// sample points and evaluates them.
//
// Fitting runs in four stages: sample points are given parameter values
// (equal, chord length or centripetal spacing), a clamped knot vector is
// built from those parameters (uniform, averaged, or averaged with two
// extra knots for end tangents), the B-spline basis is evaluated at every
// parameter, and the resulting square system is solved for the control
// points. Surfaces repeat the one dimensional solve along u and then along
// v.
//
// Fitted or hand-built curves and surfaces answer point and derivative
// queries and tessellate into polylines and structured quad meshes.
//
// Every fallible operation returns an error wrapping one of the package
// sentinels (ErrDegenerateInput, ErrInvalidDegree, ErrDimensionMismatch,
// ErrSingularSystem, ErrUnknownStrategy).
package nurbsfit

package nurbsfit

import "github.com/alexozer/nurbsfit/internal"

// Sentinel errors returned by every fallible operation in this module.
// Match them with errors.Is; returned errors carry extra context.
var (
	ErrDegenerateInput   = internal.ErrDegenerateInput
	ErrInvalidDegree     = internal.ErrInvalidDegree
	ErrDimensionMismatch = internal.ErrDimensionMismatch
	ErrSingularSystem    = internal.ErrSingularSystem
	ErrUnknownStrategy   = internal.ErrUnknownStrategy
)

// Package interval implements closed-interval arithmetic over float64
// with outward rounding, as consumed by the interval evaluation path
// of the function engine.
//
// An Interval [Lo, Hi] encloses every value a quantity can take. All
// arithmetic operations widen their result by one ulp in each
// direction, so the returned interval is guaranteed to contain the
// exact real result even in the presence of floating-point rounding.
// Negation and the bound accessors are exact and do not widen.
//
// Division by an interval that spans zero yields the entire real line
// (-Inf, +Inf); it is not an error, mirroring standard interval
// extension semantics.
//
// Errors:
//
//	ErrInvalidBounds - lower bound exceeds upper bound, or a bound is NaN.
//	ErrNegativeSqrt  - square root of an interval entirely below zero.
package interval

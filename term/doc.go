// Package term defines the polymorphic contract every piece of an
// objective function implements, the tag-keyed factory that
// reconstructs terms from a byte stream, and a small set of built-in
// terms.
//
// A Term depends on a fixed tuple of variables. It declares its arity
// and the dimension of every argument, and evaluates its value — and
// on request its per-argument gradient rows and per-argument-pair
// Hessian blocks — at the point handed to it by the function engine.
// The engine owns all scatter/gather bookkeeping; a Term only ever
// sees its own arguments as plain slices.
//
// Hessian blocks are gonum *mat.Dense matrices of size
// dim(argᵢ) × dim(argⱼ), preallocated by the engine and overwritten by
// the Term on every call.
//
// Serialization: a Term writes itself to a stream as whitespace-
// separated tokens and is reconstructed by a Constructor registered in
// a Factory under the Term's Tag. Tags must be single tokens (no
// whitespace) and stable across builds; they replace any runtime type
// identity.
//
// Errors:
//
//	ErrUnknownTag     - Create called with an unregistered tag.
//	ErrDuplicateTag   - Register called twice with the same tag.
//	ErrEmptyTag       - Register called with an empty tag.
//	ErrNilConstructor - Register called with a nil constructor.
//	ErrBadDimension   - a built-in term constructed with dimension < 1.
package term

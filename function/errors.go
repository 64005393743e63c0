// SPDX-License-Identifier: MIT
// Package function: sentinel error set. All exported operations return
// these sentinels (optionally wrapped with context via %w) and tests
// match them with errors.Is. No exported operation panics on
// user-triggered conditions.

package function

import "errors"

var (
	// ErrDimensionMismatch indicates a variable dimension conflicting with
	// a previous registration, a term's declared argument dimension, or a
	// change-of-variables x/t dimension.
	ErrDimensionMismatch = errors.New("function: dimension mismatch")

	// ErrArityMismatch indicates a term bound to the wrong number of
	// variables.
	ErrArityMismatch = errors.New("function: arity mismatch")

	// ErrVariableNotFound indicates an operation on an unregistered
	// variable block.
	ErrVariableNotFound = errors.New("function: variable not found")

	// ErrEmptyVariable indicates a variable block with zero scalars.
	ErrEmptyVariable = errors.New("function: variable has no scalars")

	// ErrNilTerm indicates AddTerm was called with a nil term.
	ErrNilTerm = errors.New("function: nil term")

	// ErrUnsupportedOperation marks a combination the engine rejects:
	// change of variables with dense/sparse Hessians, with interval
	// evaluation, or with serialization; constant variables with
	// serialization.
	ErrUnsupportedOperation = errors.New("function: unsupported operation")

	// ErrHessianDisabled indicates a Hessian was requested on an instance
	// with Hessian computation disabled.
	ErrHessianDisabled = errors.New("function: hessian computation is disabled")

	// ErrNilHessian indicates a nil Hessian destination matrix.
	ErrNilHessian = errors.New("function: nil hessian destination")

	// ErrBadThreadCount indicates a non-positive worker count.
	ErrBadThreadCount = errors.New("function: thread count must be positive")

	// ErrFormatMismatch indicates the stream is not a function stream or
	// its layout bookkeeping is corrupt.
	ErrFormatMismatch = errors.New("function: not a valid function stream")

	// ErrIncompatibleBuild indicates the stream was written under an
	// incompatible term encoding.
	ErrIncompatibleBuild = errors.New("function: stream written by an incompatible build")

	// ErrNilFactory indicates Read was called with a nil term factory.
	ErrNilFactory = errors.New("function: nil term factory")
)

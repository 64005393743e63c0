// SPDX-License-Identifier: MIT

// Package function implements the assembly and evaluation engine for
// objective functions built as sums of terms.
//
// A Function owns two registries and a scratch cache:
//
//   - Variable registry: maps user-owned storage blocks to offsets in
//     the packed global coordinate vector an optimizer manipulates.
//     Variables are identified by the address of their first scalar;
//     re-adding the same block is a no-op except for replacing its
//     change of variables. Free variables occupy the leading indices,
//     constant variables a trailing read-only block; toggling constancy
//     triggers a full O(n) reindex.
//
//   - Term registry: every added term is bound to an ordered list of
//     registry entries, with arity and per-argument dimensions checked
//     at binding time. A failed AddTerm leaves the function exactly as
//     it was (all-or-nothing).
//
//   - Local storage: per-worker gradient accumulators, per-term
//     argument pointers into each variable's scratch, and per-pair
//     Hessian blocks. It is a derived cache — any registry mutation
//     invalidates it and the next evaluation rebuilds it.
//
// Evaluation scatters the global vector into per-variable scratch
// (applying TToX transforms; constant variables read from user storage
// instead), evaluates all term bindings fork-join across a fixed
// worker pool, and reduces per-term contributions into the value, the
// gradient, and the dense (gonum mat.Dense), sparse (triplet → CSR),
// or interval result. Each worker owns a private accumulator; only the
// final reduction touches shared memory. Errors raised by terms inside
// the parallel region are captured per worker and re-raised after the
// join, first error wins; accumulator state is indeterminate after
// such a failure.
//
// Serialization writes a versioned, fingerprinted token stream
// (counts, layout, solver-space values, per-term records with opaque
// self-serialized blobs) and reads it back through a term.Factory.
//
// A Function is NOT safe for concurrent use: registry mutation and
// serialization must never overlap an evaluation. The parallelism is
// internal to a single evaluation call.
//
// Errors:
//
//	ErrDimensionMismatch    - variable dimension conflicts with a previous
//	                          registration or a term's declaration.
//	ErrArityMismatch        - term arity differs from the bound variable list.
//	ErrVariableNotFound     - operation referenced an unregistered variable.
//	ErrEmptyVariable        - variable block with zero scalars.
//	ErrNilTerm              - AddTerm called with a nil term.
//	ErrUnsupportedOperation - change of variables combined with dense/sparse
//	                          Hessians, serialization, or interval evaluation;
//	                          constant variables combined with serialization.
//	ErrHessianDisabled      - Hessian requested on an instance built with
//	                          WithHessianDisabled.
//	ErrNilHessian           - nil Hessian destination.
//	ErrBadThreadCount       - non-positive worker count.
//	ErrFormatMismatch       - stream is not a function stream (bad magic,
//	                          version, or corrupted layout).
//	ErrIncompatibleBuild    - stream written under an incompatible encoding.
//	ErrNilFactory           - Read called with a nil factory.
package function

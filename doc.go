// Package objfn assembles objective functions for unconstrained
// optimization as sums of independently defined terms, and evaluates
// the total value, gradient, and Hessian (dense, sparse, or interval
// bounded) at a given point — efficiently and in parallel.
//
// 🚀 What is objfn?
//
//	A library for the bookkeeping an optimizer never wants to do itself:
//		• Variables: user-owned blocks of scalars, free or constant,
//		  optionally re-parameterized through a change of variables
//		• Terms: self-contained pieces of the objective, each depending
//		  on a fixed tuple of variables through a narrow interface
//		• Evaluation: scatter the packed solver vector into per-variable
//		  scratch, evaluate every term across a worker pool, and reduce
//		  the per-term contributions into one value, gradient, and Hessian
//		• Serialization: round-trip a built function through a byte stream,
//		  reconstructing terms via a tag-keyed factory
//
// ✨ Why choose objfn?
//
//   - Cheap inner loops – scratch is allocated once and reused across
//     thousands of evaluations
//   - Race-free parallelism – every worker owns its accumulator; only
//     the final reduction touches shared memory
//   - Three Hessian shapes – dense (gonum mat), sparse triplet/CSR,
//     and interval bounds for global optimization
//   - Explicit errors – every failure mode is a sentinel matched with
//     errors.Is; no panics on user input
//
// Everything is organized under three subpackages:
//
//	function/ — the engine: registries, scratch, evaluation, serialization
//	term/     — the Term contract, the term factory, built-in terms
//	interval/ — outward-rounded interval arithmetic
//
// Quick example:
//
//	x := []float64{3, 4}
//	f := function.New()
//	sq, _ := term.NewSquaredNorm(2)
//	_ = f.AddTerm(sq, x)               // f(x) = x₀² + x₁²
//	v, _ := f.Evaluate()               // v == 25
//
// See the package documentation of function, term and interval for the
// full contracts.
package objfn

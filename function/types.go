// SPDX-License-Identifier: MIT
// Package function: core types, functional options, and the Stats
// counters exposed by the engine.

package function

import (
	"fmt"
	"strings"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/objfn/term"
)

// VarID is the opaque handle returned when a variable block is first
// registered. It stays valid for the lifetime of the Function (until
// Clear or Read). Variable identity is the address of the block's
// first scalar; VarID is the stable face of that identity.
type VarID int

// ChangeOfVariables re-parameterizes one variable between the
// representation a term sees ("x-space", user space) and the
// representation the optimizer sees ("t-space", solver space).
//
// Implementations are shared by reference and may be attached to
// variables of several Functions; they must be stateless or safe for
// concurrent use.
type ChangeOfVariables interface {
	// XDimension returns the user-space (term-visible) dimension.
	XDimension() int

	// TDimension returns the solver-space dimension.
	TDimension() int

	// TToX writes the user-space point for the solver-space point t.
	TToX(x, t []float64)

	// XToT writes the solver-space point for the user-space point x.
	XToT(t, x []float64)

	// UpdateGradient adds the chain-rule projection of the user-space
	// gradient row into the solver-space accumulator slice. t is the
	// solver-space coordinate slice of the variable.
	UpdateGradient(acc, t, userGradient []float64)
}

// addedVariable is one registered user-owned block of scalars.
type addedVariable struct {
	storage     []float64         // caller-owned backing, never copied
	userDim     int               // dimension terms see
	solverDim   int               // dimension the optimizer sees
	globalIndex int               // offset into the global vector; valid while indexing is current
	constant    bool              // constant variables trail the free block
	change      ChangeOfVariables // optional, shared
	scratch     []float64         // per-variable evaluation scratch, len userDim
}

// addedTerm is one term binding: a shared term plus the registry
// indices of the variables it was bound to, with per-binding scratch.
type addedTerm struct {
	t    term.Term
	vars []int

	// args holds one slice per argument, aliasing the bound variable's
	// scratch. Populated by allocateLocalStorage.
	args [][]float64

	// hess is the arity×arity grid of dense blocks, sized
	// dim(argᵢ)×dim(argⱼ). Nil when Hessian computation is disabled.
	hess [][]*mat.Dense
}

// Option configures a Function at construction.
type Option func(*Function)

// WithThreads sets the evaluation worker count. It panics on n <= 0
// (programmer error); use SetThreads for a checked runtime change.
func WithThreads(n int) Option {
	if n <= 0 {
		panic("function: WithThreads requires n > 0")
	}

	return func(f *Function) { f.threads = n }
}

// WithHessianDisabled disables per-term Hessian block allocation and
// every Hessian-producing evaluation on the instance.
func WithHessianDisabled() Option {
	return func(f *Function) { f.hessianEnabled = false }
}

// WithConstant sets the scalar constant added to every evaluation.
func WithConstant(c float64) Option {
	return func(f *Function) { f.constant = c }
}

// VariableOption configures a single variable at registration.
type VariableOption func(*variableConfig)

type variableConfig struct {
	change ChangeOfVariables
}

// WithChangeOfVariables attaches a re-parameterization to the
// variable. The transform's XDimension must equal the block length.
func WithChangeOfVariables(c ChangeOfVariables) VariableOption {
	return func(cfg *variableConfig) { cfg.change = c }
}

// VariableInfo is a read-only snapshot of one registered variable.
type VariableInfo struct {
	Dimension       int  // user-space dimension
	SolverDimension int  // solver-space dimension
	GlobalIndex     int  // current offset into the global vector
	Constant        bool // whether the variable is currently constant
}

// Stats aggregates evaluation counters and phase timings. Counters
// accumulate over the lifetime of the Function and survive Clear.
type Stats struct {
	// Evaluations counts value-only and interval evaluations.
	Evaluations int

	// GradientEvaluations counts evaluations with derivatives.
	GradientEvaluations int

	// AllocationTime is the total time spent (re)building local storage.
	AllocationTime time.Duration

	// EvaluateTime is the total time spent inside term evaluation.
	EvaluateTime time.Duration

	// WriteTime is the total time spent reducing gradients and
	// assembling Hessians.
	WriteTime time.Duration

	// CopyTime is the total time spent in scatter/copy routines.
	CopyTime time.Duration
}

// String renders the counters in a fixed-width report.
func (s Stats) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "----------------------------------------------------\n")
	fmt.Fprintf(&b, "Evaluations without gradient : %d\n", s.Evaluations)
	fmt.Fprintf(&b, "Evaluations with gradient    : %d\n", s.GradientEvaluations)
	fmt.Fprintf(&b, "Allocation time              : %v\n", s.AllocationTime)
	fmt.Fprintf(&b, "Evaluate time                : %v\n", s.EvaluateTime)
	fmt.Fprintf(&b, "Gradient/Hessian write time  : %v\n", s.WriteTime)
	fmt.Fprintf(&b, "Copy time                    : %v\n", s.CopyTime)
	fmt.Fprintf(&b, "----------------------------------------------------")

	return b.String()
}

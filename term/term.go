package term

import (
	"io"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/objfn/interval"
)

// Term is one self-contained piece of an objective function, depending
// on a fixed-size tuple of variables.
//
// The engine guarantees that args, grad and hess always have exactly
// NumVariables entries and that args[i] and grad[i] have length
// VariableDimension(i); hess[i][j] is VariableDimension(i) ×
// VariableDimension(j). A Term must fully overwrite every gradient row
// and Hessian block it is handed — the buffers are reused across calls
// and carry stale values.
//
// Implementations must be safe for concurrent calls on distinct
// argument sets: the engine evaluates many bindings of the same Term
// value from multiple goroutines.
type Term interface {
	// Tag returns the stable, whitespace-free type tag used by the
	// factory to reconstruct the term from a stream.
	Tag() string

	// NumVariables returns the arity of the term.
	NumVariables() int

	// VariableDimension returns the scalar dimension of argument i.
	VariableDimension(i int) int

	// Value evaluates the term at args.
	Value(args [][]float64) (float64, error)

	// ValueGradient evaluates the term and writes the per-argument
	// gradient rows into grad.
	ValueGradient(args, grad [][]float64) (float64, error)

	// ValueGradientHessian evaluates the term and writes the gradient
	// rows and the per-argument-pair Hessian blocks.
	ValueGradientHessian(args, grad [][]float64, hess [][]*mat.Dense) (float64, error)

	// IntervalValue evaluates the term over interval arguments.
	IntervalValue(args [][]interval.Interval) (interval.Interval, error)

	// Write serializes the term's parameters as whitespace-separated
	// tokens. Stateless terms may write nothing.
	Write(w io.Writer) error
}

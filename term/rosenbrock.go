package term

import (
	"io"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/objfn/interval"
)

// TagRosenbrock is the factory tag of Rosenbrock.
const TagRosenbrock = "objfn.rosenbrock"

// Rosenbrock is the classic banana-valley test function
//
//	f(x) = (1 - x₀)² + 100·(x₁ - x₀²)²
//
// over a single two-dimensional variable. Its global minimum is 0 at
// (1, 1). It is stateless and carries no stream parameters.
type Rosenbrock struct{}

// NewRosenbrock returns the two-dimensional Rosenbrock term.
func NewRosenbrock() *Rosenbrock { return &Rosenbrock{} }

// Tag implements Term.
func (*Rosenbrock) Tag() string { return TagRosenbrock }

// NumVariables implements Term.
func (*Rosenbrock) NumVariables() int { return 1 }

// VariableDimension implements Term.
func (*Rosenbrock) VariableDimension(int) int { return 2 }

// Value implements Term.
func (*Rosenbrock) Value(args [][]float64) (float64, error) {
	x0, x1 := args[0][0], args[0][1]
	a := 1 - x0
	b := x1 - x0*x0

	return a*a + 100*b*b, nil
}

// ValueGradient implements Term.
func (rb *Rosenbrock) ValueGradient(args, grad [][]float64) (float64, error) {
	x0, x1 := args[0][0], args[0][1]
	b := x1 - x0*x0
	grad[0][0] = -2*(1-x0) - 400*x0*b
	grad[0][1] = 200 * b

	return rb.value(x0, x1), nil
}

// ValueGradientHessian implements Term.
func (rb *Rosenbrock) ValueGradientHessian(args, grad [][]float64, hess [][]*mat.Dense) (float64, error) {
	v, err := rb.ValueGradient(args, grad)
	if err != nil {
		return 0, err
	}

	x0, x1 := args[0][0], args[0][1]
	block := hess[0][0]
	block.Set(0, 0, 2-400*x1+1200*x0*x0)
	block.Set(0, 1, -400*x0)
	block.Set(1, 0, -400*x0)
	block.Set(1, 1, 200)

	return v, nil
}

// IntervalValue implements Term.
func (*Rosenbrock) IntervalValue(args [][]interval.Interval) (interval.Interval, error) {
	x0, x1 := args[0][0], args[0][1]
	a := interval.Point(1).Sub(x0).Square()
	b := x1.Sub(x0.Square()).Square().MulScalar(100)

	return a.Add(b), nil
}

// Write implements Term. Rosenbrock has no parameters.
func (*Rosenbrock) Write(io.Writer) error { return nil }

// ReadRosenbrock is the factory constructor for Rosenbrock.
func ReadRosenbrock(io.Reader) (Term, error) { return NewRosenbrock(), nil }

func (*Rosenbrock) value(x0, x1 float64) float64 {
	a := 1 - x0
	b := x1 - x0*x0

	return a*a + 100*b*b
}

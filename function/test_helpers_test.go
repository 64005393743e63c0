package function_test

import (
	"errors"
	"io"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/objfn/interval"
	"github.com/katalvlaran/objfn/term"
)

// errTermBoom is raised by failingTerm to exercise error propagation
// out of the parallel evaluation loop.
var errTermBoom = errors.New("boom")

// crossTerm is f(x, y) = x·y over two one-dimensional variables. Its
// Hessian has the off-diagonal blocks [0 1; 1 0], which makes it the
// smallest term with cross-variable sparsity.
type crossTerm struct{}

func (crossTerm) Tag() string               { return "test.cross" }
func (crossTerm) NumVariables() int         { return 2 }
func (crossTerm) VariableDimension(int) int { return 1 }

func (crossTerm) Value(args [][]float64) (float64, error) {
	return args[0][0] * args[1][0], nil
}

func (c crossTerm) ValueGradient(args, grad [][]float64) (float64, error) {
	grad[0][0] = args[1][0]
	grad[1][0] = args[0][0]

	return args[0][0] * args[1][0], nil
}

func (c crossTerm) ValueGradientHessian(args, grad [][]float64, hess [][]*mat.Dense) (float64, error) {
	v, err := c.ValueGradient(args, grad)
	if err != nil {
		return 0, err
	}
	hess[0][0].Set(0, 0, 0)
	hess[0][1].Set(0, 0, 1)
	hess[1][0].Set(0, 0, 1)
	hess[1][1].Set(0, 0, 0)

	return v, nil
}

func (crossTerm) IntervalValue(args [][]interval.Interval) (interval.Interval, error) {
	return args[0][0].Mul(args[1][0]), nil
}

func (crossTerm) Write(io.Writer) error { return nil }

// failingTerm always fails. Arity 1, dimension 1.
type failingTerm struct{}

func (failingTerm) Tag() string               { return "test.failing" }
func (failingTerm) NumVariables() int         { return 1 }
func (failingTerm) VariableDimension(int) int { return 1 }

func (failingTerm) Value([][]float64) (float64, error) { return 0, errTermBoom }

func (failingTerm) ValueGradient(_, _ [][]float64) (float64, error) { return 0, errTermBoom }

func (failingTerm) ValueGradientHessian(_, _ [][]float64, _ [][]*mat.Dense) (float64, error) {
	return 0, errTermBoom
}

func (failingTerm) IntervalValue([][]interval.Interval) (interval.Interval, error) {
	return interval.Interval{}, errTermBoom
}

func (failingTerm) Write(io.Writer) error { return nil }

// scaleChange is the change of variables x = factor·t with equal x/t
// dimensions. Its gradient projection is acc += factor·∂f/∂x.
type scaleChange struct {
	dim    int
	factor float64
}

func (s scaleChange) XDimension() int { return s.dim }
func (s scaleChange) TDimension() int { return s.dim }

func (s scaleChange) TToX(x, t []float64) {
	for i := range x {
		x[i] = s.factor * t[i]
	}
}

func (s scaleChange) XToT(t, x []float64) {
	for i := range t {
		t[i] = x[i] / s.factor
	}
}

func (s scaleChange) UpdateGradient(acc, _, userGradient []float64) {
	for i := range acc {
		acc[i] += s.factor * userGradient[i]
	}
}

// tieChange parameterizes a two-scalar block by a single solver
// scalar: x = (t, t).
type tieChange struct{}

func (tieChange) XDimension() int { return 2 }
func (tieChange) TDimension() int { return 1 }

func (tieChange) TToX(x, t []float64) {
	x[0], x[1] = t[0], t[0]
}

func (tieChange) XToT(t, x []float64) {
	t[0] = x[0]
}

func (tieChange) UpdateGradient(acc, _, userGradient []float64) {
	acc[0] += userGradient[0] + userGradient[1]
}

// mustSquaredNorm builds a SquaredNorm term or panics; test fixtures
// only.
func mustSquaredNorm(dim int) *term.SquaredNorm {
	sq, err := term.NewSquaredNorm(dim)
	if err != nil {
		panic(err)
	}

	return sq
}

package term

import (
	"errors"
	"fmt"
	"io"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/objfn/interval"
)

// TagSquaredNorm is the factory tag of SquaredNorm.
const TagSquaredNorm = "objfn.squared_norm"

// ErrBadDimension indicates a built-in term constructed with dim < 1.
var ErrBadDimension = errors.New("term: dimension must be positive")

// SquaredNorm is the term f(x) = Σ xᵢ² over a single variable of a
// fixed dimension. Its gradient is 2x and its Hessian is 2I.
type SquaredNorm struct {
	dim int
}

// NewSquaredNorm returns a squared-norm term over one variable of the
// given dimension.
func NewSquaredNorm(dim int) (*SquaredNorm, error) {
	if dim < 1 {
		return nil, ErrBadDimension
	}

	return &SquaredNorm{dim: dim}, nil
}

// Tag implements Term.
func (s *SquaredNorm) Tag() string { return TagSquaredNorm }

// NumVariables implements Term.
func (s *SquaredNorm) NumVariables() int { return 1 }

// VariableDimension implements Term.
func (s *SquaredNorm) VariableDimension(int) int { return s.dim }

// Value implements Term.
func (s *SquaredNorm) Value(args [][]float64) (float64, error) {
	sum := 0.0
	for _, v := range args[0] {
		sum += v * v
	}

	return sum, nil
}

// ValueGradient implements Term.
func (s *SquaredNorm) ValueGradient(args, grad [][]float64) (float64, error) {
	sum := 0.0
	for i, v := range args[0] {
		sum += v * v
		grad[0][i] = 2 * v
	}

	return sum, nil
}

// ValueGradientHessian implements Term.
func (s *SquaredNorm) ValueGradientHessian(args, grad [][]float64, hess [][]*mat.Dense) (float64, error) {
	sum, err := s.ValueGradient(args, grad)
	if err != nil {
		return 0, err
	}

	block := hess[0][0]
	block.Zero()
	for i := 0; i < s.dim; i++ {
		block.Set(i, i, 2)
	}

	return sum, nil
}

// IntervalValue implements Term.
func (s *SquaredNorm) IntervalValue(args [][]interval.Interval) (interval.Interval, error) {
	sum := interval.Point(0)
	for _, iv := range args[0] {
		sum = sum.Add(iv.Square())
	}

	return sum, nil
}

// Write implements Term. The only parameter is the dimension.
func (s *SquaredNorm) Write(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%d", s.dim)

	return err
}

// ReadSquaredNorm is the factory constructor for SquaredNorm.
func ReadSquaredNorm(r io.Reader) (Term, error) {
	var dim int
	if _, err := fmt.Fscan(r, &dim); err != nil {
		return nil, fmt.Errorf("term: reading squared_norm: %w", err)
	}

	return NewSquaredNorm(dim)
}
